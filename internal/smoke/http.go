package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRequests issues sync discovery requests concurrently using worker pools
func submitRequests(ctx context.Context, config *Config, requests []Request, stats *Stats) error {
	log.Printf("submitting %d discovery requests with %d workers", len(requests), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/discover"

	var (
		successful int64
		rejected   int64
		failed     int64
		badResults int64
		submitted  int64
	)

	requestChan := make(chan Request, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for req := range requestChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome := submitSingleRequest(ctx, client, url, req)

					atomic.AddInt64(&submitted, 1)
					switch outcome {
					case outcomeSuccess:
						atomic.AddInt64(&successful, 1)
					case outcomeRejected:
						atomic.AddInt64(&rejected, 1)
					case outcomeBadResult:
						atomic.AddInt64(&badResults, 1)
					case outcomeFailed:
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						log.Printf("progress: %d/%d submitted (ok: %d, rejected: %d, bad: %d, failed: %d)",
							atomic.LoadInt64(&submitted), len(requests),
							atomic.LoadInt64(&successful), atomic.LoadInt64(&rejected),
							atomic.LoadInt64(&badResults), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	go func() {
		defer close(requestChan)
		for _, req := range requests {
			select {
			case <-ctx.Done():
				return
			case requestChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RequestsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RequestsRejected = int(atomic.LoadInt64(&rejected))
	stats.RequestsFailed = int(atomic.LoadInt64(&failed))
	stats.VerifyFailures = int(atomic.LoadInt64(&badResults))

	log.Printf("discovery submission completed: ok=%d rejected=%d bad=%d failed=%d",
		stats.RequestsSuccessful, stats.RequestsRejected, stats.VerifyFailures, stats.RequestsFailed)

	if stats.VerifyFailures > 0 {
		return fmt.Errorf("%d responses failed verification", stats.VerifyFailures)
	}
	return nil
}

// Outcome values for a single request.
const (
	outcomeSuccess   = "success"
	outcomeRejected  = "rejected"
	outcomeBadResult = "bad_result"
	outcomeFailed    = "failed"
)

// submitSingleRequest submits one discovery request and classifies the outcome
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, req Request) string {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return outcomeFailed
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed
	}

	switch resp.StatusCode {
	case StatusOK:
		var result Result
		if err := json.Unmarshal(body, &result); err != nil {
			return outcomeBadResult
		}
		if err := verifyResult(req, result); err != nil {
			log.Printf("verification failed: %v", err)
			return outcomeBadResult
		}
		return outcomeSuccess
	case http.StatusTooManyRequests:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}
