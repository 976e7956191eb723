package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/scout/pkg/logger"
)

// Run executes the complete discovery smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting scout smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("sessions", config.NumSessions),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate request shapes
	requests, err := generateRequests(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("request generation failed: %w", err)
	}

	// Step 3: Hammer the sync endpoint
	if err := submitRequests(ctx, config, requests, stats); err != nil {
		return fmt.Errorf("request submission failed: %w", err)
	}

	// Step 4: Exercise the async session path
	if err := runSessions(ctx, config, stats); err != nil {
		return fmt.Errorf("session run failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.RequestsSubmitted > 0 {
		successRate = float64(stats.RequestsSuccessful) / float64(stats.RequestsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("requestsGenerated", stats.RequestsGenerated),
		logger.Int("requestsSubmitted", stats.RequestsSubmitted),
		logger.Int("requestsSuccessful", stats.RequestsSuccessful),
		logger.Int("requestsRejected", stats.RequestsRejected),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("verifyFailures", stats.VerifyFailures),
		logger.Int("sessionsSubmitted", stats.SessionsSubmitted),
		logger.Int("sessionsCompleted", stats.SessionsCompleted),
		logger.Int("sessionsFailed", stats.SessionsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
