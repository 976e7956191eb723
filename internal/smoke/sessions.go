package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/okian/scout/pkg/logger"
)

// runSessions exercises the async path: submit jobs, then poll each
// session until it reaches a terminal state.
func runSessions(ctx context.Context, config *Config, stats *Stats) error {
	if config.NumSessions < 1 {
		return nil
	}
	log.Printf("submitting %d async sessions", config.NumSessions)

	client := newHTTPClient(config.Timeout)

	ids := make([]string, 0, config.NumSessions)
	for i := 0; i < config.NumSessions; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := submitSession(ctx, client, config, generateSingleRequest())
		if err != nil {
			logger.Get().Warn(ctx, "session submission rejected", logger.Error(err))
			continue
		}
		ids = append(ids, id)
	}
	stats.SessionsSubmitted = len(ids)

	for _, id := range ids {
		sess, err := awaitSession(ctx, client, config, id)
		if err != nil {
			stats.SessionsFailed++
			logger.Get().Warn(ctx, "session did not complete", logger.String("session_id", id), logger.Error(err))
			continue
		}
		if sess.Status != "completed" || sess.Result == nil {
			stats.SessionsFailed++
			logger.Get().Warn(ctx, "session finished abnormally",
				logger.String("session_id", id),
				logger.String("status", sess.Status),
				logger.String("cause", sess.Error))
			continue
		}
		stats.SessionsCompleted++
	}

	log.Printf("sessions completed: %d/%d", stats.SessionsCompleted, stats.SessionsSubmitted)
	return nil
}

// submitSession posts one job and returns the session ID.
func submitSession(ctx context.Context, client *HTTPClient, config *Config, req Request) (string, error) {
	resp, err := client.Post(ctx, config.BaseURL+"/sessions", req)
	if err != nil {
		return "", fmt.Errorf("failed to submit session: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read session response: %w", err)
	}
	if resp.StatusCode != StatusAccepted {
		return "", fmt.Errorf("session submission returned status %d", resp.StatusCode)
	}
	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return "", fmt.Errorf("failed to decode session: %w", err)
	}
	if sess.ID == "" {
		return "", fmt.Errorf("session response missing id")
	}
	return sess.ID, nil
}

// awaitSession polls until the session is no longer pending or running.
func awaitSession(ctx context.Context, client *HTTPClient, config *Config, id string) (Session, error) {
	deadline := time.Now().Add(SessionPollTimeout)
	for {
		if time.Now().After(deadline) {
			return Session{}, fmt.Errorf("timed out waiting for session %s", id)
		}

		resp, err := client.Get(ctx, config.BaseURL+"/sessions/"+id)
		if err != nil {
			return Session{}, fmt.Errorf("failed to fetch session: %w", err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return Session{}, fmt.Errorf("failed to read session: %w", err)
		}
		if resp.StatusCode != StatusOK {
			return Session{}, fmt.Errorf("session fetch returned status %d", resp.StatusCode)
		}

		var sess Session
		if err := json.Unmarshal(body, &sess); err != nil {
			return Session{}, fmt.Errorf("failed to decode session: %w", err)
		}
		if sess.Status != "pending" && sess.Status != "running" {
			return sess, nil
		}

		select {
		case <-ctx.Done():
			return Session{}, ctx.Err()
		case <-time.After(SessionPollInterval):
		}
	}
}
