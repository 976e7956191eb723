// Package repository defines the discovery session store interface and errors.
package repository

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
)

// Store provides read/write access to asynchronous discovery sessions.
type Store interface {
	// Create registers a new pending session for the given request and
	// returns it with a generated identifier.
	Create(ctx context.Context, req model.DiscoveryRequest) (model.Session, error)

	// Get returns the session with the given id.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (model.Session, error)

	// SetRunning marks a pending session as running.
	SetRunning(ctx context.Context, id string) error

	// AppendProgress records a checkpoint against a session.
	AppendProgress(ctx context.Context, id string, update model.ProgressUpdate) error

	// Complete stores the result and marks the session completed.
	Complete(ctx context.Context, id string, result model.DiscoveryResult) error

	// Fail records the failure cause and marks the session failed.
	Fail(ctx context.Context, id string, cause error) error

	// ActiveCount returns the number of pending or running sessions.
	ActiveCount(ctx context.Context) int

	// Count returns the total number of sessions tracked.
	Count(ctx context.Context) int
}
