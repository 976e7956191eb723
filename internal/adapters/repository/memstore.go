package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultMaxProgress = 100
)

// MemoryStore implements Store with an in-process map guarded by a RWMutex.
// Sessions are kept for the lifetime of the process; there is no eviction.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*model.Session
	maxProgress int
	now         func() time.Time
}

// NewMemoryStore creates a MemoryStore with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]*model.Session),
		maxProgress: defaultMaxProgress,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create registers a new pending session.
func (s *MemoryStore) Create(ctx context.Context, req model.DiscoveryRequest) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}

	now := s.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		Status:    model.SessionPending,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	active := s.activeLocked()
	s.mu.Unlock()

	metrics.UpdateActiveSessions(active)
	return *session, nil
}

// Get returns a snapshot of the session with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snapshot(session), nil
}

// SetRunning marks a pending session as running.
func (s *MemoryStore) SetRunning(ctx context.Context, id string) error {
	return s.transition(ctx, id, func(session *model.Session) error {
		session.Status = model.SessionRunning
		return nil
	})
}

// AppendProgress records a checkpoint against a session. The progress log is
// capped; once full, the oldest entries are dropped.
func (s *MemoryStore) AppendProgress(ctx context.Context, id string, update model.ProgressUpdate) error {
	return s.transition(ctx, id, func(session *model.Session) error {
		if update.At.IsZero() {
			update.At = s.now()
		}
		session.Progress = append(session.Progress, update)
		if over := len(session.Progress) - s.maxProgress; over > 0 {
			session.Progress = session.Progress[over:]
		}
		return nil
	})
}

// Complete stores the result and marks the session completed.
func (s *MemoryStore) Complete(ctx context.Context, id string, result model.DiscoveryResult) error {
	return s.transition(ctx, id, func(session *model.Session) error {
		session.Status = model.SessionCompleted
		session.Result = &result
		return nil
	})
}

// Fail records the failure cause and marks the session failed.
func (s *MemoryStore) Fail(ctx context.Context, id string, cause error) error {
	return s.transition(ctx, id, func(session *model.Session) error {
		session.Status = model.SessionFailed
		if cause != nil {
			session.Error = cause.Error()
		}
		return nil
	})
}

// ActiveCount returns the number of pending or running sessions.
func (s *MemoryStore) ActiveCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

// Count returns the total number of sessions tracked.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// transition applies fn to a live session under the write lock.
func (s *MemoryStore) transition(ctx context.Context, id string, fn func(*model.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if session.Status == model.SessionCompleted || session.Status == model.SessionFailed {
		return fmt.Errorf("%w: %s", ErrTerminated, id)
	}

	if err := fn(session); err != nil {
		return err
	}
	session.UpdatedAt = s.now()

	metrics.UpdateActiveSessions(s.activeLocked())
	return nil
}

func (s *MemoryStore) activeLocked() int {
	active := 0
	for _, session := range s.sessions {
		if session.Status.Active() {
			active++
		}
	}
	return active
}

// snapshot deep-copies the mutable slices so callers never alias store state.
func snapshot(session *model.Session) model.Session {
	out := *session
	if session.Progress != nil {
		out.Progress = make([]model.ProgressUpdate, len(session.Progress))
		copy(out.Progress, session.Progress)
	}
	if session.Result != nil {
		result := *session.Result
		out.Result = &result
	}
	return out
}
