package model

import "time"

// DiscoveryJob is the unit of work queued for asynchronous discovery.
type DiscoveryJob struct {
	SessionID  string           `json:"session_id"`
	Request    DiscoveryRequest `json:"request"`
	EnqueuedAt time.Time        `json:"enqueued_at"`
}

// SessionStatus describes the lifecycle of an asynchronous discovery run.
type SessionStatus string

// Session lifecycle states. A session moves pending -> running -> completed
// or failed; there are no other transitions.
const (
	SessionPending   SessionStatus = "pending"
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// Active reports whether the session still occupies pipeline capacity.
func (s SessionStatus) Active() bool {
	return s == SessionPending || s == SessionRunning
}

// ProgressUpdate is one checkpoint recorded against a session.
type ProgressUpdate struct {
	Message string         `json:"message"`
	Percent float64        `json:"percent"`
	Data    map[string]any `json:"data,omitempty"`
	At      time.Time      `json:"at"`
}

// Session tracks an asynchronous discovery run from submission to result.
type Session struct {
	ID        string           `json:"id"`
	Status    SessionStatus    `json:"status"`
	Request   DiscoveryRequest `json:"request"`
	Result    *DiscoveryResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	Progress  []ProgressUpdate `json:"progress,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
