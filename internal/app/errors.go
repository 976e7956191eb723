package service

import "errors"

// Sentinel kinds for service errors. These allow errors.Is/As from callers.
var (
	// ErrNoTags rejects requests with no usable interest tags. This is the
	// only fatal input class; degraded upstreams surface as lower counts.
	ErrNoTags = errors.New("at least one tag is required")

	// ErrQueueFull signals job queue backpressure on Submit.
	ErrQueueFull = errors.New("discovery queue is full")

	// ErrTooManySessions caps concurrent asynchronous sessions.
	ErrTooManySessions = errors.New("too many active sessions")
)
