package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound   = errors.New("session not found")
	ErrTerminated = errors.New("session already terminated")
)
