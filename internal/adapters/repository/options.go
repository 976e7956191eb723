// Package repository defines the discovery session store interface and errors.
package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxProgress caps the number of progress entries retained per session.
func WithMaxProgress(max int) Option {
	return func(s *MemoryStore) {
		if max > 0 {
			s.maxProgress = max
		}
	}
}

// WithNow overrides the clock, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
