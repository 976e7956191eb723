// Package worker defines worker contracts for asynchronous discovery runs.
package worker

import (
	"sync/atomic"

	"github.com/okian/scout/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(lg logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if lg != nil {
			w.logger = lg
		}
	}
}

// withActiveCounter shares the pool's busy counter with a worker.
func withActiveCounter(counter *atomic.Int64) Option {
	return func(w *InMemoryWorker) {
		w.active = counter
	}
}
