// Package sources defines the contract for discovering candidate items.
package sources

import (
	"time"

	"github.com/okian/scout/pkg/logger"
)

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithAdapters registers the source adapters to query, in merge order.
func WithAdapters(adapters ...Adapter) Option {
	return func(f *Fetcher) {
		f.adapters = append(f.adapters, adapters...)
	}
}

// WithTimeout bounds each individual adapter fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(lg logger.Logger) Option {
	return func(f *Fetcher) {
		if lg != nil {
			f.logger = lg
		}
	}
}
