// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory discovery job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of discovery workers.
	WorkerCount int `koanf:"worker_count"`

	// AdapterTimeoutMS bounds each source adapter fetch.
	AdapterTimeoutMS int `koanf:"adapter_timeout_ms"`

	// MaxArticles caps the number of articles returned by a discovery run
	// when the request does not specify its own limit.
	MaxArticles int `koanf:"max_articles"`

	// DedupeThreshold sets the title similarity above which an item is a duplicate.
	DedupeThreshold float64 `koanf:"dedupe_threshold"`

	// RelevanceFloor drops weighted-strategy results scoring below it.
	RelevanceFloor float64 `koanf:"relevance_floor"`

	// TagWeights maps interest tags to their relevance weights.
	TagWeights map[string]float64 `koanf:"tag_weights"`

	// DefaultTagWeight is used for unknown tags.
	DefaultTagWeight float64 `koanf:"default_tag_weight"`

	// TrustedSources lists publishers that receive a quality bonus.
	TrustedSources []string `koanf:"trusted_sources"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		JobQueueSize:     1_000,
		WorkerCount:      runtime.NumCPU() * 2,
		AdapterTimeoutMS: 10_000,
		MaxArticles:      20,
		DedupeThreshold:  0.70,
		RelevanceFloor:   30,
		TagWeights:       nil,
		DefaultTagWeight: 0.5,
		TrustedSources:   nil,
	}
}
