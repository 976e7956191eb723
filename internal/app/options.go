package service

import (
	"time"

	"github.com/okian/scout/internal/adapters/progress"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/adapters/sources"
	"github.com/okian/scout/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAdapters registers the source adapters the pipeline fans out to.
func WithAdapters(adapters ...sources.Adapter) Option {
	return func(s *Service) {
		s.adapters = append(s.adapters, adapters...)
	}
}

// WithWorkerCount sets the number of discovery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithAdapterTimeout bounds each individual source fetch.
func WithAdapterTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.adapterTimeout = timeout
		}
	}
}

// WithMaxArticles caps the article count any single request may ask for.
func WithMaxArticles(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxArticles = max
		}
	}
}

// WithDedupeThreshold sets the title similarity duplicate threshold.
func WithDedupeThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 1 {
			s.dedupeThreshold = threshold
		}
	}
}

// WithRelevanceFloor sets the weighted-strategy relevance floor.
func WithRelevanceFloor(floor float64) Option {
	return func(s *Service) {
		if floor >= 0 {
			s.relevanceFloor = floor
		}
	}
}

// WithTagWeights sets the tag weights for relevance scoring.
func WithTagWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.tagWeights = weights
	}
}

// WithDefaultTagWeight sets the weight for unknown tags.
func WithDefaultTagWeight(weight float64) Option {
	return func(s *Service) {
		if weight > 0 {
			s.defaultTagWeight = weight
		}
	}
}

// WithTrustedSources sets the publishers receiving a quality bonus.
func WithTrustedSources(sources []string) Option {
	return func(s *Service) {
		s.trustedSources = sources
	}
}

// WithMaxActiveSessions caps concurrently pending or running sessions.
func WithMaxActiveSessions(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxActiveSessions = max
		}
	}
}

// WithSessionStore overrides the session store, for tests.
func WithSessionStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithReporter sets the progress reporter for all runs.
func WithReporter(reporter progress.Reporter) Option {
	return func(s *Service) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}
