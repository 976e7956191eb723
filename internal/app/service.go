// Package service provides the core discovery service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	jobqueue "github.com/okian/scout/internal/adapters/mq/queue"
	workerpool "github.com/okian/scout/internal/adapters/mq/worker"
	"github.com/okian/scout/internal/adapters/progress"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/adapters/sources"
	"github.com/okian/scout/internal/domain/dedupe"
	"github.com/okian/scout/internal/domain/enrich"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/ranking"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/social"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Progress checkpoint constants. Source fetching owns the band up to 80
// percent; the remainder covers dedupe, ranking, and repackaging.
const (
	fetchProgressBand  = 80.0
	rankProgressMark   = 90.0
	finishProgressMark = 100.0
)

// Service implements the discovery pipeline and session management.
type Service struct {
	mu sync.RWMutex

	// Core components
	sessions  repository.Store
	fetcher   *sources.Fetcher
	deduper   dedupe.Deduper
	enricher  *enrich.Enricher
	ranker    *ranking.Engine
	packager  *social.Repackager
	jobQueue  jobqueue.Queue
	pool      *workerpool.Pool
	reporter  progress.Reporter

	// Configuration
	adapters          []sources.Adapter
	workerCount       int
	queueSize         int
	adapterTimeout    time.Duration
	maxArticles       int
	dedupeThreshold   float64
	relevanceFloor    float64
	tagWeights        map[string]float64
	defaultTagWeight  float64
	trustedSources    []string
	maxActiveSessions int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU() * 2,
		queueSize:         1000,
		adapterTimeout:    10 * time.Second,
		maxArticles:       model.DefaultMaxArticles,
		dedupeThreshold:   dedupe.DefaultThreshold,
		relevanceFloor:    ranking.FilterFloor,
		defaultTagWeight:  0.5,
		maxActiveSessions: 32,
		stopCh:            make(chan struct{}),
		reporter:          progress.Noop{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting discovery service...")

	if s.sessions == nil {
		s.sessions = repository.NewMemoryStore()
	}
	s.fetcher = sources.New(
		sources.WithAdapters(s.adapters...),
		sources.WithTimeout(s.adapterTimeout),
	)
	s.deduper = dedupe.New(
		dedupe.WithThreshold(s.dedupeThreshold),
	)
	s.enricher = enrich.New()
	s.ranker = ranking.New(
		ranking.WithRelevanceScorer(s.relevanceScorer()),
		ranking.WithQualityScorer(s.qualityScorer()),
		ranking.WithLogger(s.logger),
	)
	s.packager = social.New()
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	// Workers run queued jobs through the same pipeline as Discover.
	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "discovery service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("adapters", len(s.adapters)),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping discovery service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "discovery service stopped")
}

// Discover runs the synchronous pipeline: fetch, dedupe, enrich, rank with
// the weighted strategy and the configured relevance floor, then repackage
// for any requested platforms. Upstream source failures degrade the result;
// only invalid input or cancellation produce an error.
func (s *Service) Discover(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error) {
	req, err := s.validate(req)
	if err != nil {
		return model.DiscoveryResult{}, err
	}
	return s.run(ctx, "", req, ranking.StrategyWeighted, s.relevanceFloor, s.reporter)
}

// Search runs the lighter search-path pipeline: same fetch and dedupe, but
// ranked with the simple relevance-plus-recency formula, no floor, and no
// social repackaging. Truncation to MaxArticles is the only cut.
func (s *Service) Search(ctx context.Context, req model.DiscoveryRequest) (model.DiscoveryResult, error) {
	req, err := s.validate(req)
	if err != nil {
		return model.DiscoveryResult{}, err
	}
	req.Platforms = nil
	return s.run(ctx, "", req, ranking.StrategySimple, ranking.NoFloor, s.reporter)
}

// Submit enqueues an asynchronous discovery run and returns its session.
func (s *Service) Submit(ctx context.Context, req model.DiscoveryRequest) (model.Session, error) {
	req, err := s.validate(req)
	if err != nil {
		return model.Session{}, err
	}

	if s.sessions.ActiveCount(ctx) >= s.maxActiveSessions {
		return model.Session{}, ErrTooManySessions
	}

	session, err := s.sessions.Create(ctx, req)
	if err != nil {
		return model.Session{}, err
	}

	job := jobqueue.Job{
		SessionID:  session.ID,
		Request:    req,
		EnqueuedAt: time.Now(),
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		_ = s.sessions.Fail(ctx, session.ID, ErrQueueFull)
		return model.Session{}, ErrQueueFull
	}

	return session, nil
}

// Session returns the session with the given id.
func (s *Service) Session(ctx context.Context, id string) (model.Session, error) {
	return s.sessions.Get(ctx, id)
}

// RunJob executes one queued discovery job. It satisfies the worker pool's
// Runner contract; session bookkeeping failures are logged, not returned,
// because the job itself already ran.
func (s *Service) RunJob(ctx context.Context, job workerpool.Job) error {
	if err := s.sessions.SetRunning(ctx, job.SessionID); err != nil {
		return fmt.Errorf("session %s not runnable: %w", job.SessionID, err)
	}

	reporter := progress.Multi{s.reporter, s.storeReporter()}
	result, err := s.run(ctx, job.SessionID, job.Request, ranking.StrategyWeighted, s.relevanceFloor, reporter)
	if err != nil {
		if failErr := s.sessions.Fail(ctx, job.SessionID, err); failErr != nil {
			s.logger.Error(ctx, "recording session failure failed",
				logger.String("session_id", job.SessionID),
				logger.Error(failErr),
			)
		}
		return err
	}

	if err := s.sessions.Complete(ctx, job.SessionID, result); err != nil {
		s.logger.Error(ctx, "recording session result failed",
			logger.String("session_id", job.SessionID),
			logger.Error(err),
		)
	}
	return nil
}

// run is the pipeline shared by the synchronous and asynchronous paths.
func (s *Service) run(ctx context.Context, sessionID string, req model.DiscoveryRequest, strategy ranking.Strategy, floor float64, reporter progress.Reporter) (model.DiscoveryResult, error) {
	start := time.Now()
	if reporter == nil {
		reporter = progress.Noop{}
	}

	reporter.Report(ctx, sessionID, "discovery started", 0, nil)

	items, err := s.fetcher.FetchAll(ctx, req.Tags, req.Categories, req.MaxArticles*len(s.adapters), func(adapter string, fetched, done, total int) {
		percent := fetchProgressBand * float64(done) / float64(total)
		reporter.Report(ctx, sessionID, "fetched "+adapter, percent, map[string]any{
			"adapter": adapter,
			"fetched": fetched,
		})
	})
	if err != nil {
		return model.DiscoveryResult{}, fmt.Errorf("fetching sources: %w", err)
	}
	totalFound := len(items)

	unique := s.deduper.Dedupe(ctx, items)
	metrics.RecordDuplicatesFiltered(totalFound - len(unique))

	if err := s.enricher.Enrich(ctx, unique, start); err != nil {
		return model.DiscoveryResult{}, fmt.Errorf("enriching items: %w", err)
	}

	reporter.Report(ctx, sessionID, "scoring and ranking", rankProgressMark, map[string]any{
		"total_found":  totalFound,
		"unique_found": len(unique),
	})

	ranked := s.ranker.Rank(ctx, unique, ranking.Params{
		Tags:       req.Tags,
		Categories: req.Categories,
		Strategy:   strategy,
		Floor:      floor,
		Now:        start,
	})
	if len(ranked) > req.MaxArticles {
		ranked = ranked[:req.MaxArticles]
	}

	result := model.DiscoveryResult{
		Articles:    ranked,
		TotalFound:  totalFound,
		UniqueFound: len(unique),
		FinalCount:  len(ranked),
	}

	if len(req.Platforms) > 0 {
		result.Posts = s.repackage(ctx, ranked, req.Platforms, start)
	}

	reporter.Report(ctx, sessionID, "discovery complete", finishProgressMark, map[string]any{
		"processed_count": result.FinalCount,
		"total_found":     result.TotalFound,
		"unique_found":    result.UniqueFound,
	})

	metrics.RecordDiscoveryRun()
	metrics.RecordDiscoveryDuration(float64(time.Since(start).Milliseconds()))

	return result, nil
}

// repackage renders platform posts for every ranked item. A per-item
// rendering failure skips that item's posts, nothing more.
func (s *Service) repackage(ctx context.Context, ranked []model.ScoredItem, platforms []string, now time.Time) map[string][]model.SocialPost {
	posts := make(map[string][]model.SocialPost, len(ranked))
	for i := range ranked {
		item := ranked[i].Item
		rendered, err := s.packager.Posts(ctx, &item, platforms, now)
		if err != nil {
			s.logger.Warn(ctx, "repackaging failed for item",
				logger.String("item", item.ID),
				logger.Error(err),
			)
			continue
		}
		if len(rendered) == 0 {
			continue
		}
		for _, p := range rendered {
			metrics.RecordPostGenerated(p.Platform)
		}
		posts[item.ID] = rendered
	}
	return posts
}

// validate normalizes the request and rejects the one fatal input class.
func (s *Service) validate(req model.DiscoveryRequest) (model.DiscoveryRequest, error) {
	tags := req.Tags[:0:0]
	for _, t := range req.Tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return req, ErrNoTags
	}
	req.Tags = tags

	req = req.Normalized()
	if s.maxArticles > 0 && req.MaxArticles > s.maxArticles {
		req.MaxArticles = s.maxArticles
	}
	return req, nil
}

// storeReporter adapts the session store into a best-effort progress sink.
func (s *Service) storeReporter() progress.Reporter {
	return progress.Func(func(ctx context.Context, sessionID, message string, percent float64, data map[string]any) {
		if sessionID == "" {
			return
		}
		update := model.ProgressUpdate{
			Message: message,
			Percent: percent,
			Data:    data,
		}
		if err := s.sessions.AppendProgress(ctx, sessionID, update); err != nil {
			s.logger.Debug(ctx, "progress append failed",
				logger.String("session_id", sessionID),
				logger.Error(err),
			)
		}
	})
}

// relevanceScorer builds the relevance signal from configured weights.
// Empty configuration keeps the scorer's built-in tables.
func (s *Service) relevanceScorer() ranking.RelevanceScorer {
	opts := []scoring.RelevanceOption{
		scoring.WithDefaultTagWeight(s.defaultTagWeight),
	}
	if len(s.tagWeights) > 0 {
		opts = append(opts, scoring.WithTagWeights(s.tagWeights))
	}
	return scoring.NewRelevanceScorer(opts...)
}

// qualityScorer builds the quality signal from configured trusted sources.
func (s *Service) qualityScorer() ranking.QualityScorer {
	var opts []scoring.QualityOption
	if len(s.trustedSources) > 0 {
		opts = append(opts, scoring.WithTrustedSources(s.trustedSources))
	}
	return scoring.NewQualityScorer(opts...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"adapters":    len(s.adapters),
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["totalSessions"] = s.sessions.Count(ctx)
		stats["activeSessions"] = s.sessions.ActiveCount(ctx)

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
