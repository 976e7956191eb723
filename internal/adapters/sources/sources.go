// Package sources defines the contract for discovering candidate items from
// external providers and a fan-out fetcher that queries them concurrently.
//
// Implementations may wrap RSS feeds, vendor APIs, or static fixtures. A
// misbehaving adapter never fails a discovery run; its results are simply
// absent from the merged output.
package sources

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Default fetcher configuration constants.
const (
	defaultAdapterTimeout = 10 * time.Second
)

// Adapter fetches candidate items from a single provider.
type Adapter interface {
	// Name identifies the adapter in logs, metrics, and progress updates.
	Name() string

	// Fetch returns up to limit candidate items matching the given tags and
	// categories. Implementations should honor ctx cancellation.
	Fetch(ctx context.Context, tags []string, categories []model.Category, limit int) ([]model.CandidateItem, error)
}

// ProgressFunc is invoked after each adapter finishes, successfully or not.
// done counts completed adapters out of total.
type ProgressFunc func(adapter string, fetched int, done int, total int)

// Fetcher fans a discovery request out to all registered adapters.
type Fetcher struct {
	adapters []Adapter
	timeout  time.Duration
	logger   logger.Logger
}

// New creates a Fetcher with configuration options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: defaultAdapterTimeout,
		logger:  logger.Get().Named("sources"),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Adapters returns the names of the registered adapters in registration order.
func (f *Fetcher) Adapters() []string {
	names := make([]string, len(f.adapters))
	for i, a := range f.adapters {
		names[i] = a.Name()
	}
	return names
}

// FetchAll queries every adapter concurrently and merges their results in
// registration order. Adapter failures and panics are logged and counted but
// never abort the run. The returned error is non-nil only when no adapters
// are registered or ctx is done.
func (f *Fetcher) FetchAll(ctx context.Context, tags []string, categories []model.Category, limit int, onProgress ProgressFunc) ([]model.CandidateItem, error) {
	if len(f.adapters) == 0 {
		return nil, ErrNoAdapters
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := len(f.adapters)
	results := make([][]model.CandidateItem, total)

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, adapter := range f.adapters {
		wg.Add(1)
		go func(slot int, a Adapter) {
			defer wg.Done()

			items := f.fetchOne(ctx, a, tags, categories, limit)
			results[slot] = items

			// Reporting under the lock keeps done counts in order.
			mu.Lock()
			done++
			if onProgress != nil {
				onProgress(a.Name(), len(items), done, total)
			}
			mu.Unlock()
		}(i, adapter)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Merge in registration order so repeated runs are deterministic.
	var merged []model.CandidateItem
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, nil
}

// fetchOne runs a single adapter with a bounded timeout and panic isolation.
func (f *Fetcher) fetchOne(ctx context.Context, a Adapter, tags []string, categories []model.Category, limit int) (items []model.CandidateItem) {
	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordAdapterFailure(a.Name())
			f.logger.Error(ctx, "adapter panicked",
				logger.String("adapter", a.Name()),
				logger.Any("panic", r),
			)
			items = nil
		}
	}()

	start := time.Now()
	fetched, err := a.Fetch(fetchCtx, tags, categories, limit)
	if err != nil {
		metrics.RecordAdapterFailure(a.Name())
		f.logger.Warn(ctx, "adapter fetch failed",
			logger.String("adapter", a.Name()),
			logger.Duration("took", time.Since(start)),
			logger.Error(err),
		)
		return nil
	}

	metrics.RecordItemsFetched(a.Name(), len(fetched))

	// Every item needs a stable identity and a source attribution before it
	// enters the pipeline.
	for i := range fetched {
		if fetched[i].ID == "" {
			fetched[i].ID = uuid.NewString()
		}
		if fetched[i].Source == "" {
			fetched[i].Source = a.Name()
		}
	}
	return fetched
}
