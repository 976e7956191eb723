// Package ranking combines the individual scoring signals into a final
// ranked list. Two weighting strategies coexist on purpose: the discovery
// search path uses the simple relevance-plus-recency formula, while the
// tag-filter path uses the four-signal weighted combine with a relevance
// floor. They are deliberately not unified.
package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Strategy selects how per-item signals are combined.
type Strategy string

// Available strategies.
const (
	// StrategySimple scores relevance plus a linear freshness boost of up
	// to 10 points over 24 hours. Used by the search path, which truncates
	// but never floors.
	StrategySimple Strategy = "simple"

	// StrategyWeighted combines relevance, category affinity, quality and
	// freshness as 0.4/0.2/0.2/0.2. Used by the tag-filter path together
	// with a floor of 30.
	StrategyWeighted Strategy = "weighted"
)

// Weighted-combine coefficients.
const (
	relevanceWeight = 0.4
	categoryWeight  = 0.2
	qualityWeight   = 0.2
	freshnessWeight = 0.2

	// FilterFloor is the relevance floor the tag-filter path applies.
	FilterFloor = 30.0

	// NoFloor disables floor filtering.
	NoFloor = 0.0

	maxScore = 100.0
)

// RelevanceScorer abstracts the tag-relevance signal.
type RelevanceScorer interface {
	Score(ctx context.Context, item *model.CandidateItem, tags []string) (float64, error)
}

// CategoryScorer abstracts the category-affinity signal.
type CategoryScorer interface {
	Score(ctx context.Context, item *model.CandidateItem, requested []model.Category) (float64, error)
}

// QualityScorer abstracts the content-quality signal.
type QualityScorer interface {
	Score(ctx context.Context, item *model.CandidateItem) (float64, error)
}

// FreshnessScorer abstracts the time-decay signal and the simple-strategy
// linear boost.
type FreshnessScorer interface {
	Score(ctx context.Context, item *model.CandidateItem, now time.Time) (float64, error)
	Boost(item *model.CandidateItem, now time.Time) float64
}

// Params controls one ranking run.
type Params struct {
	Tags       []string
	Categories []model.Category
	Strategy   Strategy

	// Floor drops items scoring below it. Zero means no floor; items are
	// kept regardless of score.
	Floor float64

	// Now anchors freshness computation; the zero value means time.Now().
	Now time.Time
}

// Engine ranks candidate items.
type Engine struct {
	relevance RelevanceScorer
	category  CategoryScorer
	quality   QualityScorer
	freshness FreshnessScorer
	log       logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRelevanceScorer overrides the relevance scorer.
func WithRelevanceScorer(s RelevanceScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.relevance = s
		}
	}
}

// WithCategoryScorer overrides the category scorer.
func WithCategoryScorer(s CategoryScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.category = s
		}
	}
}

// WithQualityScorer overrides the quality scorer.
func WithQualityScorer(s QualityScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.quality = s
		}
	}
}

// WithFreshnessScorer overrides the freshness scorer.
func WithFreshnessScorer(s FreshnessScorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.freshness = s
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs a ranking engine with default scorers.
func New(opts ...Option) *Engine {
	e := &Engine{
		relevance: scoring.NewRelevanceScorer(),
		category:  scoring.NewCategoryScorer(),
		quality:   scoring.NewQualityScorer(),
		freshness: scoring.NewFreshnessScorer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank scores every item, sorts descending, and applies the optional
// floor. The sort is stable: ties keep arrival order, so a fixed input
// always yields an identical output order.
//
// A per-item scoring failure never aborts the batch: the item is kept
// with the neutral default score and the failure recorded on the
// ScoredItem, so callers always see a 1:1 deliverable count before
// flooring.
func (e *Engine) Rank(ctx context.Context, items []model.CandidateItem, p Params) []model.ScoredItem {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	scored := make([]model.ScoredItem, 0, len(items))
	for i := range items {
		scored = append(scored, e.scoreOne(ctx, items[i], p, now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if p.Floor <= NoFloor {
		return scored
	}
	kept := scored[:0]
	for _, s := range scored {
		if s.Score >= p.Floor {
			kept = append(kept, s)
		}
	}
	return kept
}

func (e *Engine) scoreOne(ctx context.Context, item model.CandidateItem, p Params, now time.Time) model.ScoredItem {
	parts, err := e.signals(ctx, &item, p, now)
	if err != nil {
		if e.log != nil {
			e.log.Warn(ctx, "item scoring degraded to neutral",
				logger.String("item", item.ID),
				logger.Error(err),
			)
		}
		metrics.RecordScoringDegraded()
		final := scoring.NeutralScore
		item.RelevanceScore = &final
		return model.ScoredItem{
			Item:     item,
			Score:    final,
			Degraded: true,
			Reason:   err.Error(),
		}
	}

	var final float64
	switch p.Strategy {
	case StrategyWeighted:
		final = parts.Relevance*relevanceWeight +
			parts.Category*categoryWeight +
			parts.Quality*qualityWeight +
			parts.Freshness*freshnessWeight
	default:
		final = parts.Relevance + e.freshness.Boost(&item, now)
		if final > maxScore {
			final = maxScore
		}
	}

	item.RelevanceScore = &final
	return model.ScoredItem{
		Item:  item,
		Score: final,
		Parts: parts,
	}
}

func (e *Engine) signals(ctx context.Context, item *model.CandidateItem, p Params, now time.Time) (model.ScoreBreakdown, error) {
	var parts model.ScoreBreakdown
	var err error

	if parts.Relevance, err = e.relevance.Score(ctx, item, p.Tags); err != nil {
		return parts, err
	}
	if p.Strategy != StrategyWeighted {
		return parts, nil
	}
	if parts.Category, err = e.category.Score(ctx, item, p.Categories); err != nil {
		return parts, err
	}
	if parts.Quality, err = e.quality.Score(ctx, item); err != nil {
		return parts, err
	}
	if parts.Freshness, err = e.freshness.Score(ctx, item, now); err != nil {
		return parts, err
	}
	return parts, nil
}
