package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/scout/internal/domain/model"
)

// Freshness step thresholds in hours and their scores.
const (
	veryFreshHours = 6
	freshHours     = 24
	recentHours    = 72
	weekHours      = 168

	veryFreshScore = 100.0
	freshScore     = 80.0
	recentScore    = 60.0
	agingScore     = 40.0
	staleScore     = 20.0

	// maxLinearBoost caps the simple-strategy recency boost.
	maxLinearBoost = 10.0
)

// FreshnessScorer maps publication age to a 0-100 time-decay score.
// It is pure given (item, now); items without a publication timestamp get
// the neutral default, never an assumed "now".
type FreshnessScorer struct{}

// NewFreshnessScorer creates a freshness scorer.
func NewFreshnessScorer() *FreshnessScorer {
	return &FreshnessScorer{}
}

// Score applies the step function over hours since publication.
func (s *FreshnessScorer) Score(ctx context.Context, item *model.CandidateItem, now time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("freshness scoring canceled: %w", err)
	}

	hours, known := item.AgeHours(now)
	if !known {
		return NeutralScore, nil
	}

	switch {
	case hours < veryFreshHours:
		return veryFreshScore, nil
	case hours < freshHours:
		return freshScore, nil
	case hours < recentHours:
		return recentScore, nil
	case hours < weekHours:
		return agingScore, nil
	default:
		return staleScore, nil
	}
}

// Boost returns the linear recency bonus used by the simple ranking
// strategy: up to 10 points, decaying to zero over 24 hours. Items with an
// unknown age get no boost.
func (s *FreshnessScorer) Boost(item *model.CandidateItem, now time.Time) float64 {
	hours, known := item.AgeHours(now)
	if !known {
		return 0
	}
	boost := (freshHours - hours) / freshHours * maxLinearBoost
	if boost < 0 {
		return 0
	}
	return boost
}
