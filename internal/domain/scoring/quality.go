package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// Quality adjustment constants. Each adjustment is independent and
// order-insensitive; the final score is clamped to [0,100].
const (
	credibilityFactor = 0.3
	engagementFactor  = 0.2

	summaryBonus   = 10.0
	keyPointsBonus = 5.0
	contentBonus   = 10.0
	imageBonus     = 5.0
	trustedBonus   = 15.0

	minSummaryLength = 100
	minContentLength = 500
)

// QualityScorer derives a 0-100 content-quality score from structural and
// source signals on the item itself; it ignores the requested tags.
type QualityScorer struct {
	trustedSources []string
}

// QualityOption applies a configuration option to the QualityScorer.
type QualityOption func(*QualityScorer)

// WithTrustedSources replaces the trusted-publisher list.
func WithTrustedSources(sources []string) QualityOption {
	return func(s *QualityScorer) {
		s.trustedSources = make([]string, 0, len(sources))
		for _, src := range sources {
			if trimmed := strings.ToLower(strings.TrimSpace(src)); trimmed != "" {
				s.trustedSources = append(s.trustedSources, trimmed)
			}
		}
	}
}

// NewQualityScorer creates a quality scorer with the default trusted list.
func NewQualityScorer(opts ...QualityOption) *QualityScorer {
	s := &QualityScorer{
		trustedSources: defaultTrustedSources(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score starts from the neutral base and applies signed adjustments for
// credibility, engagement, completeness, imagery, and source trust.
func (s *QualityScorer) Score(ctx context.Context, item *model.CandidateItem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("quality scoring canceled: %w", err)
	}

	score := NeutralScore

	if item.CredibilityScore != nil {
		score += (*item.CredibilityScore - NeutralScore) * credibilityFactor
	}
	if item.EngagementScore != nil {
		score += (*item.EngagementScore - NeutralScore) * engagementFactor
	}
	if len(item.Summary) > minSummaryLength {
		score += summaryBonus
	}
	if len(item.KeyPoints) > 0 {
		score += keyPointsBonus
	}
	if len(item.Content) > minContentLength {
		score += contentBonus
	}
	if item.ImageURL != "" {
		score += imageBonus
	}
	if s.isTrusted(item.Source) {
		score += trustedBonus
	}

	// Adjustments are signed; clamp both ends.
	return clamp(score), nil
}

func (s *QualityScorer) isTrusted(source string) bool {
	if source == "" {
		return false
	}
	lower := strings.ToLower(source)
	for _, trusted := range s.trustedSources {
		if strings.Contains(lower, trusted) {
			return true
		}
	}
	return false
}
