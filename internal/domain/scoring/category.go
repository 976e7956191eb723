package scoring

import (
	"context"
	"fmt"

	"github.com/okian/scout/internal/domain/model"
)

// Category affinity scores.
const (
	exactCategoryScore     = 80.0
	relatedCategoryScore   = 60.0
	unrelatedCategoryScore = 40.0
)

// CategoryScorer measures how well an item's category matches the
// requested ones, using the same weighted-preference-table pattern as
// relevance: exact matches are scaled by a per-category preference
// multiplier, adjacent categories earn a reduced flat score.
type CategoryScorer struct {
	preferences map[model.Category]float64
	related     map[model.Category][]model.Category
}

// CategoryOption applies a configuration option to the CategoryScorer.
type CategoryOption func(*CategoryScorer)

// WithCategoryPreferences replaces the preference multiplier table.
func WithCategoryPreferences(prefs map[model.Category]float64) CategoryOption {
	return func(s *CategoryScorer) {
		s.preferences = make(map[model.Category]float64, len(prefs))
		for cat, mult := range prefs {
			if mult > 0 {
				s.preferences[cat] = mult
			}
		}
	}
}

// WithRelatedCategories replaces the category adjacency table.
func WithRelatedCategories(related map[model.Category][]model.Category) CategoryOption {
	return func(s *CategoryScorer) {
		s.related = make(map[model.Category][]model.Category, len(related))
		for cat, rel := range related {
			s.related[cat] = append([]model.Category(nil), rel...)
		}
	}
}

// NewCategoryScorer creates a category scorer with the default tables.
func NewCategoryScorer(opts ...CategoryOption) *CategoryScorer {
	s := &CategoryScorer{
		preferences: defaultCategoryPreferences(),
		related:     defaultRelatedCategories(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the category affinity. No requested categories, or an item
// without a category, yields the neutral default.
func (s *CategoryScorer) Score(ctx context.Context, item *model.CandidateItem, requested []model.Category) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("category scoring canceled: %w", err)
	}
	if len(requested) == 0 || item.Category == "" {
		return NeutralScore, nil
	}

	for _, want := range requested {
		if item.Category == want {
			mult, ok := s.preferences[item.Category]
			if !ok {
				mult = 1.0
			}
			return clamp(exactCategoryScore * mult), nil
		}
	}

	for _, rel := range s.related[item.Category] {
		for _, want := range requested {
			if rel == want {
				return relatedCategoryScore, nil
			}
		}
	}

	return unrelatedCategoryScore, nil
}
