// Package scoring computes the individual 0-100 signals combined by the
// ranking engine: tag relevance, category affinity, content quality, and
// freshness. Every scorer clamps its output to [0,100] and returns the
// neutral default when its inputs are absent.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// Scoring bounds and fallbacks shared by all scorers.
const (
	// NeutralScore is returned when a scorer has nothing to go on, and is
	// the documented fallback for degraded per-item scoring.
	NeutralScore = 50.0

	maxScore = 100.0
	minScore = 0.0

	// DefaultTagWeight applies to tags missing from the weight table.
	// Unrecognized tags still count toward the total weight.
	DefaultTagWeight = 0.5

	// partialWordRatio is the fraction of a multi-word tag's words that
	// must appear individually for a partial match.
	partialWordRatio = 0.6

	partialMatchCredit  = 0.8
	semanticMatchCredit = 0.6
)

func clamp(v float64) float64 {
	if v > maxScore {
		return maxScore
	}
	if v < minScore {
		return minScore
	}
	return v
}

// RelevanceScorer measures how well an item matches the requested tags.
type RelevanceScorer struct {
	tagWeights    map[string]float64
	defaultWeight float64
	related       map[string][]string
}

// RelevanceOption applies a configuration option to the RelevanceScorer.
type RelevanceOption func(*RelevanceScorer)

// WithTagWeights replaces the tag weight table. Non-positive weights are
// dropped.
func WithTagWeights(weights map[string]float64) RelevanceOption {
	return func(s *RelevanceScorer) {
		s.tagWeights = make(map[string]float64, len(weights))
		for tag, w := range weights {
			if w > 0 {
				s.tagWeights[strings.ToLower(tag)] = w
			}
		}
	}
}

// WithDefaultTagWeight sets the weight for tags missing from the table.
func WithDefaultTagWeight(w float64) RelevanceOption {
	return func(s *RelevanceScorer) {
		if w > 0 {
			s.defaultWeight = w
		}
	}
}

// WithSemanticRelations replaces the related-terms table used for
// single-word partial matching.
func WithSemanticRelations(relations map[string][]string) RelevanceOption {
	return func(s *RelevanceScorer) {
		s.related = make(map[string][]string, len(relations))
		for tag, terms := range relations {
			s.related[strings.ToLower(tag)] = append([]string(nil), terms...)
		}
	}
}

// NewRelevanceScorer creates a relevance scorer with the default tables.
func NewRelevanceScorer(opts ...RelevanceOption) *RelevanceScorer {
	s := &RelevanceScorer{
		tagWeights:    defaultTagWeights(),
		defaultWeight: DefaultTagWeight,
		related:       defaultSemanticRelations(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// blob flattens the searchable text of an item into one lower-cased string.
func blob(item *model.CandidateItem) string {
	parts := []string{item.Title, item.Description, item.Summary}
	parts = append(parts, item.Tags...)
	parts = append(parts, item.Hashtags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Score returns a 0-100 relevance for the item against the requested tags.
// An empty tag list yields the neutral default rather than an error.
func (s *RelevanceScorer) Score(ctx context.Context, item *model.CandidateItem, tags []string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("relevance scoring canceled: %w", err)
	}
	if len(tags) == 0 {
		return NeutralScore, nil
	}

	text := blob(item)
	var credited, total float64

	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		weight, ok := s.tagWeights[tagLower]
		if !ok {
			weight = s.defaultWeight
		}
		total += weight

		// Exact substring match earns the full weight.
		if strings.Contains(text, tagLower) {
			credited += weight
			continue
		}

		words := strings.Fields(tagLower)
		if len(words) > 1 {
			// Multi-word tag: most of its words present individually
			// still counts, at a discount.
			matches := 0
			for _, w := range words {
				if strings.Contains(text, w) {
					matches++
				}
			}
			if float64(matches) >= float64(len(words))*partialWordRatio {
				credited += weight * partialMatchCredit
			}
			continue
		}

		// Single word: fall back to the semantic relation table.
		for _, term := range s.related[tagLower] {
			if strings.Contains(text, term) {
				credited += weight * semanticMatchCredit
				break
			}
		}
	}

	if total == 0 {
		return NeutralScore, nil
	}
	return clamp(credited / total * maxScore), nil
}
