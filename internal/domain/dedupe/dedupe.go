// Package dedupe removes near-duplicate candidate items by title similarity.
package dedupe

import (
	"context"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// DefaultThreshold is the token-overlap similarity above which two titles
// are considered the same story.
const DefaultThreshold = 0.70

// Deduper collapses a batch of candidate items into first-occurrence
// survivors.
type Deduper interface {
	// Dedupe returns the input with near-duplicates removed. Order among
	// survivors matches the input order; the first occurrence wins.
	Dedupe(ctx context.Context, items []model.CandidateItem) []model.CandidateItem
}

// tokenSet is a lower-cased set of whitespace-separated title tokens.
type tokenSet map[string]struct{}

func tokenize(title string) tokenSet {
	set := tokenSet{}
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		set[tok] = struct{}{}
	}
	return set
}

// similarity computes |a ∩ b| / max(|a|, |b|). Two empty sets are defined
// as identical (1.0) so that empty-title spam still collapses; an empty
// set against a non-empty one scores 0.
func similarity(a, b tokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	overlap := 0
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for tok := range small {
		if _, ok := big[tok]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(larger)
}

// titleDeduper implements Deduper with pairwise title-token comparison.
// Intentionally O(n^2): discovery batches are tens of items.
type titleDeduper struct {
	threshold float64
}

// New creates a title deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &titleDeduper{
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dedupe walks items in order, keeping an item only when its title token
// set is not too similar to any previously kept one. Dropped items do not
// contribute their tokens to the seen set, so a chain of mutual
// near-duplicates all collapses onto the first.
func (d *titleDeduper) Dedupe(ctx context.Context, items []model.CandidateItem) []model.CandidateItem {
	survivors := make([]model.CandidateItem, 0, len(items))
	seen := make([]tokenSet, 0, len(items))

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		tokens := tokenize(item.Title)
		duplicate := false
		for _, prev := range seen {
			if similarity(tokens, prev) > d.threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		survivors = append(survivors, item)
		seen = append(seen, tokens)
	}
	return survivors
}
