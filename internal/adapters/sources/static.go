package sources

import (
	"context"

	"github.com/okian/scout/internal/domain/model"
)

// StaticAdapter serves a fixed set of candidate items. It backs local
// development and tests, and doubles as the seed catalog when no external
// providers are configured.
type StaticAdapter struct {
	name  string
	items []model.CandidateItem
}

// NewStatic creates a StaticAdapter with the given name and catalog.
func NewStatic(name string, items []model.CandidateItem) *StaticAdapter {
	return &StaticAdapter{name: name, items: items}
}

// Name identifies the adapter.
func (s *StaticAdapter) Name() string { return s.name }

// Fetch returns up to limit catalog items. When categories are given, items
// carrying a different category are skipped; items without a category pass
// through so generic catalogs remain usable.
func (s *StaticAdapter) Fetch(ctx context.Context, _ []string, categories []model.Category, limit int) ([]model.CandidateItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []model.CandidateItem
	for _, item := range s.items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !categoryMatches(item.Category, categories) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func categoryMatches(category model.Category, wanted []model.Category) bool {
	if len(wanted) == 0 || category == "" {
		return true
	}
	for _, w := range wanted {
		if w == category {
			return true
		}
	}
	return false
}
