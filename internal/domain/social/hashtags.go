package social

import (
	"strings"
	"unicode"

	"github.com/okian/scout/internal/domain/model"
)

// defaultCategoryHashtags tops up posts whose items carry too few hashtags
// of their own.
func defaultCategoryHashtags() map[model.Category][]string {
	return map[model.Category][]string{
		model.CategoryAI:          {"#AI", "#ArtificialIntelligence", "#MachineLearning"},
		model.CategoryTechnology:  {"#Tech", "#Innovation", "#Digital"},
		model.CategoryBusiness:    {"#Business", "#Startup", "#Innovation"},
		model.CategoryMarketing:   {"#Marketing", "#SocialMedia", "#DigitalMarketing"},
		model.CategoryDesign:      {"#Design", "#UX", "#Creative"},
		model.CategoryPhotography: {"#Photography", "#Visual", "#Creative"},
	}
}

// defaultGenericHashtags is the last-resort fallback list.
func defaultGenericHashtags() []string {
	return []string{"#News", "#Update", "#TechNews", "#Innovation"}
}

// selectHashtags picks up to limit hashtags: the item's own first, then
// category table, then the generic list. Each tag is normalized to start
// with '#' and stripped of non-alphanumeric characters; tags reduced to a
// bare '#' are discarded.
func (r *Repackager) selectHashtags(item *model.CandidateItem, limit int) []string {
	if limit <= 0 {
		return nil
	}

	candidates := make([]string, 0, limit*2)
	if len(item.Hashtags) > 0 {
		take := limit
		if take > len(item.Hashtags) {
			take = len(item.Hashtags)
		}
		candidates = append(candidates, item.Hashtags[:take]...)
	}

	if len(candidates) < limit && item.Category != "" {
		candidates = append(candidates, r.category[item.Category]...)
	}
	if len(candidates) < limit {
		candidates = append(candidates, r.generic...)
	}

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, tag := range candidates {
		if len(out) >= limit {
			break
		}
		normalized := normalizeHashtag(tag)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// normalizeHashtag forces a leading '#' and strips everything that is not
// a letter or digit. Returns "" when nothing useful remains.
func normalizeHashtag(tag string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range strings.TrimPrefix(tag, "#") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() <= 1 {
		return ""
	}
	return b.String()
}
