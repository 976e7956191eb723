package scoring

import "github.com/okian/scout/internal/domain/model"

// Default scoring tables. Each is copied on construction so scorers own
// immutable configuration; callers can override any of them via options.

// defaultTagWeights maps known tags to their relevance weight. Tags absent
// from the table fall back to DefaultTagWeight.
func defaultTagWeights() map[string]float64 {
	return map[string]float64{
		"ai":                      1.0,
		"artificial intelligence": 1.0,
		"machine learning":        0.9,
		"technology":              0.8,
		"innovation":              0.7,
		"startup":                 0.8,
		"business":                0.6,
		"marketing":               0.7,
		"design":                  0.7,
		"photography":             0.8,
		"social media":            0.9,
		"trending":                1.0,
		"breaking":                1.0,
		"exclusive":               0.9,
	}
}

// defaultSemanticRelations lists terms that count as a partial match for a
// single-word tag that has no direct occurrence in the text.
func defaultSemanticRelations() map[string][]string {
	return map[string][]string{
		"ai":         {"artificial", "intelligence", "machine", "learning", "neural", "deep", "algorithm"},
		"technology": {"tech", "digital", "innovation", "software", "hardware", "computing"},
		"marketing":  {"advertising", "promotion", "brand", "campaign", "social media"},
		"design":     {"ui", "ux", "visual", "graphic", "interface", "user experience"},
		"photography": {"photo", "camera", "image", "picture", "visual", "shoot"},
		"business":   {"company", "startup", "entrepreneur", "revenue", "profit", "corporate"},
		"innovation": {"breakthrough", "revolutionary", "cutting-edge", "advanced", "novel"},
	}
}

// defaultCategoryPreferences multiplies the exact-match category score.
func defaultCategoryPreferences() map[model.Category]float64 {
	return map[model.Category]float64{
		model.CategoryAI:          1.2,
		model.CategoryTechnology:  1.1,
		model.CategoryDesign:      1.0,
		model.CategoryMarketing:   1.1,
		model.CategoryPhotography: 1.0,
		model.CategoryBusiness:    0.9,
		model.CategoryTools:       1.0,
		model.CategoryResources:   0.8,
	}
}

// defaultRelatedCategories grants a reduced score when the item's category
// is adjacent to a requested one.
func defaultRelatedCategories() map[model.Category][]model.Category {
	return map[model.Category][]model.Category{
		model.CategoryAI:          {model.CategoryTechnology},
		model.CategoryTechnology:  {model.CategoryAI, model.CategoryTools},
		model.CategoryMarketing:   {model.CategoryBusiness},
		model.CategoryDesign:      {model.CategoryTools, model.CategoryPhotography},
		model.CategoryPhotography: {model.CategoryDesign, model.CategoryTools},
	}
}

// defaultTrustedSources is matched case-insensitively as a substring of the
// item's publisher name.
func defaultTrustedSources() []string {
	return []string{
		"reuters", "bbc", "cnn", "techcrunch", "wired", "the verge",
		"harvard business review", "mit technology review",
	}
}
