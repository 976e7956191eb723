// Package model contains domain models passed between pipeline stages.
package model

import "time"

// Category classifies a candidate item into one of the supported
// content verticals. The zero value means "unclassified".
type Category string

// Supported content categories.
const (
	CategoryTechnology  Category = "technology"
	CategoryAI          Category = "ai"
	CategoryDesign      Category = "design"
	CategoryMarketing   Category = "marketing"
	CategoryPhotography Category = "photography"
	CategoryBusiness    Category = "business"
	CategoryTools       Category = "tools"
	CategoryResources   Category = "resources"
)

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTechnology, CategoryAI, CategoryDesign, CategoryMarketing,
		CategoryPhotography, CategoryBusiness, CategoryTools, CategoryResources:
		return true
	}
	return false
}

// Sentiment is the black-box classification of an item's tone.
type Sentiment string

// Sentiment values returned by the analyzer collaborator.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CandidateItem is a content item discovered from some source, pre-ranking.
// Source adapters produce these; the pipeline enriches and scores them.
//
// PublishedAt is a pointer because upstream feeds frequently omit it;
// scorers must branch on presence rather than assume "now".
type CandidateItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"image_url,omitempty"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Category    Category   `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`

	// Enrichment fields populated later in the pipeline. Credibility and
	// engagement are source-supplied or adapter-estimated, both 0-100.
	CredibilityScore *float64  `json:"credibility_score,omitempty"`
	EngagementScore  *float64  `json:"engagement_score,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	KeyPoints        []string  `json:"key_points,omitempty"`
	Hashtags         []string  `json:"hashtags,omitempty"`
	Sentiment        Sentiment `json:"sentiment,omitempty"`
	ReadingTime      int       `json:"reading_time,omitempty"`

	// TrendingPotential is computed once during enrichment and consumed
	// by the social repackager; it is never recomputed per platform.
	TrendingPotential *float64 `json:"trending_potential,omitempty"`

	// RelevanceScore is assigned exactly once by the ranking engine.
	// Re-ranking with a different tag set produces a new score, not an
	// incremental update. Nil until assigned.
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// HasPublishedAt reports whether the item carries a publication timestamp.
func (i *CandidateItem) HasPublishedAt() bool {
	return i.PublishedAt != nil && !i.PublishedAt.IsZero()
}

// AgeHours returns the item age in hours relative to now, and whether the
// age is known at all.
func (i *CandidateItem) AgeHours(now time.Time) (float64, bool) {
	if !i.HasPublishedAt() {
		return 0, false
	}
	return now.Sub(*i.PublishedAt).Hours(), true
}

// SocialPost is a platform-specific rendering of a ranked item. Posts are
// created once per repackaging call and never mutated afterwards; callers
// regenerate rather than patch.
type SocialPost struct {
	Platform             string   `json:"platform"`
	Content              string   `json:"content"`
	Hashtags             []string `json:"hashtags"`
	ImageURL             string   `json:"image_url,omitempty"`
	CharacterCount       int      `json:"character_count"`
	EngagementPrediction float64  `json:"engagement_prediction"`
}
