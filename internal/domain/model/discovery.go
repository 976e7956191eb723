package model

// DiscoveryRequest is the boundary input for one discovery run.
type DiscoveryRequest struct {
	// Tags drive relevance scoring; at least one is required.
	Tags []string `json:"tags"`

	// Categories optionally bias ranking toward preferred verticals.
	Categories []Category `json:"categories,omitempty"`

	// MaxArticles caps the final result. Zero means the default of 20.
	MaxArticles int `json:"max_articles,omitempty"`

	// Platforms, when non-empty, asks the pipeline to repackage the
	// ranked articles into posts for the named platforms.
	Platforms []string `json:"platforms,omitempty"`
}

// DefaultMaxArticles is applied when a request leaves MaxArticles unset.
const DefaultMaxArticles = 20

// Normalized returns a copy of the request with defaults applied.
func (r DiscoveryRequest) Normalized() DiscoveryRequest {
	if r.MaxArticles <= 0 {
		r.MaxArticles = DefaultMaxArticles
	}
	return r
}

// DiscoveryResult is the boundary output of one discovery run. Degraded
// upstream sources surface as lower counts, never as errors.
type DiscoveryResult struct {
	Articles []ScoredItem `json:"articles"`

	// TotalFound counts raw items across all adapters before dedup.
	TotalFound int `json:"total_found"`

	// UniqueFound counts survivors of near-duplicate removal.
	UniqueFound int `json:"unique_found"`

	// FinalCount is len(Articles) after ranking and truncation.
	FinalCount int `json:"final_count"`

	// Posts holds platform renderings when the request asked for them,
	// keyed by item ID in ranked order.
	Posts map[string][]SocialPost `json:"posts,omitempty"`
}

// ScoredItem pairs an item with its ranking outcome. Degraded records an
// observable per-item scoring failure: the item was kept with a neutral
// score instead of being silently dropped.
type ScoredItem struct {
	Item     CandidateItem  `json:"item"`
	Score    float64        `json:"score"`
	Parts    ScoreBreakdown `json:"parts"`
	Degraded bool           `json:"degraded,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// ScoreBreakdown exposes the individual signals that produced the final
// score, for observability and testing.
type ScoreBreakdown struct {
	Relevance float64 `json:"relevance"`
	Category  float64 `json:"category"`
	Quality   float64 `json:"quality"`
	Freshness float64 `json:"freshness"`
}
