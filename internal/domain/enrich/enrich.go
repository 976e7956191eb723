// Package enrich derives secondary fields on candidate items before
// ranking and repackaging: key points, reading time, hashtags, sentiment,
// and the trending potential consumed by the social repackager. Full-text
// extraction and summarization are external collaborators; this package
// only works with text already on the item.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/okian/scout/internal/domain/model"
)

// Analyzer is the black-box sentiment collaborator. Implementations must
// return one of the three model.Sentiment values and never block for long.
type Analyzer interface {
	Analyze(ctx context.Context, text string) model.Sentiment
}

// NeutralAnalyzer is the default Analyzer; it classifies everything as
// neutral.
type NeutralAnalyzer struct{}

// Analyze implements Analyzer.
func (NeutralAnalyzer) Analyze(context.Context, string) model.Sentiment {
	return model.SentimentNeutral
}

// Key-point extraction constants.
const (
	minKeyPointLength = 20
	maxKeyPointLength = 200
	maxKeyPoints      = 5
	minSourceLength   = 50
)

// keyPointSignals marks sentences likely to carry a concrete fact.
var keyPointSignals = []string{
	"percent", "%", "million", "billion", "increase", "decrease",
	"announced", "launched", "released", "according to", "study shows",
}

// Reading time: average reading speed in words per minute.
const wordsPerMinute = 200

// Hashtag generation constants.
const (
	maxGeneratedHashtags = 10
	hashtagsPerKeyword   = 2
)

// hashtagKeywords maps content keywords to candidate hashtags.
var hashtagKeywords = map[string][]string{
	"ai":          {"#AI", "#ArtificialIntelligence", "#MachineLearning"},
	"technology":  {"#Tech", "#Technology", "#Innovation"},
	"business":    {"#Business", "#Startup", "#Entrepreneur"},
	"marketing":   {"#Marketing", "#DigitalMarketing", "#SocialMedia"},
	"design":      {"#Design", "#UX", "#UI"},
	"photography": {"#Photography", "#Photo", "#Digital"},
	"news":        {"#News", "#Breaking", "#Update"},
}

// hashtagKeywordOrder keeps generation deterministic.
var hashtagKeywordOrder = []string{
	"ai", "technology", "business", "marketing", "design", "photography", "news",
}

// Trending potential constants.
const (
	trendingBase          = 50.0
	veryRecentBonus       = 20.0
	recentBonus           = 10.0
	veryRecentHours       = 6.0
	recentHours           = 24.0
	engagementTrendFactor = 0.2
	credibilityFactor     = 0.1
	positiveBonus         = 5.0
	negativeBonus         = 10.0 // negative news trends harder
	keywordBonus          = 5.0
	maxTrending           = 100.0
)

// trendingKeywords boost titles that read like headlines about to spread.
var trendingKeywords = []string{
	"breaking", "exclusive", "announcement", "launch", "viral",
	"scandal", "controversy", "record", "first", "massive",
}

// Enricher populates derived fields on items in place.
type Enricher struct {
	analyzer Analyzer
}

// Option applies a configuration option to the Enricher.
type Option func(*Enricher)

// WithAnalyzer injects the sentiment collaborator.
func WithAnalyzer(a Analyzer) Option {
	return func(e *Enricher) {
		if a != nil {
			e.analyzer = a
		}
	}
}

// New creates an enricher; without options sentiment is always neutral.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		analyzer: NeutralAnalyzer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fills the derived fields of every item in place. Fields already
// populated by an adapter are preserved.
func (e *Enricher) Enrich(ctx context.Context, items []model.CandidateItem, now time.Time) error {
	for i := range items {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("enrichment canceled: %w", err)
		}
		e.enrichOne(ctx, &items[i], now)
	}
	return nil
}

func (e *Enricher) enrichOne(ctx context.Context, item *model.CandidateItem, now time.Time) {
	body := item.Content
	if body == "" {
		body = item.Description
	}

	if len(item.KeyPoints) == 0 {
		item.KeyPoints = ExtractKeyPoints(body)
	}
	if item.ReadingTime == 0 {
		item.ReadingTime = ReadingTime(body)
	}
	if len(item.Hashtags) == 0 {
		item.Hashtags = GenerateHashtags(item.Title, item.Summary, item.Tags)
	}
	if item.Sentiment == "" {
		text := item.Summary
		if text == "" {
			text = item.Description
		}
		item.Sentiment = e.analyzer.Analyze(ctx, text)
	}
	if item.TrendingPotential == nil {
		tp := TrendingPotential(item, item.Sentiment, now)
		item.TrendingPotential = &tp
	}
}

// ExtractKeyPoints picks up to five sentences that look like concrete
// facts: signal keyword present and a plausible sentence length.
func ExtractKeyPoints(content string) []string {
	if len(content) < minSourceLength {
		return nil
	}

	var points []string
	for _, sentence := range strings.Split(content, ". ") {
		if len(points) >= maxKeyPoints {
			break
		}
		lower := strings.ToLower(sentence)
		matched := false
		for _, signal := range keyPointSignals {
			if strings.Contains(lower, signal) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if len(sentence) <= minKeyPointLength || len(sentence) >= maxKeyPointLength {
			continue
		}
		points = append(points, strings.TrimSpace(strings.TrimSuffix(sentence, "."))+".")
	}
	return points
}

// ReadingTime estimates minutes to read at 200 words per minute, at
// least one.
func ReadingTime(content string) int {
	if content == "" {
		return 1
	}
	minutes := len(strings.Fields(content)) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// GenerateHashtags combines cleaned item tags with keyword-table matches
// against title and summary, capped at ten.
func GenerateHashtags(title, summary string, tags []string) []string {
	out := make([]string, 0, maxGeneratedHashtags)
	seen := make(map[string]struct{}, maxGeneratedHashtags)

	add := func(tag string) {
		if len(out) >= maxGeneratedHashtags || tag == "" {
			return
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}

	for _, tag := range tags {
		clean := strings.ReplaceAll(strings.ReplaceAll(tag, "#", ""), " ", "")
		if clean != "" {
			add("#" + capitalize(clean))
		}
	}

	text := strings.ToLower(title + " " + summary)
	for _, keyword := range hashtagKeywordOrder {
		if !strings.Contains(text, keyword) {
			continue
		}
		candidates := hashtagKeywords[keyword]
		for i, tag := range candidates {
			if i >= hashtagsPerKeyword {
				break
			}
			add(tag)
		}
	}
	return out
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TrendingPotential estimates 0-100 likelihood that an item spreads on
// social media. Computed once per item; the repackager treats it as an
// input.
func TrendingPotential(item *model.CandidateItem, sentiment model.Sentiment, now time.Time) float64 {
	score := trendingBase

	if hours, known := item.AgeHours(now); known {
		switch {
		case hours < veryRecentHours:
			score += veryRecentBonus
		case hours < recentHours:
			score += recentBonus
		}
	}
	if item.EngagementScore != nil {
		score += *item.EngagementScore * engagementTrendFactor
	}
	if item.CredibilityScore != nil {
		score += *item.CredibilityScore * credibilityFactor
	}

	switch sentiment {
	case model.SentimentPositive:
		score += positiveBonus
	case model.SentimentNegative:
		score += negativeBonus
	}

	titleLower := strings.ToLower(item.Title)
	for _, keyword := range trendingKeywords {
		if strings.Contains(titleLower, keyword) {
			score += keywordBonus
		}
	}

	if score > maxTrending {
		return maxTrending
	}
	if score < 0 {
		return 0
	}
	return score
}
