// Package social reshapes ranked items into platform-specific posts:
// styled body text, hashtag selection, length trimming, and an engagement
// prediction. Every call is pure given its inputs; the trending potential
// consumed by the prediction is computed once upstream during enrichment.
package social

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/scout/internal/domain/model"
)

// Style names a body-text generator.
type Style string

// Supported styles.
const (
	StyleConciseEngaging Style = "concise_engaging"
	StyleProfessional    Style = "professional"
	StyleVisualEngaging  Style = "visual_engaging"
	StyleConversational  Style = "conversational"
)

// PlatformConfig bounds a post for one platform.
type PlatformConfig struct {
	MaxChars     int
	HashtagLimit int
	Style        Style
}

// DefaultPlatforms returns the built-in platform table.
func DefaultPlatforms() map[string]PlatformConfig {
	return map[string]PlatformConfig{
		"twitter":   {MaxChars: 280, HashtagLimit: 2, Style: StyleConciseEngaging},
		"linkedin":  {MaxChars: 3000, HashtagLimit: 5, Style: StyleProfessional},
		"instagram": {MaxChars: 2200, HashtagLimit: 10, Style: StyleVisualEngaging},
		"facebook":  {MaxChars: 63206, HashtagLimit: 3, Style: StyleConversational},
	}
}

// Engagement prediction constants.
const (
	baseEngagement        = 50.0
	trendingFactor        = 0.3
	engagementFactor      = 0.2
	questionBonus         = 5.0
	emojiBonus            = 5.0
	recencyBonus          = 10.0
	recencyWindow         = 24.0
	maxEngagement         = 100.0
	defaultPlatformWeight = 1.0
)

// platformMultipliers scale the prediction per platform.
var platformMultipliers = map[string]float64{
	"twitter":   1.0,
	"linkedin":  0.8,
	"instagram": 1.2,
	"facebook":  0.9,
}

// engagementEmojis is the fixed set whose presence boosts prediction.
var engagementEmojis = []string{"🚀", "💡", "📸", "✨", "🔥"}

// trimBuffer keeps a little slack between trimmed content and the hard
// platform limit.
const trimBuffer = 10

// ErrUnknownPlatform reports a platform missing from the config table.
var ErrUnknownPlatform = fmt.Errorf("unknown platform")

// Repackager turns candidate items into social posts.
type Repackager struct {
	platforms map[string]PlatformConfig
	category  map[model.Category][]string
	generic   []string
}

// Option applies a configuration option to the Repackager.
type Option func(*Repackager)

// WithPlatforms replaces the platform config table.
func WithPlatforms(platforms map[string]PlatformConfig) Option {
	return func(r *Repackager) {
		r.platforms = make(map[string]PlatformConfig, len(platforms))
		for name, cfg := range platforms {
			r.platforms[name] = cfg
		}
	}
}

// WithCategoryHashtags replaces the category-keyed hashtag table.
func WithCategoryHashtags(table map[model.Category][]string) Option {
	return func(r *Repackager) {
		r.category = make(map[model.Category][]string, len(table))
		for cat, tags := range table {
			r.category[cat] = append([]string(nil), tags...)
		}
	}
}

// WithGenericHashtags replaces the generic fallback hashtag list.
func WithGenericHashtags(tags []string) Option {
	return func(r *Repackager) {
		r.generic = append([]string(nil), tags...)
	}
}

// New creates a repackager with the default tables.
func New(opts ...Option) *Repackager {
	r := &Repackager{
		platforms: DefaultPlatforms(),
		category:  defaultCategoryHashtags(),
		generic:   defaultGenericHashtags(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Platforms lists the configured platform names.
func (r *Repackager) Platforms() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	return names
}

// CreatePost renders one item for one platform. The returned post's
// assembled length (content, one space, hashtags) never exceeds the
// platform limit.
func (r *Repackager) CreatePost(ctx context.Context, item *model.CandidateItem, platform string, now time.Time) (model.SocialPost, error) {
	if err := ctx.Err(); err != nil {
		return model.SocialPost{}, fmt.Errorf("repackaging canceled: %w", err)
	}
	cfg, ok := r.platforms[platform]
	if !ok {
		return model.SocialPost{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	content := r.generateContent(item, cfg.Style)
	hashtags := r.selectHashtags(item, cfg.HashtagLimit)
	hashtagText := strings.Join(hashtags, " ")

	if assembledLength(content, hashtagText) > cfg.MaxChars {
		content = trimContent(content, cfg.MaxChars, len(hashtagText))
	}

	return model.SocialPost{
		Platform:             platform,
		Content:              content,
		Hashtags:             hashtags,
		ImageURL:             item.ImageURL,
		CharacterCount:       assembledLength(content, hashtagText),
		EngagementPrediction: predictEngagement(item, platform, content, now),
	}, nil
}

// Posts renders the item for every requested platform, skipping unknown
// platform names.
func (r *Repackager) Posts(ctx context.Context, item *model.CandidateItem, platforms []string, now time.Time) ([]model.SocialPost, error) {
	posts := make([]model.SocialPost, 0, len(platforms))
	for _, name := range platforms {
		post, err := r.CreatePost(ctx, item, name, now)
		if err != nil {
			if ctx.Err() != nil {
				return posts, err
			}
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func assembledLength(content, hashtagText string) int {
	if hashtagText == "" {
		return len(content)
	}
	return len(content) + 1 + len(hashtagText)
}

// trimContent shortens content so the assembled post fits maxChars,
// preferring complete sentences and falling back to a word-boundary cut
// with a trailing ellipsis. Hashtags are never trimmed.
func trimContent(content string, maxChars, hashtagChars int) string {
	budget := maxChars - hashtagChars - trimBuffer
	if budget <= 0 {
		return ""
	}
	if len(content) <= budget {
		return content
	}

	// Greedily append complete sentences while they fit.
	var kept strings.Builder
	for _, sentence := range strings.Split(content, ". ") {
		candidate := kept.String() + sentence + ". "
		if len(candidate) > budget {
			break
		}
		kept.Reset()
		kept.WriteString(candidate)
	}
	if kept.Len() > 0 {
		return strings.TrimSpace(kept.String())
	}

	// No full sentence fits: cut at a word boundary and mark the cut.
	const ellipsis = "..."
	words := strings.Fields(content)
	var out []string
	length := 0
	for _, w := range words {
		next := length + len(w)
		if length > 0 {
			next++ // joining space
		}
		if next > budget-len(ellipsis) {
			break
		}
		out = append(out, w)
		length = next
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, " ") + ellipsis
}

// predictEngagement estimates 0-100 engagement for the rendered post.
func predictEngagement(item *model.CandidateItem, platform, content string, now time.Time) float64 {
	score := baseEngagement

	if item.TrendingPotential != nil {
		score += *item.TrendingPotential * trendingFactor
	}
	if item.EngagementScore != nil {
		score += *item.EngagementScore * engagementFactor
	}

	mult, ok := platformMultipliers[platform]
	if !ok {
		mult = defaultPlatformWeight
	}
	score *= mult

	if strings.Contains(content, "?") {
		score += questionBonus
	}
	for _, emoji := range engagementEmojis {
		if strings.Contains(content, emoji) {
			score += emojiBonus
			break
		}
	}
	if hours, known := item.AgeHours(now); known && hours < recencyWindow {
		score += recencyBonus
	}

	if score > maxEngagement {
		return maxEngagement
	}
	if score < 0 {
		return 0
	}
	return score
}
