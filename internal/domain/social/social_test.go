package social_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/social"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestCreatePost(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a repackager with default platform configs", t, func() {
		r := social.New()
		ctx := context.Background()

		Convey("When creating a twitter post for a trending item", func() {
			item := &model.CandidateItem{
				ID:                "a",
				Title:             "AI Startup Raises Funding",
				Summary:           "An AI startup closed a large round to expand research.",
				Category:          model.CategoryAI,
				Hashtags:          []string{"#AI"},
				TrendingPotential: floatPtr(85),
				PublishedAt:       timePtr(now.Add(-2 * time.Hour)),
			}
			post, err := r.CreatePost(ctx, item, "twitter", now)

			Convey("Then the post carries the concise style markers", func() {
				So(err, ShouldBeNil)
				So(post.Platform, ShouldEqual, "twitter")
				So(post.Content, ShouldStartWith, "🚀 ")
				So(post.Content, ShouldContainSubstring, "Read more:")
			})

			Convey("And hashtags are capped at the platform limit", func() {
				So(err, ShouldBeNil)
				So(len(post.Hashtags), ShouldBeLessThanOrEqualTo, 2)
				So(post.Hashtags[0], ShouldEqual, "#AI")
			})

			Convey("And the character count matches the assembled text", func() {
				So(err, ShouldBeNil)
				assembled := post.Content + " " + strings.Join(post.Hashtags, " ")
				So(post.CharacterCount, ShouldEqual, len(assembled))
				So(post.CharacterCount, ShouldBeLessThanOrEqualTo, 280)
			})
		})

		Convey("When the platform is unknown", func() {
			_, err := r.CreatePost(ctx, &model.CandidateItem{Title: "x"}, "myspace", now)

			Convey("Then a typed error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown platform")
			})
		})

		Convey("When the item has no hashtags but a category", func() {
			item := &model.CandidateItem{
				Title:    "Camera Review",
				Category: model.CategoryPhotography,
			}
			post, err := r.CreatePost(ctx, item, "linkedin", now)

			Convey("Then the category table tops up the hashtags", func() {
				So(err, ShouldBeNil)
				So(post.Hashtags, ShouldContain, "#Photography")
			})
		})

		Convey("When item hashtags need normalization", func() {
			item := &model.CandidateItem{
				Title:    "t",
				Hashtags: []string{"machine learning!", "#ok-tag", "@@@", "#AI"},
			}
			post, err := r.CreatePost(ctx, item, "instagram", now)

			Convey("Then tags are #-prefixed, stripped, and empties dropped", func() {
				So(err, ShouldBeNil)
				So(post.Hashtags, ShouldContain, "#machinelearning")
				So(post.Hashtags, ShouldContain, "#oktag")
				So(post.Hashtags, ShouldNotContain, "#")
				for _, tag := range post.Hashtags {
					So(tag, ShouldStartWith, "#")
				}
			})
		})
	})
}

func TestTrimCorrectness(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given an item whose body far exceeds the platform limit", t, func() {
		r := social.New(social.WithPlatforms(map[string]social.PlatformConfig{
			"short": {MaxChars: 280, HashtagLimit: 2, Style: social.StyleConversational},
		}))
		ctx := context.Background()

		longSummary := strings.Repeat("This sentence talks about one interesting development. ", 20)
		item := &model.CandidateItem{
			Title:    "Long Story",
			Summary:  longSummary,
			Hashtags: []string{"#Long", "#Story"},
		}

		Convey("When creating the post", func() {
			post, err := r.CreatePost(ctx, item, "short", now)

			Convey("Then the assembled length respects the limit", func() {
				So(err, ShouldBeNil)
				So(post.CharacterCount, ShouldBeLessThanOrEqualTo, 280)
			})

			Convey("And the trimmed text ends at a sentence boundary", func() {
				So(err, ShouldBeNil)
				So(strings.HasSuffix(post.Content, ".") || strings.HasSuffix(post.Content, "..."), ShouldBeTrue)
			})
		})
	})

	Convey("Given a body with no sentence boundary at all", t, func() {
		// One giant unbroken clause forces the word-boundary fallback.
		r := social.New(social.WithPlatforms(map[string]social.PlatformConfig{
			"tiny": {MaxChars: 60, HashtagLimit: 1, Style: social.StyleConversational},
		}))
		ctx := context.Background()

		item := &model.CandidateItem{
			Title:    strings.Repeat("word ", 40) + "end",
			Hashtags: []string{"#x"},
		}

		Convey("When creating the post", func() {
			post, err := r.CreatePost(ctx, item, "tiny", now)

			Convey("Then the fallback cut never splits a word", func() {
				So(err, ShouldBeNil)
				So(post.Content, ShouldEndWith, "...")
				So(post.CharacterCount, ShouldBeLessThanOrEqualTo, 60)
				body := strings.TrimSuffix(post.Content, "...")
				for _, w := range strings.Fields(body) {
					So(w == "word" || w == "Interesting" || w == "read:" || w == "end", ShouldBeTrue)
				}
			})
		})
	})
}

func TestPredictEngagement(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given items with differing engagement signals", t, func() {
		r := social.New()
		ctx := context.Background()

		Convey("When the item is fresh with high trending potential", func() {
			item := &model.CandidateItem{
				Title:             "Hot Topic",
				TrendingPotential: floatPtr(100),
				EngagementScore:   floatPtr(100),
				PublishedAt:       timePtr(now.Add(-1 * time.Hour)),
			}
			post, err := r.CreatePost(ctx, item, "instagram", now)

			Convey("Then the prediction is clamped at 100", func() {
				So(err, ShouldBeNil)
				So(post.EngagementPrediction, ShouldEqual, 100.0)
			})
		})

		Convey("When the item carries no signals and the style adds none", func() {
			item := &model.CandidateItem{Title: "Plain"}
			post, err := r.CreatePost(ctx, item, "twitter", now)

			Convey("Then the prediction stays near the base", func() {
				So(err, ShouldBeNil)
				So(post.EngagementPrediction, ShouldBeBetweenOrEqual, 0.0, 100.0)
				So(post.EngagementPrediction, ShouldEqual, 50.0)
			})
		})

		Convey("When posting to linkedin versus instagram", func() {
			item := &model.CandidateItem{Title: "Plain"}
			linkedin, err := r.CreatePost(ctx, item, "linkedin", now)
			So(err, ShouldBeNil)
			instagram, err := r.CreatePost(ctx, item, "instagram", now)
			So(err, ShouldBeNil)

			Convey("Then the platform multiplier separates them", func() {
				So(linkedin.EngagementPrediction, ShouldBeLessThan, instagram.EngagementPrediction)
			})
		})
	})
}

func TestPosts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a repackager and a mixed platform list", t, func() {
		r := social.New()
		ctx := context.Background()
		item := &model.CandidateItem{Title: "Multi"}

		Convey("When rendering for known and unknown platforms", func() {
			posts, err := r.Posts(ctx, item, []string{"twitter", "myspace", "linkedin"}, now)

			Convey("Then unknown platforms are skipped without error", func() {
				So(err, ShouldBeNil)
				So(posts, ShouldHaveLength, 2)
				So(posts[0].Platform, ShouldEqual, "twitter")
				So(posts[1].Platform, ShouldEqual, "linkedin")
			})
		})
	})
}
