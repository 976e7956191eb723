package scoring_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestRelevanceScorer(t *testing.T) {
	Convey("Given a relevance scorer with default tables", t, func() {
		scorer := scoring.NewRelevanceScorer()
		ctx := context.Background()

		Convey("When no tags are requested", func() {
			item := &model.CandidateItem{Title: "Anything at all"}
			score, err := scorer.Score(ctx, item, nil)

			Convey("Then the neutral default is returned", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50.0)
			})
		})

		Convey("When every tag matches exactly", func() {
			item := &model.CandidateItem{
				Title:       "AI startup news",
				Description: "an ai startup story",
			}
			score, err := scorer.Score(ctx, item, []string{"ai", "startup"})

			Convey("Then the full weight is credited", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 100.0)
			})
		})

		Convey("When a multi-word tag matches only partially", func() {
			// "machine" appears, "learning" does not: 1/2 words = 50% < 60%,
			// so no credit at all.
			item := &model.CandidateItem{Title: "a machine for the factory floor"}
			score, err := scorer.Score(ctx, item, []string{"machine learning"})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 0.0)

			// Both words present but not adjacent: 0.8 of the weight.
			item2 := &model.CandidateItem{Title: "machine vision and deep learning systems"}
			score2, err := scorer.Score(ctx, item2, []string{"machine learning"})
			So(err, ShouldBeNil)
			So(score2, ShouldEqual, 80.0)
		})

		Convey("When a single-word tag matches only semantically", func() {
			// "ai" is absent but "neural" is a related term.
			item := &model.CandidateItem{Title: "neural network breakthrough"}
			score, err := scorer.Score(ctx, item, []string{"ai"})

			Convey("Then 60% of the weight is credited", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 60.0)
			})
		})

		Convey("When an unrecognized tag misses entirely", func() {
			item := &model.CandidateItem{Title: "ai everywhere"}
			score, err := scorer.Score(ctx, item, []string{"ai", "gardening"})

			Convey("Then the miss still dilutes the ratio", func() {
				So(err, ShouldBeNil)
				// credited 1.0 of total 1.5 weight.
				So(score, ShouldAlmostEqual, 100.0/1.5, 0.0001)
			})
		})

		Convey("When item tags and hashtags carry the match", func() {
			item := &model.CandidateItem{
				Title:    "untitled",
				Tags:     []string{"Photography"},
				Hashtags: []string{"#design"},
			}
			score, err := scorer.Score(ctx, item, []string{"photography", "design"})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 100.0)
		})

		Convey("When the context is canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := scorer.Score(canceled, &model.CandidateItem{}, []string{"ai"})

			Convey("Then scoring fails with the context error", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("Score stays within bounds for adversarial weights", func() {
			hot := scoring.NewRelevanceScorer(
				scoring.WithTagWeights(map[string]float64{"ai": 1e9}),
				scoring.WithDefaultTagWeight(1e-9),
			)
			item := &model.CandidateItem{Title: "ai ai ai"}
			score, err := hot.Score(ctx, item, []string{"ai", "nothing"})
			So(err, ShouldBeNil)
			So(score, ShouldBeLessThanOrEqualTo, 100.0)
			So(score, ShouldBeGreaterThanOrEqualTo, 0.0)
		})
	})
}

func TestQualityScorer(t *testing.T) {
	Convey("Given a quality scorer with default trusted sources", t, func() {
		scorer := scoring.NewQualityScorer()
		ctx := context.Background()

		Convey("When the item carries no signals", func() {
			score, err := scorer.Score(ctx, &model.CandidateItem{Title: "bare"})

			Convey("Then the base score stands", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50.0)
			})
		})

		Convey("When every positive signal is present", func() {
			item := &model.CandidateItem{
				Title:            "full",
				Source:           "TechCrunch Europe",
				CredibilityScore: floatPtr(100),
				EngagementScore:  floatPtr(100),
				Summary:          strings.Repeat("s", 150),
				KeyPoints:        []string{"point"},
				Content:          strings.Repeat("c", 600),
				ImageURL:         "https://example.com/img.jpg",
			}
			score, err := scorer.Score(ctx, item)

			Convey("Then the score is high but clamped to 100", func() {
				So(err, ShouldBeNil)
				// 50 + 15 + 10 + 10 + 10 + 5 + 5 = 105 -> clamped.
				So(score, ShouldEqual, 100.0)
			})
		})

		Convey("When credibility and engagement are adversarially low", func() {
			item := &model.CandidateItem{
				Title:            "junk",
				CredibilityScore: floatPtr(-1e6),
				EngagementScore:  floatPtr(-1e6),
			}
			score, err := scorer.Score(ctx, item)

			Convey("Then the floor is enforced", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0.0)
			})
		})

		Convey("When credibility is midling", func() {
			item := &model.CandidateItem{
				Title:            "mid",
				CredibilityScore: floatPtr(80),
			}
			score, err := scorer.Score(ctx, item)
			So(err, ShouldBeNil)
			// 50 + (80-50)*0.3 = 59.
			So(score, ShouldEqual, 59.0)
		})

		Convey("When the source matches trusted list case-insensitively", func() {
			item := &model.CandidateItem{Title: "t", Source: "WIRED Magazine"}
			score, err := scorer.Score(ctx, item)
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 65.0)
		})
	})
}

func TestFreshnessScorer(t *testing.T) {
	Convey("Given a freshness scorer and a fixed now", t, func() {
		scorer := scoring.NewFreshnessScorer()
		ctx := context.Background()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		ageScore := func(age time.Duration) float64 {
			item := &model.CandidateItem{PublishedAt: timePtr(now.Add(-age))}
			score, err := scorer.Score(ctx, item, now)
			So(err, ShouldBeNil)
			return score
		}

		Convey("Then each age band maps to its step", func() {
			So(ageScore(1*time.Hour), ShouldEqual, 100.0)
			So(ageScore(12*time.Hour), ShouldEqual, 80.0)
			So(ageScore(48*time.Hour), ShouldEqual, 60.0)
			So(ageScore(100*time.Hour), ShouldEqual, 40.0)
			So(ageScore(400*time.Hour), ShouldEqual, 20.0)
		})

		Convey("When the publication time is missing", func() {
			score, err := scorer.Score(ctx, &model.CandidateItem{}, now)

			Convey("Then the neutral default is returned", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50.0)
			})
		})

		Convey("The linear boost decays over 24 hours", func() {
			fresh := &model.CandidateItem{PublishedAt: timePtr(now)}
			So(scorer.Boost(fresh, now), ShouldEqual, 10.0)

			halfway := &model.CandidateItem{PublishedAt: timePtr(now.Add(-12 * time.Hour))}
			So(scorer.Boost(halfway, now), ShouldEqual, 5.0)

			old := &model.CandidateItem{PublishedAt: timePtr(now.Add(-48 * time.Hour))}
			So(scorer.Boost(old, now), ShouldEqual, 0.0)

			undated := &model.CandidateItem{}
			So(scorer.Boost(undated, now), ShouldEqual, 0.0)
		})
	})
}

func TestCategoryScorer(t *testing.T) {
	Convey("Given a category scorer with default tables", t, func() {
		scorer := scoring.NewCategoryScorer()
		ctx := context.Background()

		Convey("When no categories are requested", func() {
			item := &model.CandidateItem{Category: model.CategoryAI}
			score, err := scorer.Score(ctx, item, nil)
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 50.0)
		})

		Convey("When the item has no category", func() {
			score, err := scorer.Score(ctx, &model.CandidateItem{}, []model.Category{model.CategoryAI})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 50.0)
		})

		Convey("When the category matches exactly", func() {
			item := &model.CandidateItem{Category: model.CategoryAI}
			score, err := scorer.Score(ctx, item, []model.Category{model.CategoryAI})

			Convey("Then the preference multiplier applies", func() {
				So(err, ShouldBeNil)
				// 80 * 1.2 for the ai preference.
				So(score, ShouldEqual, 96.0)
			})
		})

		Convey("When only a related category is requested", func() {
			item := &model.CandidateItem{Category: model.CategoryDesign}
			score, err := scorer.Score(ctx, item, []model.Category{model.CategoryTools})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 60.0)
		})

		Convey("When nothing matches at all", func() {
			item := &model.CandidateItem{Category: model.CategoryBusiness}
			score, err := scorer.Score(ctx, item, []model.Category{model.CategoryPhotography})
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 40.0)
		})
	})
}
