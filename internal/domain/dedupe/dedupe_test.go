package dedupe_test

import (
	"context"
	"testing"

	"github.com/okian/scout/internal/domain/dedupe"
	"github.com/okian/scout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func itemsWithTitles(titles ...string) []model.CandidateItem {
	items := make([]model.CandidateItem, len(titles))
	for i, t := range titles {
		items[i] = model.CandidateItem{ID: t, Title: t}
	}
	return items
}

func TestTitleDeduper(t *testing.T) {
	Convey("Given a title deduper with the default threshold", t, func() {
		d := dedupe.New()
		ctx := context.Background()

		Convey("When two titles share 6 of 7 tokens", func() {
			items := itemsWithTitles(
				"AI Startup Raises Major Funding Round",
				"AI Startup Raises Massive Funding Round",
			)
			out := d.Dedupe(ctx, items)

			Convey("Then they collapse onto the first occurrence", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Title, ShouldEqual, "AI Startup Raises Major Funding Round")
			})
		})

		Convey("When two titles are unrelated", func() {
			items := itemsWithTitles(
				"AI Startup Raises Funding",
				"Climate Policy Summit Begins",
			)
			out := d.Dedupe(ctx, items)

			Convey("Then both survive in input order", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].Title, ShouldEqual, "AI Startup Raises Funding")
				So(out[1].Title, ShouldEqual, "Climate Policy Summit Begins")
			})
		})

		Convey("When dedupe is applied twice", func() {
			items := itemsWithTitles(
				"AI Startup Raises Major Funding Round",
				"AI Startup Raises Massive Funding Round",
				"Climate Policy Summit Begins",
				"climate policy summit begins",
				"New Camera Sensor Announced",
			)
			once := d.Dedupe(ctx, items)
			twice := d.Dedupe(ctx, once)

			Convey("Then the result is idempotent", func() {
				So(twice, ShouldResemble, once)
			})
		})

		Convey("When titles are empty", func() {
			items := itemsWithTitles("", "", "Something Real")
			out := d.Dedupe(ctx, items)

			Convey("Then all but the first empty title are dropped", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].Title, ShouldEqual, "")
				So(out[1].Title, ShouldEqual, "Something Real")
			})
		})

		Convey("When the input is empty", func() {
			out := d.Dedupe(ctx, nil)

			Convey("Then the output is empty, not nil-panicking", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When a dropped item would have bridged two survivors", func() {
			// The middle title is close to both neighbors; only the first
			// occurrence contributes tokens to the seen set.
			items := itemsWithTitles(
				"Quantum Chip Breakthrough Announced Today",
				"Quantum Chip Breakthrough Revealed Today",
				"Quantum Chip Breakthrough Confirmed Today",
			)
			out := d.Dedupe(ctx, items)

			Convey("Then the whole chain collapses onto the first", func() {
				So(out, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a deduper with a custom threshold", t, func() {
		ctx := context.Background()

		Convey("When the threshold is lowered to 0.4", func() {
			d := dedupe.New(dedupe.WithThreshold(0.4))
			items := itemsWithTitles(
				"AI Funding News Today",
				"AI Funding Report Published",
			)
			out := d.Dedupe(ctx, items)

			Convey("Then looser matches dedupe", func() {
				So(out, ShouldHaveLength, 1)
			})
		})

		Convey("When an invalid threshold is supplied", func() {
			d := dedupe.New(dedupe.WithThreshold(-5))
			items := itemsWithTitles(
				"AI Startup Raises Major Funding Round",
				"AI Startup Raises Massive Funding Round",
			)
			out := d.Dedupe(ctx, items)

			Convey("Then the default threshold still applies", func() {
				So(out, ShouldHaveLength, 1)
			})
		})
	})
}
