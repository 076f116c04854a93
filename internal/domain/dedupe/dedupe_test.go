package dedupe_test

import (
	"context"
	"testing"

	dedupe "github.com/okian/trendboard/internal/domain/dedupe"
	model "github.com/okian/trendboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshot() []model.Item {
	return []model.Item{
		{ID: "a", Title: "first", Views: 100, Likes: 10, Comments: 1, Score: 500},
		{ID: "b", Title: "second", Views: 200, Likes: 20, Comments: 2, Score: 700},
	}
}

func TestTracker(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh tracker", t, func() {
		tr := dedupe.NewTracker()

		Convey("When recording the first snapshot", func() {
			seen := tr.SeenAndRecord(ctx, snapshot())

			Convey("Then it is never reported as seen", func() {
				So(seen, ShouldBeFalse)
				So(tr.Last(), ShouldNotEqual, 0)
			})
		})

		Convey("When recording the same snapshot twice", func() {
			tr.SeenAndRecord(ctx, snapshot())
			seen := tr.SeenAndRecord(ctx, snapshot())

			Convey("Then the second one is reported unchanged", func() {
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When a score changes between snapshots", func() {
			tr.SeenAndRecord(ctx, snapshot())

			changed := snapshot()
			changed[1].Score = 900
			seen := tr.SeenAndRecord(ctx, changed)

			Convey("Then the snapshot counts as new", func() {
				So(seen, ShouldBeFalse)
			})
		})

		Convey("When an item disappears", func() {
			tr.SeenAndRecord(ctx, snapshot())
			seen := tr.SeenAndRecord(ctx, snapshot()[:1])

			Convey("Then the snapshot counts as new", func() {
				So(seen, ShouldBeFalse)
			})
		})

		Convey("When reverting to an earlier snapshot", func() {
			tr.SeenAndRecord(ctx, snapshot())
			changed := snapshot()
			changed[0].Views = 101
			tr.SeenAndRecord(ctx, changed)
			seen := tr.SeenAndRecord(ctx, snapshot())

			Convey("Then only the last fingerprint counts", func() {
				So(seen, ShouldBeFalse)
			})
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Given the snapshot fingerprint", t, func() {
		Convey("When hashing identical snapshots", func() {
			So(dedupe.Fingerprint(snapshot()), ShouldEqual, dedupe.Fingerprint(snapshot()))
		})

		Convey("When item order differs", func() {
			a := snapshot()
			b := []model.Item{a[1], a[0]}

			Convey("Then the fingerprints differ, order is part of the contract", func() {
				So(dedupe.Fingerprint(a), ShouldNotEqual, dedupe.Fingerprint(b))
			})
		})

		Convey("When hashing an empty snapshot", func() {
			Convey("Then the fingerprint is still defined", func() {
				So(dedupe.Fingerprint(nil), ShouldEqual, dedupe.Fingerprint([]model.Item{}))
			})
		})
	})
}
