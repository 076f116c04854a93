package model_test

import (
	"testing"

	model "github.com/okian/trendboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRankKeyOrdering(t *testing.T) {
	Convey("Given ranking keys", t, func() {
		Convey("When scores differ", func() {
			hi := model.RankKey{Score: 100, ID: "a", Title: "zzz"}
			lo := model.RankKey{Score: 90, ID: "b", Title: "aaa"}

			Convey("Then the higher score ranks first regardless of title", func() {
				So(hi.Before(lo), ShouldBeTrue)
				So(lo.Before(hi), ShouldBeFalse)
			})
		})

		Convey("When scores tie", func() {
			first := model.RankKey{Score: 50, ID: "x", Title: "alpha"}
			second := model.RankKey{Score: 50, ID: "y", Title: "beta"}

			Convey("Then the lexicographically smaller title ranks first", func() {
				So(first.Before(second), ShouldBeTrue)
				So(second.Before(first), ShouldBeFalse)
			})
		})

		Convey("When keys are identical", func() {
			k := model.RankKey{Score: 1, ID: "a", Title: "t"}

			Convey("Then neither ranks before the other", func() {
				So(k.Before(k), ShouldBeFalse)
			})
		})

		Convey("When comparing identity", func() {
			a1 := model.RankKey{Score: 10, ID: "a", Title: "t1"}
			a2 := model.RankKey{Score: 99, ID: "a", Title: "t2"}
			b := model.RankKey{Score: 10, ID: "b", Title: "t1"}

			Convey("Then identity follows the id alone", func() {
				So(a1.Same(a2), ShouldBeTrue)
				So(a1.Same(b), ShouldBeFalse)
			})
		})
	})
}

func TestMetricKeyOrdering(t *testing.T) {
	Convey("Given multi-metric keys", t, func() {
		Convey("When the first metric differs", func() {
			x := model.MetricKey{ID: "x", Title: "x", Metrics: []int64{100, 50}}
			y := model.MetricKey{ID: "y", Title: "y", Metrics: []int64{200, 10}}

			Convey("Then it decides alone", func() {
				So(y.Before(x), ShouldBeTrue)
				So(x.Before(y), ShouldBeFalse)
			})
		})

		Convey("When the first metric ties", func() {
			x := model.MetricKey{ID: "x", Title: "x", Metrics: []int64{100, 50}}
			y := model.MetricKey{ID: "y", Title: "y", Metrics: []int64{100, 80}}

			Convey("Then the next field decides", func() {
				So(y.Before(x), ShouldBeTrue)
			})
		})

		Convey("When all shared fields tie but lengths differ", func() {
			short := model.MetricKey{ID: "s", Title: "aaa", Metrics: []int64{100}}
			long := model.MetricKey{ID: "l", Title: "zzz", Metrics: []int64{100, 5}}

			// Longer tuples outrank shorter ones on a shared-prefix tie.
			// Unusual, but long-standing behavior that consumers rely on.
			Convey("Then the longer tuple ranks first", func() {
				So(long.Before(short), ShouldBeTrue)
				So(short.Before(long), ShouldBeFalse)
			})
		})

		Convey("When tuples are fully equal", func() {
			a := model.MetricKey{ID: "a", Title: "alpha", Metrics: []int64{1, 2}}
			b := model.MetricKey{ID: "b", Title: "beta", Metrics: []int64{1, 2}}

			Convey("Then title order is the final fallback", func() {
				So(a.Before(b), ShouldBeTrue)
				So(b.Before(a), ShouldBeFalse)
			})
		})
	})
}

func TestMetricKeyFor(t *testing.T) {
	Convey("Given an item with full stats", t, func() {
		it := model.Item{
			ID: "v1", Title: "clip",
			Views: 1000, Likes: 50, Comments: 10,
			DeltaViews: 100, DeltaLikes: 5, DeltaComments: 1,
		}

		Convey("When building a key over the default priority", func() {
			key := model.MetricKeyFor(it, model.DefaultMetrics())

			Convey("Then values follow the chain order", func() {
				So(key.Metrics, ShouldResemble, []int64{1000, 50, 10})
				So(key.ID, ShouldEqual, "v1")
			})
		})

		Convey("When building a key over the trending priority", func() {
			key := model.MetricKeyFor(it, model.TrendingMetrics())

			Convey("Then delta values are used", func() {
				So(key.Metrics, ShouldResemble, []int64{100, 5, 1})
			})
		})

		Convey("When the chain includes the engagement rate", func() {
			key := model.MetricKeyFor(it, []model.Metric{model.MetricEngagementRate})

			Convey("Then it is expressed in basis points of likes per view", func() {
				So(key.Metrics, ShouldResemble, []int64{500})
			})
		})

		Convey("When the item has no views", func() {
			empty := model.Item{ID: "v2", Likes: 10}
			key := model.MetricKeyFor(empty, []model.Metric{model.MetricEngagementRate})

			Convey("Then the rate is zero rather than dividing by zero", func() {
				So(key.Metrics, ShouldResemble, []int64{0})
			})
		})
	})
}

func TestParseMetric(t *testing.T) {
	Convey("Given metric names", t, func() {
		Convey("When round-tripping every metric", func() {
			for m := model.MetricDeltaViews; m <= model.MetricEngagementRate; m++ {
				got, ok := model.ParseMetric(m.String())
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, m)
			}
		})

		Convey("When parsing an unknown name", func() {
			_, ok := model.ParseMetric("shares")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestItemKey(t *testing.T) {
	Convey("Given a scored item", t, func() {
		it := model.Item{ID: "v1", Title: "clip", Score: 777}

		Convey("When deriving its ranking key", func() {
			key := it.Key()

			Convey("Then it carries id, title and score", func() {
				So(key, ShouldResemble, model.RankKey{Score: 777, ID: "v1", Title: "clip"})
			})
		})
	})

	Convey("Given a batch of items", t, func() {
		items := []model.Item{
			{ID: "a", Score: 1},
			{ID: "b", Score: 2},
		}

		Convey("When deriving keys for all of them", func() {
			keys := model.KeysOf(items)

			Convey("Then order and contents are preserved", func() {
				So(keys, ShouldHaveLength, 2)
				So(keys[0].ID, ShouldEqual, "a")
				So(keys[1].Score, ShouldEqual, 2)
			})
		})
	})
}
