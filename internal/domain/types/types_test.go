package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/trendboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating a new entry", func() {
			entry := types.Entry{
				Rank:  1,
				ID:    "video-123",
				Title: "some clip",
				Score: 955,
			}

			Convey("Then it should have the correct values", func() {
				So(entry.Rank, ShouldEqual, 1)
				So(entry.ID, ShouldEqual, "video-123")
				So(entry.Title, ShouldEqual, "some clip")
				So(entry.Score, ShouldEqual, 955)
			})
		})

		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.ID, ShouldEqual, "")
				So(entry.Score, ShouldEqual, 0)
			})
		})

		Convey("When serializing an entry", func() {
			entry := types.Entry{Rank: 2, ID: "v", Title: "t", Score: 10}
			data, err := json.Marshal(entry)

			Convey("Then the wire field names should be stable", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"rank":2`)
				So(string(data), ShouldContainSubstring, `"id":"v"`)
				So(string(data), ShouldContainSubstring, `"title":"t"`)
				So(string(data), ShouldContainSubstring, `"score":10`)
			})
		})
	})
}

func TestEntryOrdering(t *testing.T) {
	Convey("Given a ranked list of entries", t, func() {
		entries := []types.Entry{
			{Rank: 1, ID: "a", Score: 95},
			{Rank: 2, ID: "b", Score: 90},
			{Rank: 3, ID: "c", Score: 90},
			{Rank: 4, ID: "d", Score: 82},
		}

		Convey("Then ranks should be sequential", func() {
			for i, entry := range entries {
				So(entry.Rank, ShouldEqual, i+1)
			}
		})

		Convey("And scores should be non-increasing", func() {
			for i := 0; i < len(entries)-1; i++ {
				So(entries[i].Score, ShouldBeGreaterThanOrEqualTo, entries[i+1].Score)
			}
		})
	})
}
