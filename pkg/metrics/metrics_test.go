package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording ranking pass metrics", func() {
			Convey("Then it should record build durations", func() {
				So(func() {
					RecordBuildDuration("full_sort", 12.0)
					RecordBuildDuration("online_insert", 3.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record refresh durations", func() {
				So(func() {
					RecordRefreshDuration("full_sort", 8.0)
					RecordRefreshDuration("order_statistics_tree", 2.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record skipped refreshes", func() {
				So(func() {
					RecordRefreshSkipped()
					RecordRefreshSkipped()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording engine state gauges", func() {
			Convey("Then it should update view and catalog sizes", func() {
				So(func() {
					UpdateViewSize(100)
					UpdateItemsTotal(10_000)
					UpdateTreeHeight(14)
					UpdateFreeSlots(3)
				}, ShouldNotPanic)
			})

			Convey("And it should count compactions and score updates", func() {
				So(func() {
					RecordCompaction()
					RecordScoreUpdate()
					RecordScoreUpdateMiss()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests and durations", func() {
				So(func() {
					RecordHTTPRequest("leaderboard", "GET", "200")
					RecordHTTPRequestDuration("leaderboard", "GET", "200", 1.5)
					RecordErrorByComponent("http", "client_error")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should be gatherable", func() {
				So(registry, ShouldNotBeNil)
				_, err := registry.Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
