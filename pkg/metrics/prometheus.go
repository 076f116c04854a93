// Package metrics provides Prometheus metrics for the trendboard ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the trendboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ranking Engine Metrics - Build and refresh timings per strategy
	buildDuration   *prometheus.HistogramVec
	refreshDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	refreshSkipped  prometheus.Counter

	// View Metrics - Size and structure of the maintained Top-K view
	viewSize      prometheus.Gauge
	itemsTotal    prometheus.Gauge
	treeHeight    prometheus.Gauge
	freeSlots     prometheus.Gauge
	compactions   prometheus.Counter
	scoreUpdates  prometheus.Counter
	scoreMisses   prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trendboard",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.buildDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "build_duration_milliseconds",
			Help:      "Initial ranking build duration in milliseconds by strategy",
			Buckets:   m.histogramBuckets,
		},
		[]string{"strategy"},
	)

	m.refreshDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "refresh_duration_milliseconds",
			Help:      "Ranking refresh duration in milliseconds by strategy",
			Buckets:   m.histogramBuckets,
		},
		[]string{"strategy"},
	)

	m.refreshTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "refresh_total",
			Help:      "Total number of ranking refreshes by strategy",
		},
		[]string{"strategy"},
	)

	m.refreshSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_skipped_total",
		Help:      "Total number of refreshes skipped because the snapshot was unchanged",
	})

	m.viewSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "view_size",
		Help:      "Current number of entries in the Top-K view",
	})

	m.itemsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "items_total",
		Help:      "Total number of items in the last consumed snapshot",
	})

	m.treeHeight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tree_height",
		Help:      "Height of the order-statistics tree (zero for other strategies)",
	})

	m.freeSlots = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "free_slots",
		Help:      "Lazily deleted slots awaiting reuse or compaction",
	})

	m.compactions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "compactions_total",
		Help:      "Total number of array compactions performed by the online-insert strategy",
	})

	m.scoreUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_updates_total",
		Help:      "Total number of point score updates applied",
	})

	m.scoreMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_update_misses_total",
		Help:      "Total number of point score updates that found no matching id",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)
}

// RecordBuildDuration records an initial build duration in milliseconds.
func RecordBuildDuration(strategy string, durationMs float64) {
	globalManager.buildDuration.WithLabelValues(strategy).Observe(durationMs)
}

// RecordRefreshDuration records a refresh duration in milliseconds.
func RecordRefreshDuration(strategy string, durationMs float64) {
	globalManager.refreshDuration.WithLabelValues(strategy).Observe(durationMs)
	globalManager.refreshTotal.WithLabelValues(strategy).Inc()
}

// RecordRefreshSkipped increments the skipped-refresh counter.
func RecordRefreshSkipped() {
	globalManager.refreshSkipped.Inc()
}

// UpdateViewSize sets the current Top-K view size.
func UpdateViewSize(size int) {
	globalManager.viewSize.Set(float64(size))
}

// UpdateItemsTotal sets the size of the last consumed snapshot.
func UpdateItemsTotal(count int) {
	globalManager.itemsTotal.Set(float64(count))
}

// UpdateTreeHeight sets the order-statistics tree height.
func UpdateTreeHeight(height int) {
	globalManager.treeHeight.Set(float64(height))
}

// UpdateFreeSlots sets the number of lazily deleted slots.
func UpdateFreeSlots(count int) {
	globalManager.freeSlots.Set(float64(count))
}

// RecordCompaction increments the compaction counter.
func RecordCompaction() {
	globalManager.compactions.Inc()
}

// RecordScoreUpdate increments the applied score update counter.
func RecordScoreUpdate() {
	globalManager.scoreUpdates.Inc()
}

// RecordScoreUpdateMiss increments the missed score update counter.
func RecordScoreUpdateMiss() {
	globalManager.scoreMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
