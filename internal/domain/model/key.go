package model

// RankKey is the lightweight key used by all single-score strategies.
// Sorting full Item values is wasteful; the engine moves these instead.
//
// Ordering: score DESC, then title ASC (deterministic). Identity is the
// item id alone, so two keys for the same item compare equal even when
// their scores differ.
type RankKey struct {
	Score int64
	ID    string
	Title string
}

// Before reports whether k ranks ahead of other.
func (k RankKey) Before(other RankKey) bool {
	if k.Score != other.Score {
		return k.Score > other.Score // higher score ranks earlier
	}
	return k.Title < other.Title // tie-breaker by title asc
}

// Same reports identity equality by item id.
func (k RankKey) Same(other RankKey) bool {
	return k.ID == other.ID
}

// Metric identifies one field of an item usable in multi-metric ranking.
type Metric int

// Metrics selectable for a lexicographic priority chain.
const (
	MetricDeltaViews Metric = iota
	MetricDeltaLikes
	MetricDeltaComments
	MetricViews
	MetricLikes
	MetricComments
	MetricEngagementRate
)

// String returns the metric name used in configuration and logs.
func (m Metric) String() string {
	switch m {
	case MetricDeltaViews:
		return "delta_views"
	case MetricDeltaLikes:
		return "delta_likes"
	case MetricDeltaComments:
		return "delta_comments"
	case MetricViews:
		return "views"
	case MetricLikes:
		return "likes"
	case MetricComments:
		return "comments"
	case MetricEngagementRate:
		return "engagement_rate"
	default:
		return "unknown"
	}
}

// ParseMetric maps a configuration name back to a Metric.
func ParseMetric(name string) (Metric, bool) {
	for m := MetricDeltaViews; m <= MetricEngagementRate; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// valueOf extracts the metric value from an item.
func (m Metric) valueOf(it Item) int64 {
	switch m {
	case MetricDeltaViews:
		return it.DeltaViews
	case MetricDeltaLikes:
		return it.DeltaLikes
	case MetricDeltaComments:
		return it.DeltaComments
	case MetricViews:
		return it.Views
	case MetricLikes:
		return it.Likes
	case MetricComments:
		return it.Comments
	case MetricEngagementRate:
		// Basis points of likes per view.
		if it.Views > 0 {
			return it.Likes * 10000 / it.Views
		}
		return 0
	default:
		return 0
	}
}

// MetricKey is the sort key for multi-metric lexicographic ranking.
// Metrics[0] carries the highest priority.
type MetricKey struct {
	ID      string
	Title   string
	Metrics []int64
}

// Before compares lexicographically over the shared metric prefix,
// descending per field. When all shared fields tie, the key with more
// metrics ranks ahead; the final fallback is title order. The
// tuple-length rule is historical behavior and kept as-is.
func (k MetricKey) Before(other MetricKey) bool {
	n := min(len(k.Metrics), len(other.Metrics))
	for i := 0; i < n; i++ {
		if k.Metrics[i] != other.Metrics[i] {
			return k.Metrics[i] > other.Metrics[i]
		}
	}
	if len(k.Metrics) != len(other.Metrics) {
		return len(k.Metrics) > len(other.Metrics)
	}
	return k.Title < other.Title
}

// Same reports identity equality by item id.
func (k MetricKey) Same(other MetricKey) bool {
	return k.ID == other.ID
}

// MetricKeyFor builds a key for the item under the given priority chain.
func MetricKeyFor(it Item, priority []Metric) MetricKey {
	values := make([]int64, len(priority))
	for i, m := range priority {
		values[i] = m.valueOf(it)
	}
	return MetricKey{ID: it.ID, Title: it.Title, Metrics: values}
}

// DefaultMetrics ranks by absolute reach: views, likes, comments.
func DefaultMetrics() []Metric {
	return []Metric{MetricViews, MetricLikes, MetricComments}
}

// TrendingMetrics ranks by growth since the previous snapshot.
func TrendingMetrics() []Metric {
	return []Metric{MetricDeltaViews, MetricDeltaLikes, MetricDeltaComments}
}

// EngagementMetrics ranks interaction ahead of raw reach.
func EngagementMetrics() []Metric {
	return []Metric{MetricLikes, MetricComments, MetricViews}
}
