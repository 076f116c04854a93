// Package scoring computes integer ranking scores from raw engagement
// statistics. The ranking engine never calls into this package; scores
// are assigned before a snapshot reaches it.
package scoring

import (
	"math"

	"github.com/okian/trendboard/internal/domain/model"
)

// Score limits shared by all strategies.
const (
	MinScore = 0
	MaxScore = 1_000_000
)

// Strategy selects a scoring formula.
type Strategy int

// Available scoring strategies.
const (
	// Engagement rewards like/comment rates on top of log-scaled views.
	Engagement Strategy = iota
	// Weighted sums views, likes and comments with fixed weights.
	Weighted
	// Normalized caps each metric on a 0-100 log scale before mixing.
	Normalized
	// Legacy is the original additive log formula.
	Legacy
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Engagement:
		return "engagement"
	case Weighted:
		return "weighted"
	case Normalized:
		return "normalized"
	case Legacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a configuration name back to a Strategy.
func ParseStrategy(name string) (Strategy, bool) {
	for s := Engagement; s <= Legacy; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Calculate dispatches to the formula selected by strategy.
func Calculate(views, likes, comments int64, strategy Strategy) int64 {
	switch strategy {
	case Engagement:
		return EngagementScore(views, likes, comments)
	case Weighted:
		return WeightedScore(views, likes, comments)
	case Normalized:
		return NormalizedScore(views, likes, comments)
	default:
		return LegacyScore(views, likes, comments)
	}
}

// Apply assigns a score to every item in place.
func Apply(items []model.Item, strategy Strategy) {
	for i := range items {
		items[i].Score = Calculate(items[i].Views, items[i].Likes, items[i].Comments, strategy)
	}
}

func clamp(v float64) int64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return int64(v)
}

// EngagementScore scales log views by an engagement bonus derived from
// like and comment rates. Small channels with strong engagement can
// outrank large ones.
//
//	base = log10(views) * 100
//	bonus = min(100, likeRate*1000 + commentRate*5000)
//	score = base * (1 + bonus/100)
func EngagementScore(views, likes, comments int64) int64 {
	if views <= 0 {
		views = 1
	}
	base := math.Log10(float64(views)) * 100.0

	likeRate := float64(likes) / float64(views)
	commentRate := float64(comments) / float64(views)
	bonus := math.Min(likeRate*1000.0+commentRate*5000.0, 100.0)

	return clamp(base * (1.0 + bonus/100.0))
}

// WeightedScore compresses a weighted sum with a log scale. The weights
// reflect typical rates: one like is worth about 50 views, one comment
// about 200.
func WeightedScore(views, likes, comments int64) int64 {
	const (
		viewWeight    = 1.0
		likeWeight    = 50.0
		commentWeight = 200.0
	)
	raw := float64(views)*viewWeight + float64(likes)*likeWeight + float64(comments)*commentWeight
	return clamp(math.Log10(math.Max(1.0, raw)) * 1000.0)
}

// NormalizedScore maps each metric to a capped 0-100 log scale and mixes
// them 50/30/20, scaled to 0-1000. No single metric can dominate.
func NormalizedScore(views, likes, comments int64) int64 {
	normalize := func(value int64, multiplier float64) float64 {
		if value <= 0 {
			return 0
		}
		return math.Min(100.0, math.Log10(float64(value))*multiplier)
	}

	composite := normalize(views, 15.0)*0.50 +
		normalize(likes, 20.0)*0.30 +
		normalize(comments, 25.0)*0.20

	return clamp(composite * 10.0)
}

// LegacyScore is the original additive formula, kept for comparability
// of historical benchmark records.
func LegacyScore(views, likes, comments int64) int64 {
	score := math.Log10(math.Max(1, float64(views)))*100.0 +
		math.Log10(math.Max(1, float64(likes)))*200.0 +
		math.Log10(math.Max(1, float64(comments)))*300.0
	return clamp(score)
}
