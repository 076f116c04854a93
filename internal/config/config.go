// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Strategy selects the ranking strategy: full_sort, select_then_sort,
	// order_statistics_tree, online_insert, multi_metric.
	Strategy string `koanf:"strategy"`

	// SortAlgo selects the sort algorithm: selection, insertion, bubble,
	// quick, merge, shell, heap, counting, radix.
	SortAlgo string `koanf:"sort_algo"`

	// SelectAlgo selects the Top-K algorithm: sequential, quickselect,
	// binary, partition.
	SelectAlgo string `koanf:"select_algo"`

	// TopK bounds the maintained ranking view.
	TopK int `koanf:"top_k"`

	// Metrics is the priority chain for the multi_metric strategy,
	// highest priority first.
	Metrics []string `koanf:"metrics"`

	// Scoring selects the score formula: engagement, weighted,
	// normalized, legacy.
	Scoring string `koanf:"scoring"`

	// RefreshIntervalMS sets the snapshot refresh cadence.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`

	// ItemCount sets how many items the dummy snapshot provider tracks.
	ItemCount int `koanf:"item_count"`

	// ChurnPercent sets how many items per hundred the dummy provider
	// replaces each cycle.
	ChurnPercent int `koanf:"churn_percent"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// HistoryLimit bounds retained build/refresh timing records.
	HistoryLimit int `koanf:"history_limit"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// (e.g., loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Strategy:            "online_insert",
		SortAlgo:            "quick",
		SelectAlgo:          "sequential",
		TopK:                100,
		Metrics:             []string{"views", "likes", "comments"},
		Scoring:             "engagement",
		RefreshIntervalMS:   5_000,
		ItemCount:           10_000,
		ChurnPercent:        2,
		MaxLeaderboardLimit: 100,
		HistoryLimit:        256,
	}
}
