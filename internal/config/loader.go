package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if TREND_CONFIG is set
//  3. env (prefix TREND_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TREND_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TREND_ADDR, TREND_TOP_K, ...
	// Map env keys like TREND_TOP_K -> top_k (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TREND_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "trend_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with. Name
// resolution of strategy and algorithm strings happens where the policy
// is assembled; here only structural fields are checked.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", ErrInvalidConfig)
	}
	if c.RefreshIntervalMS <= 0 {
		return fmt.Errorf("%w: refresh_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.ItemCount <= 0 {
		return fmt.Errorf("%w: item_count must be positive", ErrInvalidConfig)
	}
	if c.ChurnPercent < 0 || c.ChurnPercent > 100 {
		return fmt.Errorf("%w: churn_percent must be in [0,100]", ErrInvalidConfig)
	}
	return nil
}
