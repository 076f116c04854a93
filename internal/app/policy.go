package service

import (
	"fmt"

	"github.com/okian/trendboard/internal/config"
	"github.com/okian/trendboard/internal/domain/model"
	"github.com/okian/trendboard/internal/rank/engine"
	"github.com/okian/trendboard/internal/rank/sorting"
	"github.com/okian/trendboard/internal/rank/topk"
)

// PolicyFromConfig resolves the configured strategy and algorithm names
// into a ranking policy. Unknown names are rejected here, at startup,
// rather than surfacing mid-refresh.
func PolicyFromConfig(cfg *config.Config) (engine.Policy, error) {
	strategy, ok := engine.ParseStrategy(cfg.Strategy)
	if !ok {
		return engine.Policy{}, fmt.Errorf("%w: unknown strategy %q", config.ErrInvalidConfig, cfg.Strategy)
	}
	sortAlgo, ok := sorting.ParseAlgorithm(cfg.SortAlgo)
	if !ok {
		return engine.Policy{}, fmt.Errorf("%w: unknown sort algorithm %q", config.ErrInvalidConfig, cfg.SortAlgo)
	}
	selectAlgo, ok := topk.ParseAlgorithm(cfg.SelectAlgo)
	if !ok {
		return engine.Policy{}, fmt.Errorf("%w: unknown select algorithm %q", config.ErrInvalidConfig, cfg.SelectAlgo)
	}

	var chain []model.Metric
	for _, name := range cfg.Metrics {
		m, ok := model.ParseMetric(name)
		if !ok {
			return engine.Policy{}, fmt.Errorf("%w: unknown metric %q", config.ErrInvalidConfig, name)
		}
		chain = append(chain, m)
	}

	return engine.Policy{
		Strategy: strategy,
		Sort:     sortAlgo,
		Select:   selectAlgo,
		K:        cfg.TopK,
		Metrics:  chain,
	}, nil
}
