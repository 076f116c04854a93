package service

import (
	"time"

	"github.com/okian/trendboard/internal/adapters/source"
	"github.com/okian/trendboard/internal/rank/engine"
	"github.com/okian/trendboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPolicy sets the ranking policy.
func WithPolicy(p engine.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithProvider sets the snapshot provider.
func WithProvider(p source.Provider) Option {
	return func(s *Service) {
		s.prov = p
	}
}

// WithRefreshInterval sets the snapshot refresh cadence.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithMaxLimit caps how many entries a single read may request.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithHistoryLimit bounds retained timing records.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
