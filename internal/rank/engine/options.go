package engine

import "github.com/okian/trendboard/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithHistory attaches a timing-history collector. Without one the
// engine keeps no pass history.
func WithHistory(h *History) Option {
	return func(e *Engine) {
		e.history = h
	}
}
