package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/sparta/core"
)

// Searcher is the shared contract for both ranking strategies: return up to
// topK records relevant to the query, best first, with scores non-increasing
// across the result. A topK of zero or less yields an empty result, never an
// error.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error)
}

type config struct {
	logger *slog.Logger
}

// Option configures a searcher.
type Option func(*config)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

func newConfig(opts ...Option) *config {
	c := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
