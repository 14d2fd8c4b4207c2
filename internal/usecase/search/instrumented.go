package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/glowgrid/spadex/internal/domain/search/result"
	"github.com/glowgrid/spadex/internal/metrics"
)

// Searcher is the search contract consumed by the transport layer.
type Searcher interface {
	Search(ctx context.Context, p Params) ([]result.Result, error)
	FacetOptions(ctx context.Context) (Options, error)
}

// Instrumented wraps a Searcher with metrics and debug logging.
// HTTP-level metrics (status, route, latency) are recorded in transport;
// this layer owns pipeline-level metrics only.
type Instrumented struct {
	inner  Searcher
	logger *zap.Logger
}

// NewInstrumented wraps a searcher with observability.
func NewInstrumented(inner Searcher, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, logger: logger}
}

// Search delegates to the inner searcher and records pipeline metrics.
func (i *Instrumented) Search(ctx context.Context, p Params) ([]result.Result, error) {
	start := time.Now()

	results, err := i.inner.Search(ctx, p)

	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		i.logger.Error("Search failed",
			zap.String("query", p.Query),
			zap.String("sort", string(p.Sort)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(duration.Seconds())
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	i.logger.Debug("Search completed",
		zap.String("query", p.Query),
		zap.String("sort", string(p.Sort)),
		zap.Bool("has_facets", !p.Facets.IsEmpty()),
		zap.Duration("duration", duration),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// FacetOptions delegates to the inner searcher.
func (i *Instrumented) FacetOptions(ctx context.Context) (Options, error) {
	return i.inner.FacetOptions(ctx)
}
