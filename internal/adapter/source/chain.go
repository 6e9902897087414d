package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/couchcryptid/parks-data-service/internal/observability"
)

// Chain tries each source in order and returns the first non-empty payload.
type Chain struct {
	sources []domain.Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewChain(logger *slog.Logger, metrics *observability.Metrics, sources ...domain.Source) *Chain {
	return &Chain{sources: sources, logger: logger, metrics: metrics}
}

// Len returns the number of configured sources.
func (c *Chain) Len() int { return len(c.sources) }

func (c *Chain) Fetch(ctx context.Context) ([]byte, error) {
	if len(c.sources) == 0 {
		return nil, errors.New("no payload sources configured")
	}

	var errs []error
	for _, s := range c.sources {
		data, err := s.Fetch(ctx)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		name := describe(s)
		c.logger.Warn("payload source failed, trying next", "source", name, "error", err)
		c.metrics.SourceErrors.WithLabelValues(kind(s)).Inc()
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, errors.Join(errs...)
}

func describe(s domain.Source) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s)
}

func kind(s domain.Source) string {
	switch s.(type) {
	case *HTTP:
		return "http"
	case *File:
		return "file"
	case *Cached:
		return "cache"
	default:
		return "other"
	}
}
