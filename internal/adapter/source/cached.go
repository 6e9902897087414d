package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/couchcryptid/parks-data-service/internal/observability"
)

// PayloadStore keeps the last good payload. Get returns ErrCacheMiss when
// nothing is stored.
type PayloadStore interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
}

// Cached wraps a source with a PayloadStore: successful fetches are stored,
// and failed fetches are answered from the store when it has a payload.
type Cached struct {
	inner   domain.Source
	store   PayloadStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCached creates a cache decorator around a source.
func NewCached(inner domain.Source, store PayloadStore, logger *slog.Logger, metrics *observability.Metrics) *Cached {
	return &Cached{inner: inner, store: store, logger: logger, metrics: metrics}
}

func (c *Cached) String() string { return "cached(" + describe(c.inner) + ")" }

func (c *Cached) Fetch(ctx context.Context) ([]byte, error) {
	data, err := c.inner.Fetch(ctx)
	if err == nil {
		// A failed cache write never fails the fetch.
		if putErr := c.store.Put(ctx, data); putErr != nil {
			c.logger.Warn("payload cache write failed", "error", putErr)
			c.metrics.PayloadCache.WithLabelValues("error").Inc()
		} else {
			c.metrics.PayloadCache.WithLabelValues("store").Inc()
		}
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cached, getErr := c.store.Get(ctx)
	switch {
	case getErr == nil && !isBlank(cached):
		c.logger.Warn("payload source failed, serving cached payload", "error", err, "bytes", len(cached))
		c.metrics.PayloadCache.WithLabelValues("hit").Inc()
		return cached, nil
	case getErr == nil, errors.Is(getErr, ErrCacheMiss):
		c.metrics.PayloadCache.WithLabelValues("miss").Inc()
		return nil, err
	default:
		c.logger.Warn("payload cache read failed", "error", getErr)
		c.metrics.PayloadCache.WithLabelValues("error").Inc()
		return nil, errors.Join(err, getErr)
	}
}
