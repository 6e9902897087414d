package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/parks-data-service/internal/catalog"
	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/couchcryptid/parks-data-service/internal/observability"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

var (
	// ErrSuperseded is returned by Load when a newer load was requested
	// before this one finished. Its result is discarded.
	ErrSuperseded = errors.New("load superseded by a newer request")
	// ErrNoSource marks a load that ran without any payload source.
	ErrNoSource = errors.New("no payload source configured")

	errEmptyPayload = errors.New("empty payload")
)

const sampleOrigin = "sample"

// Transformer turns a raw payload into canonical, fully derived parks.
type Transformer interface {
	Transform(payload []byte, asOf time.Time) ([]domain.Park, domain.NormalizeReport)
}

// Publisher receives every catalog the loader publishes.
type Publisher interface {
	Publish(ctx context.Context, cat *catalog.Catalog) error
}

// Loader builds catalogs from the payload source and publishes them to an
// atomic store. Readers see either the previous catalog or the new one,
// never a partial build.
type Loader struct {
	source      domain.Source
	transformer Transformer
	publisher   Publisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	refresh     time.Duration

	store  atomic.Pointer[catalog.Catalog]
	ready  atomic.Bool
	latest atomic.Uint64
	reload chan struct{}

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

// New creates a Loader. A nil source serves the built-in sample parks on
// every load; a nil publisher disables publishing. A positive refresh
// interval makes Run reload periodically.
func New(src domain.Source, t Transformer, pub Publisher, logger *slog.Logger, metrics *observability.Metrics, refresh time.Duration) *Loader {
	l := &Loader{
		source:      src,
		transformer: t,
		publisher:   pub,
		logger:      logger,
		metrics:     metrics,
		refresh:     refresh,
		reload:      make(chan struct{}, 1),
	}
	l.store.Store(catalog.Empty())
	return l
}

// Current returns the catalog being served.
func (l *Loader) Current() *catalog.Catalog {
	return l.store.Load()
}

// CheckReadiness returns nil once the first catalog has been published.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.ready.Load() {
		return errors.New("catalog has not been loaded yet")
	}
	return nil
}

// RequestReload asks Run to load again. Requests made while one is already
// pending are coalesced.
func (l *Loader) RequestReload() {
	select {
	case l.reload <- struct{}{}:
	default:
	}
}

// Run loads once, then reloads on request and on the refresh interval until
// the context is cancelled.
func (l *Loader) Run(ctx context.Context) error {
	l.logger.Info("loader started", "refresh_interval", l.refresh)
	l.metrics.LoaderRunning.Set(1)
	defer l.metrics.LoaderRunning.Set(0)

	l.loadAndLog(ctx)

	var tick <-chan time.Time
	if l.refresh > 0 {
		ticker := clock.NewTicker(l.refresh)
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("loader stopping", "reason", ctx.Err())
			return nil
		case <-l.reload:
			l.loadAndLog(ctx)
		case <-tick:
			l.loadAndLog(ctx)
		}
	}
}

func (l *Loader) loadAndLog(ctx context.Context) {
	if _, err := l.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) && ctx.Err() == nil {
		l.logger.Error("catalog load failed", "error", err)
	}
}

// Load fetches, parses, and derives a new catalog and publishes it. A newer
// Load started before this one finishes cancels it, and this one returns
// ErrSuperseded. Retrieval failures never fail a load: the built-in sample
// parks are served instead.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	seq := l.latest.Add(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	l.mu.Lock()
	if l.cancelPrev != nil {
		l.cancelPrev()
	}
	l.cancelPrev = cancel
	l.mu.Unlock()

	start := clock.Now()
	logger := l.logger.With("load_id", uuid.NewString(), "seq", seq)

	parks, meta := l.build(ctx, logger)

	l.mu.Lock()
	if l.latest.Load() != seq {
		l.mu.Unlock()
		l.metrics.Loads.WithLabelValues("superseded").Inc()
		logger.Info("load superseded, discarding result")
		return nil, ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		l.mu.Unlock()
		return nil, err
	}
	meta.Version = seq
	cat := catalog.New(parks, meta)
	l.store.Store(cat)
	l.cancelPrev = nil
	l.mu.Unlock()
	l.ready.Store(true)

	l.metrics.Loads.WithLabelValues(string(meta.Status)).Inc()
	l.metrics.LoadDuration.Observe(clock.Since(start).Seconds())
	l.metrics.ParksLoaded.Set(float64(cat.Len()))
	l.metrics.CatalogVersion.Set(float64(seq))

	logger.Info("catalog published",
		"version", seq,
		"status", meta.Status,
		"origin", meta.Origin,
		"parks", cat.Len(),
		"rows", meta.Report.Rows,
		"dropped", meta.Report.Dropped,
		"capped", meta.Report.Capped,
	)

	l.publish(ctx, cat, logger)
	return cat, nil
}

// build produces the parks for one load, degrading to the sample set when
// no payload can be retrieved.
func (l *Loader) build(ctx context.Context, logger *slog.Logger) ([]domain.Park, catalog.Meta) {
	payload, err := l.fetch(ctx)
	asOf := clock.Now()
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("payload retrieval failed, serving sample parks", "error", err)
		}
		sample := domain.SampleParks()
		return domain.DeriveAll(sample, asOf), catalog.Meta{
			Status:   catalog.StatusFallback,
			Origin:   sampleOrigin,
			LoadedAt: asOf,
			Report:   domain.NormalizeReport{Rows: len(sample)},
		}
	}

	parks, report := l.transformer.Transform(payload, asOf)
	l.metrics.RowsParsed.Add(float64(report.Rows))
	l.metrics.RowsDropped.Add(float64(report.Dropped))
	if report.Dropped > 0 {
		logger.Warn("rows without a site name dropped", "dropped", report.Dropped)
	}
	if report.Capped > 0 {
		logger.Info("ingestion limit reached", "limit", domain.MaxParks, "ignored", report.Capped)
	}

	return parks, catalog.Meta{
		Status:   catalog.StatusLive,
		Origin:   describe(l.source),
		Checksum: fmt.Sprintf("%016x", xxh3.Hash(payload)),
		LoadedAt: asOf,
		Report:   report,
	}
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if l.source == nil {
		return nil, ErrNoSource
	}
	payload, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, errEmptyPayload
	}
	return payload, nil
}

// publish hands the catalog to the publisher. Failures are logged and counted
// only; the catalog is already being served.
func (l *Loader) publish(ctx context.Context, cat *catalog.Catalog, logger *slog.Logger) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, cat); err != nil {
		l.metrics.PublishErrors.Inc()
		logger.Error("catalog publish failed", "error", err, "version", cat.Version())
	}
}

func describe(src domain.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
