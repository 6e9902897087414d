package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parks"

// Metrics holds the Prometheus counters, histograms, and gauges for catalog
// loading and the query API.
type Metrics struct {
	LoaderRunning  prometheus.Gauge
	Loads          *prometheus.CounterVec // labels: outcome={live,fallback,superseded}
	LoadDuration   prometheus.Histogram
	RowsParsed     prometheus.Counter
	RowsDropped    prometheus.Counter
	ParksLoaded    prometheus.Gauge
	CatalogVersion prometheus.Gauge

	// Payload retrieval metrics.
	SourceErrors *prometheus.CounterVec // labels: source={http,file,cache,chain}
	PayloadCache *prometheus.CounterVec // labels: result={hit,miss,error,store}

	// Publishing and API metrics.
	PublishErrors prometheus.Counter
	APIQueries    *prometheus.CounterVec // labels: endpoint
}

func newMetrics() *Metrics {
	return &Metrics{
		LoaderRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loader_running",
			Help:      "1 when the catalog loader is active, 0 when shut down.",
		}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Catalog loads by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete fetch-parse-derive load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_parsed_total",
			Help:      "Total data rows parsed from retrieved payloads.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped for lacking a site name.",
		}),
		ParksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parks_loaded",
			Help:      "Number of parks in the current catalog.",
		}),
		CatalogVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_version",
			Help:      "Version of the catalog currently served.",
		}),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Payload retrieval failures by source.",
		}, []string{"source"}),
		PayloadCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payload_cache_total",
			Help:      "Payload cache operations by result.",
		}, []string{"result"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed catalog publishes.",
		}),
		APIQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_queries_total",
			Help:      "Query API requests by endpoint.",
		}, []string{"endpoint"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoaderRunning,
		m.Loads,
		m.LoadDuration,
		m.RowsParsed,
		m.RowsDropped,
		m.ParksLoaded,
		m.CatalogVersion,
		m.SourceErrors,
		m.PayloadCache,
		m.PublishErrors,
		m.APIQueries,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not exposed through any
// registry, for one-shot tools that never serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}
