package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingest pipeline and the Nobil API adapter.
type Metrics struct {
	StationsFetched    prometheus.Counter
	StationsNormalized prometheus.Counter
	StationsRejected   prometheus.Counter // no usable connectors or filtered out
	MalformedRecords   prometheus.Counter // corrupt coordinate text
	StationsPublished  prometheus.Counter
	PollRunning        prometheus.Gauge
	PollDuration       prometheus.Histogram

	// Nobil API adapter metrics.
	SearchRequests *prometheus.CounterVec   // labels: type={rectangle,near,id}, outcome={success,error}
	SearchDuration *prometheus.HistogramVec // labels: type
	StatusRequests *prometheus.CounterVec   // labels: outcome={success,error}
	StatusDuration prometheus.Histogram

	// Availability endpoint metrics.
	AvailabilityCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StationsFetched,
		m.StationsNormalized,
		m.StationsRejected,
		m.MalformedRecords,
		m.StationsPublished,
		m.PollRunning,
		m.PollDuration,
		m.SearchRequests,
		m.SearchDuration,
		m.StatusRequests,
		m.StatusDuration,
		m.AvailabilityCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "stations_fetched_total",
			Help:      "Raw station records fetched from the search API.",
		}),
		StationsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "stations_normalized_total",
			Help:      "Raw records successfully converted to canonical stations.",
		}),
		StationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "stations_rejected_total",
			Help:      "Records without usable connectors or excluded by filters.",
		}),
		MalformedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "malformed_records_total",
			Help:      "Records with corrupt coordinate text, skipped with an error.",
		}),
		StationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "stations_published_total",
			Help:      "Canonical stations written to the sink.",
		}),
		PollRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nobil_etl",
			Name:      "poll_running",
			Help:      "1 while the ingest loop is active, 0 when shut down.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nobil_etl",
			Name:      "poll_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-publish cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "search_requests_total",
			Help:      "Nobil search API requests by search type and outcome.",
		}, []string{"type", "outcome"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nobil_etl",
			Name:      "search_duration_seconds",
			Help:      "Nobil search API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"type"}),
		StatusRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "status_requests_total",
			Help:      "Live-status requests by outcome.",
		}, []string{"outcome"}),
		StatusDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nobil_etl",
			Name:      "status_duration_seconds",
			Help:      "Live-status request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		AvailabilityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nobil_etl",
			Name:      "availability_cache_total",
			Help:      "Availability response cache lookups by result.",
		}, []string{"result"}),
	}
}
