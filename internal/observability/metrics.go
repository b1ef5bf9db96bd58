package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// declination pipeline.
type Metrics struct {
	LinesRead      prometheus.Counter
	LinesFormatted prometheus.Counter
	LinesEchoed    prometheus.Counter // comments and blank lines
	MalformedLines prometheus.Counter

	// LineErrors counts per-line failures by pipeline stage:
	// stage={build,fetch,decode}.
	LineErrors *prometheus.CounterVec

	FetchDuration prometheus.Histogram
	BatchRunning  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "declination",
			Name:      "lines_read_total",
			Help:      "Total input lines consumed.",
		}),
		LinesFormatted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "declination",
			Name:      "lines_formatted_total",
			Help:      "Total data lines successfully converted to reports.",
		}),
		LinesEchoed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "declination",
			Name:      "lines_echoed_total",
			Help:      "Comment and blank lines passed through verbatim.",
		}),
		MalformedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "declination",
			Name:      "malformed_lines_total",
			Help:      "Lines with fewer than the minimum field count.",
		}),
		LineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "declination",
			Name:      "line_errors_total",
			Help:      "Per-line failures by pipeline stage.",
		}, []string{"stage"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "declination",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of remote calculator requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "declination",
			Name:      "batch_running",
			Help:      "1 while a batch is being processed, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.LinesRead,
		m.LinesFormatted,
		m.LinesEchoed,
		m.MalformedLines,
		m.LineErrors,
		m.FetchDuration,
		m.BatchRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LinesRead:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "declination", Name: "lines_read_total"}),
		LinesFormatted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "declination", Name: "lines_formatted_total"}),
		LinesEchoed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "declination", Name: "lines_echoed_total"}),
		MalformedLines: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "declination", Name: "malformed_lines_total"}),
		LineErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "declination", Name: "line_errors_total"}, []string{"stage"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "declination", Name: "fetch_duration_seconds"}),
		BatchRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "declination", Name: "batch_running"}),
	}
}
