// Package prometheus exports crawl metrics through the Prometheus client.
package prometheus

import (
	"fmt"

	"github.com/fwojciec/bookshelf/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics owns the collectors for fetches and books.
type Metrics struct {
	InFlight prometheus.Gauge
	Fetches  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Books    *prometheus.CounterVec
}

// NewMetrics registers the collectors against reg.
// A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bookshelf_fetch_in_flight",
			Help: "Fetches currently holding or waiting for a connection.",
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_fetches_total",
			Help: "Fetches completed, partitioned by result.",
		}, []string{"result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookshelf_fetch_duration_seconds",
			Help:    "Fetch wall time, partitioned by result.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"result"}),
		Books: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_books_total",
			Help: "Books finished, partitioned by result.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{m.InFlight, m.Fetches, m.Duration, m.Books} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	for _, result := range []string{ResultSuccess, ResultError} {
		m.Fetches.WithLabelValues(result)
		m.Books.WithLabelValues(result)
	}
	return m, nil
}

// ObserveProgress counts saved and failed books. Other events are ignored.
func (m *Metrics) ObserveProgress(ev crawl.ProgressEvent) {
	switch ev.Type {
	case crawl.ProgressSaved:
		m.Books.WithLabelValues(ResultSuccess).Inc()
	case crawl.ProgressFailed:
		m.Books.WithLabelValues(ResultError).Inc()
	}
}
