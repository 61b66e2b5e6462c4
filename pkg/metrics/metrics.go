package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ScrapeFetchesTotal  *prometheus.CounterVec
	ScrapeDuration      *prometheus.HistogramVec
	ScrapeFallbacks     *prometheus.CounterVec
}

// New registers the application metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		ScrapeFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrape_fetches_total",
				Help: "Total number of upstream page fetches.",
			},
			[]string{"target", "outcome"}, // target: albums, photos
		),
		ScrapeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrape_duration_seconds",
				Help:    "Duration of upstream fetch and extraction.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"target"},
		),
		ScrapeFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrape_fallbacks_total",
				Help: "Responses served with placeholder data.",
			},
			[]string{"target", "kind"},
		),
	}
}

// ObserveFetch records one upstream fetch attempt.
func (m *Metrics) ObserveFetch(target, outcome string, seconds float64) {
	m.ScrapeFetchesTotal.WithLabelValues(target, outcome).Inc()
	m.ScrapeDuration.WithLabelValues(target).Observe(seconds)
}

// IncFallback counts a placeholder response.
func (m *Metrics) IncFallback(target, kind string) {
	m.ScrapeFallbacks.WithLabelValues(target, kind).Inc()
}
