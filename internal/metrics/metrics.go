// Package metrics exposes Prometheus metrics for classification traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the classification API.
type Metrics struct {
	registry *prometheus.Registry

	// Classifications by topic and result (matched, out_of_scope, error)
	Classifications *prometheus.CounterVec

	// Matched outcomes by tier
	Outcomes *prometheus.CounterVec

	// Request latency by route and status code
	RequestLatency *prometheus.HistogramVec
}

// New creates a Metrics instance on its own registry, with Go runtime
// and process collectors included.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctdguide_classifications_total",
			Help: "Total classification requests by topic and result",
		}, []string{"topic", "result"}),

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctdguide_outcomes_total",
			Help: "Total matched rule outcomes by reporting tier",
		}, []string{"tier"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ctdguide_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"route", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementClassification records one classification result.
func (m *Metrics) IncrementClassification(topic, result string) {
	if m != nil {
		m.Classifications.WithLabelValues(topic, result).Inc()
	}
}

// IncrementOutcome records a matched tier.
func (m *Metrics) IncrementOutcome(tier string) {
	if m != nil {
		m.Outcomes.WithLabelValues(tier).Inc()
	}
}

// ObserveRequest records the duration of an HTTP request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
