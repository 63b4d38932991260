package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsgate"

// Metrics holds the collectors on a private registry. A nil *Metrics is
// valid and records nothing, which keeps the CLI and tests free of wiring.
type Metrics struct {
	registry *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	gateDecisions   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Calls issued to the news backend.",
		}, []string{"method", "route", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the news backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_gate_decisions_total",
			Help:      "Auth gate outcomes by required role.",
		}, []string{"role", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.backendRequests,
		m.backendDuration,
		m.gateDecisions,
	)

	return m
}

func (m *Metrics) ObserveBackend(method, route, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(method, route, outcome).Inc()
	m.backendDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveGate(role, outcome string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
