package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's Prometheus collectors on a private
// registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	filterDenials   *prometheus.CounterVec
	streamChunks    *prometheus.CounterVec
	auditDropped    prometheus.Counter
}

// New creates and registers the gateway metrics under the given
// namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of proxied requests",
			},
			[]string{"provider", "model", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of proxied requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "model"},
		),
		filterDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "filter_denials_total",
				Help:      "Requests denied by the security filter chain",
			},
			[]string{"filter"},
		),
		streamChunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_chunks_total",
				Help:      "Event-stream chunks forwarded to clients",
			},
			[]string{"provider"},
		),
		auditDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_records_dropped_total",
				Help:      "Audit records dropped due to a full buffer",
			},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.filterDenials,
		m.streamChunks,
		m.auditDropped,
	)
	return m
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(provider, model string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(provider, model, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}

// ObserveDenial records one filter denial.
func (m *Metrics) ObserveDenial(filter string) {
	m.filterDenials.WithLabelValues(filter).Inc()
}

// ObserveChunks records forwarded stream chunks.
func (m *Metrics) ObserveChunks(provider string, n int) {
	m.streamChunks.WithLabelValues(provider).Add(float64(n))
}

// ObserveAuditDrop records one dropped audit record.
func (m *Metrics) ObserveAuditDrop() {
	m.auditDropped.Inc()
}

// Handler returns the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
