package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records per-request counters and upstream latency.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	upstreamSeconds *prometheus.HistogramVec
}

// New creates a collector backed by its own registry, so tests and multiple
// instances never collide on the global one.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chat_proxy",
		Name:      "requests_total",
		Help:      "Chat requests by provider kind and relayed status code.",
	}, []string{"provider", "status"})

	upstreamSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chat_proxy",
		Name:      "upstream_seconds",
		Help:      "Latency of upstream inference calls.",
		// Generations regularly take tens of seconds.
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"provider"})

	registry.MustRegister(requestsTotal, upstreamSeconds)

	return &Metrics{
		registry:        registry,
		requestsTotal:   requestsTotal,
		upstreamSeconds: upstreamSeconds,
	}
}

// ObserveChat records one completed chat request.
func (m *Metrics) ObserveChat(provider string, status int, upstream time.Duration) {
	m.requestsTotal.WithLabelValues(provider, strconv.Itoa(status)).Inc()
	m.upstreamSeconds.WithLabelValues(provider).Observe(upstream.Seconds())
}

// HTTPHandler exposes the registry in Prometheus text format.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
