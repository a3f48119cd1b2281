// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warikan"

// Metrics groups every collector so tests can use a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	SessionsActive  prometheus.Gauge
	OrdersFinalized prometheus.Counter
	OrderTotal      prometheus.Histogram
	SplitsComputed  *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry
// together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
		OrdersFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_finalized_total",
			Help:      "Orders finalized and archived.",
		}),
		OrderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total",
			Help:      "Order totals in the smallest currency unit.",
			Buckets:   prometheus.ExponentialBuckets(500, 2, 10),
		}),
		SplitsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_computed_total",
			Help:      "Split calculations by policy and completeness.",
		}, []string{"policy", "complete"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.SessionsActive,
		m.OrdersFinalized,
		m.OrderTotal,
		m.SplitsComputed,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOrder records one finalized order.
func (m *Metrics) ObserveOrder(total int64) {
	m.OrdersFinalized.Inc()
	m.OrderTotal.Observe(float64(total))
}

// ObserveSplit records one split calculation.
func (m *Metrics) ObserveSplit(policy string, incomplete bool) {
	complete := "true"
	if incomplete {
		complete = "false"
	}
	m.SplitsComputed.WithLabelValues(policy, complete).Inc()
}
