// Package observability provides the zap logger, Prometheus metrics and
// request-scoped context helpers shared by the HTTP stack and the
// interceptor.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "booking"

// Metrics holds every collector exported by the service.
//
//   - layer_calls_total: interceptor exits by operation and outcome
//     (ok, warning, client_error, fatal)
//   - layer_call_duration_seconds: latency of each wrapped operation
//   - http_requests_total / http_request_duration_seconds: edge traffic
//   - events_published_total: lifecycle events by type and result
type Metrics struct {
	LayerCalls          *prometheus.CounterVec
	LayerDuration       *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EventsPublished     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.  Tests pass
// a fresh prometheus.NewRegistry() so runs do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LayerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layer_calls_total",
			Help:      "Wrapped layer operations by outcome",
		}, []string{"operation", "outcome"}),
		LayerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layer_call_duration_seconds",
			Help:      "Duration of wrapped layer operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Reservation lifecycle events by type and result",
		}, []string{"type", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.LayerCalls, m.LayerDuration, m.HTTPRequestsTotal, m.HTTPRequestDuration, m.EventsPublished)
	}
	return m
}
