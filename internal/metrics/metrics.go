// Package metrics wires rebound's request pipeline into
// prometheus/client_golang, registering counter/histogram/gauge vectors
// once at construction, incrementing them from request-path call sites,
// and serving them via promhttp.Handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors rebound exposes.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	queueDepth       prometheus.Gauge
}

// Outcome labels the result of handling one request.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeRuleMiss        Outcome = "rule_miss"
	OutcomeUpstreamFailure Outcome = "upstream_failure"
)

// New registers rebound's collectors against reg. Passing
// prometheus.NewRegistry() (rather than the global DefaultRegisterer)
// keeps repeated construction in tests from panicking on duplicate
// registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rebound_requests_total",
			Help: "Total requests handled, by matched rule pattern and outcome.",
		}, []string{"rule", "outcome"}),

		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rebound_upstream_request_duration_seconds",
			Help:    "Upstream round-trip duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"rule"}),

		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rebound_queue_depth",
			Help: "Current depth of the inbound request queue.",
		}),
	}
}

// RecordRequest increments the request counter for the given rule pattern
// ("" for the Error sentinel) and outcome.
func (m *Metrics) RecordRequest(rulePattern string, outcome Outcome) {
	m.requestsTotal.WithLabelValues(rulePattern, string(outcome)).Inc()
}

// ObserveUpstreamDuration records how long an upstream round trip took.
func (m *Metrics) ObserveUpstreamDuration(rulePattern string, d time.Duration) {
	m.upstreamDuration.WithLabelValues(rulePattern).Observe(d.Seconds())
}

// SetQueueDepth reports the queue's current depth.
func (m *Metrics) SetQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}

// Handler returns an http.Handler serving the registered collectors in
// Prometheus text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
