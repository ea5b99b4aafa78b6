// Package metrics exports Prometheus metrics for Prediction Guard calls.
//
// Metrics are fed by client callbacks:
//
//	registry := callback.NewRegistry()
//	metrics.New(prometheus.DefaultRegisterer).Attach(registry)
//	client, err := predictionguard.NewClient(cfg, predictionguard.WithCallbacks(registry))
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/predictionguard/go-client/callback"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the client's Prometheus collectors. The in-flight gauge
// rises on every before-request event and falls on the matching success or
// failure event.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	StreamIncrements *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
}

// New creates the metrics and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictionguard_requests_total",
				Help: "Total number of Prediction Guard requests",
			},
			[]string{"capability", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "predictionguard_request_duration_seconds",
				Help:    "Prediction Guard request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"capability"},
		),
		StreamIncrements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictionguard_stream_increments_total",
				Help: "Total number of streamed text increments",
			},
			[]string{"capability"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "predictionguard_requests_in_flight",
				Help: "Number of Prediction Guard requests currently running",
			},
		),
	}
}

// Attach registers callbacks on r that record every request made by a
// client using r.
func (m *Metrics) Attach(r *callback.Registry) {
	r.RegisterBeforeRequest(func(_ context.Context, _ *callback.BeforeRequestEvent) error {
		m.RequestsInFlight.Inc()
		return nil
	})
	r.RegisterSuccess(func(_ context.Context, e *callback.SuccessEvent) {
		m.observe(e.Capability, StatusSuccess, e.Duration.Seconds())
	})
	r.RegisterFailure(func(_ context.Context, e *callback.FailureEvent) {
		m.observe(e.Capability, StatusError, e.Duration.Seconds())
	})
	r.RegisterStream(func(_ context.Context, e *callback.StreamEvent) {
		m.StreamIncrements.WithLabelValues(e.Capability).Inc()
	})
}

func (m *Metrics) observe(capability, status string, seconds float64) {
	m.RequestsInFlight.Dec()
	m.RequestsTotal.WithLabelValues(capability, status).Inc()
	m.RequestDuration.WithLabelValues(capability).Observe(seconds)
}
