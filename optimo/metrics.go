package optimo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors a Client updates after every call.
type Metrics struct {
	// Requests counts calls by operation and outcome.
	Requests *prometheus.CounterVec
	// Duration records call latency in seconds, including serialization.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "optimo_requests_total", Help: "OptimoRoute API calls by operation and outcome."},
			[]string{"operation", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "optimo_request_duration_seconds", Help: "OptimoRoute API call duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.Requests, m.Duration)
	return m
}

func (m *Metrics) observe(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(d.Seconds())
}
