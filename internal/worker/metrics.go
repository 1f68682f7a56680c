package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "camusicgen"
	metricsSubsystem = "worker"
)

// Metrics counts handled requests. A nil *Metrics records nothing.
type Metrics struct {
	// RequestsTotal counts requests by type (init, step, generate, unknown)
	// and outcome (ok, error).
	RequestsTotal *prometheus.CounterVec

	// GenerationsTotal counts generations computed by step and generate.
	GenerationsTotal prometheus.Counter

	// HandleSeconds measures time spent handling a request, by type.
	HandleSeconds *prometheus.HistogramVec
}

// NewMetrics creates the worker metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Requests handled, by message type and outcome.",
		}, []string{"type", "outcome"}),
		GenerationsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "generations_total",
			Help:      "Generations computed by step and generate requests.",
		}),
		HandleSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "handle_seconds",
			Help:      "Time spent handling a request.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"type"}),
	}
}

func (m *Metrics) record(kind MessageType, err error, generations int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RequestsTotal.WithLabelValues(string(kind), outcome).Inc()
	if generations > 0 {
		m.GenerationsTotal.Add(float64(generations))
	}
	m.HandleSeconds.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
