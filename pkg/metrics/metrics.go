package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records timing and outcome for state-store operations.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of state store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store", "op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_success",
		Help: "Successful state store operations.",
	}, []string{"store", "op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_failure",
		Help: "Failed state store operations.",
	}, []string{"store", "op"})
	reg.MustRegister(duration, success, failure)
	return &StoreMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (s *StoreMetrics) ObserveDuration(store, op string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (s *StoreMetrics) IncSuccess(store, op string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (s *StoreMetrics) IncFailure(store, op string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
