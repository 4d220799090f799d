package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MessagingMetrics records outbound WhatsApp dispatch outcomes.
type MessagingMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	retries  *prometheus.CounterVec
}

// NewMessagingMetrics registers the dispatch metrics on the provided registerer.
func NewMessagingMetrics(reg prometheus.Registerer) *MessagingMetrics {
	if reg == nil {
		return &MessagingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "whatsapp_dispatch_duration_seconds",
		Help:    "Duration of outbound WhatsApp dispatches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whatsapp_dispatch_success",
		Help: "Successful WhatsApp dispatches.",
	}, []string{"kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whatsapp_dispatch_failure",
		Help: "WhatsApp dispatches that exhausted all attempts.",
	}, []string{"kind"})
	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "whatsapp_dispatch_retries",
		Help: "WhatsApp dispatch attempts that failed and were retried.",
	}, []string{"kind"})
	reg.MustRegister(duration, success, failure, retries)
	return &MessagingMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		retries:  retries,
	}
}

// ObserveDuration records the duration for a dispatch of the given kind.
func (m *MessagingMetrics) ObserveDuration(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given kind.
func (m *MessagingMetrics) IncSuccess(kind string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailure increments the failure counter for the given kind.
func (m *MessagingMetrics) IncFailure(kind string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncRetry increments the retry counter for the given kind.
func (m *MessagingMetrics) IncRetry(kind string) {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
