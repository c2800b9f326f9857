package metrics

import (
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GateMetrics counts usage-gate decisions.
type GateMetrics interface {
	IncAllowed(feature string)
	IncDenied(feature string, reason string)
	IncTrackingFailed(feature string)
}

// Denial reasons used as metric labels.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonRateLimited     = "rate_limited"
	ReasonQuotaExceeded   = "quota_exceeded"
	ReasonStoreError      = "store_error"
)

type gateMetrics struct {
	log            *logger.Logger
	decisions      *prometheus.CounterVec
	denials        *prometheus.CounterVec
	trackingFailed *prometheus.CounterVec
}

// NewGateMetrics creates gate decision metrics on the given registry.
func NewGateMetrics(registry *prometheus.Registry, log *logger.Logger) GateMetrics {
	decisions := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_gate_decisions_total",
			Help: "The total number of gate decisions by feature and outcome",
		},
		[]string{"feature", "outcome"},
	)

	denials := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_gate_denials_total",
			Help: "The total number of gate denials by feature and reason",
		},
		[]string{"feature", "reason"},
	)

	trackingFailed := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_tracking_failures_total",
			Help: "The total number of usage tracking calls that failed",
		},
		[]string{"feature"},
	)

	return &gateMetrics{
		log:            log,
		decisions:      decisions,
		denials:        denials,
		trackingFailed: trackingFailed,
	}
}

// IncAllowed increments the allowed decision counter.
func (m *gateMetrics) IncAllowed(feature string) {
	m.decisions.WithLabelValues(feature, "allowed").Inc()
}

// IncDenied increments the denied decision counter with its reason.
func (m *gateMetrics) IncDenied(feature string, reason string) {
	m.decisions.WithLabelValues(feature, "denied").Inc()
	m.denials.WithLabelValues(feature, reason).Inc()
}

// IncTrackingFailed increments the tracking failure counter.
func (m *gateMetrics) IncTrackingFailed(feature string) {
	m.trackingFailed.WithLabelValues(feature).Inc()
}
