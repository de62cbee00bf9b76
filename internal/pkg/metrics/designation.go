package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DesignationMetrics counts ledger operations and inventory mirror drift.
type DesignationMetrics struct {
	outcomes       *prometheus.CounterVec
	mirrorFailures *prometheus.CounterVec
	openSyncIssues prometheus.Gauge
}

func NewDesignationMetrics(reg prometheus.Registerer) *DesignationMetrics {
	if reg == nil {
		return &DesignationMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_operations_total",
		Help:      "Ledger operations by operation and outcome (changed, unchanged, rejected, stale, failed).",
	}, []string{"operation", "outcome"})
	mirrorFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stockit_mirror_failures_total",
		Help:      "Inventory mirror calls that failed after the ledger was committed.",
	}, []string{"operation"})
	openSyncIssues := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stockit_open_sync_issues",
		Help:      "Unresolved inventory mirror drift flags.",
	})
	reg.MustRegister(outcomes, mirrorFailures, openSyncIssues)
	return &DesignationMetrics{
		outcomes:       outcomes,
		mirrorFailures: mirrorFailures,
		openSyncIssues: openSyncIssues,
	}
}

func (m *DesignationMetrics) IncOutcome(operation, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

func (m *DesignationMetrics) IncMirrorFailure(operation string) {
	if m == nil || m.mirrorFailures == nil {
		return
	}
	m.mirrorFailures.WithLabelValues(normalizeLabel(operation)).Inc()
}

func (m *DesignationMetrics) SetOpenSyncIssues(n int64) {
	if m == nil || m.openSyncIssues == nil {
		return
	}
	m.openSyncIssues.Set(float64(n))
}
