package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.ObserveDuration("prune", 250*time.Millisecond)
	m.IncSuccess("prune")
	m.IncFailure("")

	assert.InDelta(t, 1, testutil.ToFloat64(m.success.WithLabelValues("prune")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failure.WithLabelValues("unknown")), 0)

	n, err := testutil.GatherAndCount(reg, "donations_job_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDesignationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDesignationMetrics(reg)

	m.IncOutcome("designate", "changed")
	m.IncOutcome("designate", "changed")
	m.IncMirrorFailure("undesignate")
	m.SetOpenSyncIssues(4)

	assert.InDelta(t, 2, testutil.ToFloat64(m.outcomes.WithLabelValues("designate", "changed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.mirrorFailures.WithLabelValues("undesignate")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.openSyncIssues), 0)
}

func TestNilRegistererIsNoop(t *testing.T) {
	var nilMetrics *DesignationMetrics

	assert.NotPanics(t, func() {
		NewCronJobMetrics(nil).IncSuccess("x")
		NewDesignationMetrics(nil).IncOutcome("x", "y")
		nilMetrics.IncMirrorFailure("x")
		nilMetrics.SetOpenSyncIssues(1)
	})
}
