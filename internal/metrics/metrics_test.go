package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/dietlp"
	"github.com/costela/dietlp/nutrition"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe(&nutrition.Report{Status: dietlp.SolutionOptimal, Objective: 12.5, Pivots: 4}, "2000")
	m.Observe(&nutrition.Report{Status: dietlp.SolutionOptimal, Objective: 13, Pivots: 5}, "2000")
	m.Observe(&nutrition.Report{Status: dietlp.SolutionInfeasible, Pivots: 2}, "1800")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues("optimal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansTotal.WithLabelValues("infeasible")))
	assert.Equal(t, 13.0, testutil.ToFloat64(m.PlanCost.WithLabelValues("2000")))

	// no cost is recorded for non-optimal plans
	assert.Equal(t, 1, testutil.CollectAndCount(m.PlanCost))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Pivots))
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.Observe(&nutrition.Report{Status: dietlp.SolutionUnbounded, Pivots: 1}, "")
	m.ObserveRun(250 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "dietlp.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dietlp_plans_total{status="unbounded"} 1`)
	assert.Contains(t, string(data), "dietlp_run_duration_seconds_count 1")
	assert.Contains(t, string(data), "dietlp_simplex_pivots_bucket")
}
