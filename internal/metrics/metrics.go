// Package metrics records planner outcomes in a Prometheus registry that
// can be written out for the node exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/costela/dietlp/nutrition"
)

const namespace = "dietlp"

// Metrics holds its own registry; nothing is registered globally.
type Metrics struct {
	registry *prometheus.Registry

	PlansTotal  *prometheus.CounterVec // by status
	Pivots      prometheus.Histogram
	RunDuration prometheus.Histogram
	PlanCost    *prometheus.GaugeVec // by calorie target
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.PlansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plans_total",
		Help:      "Number of diets planned, by solve status.",
	}, []string{"status"})

	m.Pivots = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simplex_pivots",
		Help:      "Simplex pivots per plan, both phases.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a planning run, including batches.",
		Buckets:   prometheus.DefBuckets,
	})

	m.PlanCost = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "plan_cost",
		Help:      "Cost of the most recent optimal plan, by calorie target.",
	}, []string{"calories"})

	m.registry.MustRegister(m.PlansTotal, m.Pivots, m.RunDuration, m.PlanCost)

	return m
}

// Observe records one planned diet. calories labels the cost gauge and may
// be empty.
func (m *Metrics) Observe(r *nutrition.Report, calories string) {
	m.PlansTotal.WithLabelValues(r.Status.String()).Inc()
	m.Pivots.Observe(float64(r.Pivots))

	if r.Optimal() {
		m.PlanCost.WithLabelValues(calories).Set(r.Objective)
	}
}

// ObserveRun records the duration of a whole run.
func (m *Metrics) ObserveRun(d time.Duration) {
	m.RunDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile atomically writes every metric in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
