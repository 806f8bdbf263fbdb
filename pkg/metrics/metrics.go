// Package metrics provides Prometheus observability metrics for the
// scheduling services: solver run outcomes plus closing and room placement
// health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// SolveRunsTotal counts solver runs by scenario and outcome.
var SolveRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "solve_runs_total",
	Help:      "Total solver runs by scenario and outcome",
}, []string{"scenario", "outcome"})

// SolveDurationSeconds tracks time to solve one scenario.
var SolveDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "solve_duration_seconds",
	Help:      "Time taken to solve one scenario formulation",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
}, []string{"scenario"})

// SolveNodesExplored tracks branch-and-bound nodes per run.
var SolveNodesExplored = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "solve_nodes_explored",
	Help:      "Branch and bound nodes explored per solver run",
	Buckets:   []float64{1, 10, 100, 1000, 10000, 100000},
}, []string{"scenario"})

// DemandCapacityTotal tracks total demanded half-day places in the last run.
var DemandCapacityTotal = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "demand_capacity_total",
	Help:      "Total demanded half-day places in the last run",
}, []string{"scenario"})

// DemandSatisfiedTotal tracks assigned half-day places in the last run.
var DemandSatisfiedTotal = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "demand_satisfied_total",
	Help:      "Assigned half-day places in the last run",
}, []string{"scenario"})

// ClosingUnitsUnassigned tracks closure units left without a full pair.
var ClosingUnitsUnassigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "closing_units_unassigned",
	Help:      "Closure units left without a primary and closer pair in the last run",
})

// ClosingExchangeIterations tracks refinement passes in the last closing run.
var ClosingExchangeIterations = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "closing_exchange_iterations",
	Help:      "Exchange refinement passes applied in the last closing run",
})

// RoomsUnassigned tracks procedures left without a room in the last run.
var RoomsUnassigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "rooms_unassigned",
	Help:      "Procedures left without a room in the last allocation run",
})
