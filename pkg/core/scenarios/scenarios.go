// Package scenarios instantiates the shared binary-assignment formulation for
// each scheduling scenario: base recurring schedule, ad-hoc site coverage,
// operating-theatre personnel and flexible-floater placement. Each scenario
// computes its reward coefficients up front, hands them to the solver
// untouched, and maps the optimal decision vector back to assignments.
package scenarios

import (
	"fmt"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/solver"
)

// Input is the static snapshot a scenario solves over.
type Input struct {
	Units        []model.DemandUnit
	Availability []model.AvailabilitySlot
	Workers      []model.Worker
}

// Stats are the per-run solver statistics surfaced to callers and metrics.
type Stats struct {
	Objective       float64
	TotalDemand     int
	TotalSatisfied  int
	SatisfactionPct float64
	Feasible        bool
	NodesExplored   int
}

// Result is a scenario's output: the optimal assignments plus run statistics.
type Result struct {
	Assignments []model.Assignment
	Stats       Stats
}

// pair is one candidate (worker, demand unit) decision variable.
type pair struct {
	v        solver.Var
	workerID string
	unit     int
}

// workerByID indexes the snapshot's workers.
func (in Input) workerByID() map[string]model.Worker {
	out := make(map[string]model.Worker, len(in.Workers))
	for _, w := range in.Workers {
		out[w.ID] = w
	}
	return out
}

// candidatePairs enumerates every eligible (worker, unit) combination:
// the worker has an availability slot matching the unit's half-day and
// covering the unit's category.
func candidatePairs(in Input) [][]model.AvailabilitySlot {
	bySlot := make(map[model.SlotKey][]model.AvailabilitySlot)
	for _, a := range in.Availability {
		bySlot[a.Slot] = append(bySlot[a.Slot], a)
	}

	out := make([][]model.AvailabilitySlot, len(in.Units))
	for u, unit := range in.Units {
		for _, a := range bySlot[unit.Slot] {
			if a.EligibleFor(unit.Category) {
				out[u] = append(out[u], a)
			}
		}
	}
	return out
}

// addUniqueness adds one row per (worker, half-day slot): a worker holds at
// most one assignment per half-day.
func addUniqueness(m *solver.Model, units []model.DemandUnit, pairs []pair) {
	type slotKey struct {
		workerID string
		slot     model.SlotKey
	}
	rows := make(map[slotKey][]solver.Term)
	for _, p := range pairs {
		key := slotKey{p.workerID, units[p.unit].Slot}
		rows[key] = append(rows[key], solver.Term{Var: p.v, Coef: 1})
	}
	for key, terms := range rows {
		if len(terms) < 2 {
			continue // a single candidate cannot violate uniqueness
		}
		name := fmt.Sprintf("uniq/%s/%s/%s", key.workerID, key.slot.Date.Format("2006-01-02"), key.slot.HalfDay)
		m.AddConstraint(name, terms, solver.LessEq, 1)
	}
}

// addCapacity adds one row per demand unit: assigned count <= capacity.
func addCapacity(m *solver.Model, units []model.DemandUnit, pairs []pair) {
	rows := make(map[int][]solver.Term)
	for _, p := range pairs {
		rows[p.unit] = append(rows[p.unit], solver.Term{Var: p.v, Coef: 1})
	}
	for u, terms := range rows {
		name := fmt.Sprintf("cap/%s/%s/%s", units[u].Category, units[u].Slot.Date.Format("2006-01-02"), units[u].Slot.HalfDay)
		m.AddConstraint(name, terms, solver.LessEq, float64(units[u].Capacity()))
	}
}

// extract maps the chosen decision variables back to assignments and builds
// the run statistics.
func extract(sol *solver.Solution, units []model.DemandUnit, pairs []pair) *Result {
	res := &Result{
		Stats: Stats{
			Objective:     sol.Objective,
			TotalDemand:   totalCapacity(units),
			Feasible:      true,
			NodesExplored: sol.NodesExplored,
		},
	}
	for _, p := range pairs {
		if !sol.Chosen(p.v) {
			continue
		}
		unit := units[p.unit]
		res.Assignments = append(res.Assignments, model.Assignment{
			WorkerID:       p.workerID,
			Slot:           unit.Slot,
			Category:       unit.Category,
			LinkedEntityID: unit.LinkedEntityID,
		})
	}
	res.Stats.TotalSatisfied = len(res.Assignments)
	if res.Stats.TotalDemand > 0 {
		res.Stats.SatisfactionPct = 100 * float64(res.Stats.TotalSatisfied) / float64(res.Stats.TotalDemand)
	}
	return res
}

func totalCapacity(units []model.DemandUnit) int {
	total := 0
	for _, u := range units {
		total += u.Capacity()
	}
	return total
}

func pairName(prefix, workerID string, unit model.DemandUnit) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", prefix, workerID,
		unit.Slot.Date.Format("2006-01-02"), unit.Slot.HalfDay, unit.Category)
}
