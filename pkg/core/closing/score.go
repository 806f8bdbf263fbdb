package closing

import "github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"

// ScoreTable maps worker ids to their running burden scores for the week.
// Tables are passed by value-copy into every simulation step and only
// committed once a move is accepted, so no candidate evaluation can leak
// state into another.
type ScoreTable map[string]model.BurdenScore

// Clone returns an independent copy.
func (t ScoreTable) Clone() ScoreTable {
	out := make(ScoreTable, len(t))
	for id, s := range t {
		out[id] = s
	}
	return out
}

// Add returns a clone with one more role of the given kind for the worker.
func (t ScoreTable) Add(workerID string, role model.ClosingRole) ScoreTable {
	out := t.Clone()
	s := out[workerID]
	s.WorkerID = workerID
	out[workerID] = s.Add(role)
	return out
}

// Metric is the global fairness objective: the sum of squared penalized
// scores across all scored workers. Lower is fairer.
func (t ScoreTable) Metric() int {
	total := 0
	for _, s := range t {
		p := s.Penalized()
		total += p * p
	}
	return total
}

// derivedScores rebuilds the score table from the base (prior-week
// contributions) plus the roles currently held in the given units, finalized
// units included: a pinned role is a real duty and must weigh on fairness.
// Recomputing from scratch keeps every simulation independent of mutation
// order.
func derivedScores(base ScoreTable, units []*Unit) ScoreTable {
	t := base.Clone()
	add := func(workerID string, role model.ClosingRole) {
		s := t[workerID]
		s.WorkerID = workerID
		t[workerID] = s.Add(role)
	}
	for _, u := range units {
		if !u.assigned() {
			continue
		}
		if u.Primary != "" {
			add(u.Primary, model.RolePrimary)
		}
		add(u.Closer, u.CloserRole)
	}
	return t
}
