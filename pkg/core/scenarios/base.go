package scenarios

import "github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/solver"

// PlanBase solves the base recurring schedule: pure maximize-coverage with a
// unit reward per satisfied (worker, demand unit) pairing.
func PlanBase(in Input) (*Result, error) {
	m := solver.NewModel()
	var pairs []pair

	candidates := candidatePairs(in)
	for u := range in.Units {
		for _, slot := range candidates[u] {
			v := m.AddVar(pairName("base", slot.WorkerID, in.Units[u]), RewardBaseCoverage)
			pairs = append(pairs, pair{v: v, workerID: slot.WorkerID, unit: u})
		}
	}

	addUniqueness(m, in.Units, pairs)
	addCapacity(m, in.Units, pairs)

	sol, err := m.Solve()
	if err != nil {
		return nil, err
	}
	return extract(sol, in.Units, pairs), nil
}
