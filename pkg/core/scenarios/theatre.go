package scenarios

import "github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/solver"

// TheatreInput extends the shared input with the category split: front-desk
// and reception role tags score half a surgical role, because an unfilled
// surgical role is operationally worse than an unfilled desk.
type TheatreInput struct {
	Input

	// FrontDeskCategories are the role tags scored at the lower weight.
	FrontDeskCategories []string
}

// PlanTheatre solves the operating-theatre personnel scenario.
func PlanTheatre(in TheatreInput) (*Result, error) {
	frontDesk := make(map[string]bool, len(in.FrontDeskCategories))
	for _, c := range in.FrontDeskCategories {
		frontDesk[c] = true
	}

	m := solver.NewModel()
	var pairs []pair

	workers := in.workerByID()
	candidates := candidatePairs(in.Input)
	for u, unit := range in.Units {
		for _, slot := range candidates[u] {
			reward := RewardTheatreSurgicalRole
			if frontDesk[unit.Category] {
				reward = RewardTheatreFrontDesk
				if workers[slot.WorkerID].PrefersAdministrative {
					reward += RewardTheatreAdminAffinity
				}
			}
			v := m.AddVar(pairName("thr", slot.WorkerID, unit), reward)
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
