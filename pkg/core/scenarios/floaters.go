package scenarios

import (
	"fmt"
	"sort"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/solver"
)

// FloaterInput extends the shared input with the schedule the floaters land
// on: the existing assignments occupy demand-unit capacity and may be
// displaced, at a cost, when a floater placement is worth more.
type FloaterInput struct {
	Input

	// Existing are the assignments already in place for the week. Occupants
	// are matched to units by (slot, category).
	Existing []model.Assignment
}

// Displacement reports an occupant bumped from their slot by a floater.
type Displacement struct {
	WorkerID string
	Slot     model.SlotKey
	Category string
}

// FloaterResult extends the shared result with displaced occupants.
type FloaterResult struct {
	Result
	Displaced []Displacement
}

// PlanFloaters places flexible-quota workers into the weekly schedule.
//
// Rewards are composed additively per candidate: +100 for filling an
// otherwise-unfilled slot, +80 when the floater's preferred site matches,
// +50 when the placement would bump an occupant who does not prefer that
// site, -30 when it would bump one who does, and +10 for any other
// compatible placement. A -20 penalty variable per occupant is linked into
// the capacity rows so displacement always costs the objective, whichever
// reward triggered it.
//
// A day-level variable per (floater, date) may be 1 only when both half-days
// of that date are filled for the floater; an equality row pins the number of
// such full days to the floater's weekly quota, clamped to the days the
// floater can actually work so that a thin availability week stays feasible.
func PlanFloaters(in FloaterInput) (*FloaterResult, error) {
	workers := in.workerByID()

	// Occupants per unit, matched by slot+category.
	type unitKey struct {
		slot     model.SlotKey
		category string
	}
	unitIndex := make(map[unitKey]int, len(in.Units))
	for u, unit := range in.Units {
		unitIndex[unitKey{unit.Slot, unit.Category}] = u
	}
	occupants := make([][]model.Assignment, len(in.Units))
	for _, a := range in.Existing {
		if u, ok := unitIndex[unitKey{a.Slot, a.Category}]; ok {
			occupants[u] = append(occupants[u], a)
		}
	}

	m := solver.NewModel()
	var pairs []pair

	candidates := candidatePairs(in.Input)
	for u, unit := range in.Units {
		free := unit.Capacity() - len(occupants[u])
		for _, slot := range candidates[u] {
			floater := workers[slot.WorkerID]
			if !floater.IsFloater() {
				continue
			}
			reward := floaterReward(floater, unit, free, occupants[u], workers)
			v := m.AddVar(pairName("flt", slot.WorkerID, unit), reward)
			pairs = append(pairs, pair{v: v, workerID: slot.WorkerID, unit: u})
		}
	}

	addUniqueness(m, in.Units, pairs)

	// Capacity with displacement: floaters may exceed the free capacity of a
	// unit only by paying a -20 displacement variable per bumped occupant.
	type displacementVar struct {
		v        solver.Var
		occupant model.Assignment
	}
	var displacements []displacementVar
	pairsByUnit := make(map[int][]pair)
	for _, p := range pairs {
		pairsByUnit[p.unit] = append(pairsByUnit[p.unit], p)
	}
	for u, unitPairs := range pairsByUnit {
		unit := in.Units[u]
		terms := make([]solver.Term, 0, len(unitPairs)+len(occupants[u]))
		for _, p := range unitPairs {
			terms = append(terms, solver.Term{Var: p.v, Coef: 1})
		}
		for oi, occ := range occupants[u] {
			name := fmt.Sprintf("disp/%s/%s/%s/%d", occ.WorkerID, unit.Slot.Date.Format("2006-01-02"), unit.Slot.HalfDay, oi)
			pv := m.AddVar(name, PenaltyFloaterDisplacedWorker)
			terms = append(terms, solver.Term{Var: pv, Coef: -1})
			displacements = append(displacements, displacementVar{v: pv, occupant: occ})
		}
		name := fmt.Sprintf("fltcap/%s/%s/%s", unit.Category, unit.Slot.Date.Format("2006-01-02"), unit.Slot.HalfDay)
		m.AddConstraint(name, terms, solver.LessEq, float64(unit.Capacity()-len(occupants[u])))
	}

	// Full-day linkage and weekly quota per floater.
	addQuotaRows(m, in, pairs, workers)

	sol, err := m.Solve()
	if err != nil {
		return nil, err
	}

	res := &FloaterResult{Result: *extract(sol, in.Units, pairs)}
	for _, d := range displacements {
		if sol.Chosen(d.v) {
			res.Displaced = append(res.Displaced, Displacement{
				WorkerID: d.occupant.WorkerID,
				Slot:     d.occupant.Slot,
				Category: d.occupant.Category,
			})
		}
	}
	return res, nil
}

// floaterReward computes the additive reward for one candidate placement.
func floaterReward(floater model.Worker, unit model.DemandUnit, free int, occ []model.Assignment, workers map[string]model.Worker) float64 {
	reward := 0.0
	if free > 0 {
		reward += RewardFloaterUnfilledSlot
	}
	if floater.SitePreferenceRank(unit.Category) == 1 {
		reward += RewardFloaterPreferredSite
	}
	if free <= 0 && len(occ) > 0 {
		// Placing here bumps someone: a beneficial swap if any occupant does
		// not prefer this site, a harmful one otherwise.
		bumpable := false
		for _, o := range occ {
			if workers[o.WorkerID].SitePreferenceRank(unit.Category) != 1 {
				bumpable = true
				break
			}
		}
		if bumpable {
			reward += RewardFloaterBeneficialSwap
		} else {
			reward += PenaltyFloaterHarmfulSwap
		}
	}
	if reward == 0 {
		reward = RewardFloaterCompatiblePlace
	}
	return reward
}

// addQuotaRows links per-date full-day variables to the half-day decision
// variables and pins their weekly sum to each floater's quota.
func addQuotaRows(m *solver.Model, in FloaterInput, pairs []pair, workers map[string]model.Worker) {
	type halfKey struct {
		workerID string
		date     time.Time
		half     model.HalfDay
	}
	halves := make(map[halfKey][]solver.Term)
	for _, p := range pairs {
		slot := in.Units[p.unit].Slot
		key := halfKey{p.workerID, slot.Date, slot.HalfDay}
		halves[key] = append(halves[key], solver.Term{Var: p.v, Coef: 1})
	}

	type dayKey struct {
		workerID string
		date     time.Time
	}
	fullDays := make(map[dayKey]bool)
	for key := range halves {
		other := halfKey{key.workerID, key.date, model.Afternoon}
		if key.half == model.Afternoon {
			other.half = model.Morning
		}
		if _, ok := halves[other]; ok {
			fullDays[dayKey{key.workerID, key.date}] = true
		}
	}

	// Floaters work full days: every placement needs its day variable on
	// (x <= d), the day variable needs both half-days filled (d <= each
	// half-day sum), and the weekly sum of day variables equals the quota.
	dayVars := make(map[dayKey]solver.Var)
	quotaTerms := make(map[string][]solver.Term)
	for day := range fullDays {
		name := fmt.Sprintf("day/%s/%s", day.workerID, day.date.Format("2006-01-02"))
		dv := m.AddVar(name, 0)
		dayVars[day] = dv

		morning := halves[halfKey{day.workerID, day.date, model.Morning}]
		afternoon := halves[halfKey{day.workerID, day.date, model.Afternoon}]
		m.AddConstraint(name+"/am", append([]solver.Term{{Var: dv, Coef: 1}}, negate(morning)...), solver.LessEq, 0)
		m.AddConstraint(name+"/pm", append([]solver.Term{{Var: dv, Coef: 1}}, negate(afternoon)...), solver.LessEq, 0)

		quotaTerms[day.workerID] = append(quotaTerms[day.workerID], solver.Term{Var: dv, Coef: 1})
	}
	for _, p := range pairs {
		slot := in.Units[p.unit].Slot
		day := dayKey{p.workerID, slot.Date}
		if dv, ok := dayVars[day]; ok {
			m.AddConstraint(fmt.Sprintf("halfonday/%s/%s/%s", p.workerID, slot.Date.Format("2006-01-02"), slot.HalfDay),
				[]solver.Term{{Var: p.v, Coef: 1}, {Var: dv, Coef: -1}}, solver.LessEq, 0)
		} else {
			// No full-day coverage possible on this date: the floater cannot
			// be placed here at all.
			m.AddConstraint(fmt.Sprintf("nohalf/%s/%s/%s", p.workerID, slot.Date.Format("2006-01-02"), slot.HalfDay),
				[]solver.Term{{Var: p.v, Coef: 1}}, solver.LessEq, 0)
		}
	}

	workerIDs := make([]string, 0, len(quotaTerms))
	for id := range quotaTerms {
		workerIDs = append(workerIDs, id)
	}
	sort.Strings(workerIDs)
	for _, id := range workerIDs {
		quota := workers[id].WeeklyTargetDays
		if possible := len(quotaTerms[id]); quota > possible {
			quota = possible
		}
		m.AddConstraint("quota/"+id, quotaTerms[id], solver.Equal, float64(quota))
	}
}

func negate(terms []solver.Term) []solver.Term {
	out := make([]solver.Term, len(terms))
	for i, t := range terms {
		out[i] = solver.Term{Var: t.Var, Coef: -t.Coef}
	}
	return out
}
