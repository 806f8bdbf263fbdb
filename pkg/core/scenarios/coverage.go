package scenarios

import (
	"fmt"
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/solver"
)

// Relocation reports a worker whose morning and afternoon categories differ
// on one date: the observable face of the mid-day relocation penalty.
type Relocation struct {
	WorkerID          string
	Date              time.Time
	MorningCategory   string
	AfternoonCategory string
}

// CoverageResult extends the shared result with the relocation report.
type CoverageResult struct {
	Result
	Relocations []Relocation
}

// PlanCoverage solves ad-hoc site coverage. Each unit of coverage is worth
// 100/ceil(demand), so filling any unit completely is worth 100 points
// regardless of its size; a -0.01 penalty variable fires for every worker
// whose morning and afternoon fall in different categories on the same day,
// discouraging unnecessary mid-day relocation without ever outweighing
// coverage.
func PlanCoverage(in Input) (*CoverageResult, error) {
	m := solver.NewModel()
	var pairs []pair

	candidates := candidatePairs(in)
	for u, unit := range in.Units {
		capacity := unit.Capacity()
		if capacity == 0 {
			continue
		}
		reward := RewardCoverageFullUnit / float64(capacity)
		for _, slot := range candidates[u] {
			v := m.AddVar(pairName("cov", slot.WorkerID, unit), reward)
			pairs = append(pairs, pair{v: v, workerID: slot.WorkerID, unit: u})
		}
	}

	addUniqueness(m, in.Units, pairs)
	addCapacity(m, in.Units, pairs)

	// Relocation penalty variables: y >= x_morning + x_afternoon - 1 for
	// every cross-category pair of one worker's candidates on one date. The
	// negative reward makes y stay 0 unless both pairings are chosen.
	type relocationVar struct {
		v solver.Var
		a pair
		b pair
	}
	var relocations []relocationVar
	for i, a := range pairs {
		for _, b := range pairs[i+1:] {
			if a.workerID != b.workerID {
				continue
			}
			ua, ub := in.Units[a.unit], in.Units[b.unit]
			if !ua.Slot.Date.Equal(ub.Slot.Date) || ua.Slot.HalfDay == ub.Slot.HalfDay {
				continue
			}
			if ua.Category == ub.Category {
				continue
			}
			name := fmt.Sprintf("reloc/%s/%s/%s/%s", a.workerID, ua.Slot.Date.Format("2006-01-02"), ua.Category, ub.Category)
			y := m.AddVar(name, PenaltyMidDayRelocation)
			m.AddConstraint(name+"/link", []solver.Term{
				{Var: a.v, Coef: 1},
				{Var: b.v, Coef: 1},
				{Var: y, Coef: -1},
			}, solver.LessEq, 1)
			relocations = append(relocations, relocationVar{v: y, a: a, b: b})
		}
	}

	sol, err := m.Solve()
	if err != nil {
		return nil, err
	}

	res := &CoverageResult{Result: *extract(sol, in.Units, pairs)}
	for _, r := range relocations {
		if !sol.Chosen(r.v) {
			continue
		}
		ua, ub := in.Units[r.a.unit], in.Units[r.b.unit]
		rel := Relocation{WorkerID: r.a.workerID, Date: ua.Slot.Date}
		if ua.Slot.HalfDay == model.Morning {
			rel.MorningCategory, rel.AfternoonCategory = ua.Category, ub.Category
		} else {
			rel.MorningCategory, rel.AfternoonCategory = ub.Category, ua.Category
		}
		res.Relocations = append(res.Relocations, rel)
	}
	return res, nil
}
