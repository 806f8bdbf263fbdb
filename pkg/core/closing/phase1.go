package closing

import (
	"sort"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// UnassignedUnit reports a closure unit left without its role(s). Non-fatal:
// an operational gap, not an error.
type UnassignedUnit struct {
	Site   string
	Date   string
	Reason string
}

// phase1 runs the greedy constraint-first pass. Units are processed scarcest
// pool first (tie-broken by date), so the most constrained units are decided
// while the most options remain. Returns the units' assignments in place plus
// the unassignable report.
func phase1(units []*Unit, base ScoreTable) []UnassignedUnit {
	// Scarcest first, date ascending on ties.
	order := make([]*Unit, 0, len(units))
	for _, u := range units {
		if !u.Finalized {
			order = append(order, u)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if len(order[i].Candidates) != len(order[j].Candidates) {
			return len(order[i].Candidates) < len(order[j].Candidates)
		}
		return order[i].Date.Before(order[j].Date)
	})

	hasClosed := make(map[string]bool)
	for _, u := range units {
		if u.Finalized && u.Closer != "" {
			hasClosed[u.Closer] = true
		}
	}

	var unassigned []UnassignedUnit
	scores := derivedScores(base, units)

	for _, u := range order {
		switch len(u.Candidates) {
		case 0:
			unassigned = append(unassigned, UnassignedUnit{
				Site: u.Site, Date: u.Date.Format("2006-01-02"),
				Reason: "no full-day worker at site",
			})

		case 1:
			// Degraded: a single person cannot hold two distinct roles, so
			// only the closer duty is assigned, and only if they have not
			// already closed this week.
			only := u.Candidates[0]
			if hasClosed[only] {
				unassigned = append(unassigned, UnassignedUnit{
					Site: u.Site, Date: u.Date.Format("2006-01-02"),
					Reason: "single candidate already closed this week",
				})
				continue
			}
			u.Closer = only
			hasClosed[only] = true
			scores = derivedScores(base, units)

		case 2:
			// Deterministic: the candidate with fewer prior closing duties
			// takes the closer role, the other the primary.
			a, b := u.Candidates[0], u.Candidates[1]
			if scores[b].ClosingCount() < scores[a].ClosingCount() {
				a, b = b, a
			}
			u.Closer = a
			u.Primary = b
			hasClosed[a] = true
			scores = derivedScores(base, units)

		default:
			primary, closer := bestPair(u, units, base)
			u.Primary = primary
			u.Closer = closer
			hasClosed[closer] = true
			scores = derivedScores(base, units)
		}
	}
	return unassigned
}

// bestPair exhaustively evaluates every ordered (primary, closer) pair from
// the pool and returns the one minimizing the global fairness metric, the
// sum of squared penalized scores across all workers scored so far rather
// than just this unit's pool. Candidates are sorted, so score ties resolve
// deterministically to the first pair in order.
func bestPair(u *Unit, units []*Unit, base ScoreTable) (string, string) {
	bestMetric := -1
	var bestPrimary, bestCloser string

	for _, primary := range u.Candidates {
		for _, closer := range u.Candidates {
			if primary == closer {
				continue
			}
			trial := derivedScores(base, units)
			trial = trial.Add(primary, model.RolePrimary)
			trial = trial.Add(closer, u.CloserRole)
			if metric := trial.Metric(); bestMetric < 0 || metric < bestMetric {
				bestMetric = metric
				bestPrimary, bestCloser = primary, closer
			}
		}
	}
	return bestPrimary, bestCloser
}
