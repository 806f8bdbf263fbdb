package closing

import "github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"

// maxExchangeIterations caps the phase-2 hill climb. Each iteration applies
// at most one move, so the cap bounds total work even if the metric keeps
// finding tiny improvements.
const maxExchangeIterations = 50

// phase2 runs the local-search exchange: while the global fairness metric
// strictly improves and the iteration cap is not reached, apply the single
// best improving move found in the iteration. Moves are (a) a primary/closer
// swap within one unit and (b) a paired full exchange of both roles between
// two units. Deterministic hill climbing: no worsening move is ever accepted,
// so a local optimum ends the phase.
//
// Returns the number of iterations that applied a move.
func phase2(units []*Unit, base ScoreTable) int {
	movable := make([]*Unit, 0, len(units))
	for _, u := range units {
		// Degraded single-role units have no pair to move.
		if !u.Finalized && u.Primary != "" && u.Closer != "" {
			movable = append(movable, u)
		}
	}

	iterations := 0
	for ; iterations < maxExchangeIterations; iterations++ {
		current := derivedScores(base, units).Metric()

		bestMetric := current
		var apply func()

		// Move (a): swap primary and closer within one unit. Always legal,
		// since both workers are in the unit's pool by construction.
		for _, u := range movable {
			u := u
			metric := simulate(units, base, func() {
				u.Primary, u.Closer = u.Closer, u.Primary
			}, func() {
				u.Primary, u.Closer = u.Closer, u.Primary
			})
			if metric < bestMetric {
				bestMetric = metric
				apply = func() { u.Primary, u.Closer = u.Closer, u.Primary }
			}
		}

		// Move (b): exchange both roles between two units. Legal only when
		// each worker is eligible at the other unit and neither closer ends
		// up with more than one closing duty.
		for i, a := range movable {
			for _, b := range movable[i+1:] {
				a, b := a, b
				if !exchangeLegal(a, b) {
					continue
				}
				swap := func() {
					a.Primary, b.Primary = b.Primary, a.Primary
					a.Closer, b.Closer = b.Closer, a.Closer
				}
				metric := simulate(units, base, swap, swap)
				if metric < bestMetric {
					if !exchangeCountsOK(units, base, a, b) {
						continue
					}
					bestMetric = metric
					apply = swap
				}
			}
		}

		if apply == nil {
			break // local optimum
		}
		// Atomic application: the simulation already validated the move; the
		// commit is a plain in-place swap followed by nothing else this
		// iteration.
		apply()
	}
	return iterations
}

// simulate applies a move, reads the metric, and reverts. The score table is
// rebuilt from scratch inside, so no intermediate state can leak.
func simulate(units []*Unit, base ScoreTable, do, undo func()) int {
	do()
	metric := derivedScores(base, units).Metric()
	undo()
	return metric
}

// exchangeLegal checks the eligibility half of the move-(b) rules.
func exchangeLegal(a, b *Unit) bool {
	return a.eligible(b.Primary) && a.eligible(b.Closer) &&
		b.eligible(a.Primary) && b.eligible(a.Closer)
}

// exchangeCountsOK checks the closing-duty cap post-swap: neither incoming
// closer may exceed one secondary/tertiary duty.
func exchangeCountsOK(units []*Unit, base ScoreTable, a, b *Unit) bool {
	swap := func() {
		a.Primary, b.Primary = b.Primary, a.Primary
		a.Closer, b.Closer = b.Closer, a.Closer
	}
	swap()
	scores := derivedScores(base, units)
	ok := scores[a.Closer].ClosingCount() <= 1 && scores[b.Closer].ClosingCount() <= 1
	swap()
	return ok
}

// roleAssignments materializes the committed roles as assignment records
// attached to the unit's site and date.
func roleAssignments(units []*Unit) []RoleAssignment {
	var out []RoleAssignment
	for _, u := range units {
		if u.Finalized || !u.assigned() {
			continue
		}
		if u.Primary != "" {
			out = append(out, RoleAssignment{
				Site: u.Site, Date: u.Date, WorkerID: u.Primary, Role: model.RolePrimary,
			})
		}
		out = append(out, RoleAssignment{
			Site: u.Site, Date: u.Date, WorkerID: u.Closer, Role: u.CloserRole,
		})
	}
	return out
}
