package closing

import (
	"time"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/model"
)

// RoleAssignment is one committed closing role.
type RoleAssignment struct {
	Site     string
	Date     time.Time
	WorkerID string
	Role     model.ClosingRole
}

// Result is the assignor's full output for one week.
type Result struct {
	Assignments []RoleAssignment
	Unassigned  []UnassignedUnit

	// Scores is the final burden score per worker, prior contributions
	// included.
	Scores ScoreTable

	// Metric is the final global fairness metric (sum of squared penalized
	// scores).
	Metric int

	// ExchangeIterations counts the phase-2 moves applied.
	ExchangeIterations int
}

// Assign runs both phases over the given closure units. Base carries the
// burden contributions of prior weeks only; roles held by the units
// themselves, finalized included, are counted from the units. Base is never
// mutated. Units are decided in place: finalized units keep their roles,
// every other unit gets its roles committed only once both are decided.
func Assign(units []*Unit, base ScoreTable) *Result {
	if base == nil {
		base = ScoreTable{}
	}

	unassigned := phase1(units, base)
	iterations := phase2(units, base)

	scores := derivedScores(base, units)
	return &Result{
		Assignments:        roleAssignments(units),
		Unassigned:         unassigned,
		Scores:             scores,
		Metric:             scores.Metric(),
		ExchangeIterations: iterations,
	}
}
