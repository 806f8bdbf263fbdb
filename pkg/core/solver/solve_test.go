package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_EmptyModel(t *testing.T) {
	m := NewModel()
	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sol.Objective)
	assert.Empty(t, sol.ChosenVars())
}

func TestSolve_SimpleMaximize(t *testing.T) {
	// Two candidates for a capacity-1 unit: the higher reward wins.
	m := NewModel()
	a := m.AddVar("a", 2)
	b := m.AddVar("b", 3)
	m.AddConstraint("capacity", []Term{{a, 1}, {b, 1}}, LessEq, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sol.Objective, 1e-9)
	assert.False(t, sol.Chosen(a))
	assert.True(t, sol.Chosen(b))
}

func TestSolve_UniquenessAndCapacity(t *testing.T) {
	// Two workers, two units with capacity 1 each; worker 1 is eligible for
	// both, worker 2 only for the first. The optimum sends worker 1 to the
	// second unit even though their reward at the first is higher, because
	// total coverage beats the single best pairing.
	m := NewModel()
	w1u1 := m.AddVar("w1/u1", 5)
	w1u2 := m.AddVar("w1/u2", 4)
	w2u1 := m.AddVar("w2/u1", 3)

	m.AddConstraint("uniq/w1", []Term{{w1u1, 1}, {w1u2, 1}}, LessEq, 1)
	m.AddConstraint("cap/u1", []Term{{w1u1, 1}, {w2u1, 1}}, LessEq, 1)
	m.AddConstraint("cap/u2", []Term{{w1u2, 1}}, LessEq, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 7.0, sol.Objective, 1e-9)
	assert.True(t, sol.Chosen(w1u2))
	assert.True(t, sol.Chosen(w2u1))
	assert.False(t, sol.Chosen(w1u1))

	// A greedy pick of the single best pairing (w1/u1 = 5) would have scored
	// only 5+0: the exact solve is what finds the 7.
}

func TestSolve_FractionalRelaxationRounds(t *testing.T) {
	// Knapsack-shaped model whose LP relaxation is fractional: three items of
	// weight 2 into a budget of 3. The LP takes 1.5 items; the ILP must pick
	// exactly one, and the best one.
	m := NewModel()
	x1 := m.AddVar("x1", 10)
	x2 := m.AddVar("x2", 9)
	x3 := m.AddVar("x3", 8)
	m.AddConstraint("budget", []Term{{x1, 2}, {x2, 2}, {x3, 2}}, LessEq, 3)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, sol.Objective, 1e-9)
	assert.Equal(t, []Var{x1}, sol.ChosenVars())
}

func TestSolve_EqualityConstraint(t *testing.T) {
	// Exactly two of three must be chosen; the two cheapest-to-skip win.
	m := NewModel()
	x1 := m.AddVar("x1", 1)
	x2 := m.AddVar("x2", 5)
	x3 := m.AddVar("x3", 4)
	m.AddConstraint("pick-two", []Term{{x1, 1}, {x2, 1}, {x3, 1}}, Equal, 2)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 9.0, sol.Objective, 1e-9)
	assert.False(t, sol.Chosen(x1))
	assert.True(t, sol.Chosen(x2))
	assert.True(t, sol.Chosen(x3))
}

func TestSolve_NegativeRewardsStayUnchosen(t *testing.T) {
	m := NewModel()
	x1 := m.AddVar("x1", -1)
	x2 := m.AddVar("x2", 2)
	m.AddConstraint("cap", []Term{{x1, 1}, {x2, 1}}, LessEq, 2)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Objective, 1e-9)
	assert.False(t, sol.Chosen(x1))
	assert.True(t, sol.Chosen(x2))
}

func TestSolve_LinkedVariables(t *testing.T) {
	// A day-level variable d may be 1 only when both half-day variables are
	// chosen (d <= m, d <= a), and an equality row pins d to the quota. This
	// is the floater full-day linkage in miniature.
	m := NewModel()
	morning := m.AddVar("morning", 1)
	afternoon := m.AddVar("afternoon", 1)
	day := m.AddVar("day", 0)

	m.AddConstraint("link/morning", []Term{{day, 1}, {morning, -1}}, LessEq, 0)
	m.AddConstraint("link/afternoon", []Term{{day, 1}, {afternoon, -1}}, LessEq, 0)
	m.AddConstraint("quota", []Term{{day, 1}}, Equal, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.True(t, sol.Chosen(day))
	assert.True(t, sol.Chosen(morning))
	assert.True(t, sol.Chosen(afternoon))
}

func TestSolve_Infeasible(t *testing.T) {
	// Two binaries cannot sum to three.
	m := NewModel()
	x1 := m.AddVar("x1", 1)
	x2 := m.AddVar("x2", 1)
	m.AddConstraint("impossible", []Term{{x1, 1}, {x2, 1}}, Equal, 3)

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolve_MalformedModel(t *testing.T) {
	m := NewModel()
	m.AddVar("x", 1)
	m.AddConstraint("bad", []Term{{Var(7), 1}}, LessEq, 1)

	_, err := m.Solve()
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Contains(t, modelErr.Error(), "undefined variable")
}

func TestSolve_DuplicateVariable(t *testing.T) {
	m := NewModel()
	m.AddVar("x", 1)
	m.AddVar("x", 2)

	_, err := m.Solve()
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Contains(t, modelErr.Error(), "declared twice")
}

func TestSolve_ZeroVectorFeasible(t *testing.T) {
	// With only <= constraints the zero assignment is always feasible, so the
	// solver never reports infeasibility even when nothing is worth choosing.
	m := NewModel()
	x := m.AddVar("x", -5)
	m.AddConstraint("cap", []Term{{x, 1}}, LessEq, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, 0.0, sol.Objective)
	assert.Empty(t, sol.ChosenVars())
}

func TestSolve_LargerAssignment(t *testing.T) {
	// 6 workers × 4 units, capacity 2 each, every worker limited to one unit.
	// Total coverage of 6 is achievable and optimal with unit rewards.
	m := NewModel()
	const workers = 6
	const units = 4

	vars := make([][]Var, workers)
	for w := 0; w < workers; w++ {
		vars[w] = make([]Var, units)
		for u := 0; u < units; u++ {
			vars[w][u] = m.AddVar(varName(w, u), 1)
		}
	}
	for w := 0; w < workers; w++ {
		terms := make([]Term, units)
		for u := 0; u < units; u++ {
			terms[u] = Term{vars[w][u], 1}
		}
		m.AddConstraint("uniq", terms, LessEq, 1)
	}
	for u := 0; u < units; u++ {
		terms := make([]Term, workers)
		for w := 0; w < workers; w++ {
			terms[w] = Term{vars[w][u], 1}
		}
		m.AddConstraint("cap", terms, LessEq, 2)
	}

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 6.0, sol.Objective, 1e-9)
	assert.Len(t, sol.ChosenVars(), 6)
}

func varName(w, u int) string {
	return string(rune('a'+w)) + "/" + string(rune('0'+u))
}
