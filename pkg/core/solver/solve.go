package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	// integralityTol decides when a relaxation value counts as 0 or 1.
	integralityTol = 1e-6

	// boundTol guards pruning against float noise in LP objectives.
	boundTol = 1e-9

	// maxNodes caps the branch-and-bound tree. The scheduling models here are
	// small (tens of workers, a week of slots); hitting the cap means the
	// model is pathological and aborting beats spinning.
	maxNodes = 200000
)

const (
	freeVar int8 = -1
)

// Solve runs branch-and-bound to a proven 0/1 optimum. It returns
// ErrInfeasible if no feasible assignment exists, or a *ModelError if the
// model was malformed during construction.
func (m *Model) Solve() (*Solution, error) {
	if m.err != nil {
		return nil, m.err
	}
	n := len(m.objective)
	if n == 0 {
		return &Solution{values: nil}, nil
	}

	root := make([]int8, n)
	for i := range root {
		root[i] = freeVar
	}

	type node struct {
		fixed []int8
		bound float64
	}

	var (
		bestObj  = math.Inf(-1)
		bestX    []float64
		haveBest bool
		explored int
	)

	stack := []node{{fixed: root, bound: math.Inf(1)}}
	for len(stack) > 0 {
		explored++
		if explored > maxNodes {
			return nil, fmt.Errorf("solver: branch-and-bound node limit exceeded (%d nodes)", maxNodes)
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Bound from the parent may already be beaten.
		if haveBest && current.bound <= bestObj+boundTol {
			continue
		}

		obj, x, ok, err := m.relax(current.fixed)
		if err != nil {
			return nil, err
		}
		if !ok || (haveBest && obj <= bestObj+boundTol) {
			continue
		}

		branch := mostFractional(x)
		if branch < 0 {
			// Integral relaxation: new incumbent.
			if !haveBest || obj > bestObj {
				bestObj = obj
				bestX = roundValues(x)
				haveBest = true
			}
			continue
		}

		// Fix-to-one pushed last so it is explored first; filling slots tends
		// to reach good incumbents sooner.
		zero := cloneFixed(current.fixed)
		zero[branch] = 0
		one := cloneFixed(current.fixed)
		one[branch] = 1
		stack = append(stack, node{fixed: zero, bound: obj}, node{fixed: one, bound: obj})
	}

	if !haveBest {
		return nil, ErrInfeasible
	}
	return &Solution{Objective: bestObj, NodesExplored: explored, values: bestX}, nil
}

// relax solves the LP relaxation with the given variable fixings. Returns the
// objective (in maximize terms, including fixed contributions), the values of
// all original variables, and whether the relaxation is feasible.
func (m *Model) relax(fixed []int8) (float64, []float64, bool, error) {
	n := len(m.objective)

	// Map free variables to LP columns; accumulate the fixed contribution.
	colOf := make([]int, n)
	var free []int
	fixedReward := 0.0
	for i := range m.objective {
		if fixed[i] == freeVar {
			colOf[i] = len(free)
			free = append(free, i)
		} else {
			colOf[i] = -1
			fixedReward += float64(fixed[i]) * m.objective[i]
		}
	}

	// Rows that still involve free variables; fully fixed rows are checked
	// directly so the LP never sees a zero row.
	type row struct {
		coefs []float64 // indexed by free column
		sense Sense
		bound float64
	}
	var rows []row
	for _, c := range m.constraints {
		coefs := make([]float64, len(free))
		rhs := c.bound
		anyFree := false
		for _, t := range c.terms {
			if col := colOf[t.Var]; col >= 0 {
				coefs[col] += t.Coef
				if t.Coef != 0 {
					anyFree = true
				}
			} else {
				rhs -= float64(fixed[t.Var]) * t.Coef
			}
		}
		if !anyFree {
			switch c.sense {
			case LessEq:
				if rhs < -integralityTol {
					return 0, nil, false, nil
				}
			case Equal:
				if math.Abs(rhs) > integralityTol {
					return 0, nil, false, nil
				}
			}
			continue
		}
		rows = append(rows, row{coefs: coefs, sense: c.sense, bound: rhs})
	}

	values := make([]float64, n)
	for i := range values {
		if fixed[i] != freeVar {
			values[i] = float64(fixed[i])
		}
	}

	if len(free) == 0 {
		return fixedReward, values, true, nil
	}

	// Standard form: minimize cᵀx s.t. Ax = b, x >= 0. Columns are the free
	// variables, one slack per <= row and one upper-bound slack per free
	// variable (x_i + u_i = 1).
	nf := len(free)
	nLE := 0
	for _, r := range rows {
		if r.sense == LessEq {
			nLE++
		}
	}
	cols := nf + nLE + nf
	nRows := len(rows) + nf

	a := mat.NewDense(nRows, cols, nil)
	b := make([]float64, nRows)
	c := make([]float64, cols)
	for j, i := range free {
		c[j] = -m.objective[i] // minimize the negated reward
	}

	slack := nf
	for ri, r := range rows {
		for j, coef := range r.coefs {
			a.Set(ri, j, coef)
		}
		b[ri] = r.bound
		if r.sense == LessEq {
			a.Set(ri, slack, 1)
			slack++
		}
	}
	for j := 0; j < nf; j++ {
		ri := len(rows) + j
		a.Set(ri, j, 1)
		a.Set(ri, nf+nLE+j, 1)
		b[ri] = 1
	}

	// Simplex wants nonnegative b; flip offending rows.
	for ri := 0; ri < nRows; ri++ {
		if b[ri] < 0 {
			b[ri] = -b[ri]
			for j := 0; j < cols; j++ {
				a.Set(ri, j, -a.At(ri, j))
			}
		}
	}

	optF, optX, err := lp.Simplex(c, a, b, 1e-10, nil)
	if err != nil {
		if err == lp.ErrInfeasible {
			return 0, nil, false, nil
		}
		return 0, nil, false, fmt.Errorf("solver: LP relaxation failed: %w", err)
	}

	for j, i := range free {
		values[i] = optX[j]
	}
	return fixedReward - optF, values, true, nil
}

// mostFractional returns the index of the variable farthest from integrality,
// or -1 if every value is integral within tolerance.
func mostFractional(x []float64) int {
	best := -1
	bestDist := integralityTol
	for i, v := range x {
		dist := math.Abs(v - math.Round(v))
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

func roundValues(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Round(v)
	}
	return out
}

func cloneFixed(fixed []int8) []int8 {
	out := make([]int8, len(fixed))
	copy(out, fixed)
	return out
}
