// Package solver implements a small exact 0/1 integer-program solver: a
// model-building API for binary variables with linear constraints, and a
// branch-and-bound search over LP relaxations solved with gonum's simplex.
//
// Every scheduling scenario shares this formulation shape: binary decision
// variables with scenario-specific reward coefficients, per-worker-per-slot
// uniqueness rows and per-demand-unit capacity rows. The solver's value over
// a greedy heuristic is the optimality guarantee: a feasible model always
// returns a proven-optimal assignment.
package solver

import (
	"errors"
	"fmt"
)

// Var is an opaque handle to a binary decision variable.
type Var int

// Sense is a linear constraint's comparison operator.
type Sense int

const (
	// LessEq constrains the linear sum to be at most the bound.
	LessEq Sense = iota
	// Equal constrains the linear sum to equal the bound exactly.
	Equal
)

// Term is one coefficient×variable entry of a constraint row.
type Term struct {
	Var  Var
	Coef float64
}

// ErrInfeasible is returned when no feasible 0/1 assignment exists. For the
// scheduling formulations the zero vector is always feasible, so hitting this
// means the model was built wrong; callers treat it as fatal.
var ErrInfeasible = errors.New("solver: model is infeasible")

// ModelError reports a malformed model (a construction bug, not a data
// condition). Callers treat it as a fatal configuration error.
type ModelError struct {
	Reason string
}

func (e *ModelError) Error() string {
	return "solver: invalid model: " + e.Reason
}

type constraint struct {
	name  string
	terms []Term
	sense Sense
	bound float64
}

// Model is a 0/1 integer program under construction. Not safe for concurrent
// use; each optimization run builds its own model.
type Model struct {
	names       []string
	objective   []float64
	constraints []constraint
	err         error
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// AddVar declares a binary decision variable with the given objective reward.
// The name is only used in diagnostics; duplicates are rejected to catch
// double-declared candidate pairs early.
func (m *Model) AddVar(name string, reward float64) Var {
	for _, existing := range m.names {
		if existing == name {
			m.fail(fmt.Sprintf("variable %q declared twice", name))
			return Var(-1)
		}
	}
	m.names = append(m.names, name)
	m.objective = append(m.objective, reward)
	return Var(len(m.names) - 1)
}

// AddConstraint adds a linear constraint over previously declared variables.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, bound float64) {
	for _, t := range terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.names) {
			m.fail(fmt.Sprintf("constraint %q references undefined variable %d", name, t.Var))
			return
		}
	}
	m.constraints = append(m.constraints, constraint{name: name, terms: terms, sense: sense, bound: bound})
}

// NumVars returns how many variables have been declared.
func (m *Model) NumVars() int {
	return len(m.names)
}

// VarName returns the diagnostic name of a variable.
func (m *Model) VarName(v Var) string {
	return m.names[v]
}

func (m *Model) fail(reason string) {
	if m.err == nil {
		m.err = &ModelError{Reason: reason}
	}
}

// Solution is the result of a successful solve.
type Solution struct {
	// Objective is the optimal total reward.
	Objective float64

	// NodesExplored counts branch-and-bound nodes, for run statistics.
	NodesExplored int

	values []float64
}

// Chosen reports whether the variable is set in the optimal assignment.
func (s *Solution) Chosen(v Var) bool {
	return s.values[v] > 0.5
}

// ChosenVars returns all set variables in declaration order.
func (s *Solution) ChosenVars() []Var {
	var out []Var
	for i, val := range s.values {
		if val > 0.5 {
			out = append(out, Var(i))
		}
	}
	return out
}
