/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

/*

dietlp is a pure Go library for modelling and solving linear programming
problems with a two-phase primal simplex method. The nutrition subpackage
builds on it to compute minimum-cost diets.

Problems can be handed to the solver directly in standard form:

	sol, err := dietlp.Solve(&dietlp.Problem{
		C:   []float64{2.5, 3.3},
		AEq: [][]float64{{350, 100}},
		BEq: []float64{2000},
	})
	// sol.Status() == dietlp.SolutionOptimal, sol.Amounts() ≈ [5.714 0]

Or described with the modelling API. The model of the following problem:

    Maximize:
      z = x1 + 2 x2 - 3 x3
    With:
      0 <= x1 <= 40
      5 <= x3 <= 11
    Subject to:
      0 <= - x1 + x2 + 5.3 x3 <= 10
      -inf <= 2 x1 - 5 x2 + 3 x3 <= 20
      x2 - 8 x3 = 0

can be expressed like this:

	model, _ := dietlp.NewModel("some model", dietlp.Maximize)
	x1, _ := model.AddVariable("x1")
	x1.SetBounds(0, 40)
	x2, _ := model.AddVariable("x2")
	x2.SetObjectiveCoefficient(2)
	// alternatively, all information pertaining can be given at once:
	x3, _ := model.AddDefinedVariable("x3", -3, 5, 11)

	model.AddConstraint(0, 10, []*dietlp.Variable{x1, x2, x3}, []float64{-1, 1, 5.3})
	model.AddConstraint(math.Inf(-1), 20, []*dietlp.Variable{x1, x2, x3}, []float64{2, -5, 3})
	model.AddConstraint(0, 0, []*dietlp.Variable{x2, x3}, []float64{1, -8})

	result, _ := model.Solve() // you should check for errors

	fmt.Printf("z = %f\n", result.ObjectiveValue())
	fmt.Printf("x1 = %f\n", result.Value(x1))

*/
package dietlp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

/* Types */

type Model struct {
	mu          sync.RWMutex
	name        string
	dir         direction
	vars        []*Variable
	constraints []constraint
	solver      *Solver
}

type constraint struct {
	lower, upper float64
	vars         []*Variable
	coefs        []float64
}

type direction int

const (
	Minimize direction = iota
	Maximize
)

/* Model related functions */

// NewModel instantiates a new linear programming model, providing a
// name (purely informational) and a optimization direction (either
// Minimize or Maximize). The options configure the solver used by Solve.
func NewModel(name string, dir direction, opts ...Option) (*Model, error) {
	solver, err := NewSolver(opts...)
	if err != nil {
		return nil, fmt.Errorf("applying model option: %w", err)
	}

	return &Model{
		name:   name,
		dir:    dir,
		solver: solver,
	}, nil
}

// Clone returns a copy of the model. Variables of the clone are distinct
// values with the same indices as the original's.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newModel := &Model{
		name:   model.name,
		dir:    model.dir,
		solver: model.solver,
	}

	newModel.vars = make([]*Variable, len(model.vars))
	for i, v := range model.vars {
		clone := *v
		clone.model = newModel
		newModel.vars[i] = &clone
	}

	newModel.constraints = make([]constraint, len(model.constraints))
	for i, c := range model.constraints {
		vars := make([]*Variable, len(c.vars))
		for j, v := range c.vars {
			vars[j] = newModel.vars[v.index]
		}
		newModel.constraints[i] = constraint{
			lower: c.lower,
			upper: c.upper,
			vars:  vars,
			coefs: append([]float64(nil), c.coefs...),
		}
	}

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.name
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir direction) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.dir = dir
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.dir
}

/* Column-related functions */

func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// Variables returns a new slice with the model's variables. Changes to the
// slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Variable(nil), model.vars...)
}

// AddVariable adds a variable to the linear programming model and
// returns a reference to it.
// A freshly instantiated variable has no bounds and an objective
// coefficient of 1.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model in a different model returns an error.
//
// Empty names will automatically replaced by a unique name.
func (model *Model) AddVariable(name string) (*Variable, error) {
	return model.AddDefinedVariable(name, 1, math.Inf(-1), math.Inf(1))
}

// AddDefinedVariable add a variable to the linear programming model
// with its attributes passed as arguments.
// Empty names will automatically replaced by a unique name.
func (model *Model) AddDefinedVariable(name string, coefficient, lowerBound, upperBound float64) (*Variable, error) {
	if !isFinite(coefficient) {
		return nil, fmt.Errorf("objective coefficient of %q is not finite: %v", name, coefficient)
	}
	if err := checkBounds(lowerBound, upperBound); err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("V%d", len(model.vars))
	}

	v := &Variable{
		model: model,
		index: len(model.vars),
		name:  name,
		coef:  coefficient,
		lower: lowerBound,
		upper: upperBound,
	}
	model.vars = append(model.vars, v)

	return v, nil
}

// SetObjectiveFunction defines the objective function for the model as
// a slice of coefficients and a slice of its respective variables.
// E.g.: an objective function of the form 2x+3y is passed as:
//   SetObjectiveFunction([]float64{2,3}, []*Variable{x, y})
// Where x and y are the return values of one of the Add*Variable
// functions.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	for i, v := range vars {
		if err := v.SetObjectiveCoefficient(coefs[i]); err != nil {
			return err
		}
	}

	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraint rows in
// the model. Ranged constraints count twice, free ones not at all.
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	count := 0
	for _, c := range model.constraints {
		count += c.rowCount()
	}

	return count
}

// AddConstraint adds a constraint to the model as a lower and an upper
// bounds, a slice of variables and a slice of their respective
// coefficients.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}
	if err := checkBounds(lower, upper); err != nil {
		return fmt.Errorf("constraint: %w", err)
	}

	for i, v := range vars {
		if v == nil || v.model != model {
			return fmt.Errorf("variable %d does not belong to model %q", i, model.Name())
		}
		if !isFinite(coefs[i]) {
			return fmt.Errorf("coefficient of %q is not finite: %v", v.Name(), coefs[i])
		}
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	model.constraints = append(model.constraints, constraint{
		lower: lower,
		upper: upper,
		vars:  append([]*Variable(nil), vars...),
		coefs: append([]float64(nil), coefs...),
	})

	return nil
}

func (c constraint) rowCount() int {
	switch {
	case math.IsInf(c.lower, 0) && math.IsInf(c.upper, 0):
		return 0
	case math.IsInf(c.lower, 0), math.IsInf(c.upper, 0), c.lower == c.upper:
		return 1
	default:
		return 2
	}
}

// Solve attempts to find an optimal solution to the model.
// Information about the solution can be queried from the returned
// Result value.
func (model *Model) Solve() (*Result, error) {
	return model.SolveWithContext(context.Background())
}

// SolveWithContext wraps Solve() with a context. If the context is cancelled
// or times out, the solution search will be aborted and the context error
// will be returned.
func (model *Model) SolveWithContext(ctx context.Context) (*Result, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	if len(model.vars) == 0 {
		return nil, &MalformedProblemError{Reason: fmt.Sprintf("model %q has no variables", model.name)}
	}

	std := model.standardForm()

	sol, err := model.solver.SolveWithContext(ctx, std.problem)
	if err != nil {
		return nil, err
	}

	switch sol.Status() {
	case SolutionInfeasible:
		return nil, ErrModelInfeasible
	case SolutionUnbounded:
		return nil, ErrModelUnbounded
	}

	res := &Result{
		model:    model,
		solution: sol,
		values:   std.values(sol.Amounts()),
	}
	for i, v := range model.vars {
		res.objective += v.coef * res.values[i]
	}

	return res, nil
}

// term maps a model variable onto one standard-form column.
type term struct {
	col  int
	sign float64
}

// standardForm is a model lowered onto non-negative columns. Every model
// variable equals its offset plus the signed sum of its terms.
type standardForm struct {
	problem *Problem
	offsets []float64
	terms   [][]term
}

func (model *Model) standardForm() *standardForm {
	std := &standardForm{
		problem: &Problem{},
		offsets: make([]float64, len(model.vars)),
		terms:   make([][]term, len(model.vars)),
	}

	sense := 1.0
	if model.dir == Maximize {
		sense = -1
	}

	cols := 0
	newCol := func() int {
		cols++
		return cols - 1
	}

	// bound rows can only be written once all columns exist
	type boundRow struct {
		col   int
		limit float64
	}
	var bounds []boundRow

	for i, v := range model.vars {
		switch {
		case !math.IsInf(v.lower, 0):
			col := newCol()
			std.offsets[i] = v.lower
			std.terms[i] = []term{{col, 1}}
			if !math.IsInf(v.upper, 0) {
				bounds = append(bounds, boundRow{col, v.upper - v.lower})
			}
		case !math.IsInf(v.upper, 0):
			std.offsets[i] = v.upper
			std.terms[i] = []term{{newCol(), -1}}
		default:
			std.terms[i] = []term{{newCol(), 1}, {newCol(), -1}}
		}
	}

	p := std.problem
	p.C = make([]float64, cols)
	for i, v := range model.vars {
		for _, t := range std.terms[i] {
			p.C[t.col] += sense * v.coef * t.sign
		}
	}

	addIneq := func(row []float64, rhs float64) {
		p.AIneq = append(p.AIneq, row)
		p.BIneq = append(p.BIneq, rhs)
	}

	for _, b := range bounds {
		row := make([]float64, cols)
		row[b.col] = 1
		addIneq(row, b.limit)
	}

	for _, c := range model.constraints {
		row := make([]float64, cols)
		constant := 0.0
		for k, v := range c.vars {
			constant += c.coefs[k] * std.offsets[v.index]
			for _, t := range std.terms[v.index] {
				row[t.col] += c.coefs[k] * t.sign
			}
		}

		switch {
		case math.IsInf(c.lower, 0) && math.IsInf(c.upper, 0):
			// no constraints
		case math.IsInf(c.lower, 0):
			addIneq(row, c.upper-constant)
		case math.IsInf(c.upper, 0):
			addIneq(negated(row), constant-c.lower)
		case c.lower == c.upper:
			p.AEq = append(p.AEq, row)
			p.BEq = append(p.BEq, c.upper-constant)
		default:
			addIneq(row, c.upper-constant)
			addIneq(negated(row), constant-c.lower)
		}
	}

	return std
}

// values maps standard-form amounts back onto model variables.
func (std *standardForm) values(x []float64) []float64 {
	out := make([]float64, len(std.offsets))
	for i, off := range std.offsets {
		out[i] = off
		for _, t := range std.terms[i] {
			out[i] += t.sign * x[t.col]
		}
	}

	return out
}

func negated(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = -v
	}

	return out
}

func checkBounds(lower, upper float64) error {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return errors.New("bounds must not be NaN")
	case math.IsInf(lower, 1) || math.IsInf(upper, -1):
		return fmt.Errorf("bounds [%v, %v] leave no feasible value", lower, upper)
	case lower > upper:
		return fmt.Errorf("lower bound %v exceeds upper bound %v", lower, upper)
	}

	return nil
}
