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

package dietlp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// minIterationLimit is the floor of the default per-phase pivot cap.
	minIterationLimit = 1000
	// iterationsPerDim scales the default pivot cap with rows+columns.
	iterationsPerDim = 50
)

// Solver solves Problems with a two-phase primal simplex method. A Solver
// holds only settings, so one value may be shared by concurrent solves.
type Solver struct {
	logger  Logger
	tol     float64
	maxIter int
}

// NewSolver returns a Solver configured by the given options.
func NewSolver(opts ...Option) (*Solver, error) {
	s := &Solver{
		logger: noopLogger{},
		tol:    DefaultTolerance,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("applying solver option: %w", err)
		}
	}

	return s, nil
}

// Solve is a shorthand for creating a Solver with the given options and
// solving a single problem with it.
func Solve(p *Problem, opts ...Option) (*Solution, error) {
	s, err := NewSolver(opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(p)
}

// Solve finds an optimal vertex of p or proves it infeasible or unbounded.
// Infeasible and unbounded problems are reported through the status of the
// returned Solution; errors are reserved for malformed input
// (*MalformedProblemError) and solver failures (SolveError).
func (s *Solver) Solve(p *Problem) (*Solution, error) {
	return s.SolveWithContext(context.Background(), p)
}

// SolveWithContext is like Solve, but checks ctx between pivots. If the
// context is cancelled or times out, the context error is returned.
func (s *Solver) SolveWithContext(ctx context.Context, p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tab := newTableau(p, s.tol)
	limit := s.maxIter
	if limit == 0 {
		limit = max(minIterationLimit, iterationsPerDim*(tab.rows+tab.cols))
	}

	run := &simplexRun{
		solver: s,
		tab:    tab,
		limit:  limit,
	}

	return run.solve(ctx, p)
}

type simplexRun struct {
	solver *Solver
	tab    *tableau
	limit  int
	pivots int
}

func (r *simplexRun) solve(ctx context.Context, p *Problem) (*Solution, error) {
	tab := r.tab
	log := r.solver.logger

	if tab.artificials() > 0 {
		log.Printf("phase 1: %d rows, %d columns, %d artificial variables", tab.rows, tab.cols, tab.artificials())

		tab.loadPhaseOneObjective()
		bounded, err := r.iterate(ctx, tab.cols)
		if err != nil {
			return nil, err
		}
		if !bounded {
			// the sum of non-negative artificials cannot decrease without bound
			return nil, fmt.Errorf("phase 1 reported unbounded: %w", ErrNumericalFailure)
		}

		infeasibility := -tab.objectiveRHS()
		log.Printf("phase 1 finished after %d pivots, infeasibility %g", r.pivots, infeasibility)

		if infeasibility > tab.tol {
			return &Solution{status: SolutionInfeasible, iterations: r.pivots}, nil
		}

		if err := r.evictArtificials(); err != nil {
			return nil, err
		}
	}

	tab.loadObjective(p.C)
	bounded, err := r.iterate(ctx, tab.artStart)
	if err != nil {
		return nil, err
	}
	if !bounded {
		log.Printf("unbounded after %d pivots", r.pivots)

		return &Solution{status: SolutionUnbounded, iterations: r.pivots}, nil
	}

	x := tab.primal()
	obj := floats.Dot(p.C, x)
	log.Printf("optimal after %d pivots, objective %g", r.pivots, obj)

	return &Solution{
		status:     SolutionOptimal,
		amounts:    x,
		objective:  obj,
		iterations: r.pivots,
	}, nil
}

// iterate pivots until no column below limit has a negative reduced cost.
// It returns false if an entering column without a positive entry was
// found, i.e. the current objective is unbounded.
func (r *simplexRun) iterate(ctx context.Context, limit int) (bool, error) {
	tab := r.tab
	bland := false
	degenerate := 0

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		col := tab.entering(limit, bland)
		if col < 0 {
			return true, nil
		}
		if n >= r.limit {
			return false, ErrIterationLimit
		}

		row, ratio := tab.leaving(col, bland)
		if row < 0 {
			return false, nil
		}

		if err := tab.pivot(row, col); err != nil {
			return false, err
		}
		r.pivots++

		if ratio > tab.tol {
			degenerate = 0
			continue
		}

		degenerate++
		if !bland && degenerate > tab.rows {
			r.solver.logger.Printf("switching to smallest-subscript rule after %d degenerate pivots", degenerate)
			bland = true
		}
	}
}

// evictArtificials drives every artificial variable still in the basis out
// of it. At this point all of them are at zero, so each pivot is
// degenerate. Rows whose structural part is entirely zero are redundant and
// keep their artificial, which can never re-enter phase 2.
func (r *simplexRun) evictArtificials() error {
	tab := r.tab

	for i, b := range tab.basis {
		if b < tab.artStart {
			continue
		}

		// the largest entry keeps the row scaling of the pivot small
		row := tab.t.RawRowView(i)
		col := -1
		best := tab.tol
		for j := 0; j < tab.artStart; j++ {
			if v := math.Abs(row[j]); v > best {
				col, best = j, v
			}
		}
		if col < 0 {
			r.solver.logger.Printf("row %d is redundant", i)
			continue
		}

		row[tab.cols] = 0
		if err := tab.pivot(i, col); err != nil {
			return err
		}
		r.pivots++
	}

	return nil
}

// tableau is the dense simplex tableau. Rows 0..rows-1 hold the
// constraints, row rows holds the reduced costs; column cols holds the
// right-hand side (and -z in the objective row). Columns are laid out as
// structural variables, then slacks, then artificials.
type tableau struct {
	t          *mat.Dense
	rows       int
	cols       int
	structural int
	basis      []int
	isBasic    []bool
	artStart   int
	tol        float64
}

func newTableau(p *Problem, tol float64) *tableau {
	n := p.VariableCount()
	mEq, mIneq := len(p.AEq), len(p.AIneq)
	rows := mEq + mIneq
	artStart := n + mIneq

	// an inequality row with a non-negative rhs starts with its slack in
	// the basis; every other row needs an artificial
	needsArtificial := make([]bool, rows)
	nArt := 0
	for i := range needsArtificial {
		if i < mEq || p.BIneq[i-mEq] < 0 {
			needsArtificial[i] = true
			nArt++
		}
	}

	cols := artStart + nArt
	tab := &tableau{
		t:          mat.NewDense(rows+1, cols+1, nil),
		rows:       rows,
		cols:       cols,
		structural: n,
		basis:      make([]int, rows),
		isBasic:    make([]bool, cols),
		artStart:   artStart,
		tol:        tol,
	}

	art := artStart
	for i := 0; i < rows; i++ {
		row := tab.t.RawRowView(i)

		if i < mEq {
			copy(row, p.AEq[i])
			row[cols] = p.BEq[i]
		} else {
			k := i - mEq
			copy(row, p.AIneq[k])
			row[n+k] = 1
			row[cols] = p.BIneq[k]
			tab.basis[i] = n + k
		}

		if row[cols] < 0 {
			floats.Scale(-1, row)
		}

		if needsArtificial[i] {
			row[art] = 1
			tab.basis[i] = art
			art++
		}

		tab.isBasic[tab.basis[i]] = true
	}

	return tab
}

func (tab *tableau) artificials() int {
	return tab.cols - tab.artStart
}

func (tab *tableau) objectiveRHS() float64 {
	return tab.t.At(tab.rows, tab.cols)
}

// loadPhaseOneObjective sets the reduced costs for minimizing the sum of
// the artificial variables, given that all of them are basic.
func (tab *tableau) loadPhaseOneObjective() {
	obj := tab.t.RawRowView(tab.rows)
	for j := range obj {
		obj[j] = 0
	}
	for j := tab.artStart; j < tab.cols; j++ {
		obj[j] = 1
	}

	for i, b := range tab.basis {
		if b >= tab.artStart {
			floats.AddScaled(obj, -1, tab.t.RawRowView(i))
		}
	}
}

// loadObjective sets the reduced costs of the true objective relative to
// the current basis. Slacks and artificials have zero cost.
func (tab *tableau) loadObjective(c []float64) {
	obj := tab.t.RawRowView(tab.rows)
	for j := range obj {
		obj[j] = 0
	}
	copy(obj, c)

	for i, b := range tab.basis {
		if b < len(c) && c[b] != 0 {
			floats.AddScaled(obj, -c[b], tab.t.RawRowView(i))
		}
	}
}

// entering picks the column to bring into the basis among columns below
// limit, or -1 if the basis is optimal. The default rule takes the most
// negative reduced cost; the smallest-subscript rule takes the first
// negative one.
func (tab *tableau) entering(limit int, bland bool) int {
	obj := tab.t.RawRowView(tab.rows)

	col := -1
	best := -tab.tol
	for j := 0; j < limit; j++ {
		if tab.isBasic[j] || obj[j] >= best {
			continue
		}
		if bland {
			return j
		}
		col, best = j, obj[j]
	}

	return col
}

// leaving runs the minimum ratio test on col and returns the pivot row and
// its ratio, or -1 if col has no positive entry. The chosen ratio is never
// larger than another row's, so no basic variable is pushed below zero.
// Exact ties go to the lowest row, or to the lowest basic variable under
// the smallest-subscript rule.
func (tab *tableau) leaving(col int, bland bool) (int, float64) {
	row := -1
	var ra, rb float64

	for i := 0; i < tab.rows; i++ {
		a := tab.t.At(i, col)
		if a <= tab.tol {
			continue
		}
		b := tab.t.At(i, tab.cols)

		if row < 0 {
			row, ra, rb = i, a, b
			continue
		}

		// b/a against rb/ra without dividing; both pivots are positive
		lhs, rhs := b*ra, rb*a
		switch {
		case lhs < rhs:
			row, ra, rb = i, a, b
		case lhs == rhs && bland && tab.basis[i] < tab.basis[row]:
			row, ra, rb = i, a, b
		}
	}

	if row < 0 {
		return -1, math.Inf(1)
	}

	return row, rb / ra
}

// pivot makes col basic in row and re-establishes basic feasibility of the
// right-hand side.
func (tab *tableau) pivot(row, col int) error {
	pr := tab.t.RawRowView(row)
	floats.Scale(1/pr[col], pr)
	pr[col] = 1

	for i := 0; i <= tab.rows; i++ {
		if i == row {
			continue
		}
		ri := tab.t.RawRowView(i)
		if f := ri[col]; f != 0 {
			floats.AddScaled(ri, -f, pr)
			ri[col] = 0
		}
	}

	tab.isBasic[tab.basis[row]] = false
	tab.basis[row] = col
	tab.isBasic[col] = true

	for i := 0; i < tab.rows; i++ {
		ri := tab.t.RawRowView(i)
		switch v := ri[tab.cols]; {
		case v >= 0:
		case v >= -tab.tol:
			ri[tab.cols] = 0
		default:
			return fmt.Errorf("basic variable %d became negative (%g) after pivot on (%d, %d): %w",
				tab.basis[i], v, row, col, ErrNumericalFailure)
		}
	}

	return nil
}

// primal returns the values of the structural variables in the current
// basis.
func (tab *tableau) primal() []float64 {
	x := make([]float64, tab.structural)

	for i, b := range tab.basis {
		if b < tab.structural {
			x[b] = tab.t.At(i, tab.cols)
		}
	}

	return x
}
