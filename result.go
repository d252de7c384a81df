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

/* Types */

// SolveStatus is the terminal state of a solve.
type SolveStatus int

const (
	SolutionOptimal SolveStatus = iota
	SolutionInfeasible
	SolutionUnbounded
)

// String returns a human readable name of the status.
func (s SolveStatus) String() string {
	switch s {
	case SolutionOptimal:
		return "optimal"
	case SolutionInfeasible:
		return "infeasible"
	case SolutionUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Solution is the immutable outcome of solving a Problem.
type Solution struct {
	status     SolveStatus
	amounts    []float64
	objective  float64
	iterations int
}

// Status reports whether the solution is optimal, or whether the problem
// was found to be infeasible or unbounded.
func (s *Solution) Status() SolveStatus {
	return s.status
}

// Amounts returns a copy of the values of the structural variables, in the
// order of Problem.C. It is nil unless the status is SolutionOptimal.
func (s *Solution) Amounts() []float64 {
	if s.amounts == nil {
		return nil
	}

	out := make([]float64, len(s.amounts))
	copy(out, s.amounts)

	return out
}

// Value returns the value of the i-th structural variable, or 0 if the
// index is out of range or no optimum exists.
func (s *Solution) Value(i int) float64 {
	if i < 0 || i >= len(s.amounts) {
		return 0
	}

	return s.amounts[i]
}

// ObjectiveValue returns C·x for the reported amounts. It is only
// meaningful if Status returns SolutionOptimal.
func (s *Solution) ObjectiveValue() float64 {
	return s.objective
}

// Iterations returns the total number of pivots performed across both
// phases.
func (s *Solution) Iterations() int {
	return s.iterations
}

// SolveError enumerates failures of the solver itself, as opposed to
// properties of the problem.
type SolveError int

const (
	ErrNumericalFailure SolveError = iota + 1
	ErrIterationLimit
	ErrModelInfeasible
	ErrModelUnbounded
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrNumericalFailure:
		return "numerical failure while solving"
	case ErrIterationLimit:
		return "simplex iteration limit exceeded"
	case ErrModelInfeasible:
		return "model is infeasible"
	case ErrModelUnbounded:
		return "model is unbounded"
	default:
		panic("unrecognized error")
	}
}

// Is makes an iteration limit match ErrNumericalFailure, so callers can
// test for the whole class with errors.Is.
func (e SolveError) Is(target error) bool {
	t, ok := target.(SolveError)
	if !ok {
		return false
	}

	return t == e || (e == ErrIterationLimit && t == ErrNumericalFailure)
}

// MalformedProblemError reports a structural defect of the problem, found
// before any pivoting.
type MalformedProblemError struct {
	Reason string
}

func (e *MalformedProblemError) Error() string {
	return "malformed problem: " + e.Reason
}

// Result is the outcome of solving a Model.
type Result struct {
	model     *Model
	solution  *Solution
	values    []float64
	objective float64
}

// Status reports if the solution is optimal. Models that are infeasible or
// unbounded are reported through the error returned by Solve instead.
func (res *Result) Status() SolveStatus {
	return res.solution.Status()
}

// Value returns the computed value of the given variable for this
// optimization result.
func (res *Result) Value(v *Variable) float64 {
	if v.model != res.model || v.index >= len(res.values) {
		return 0
	}

	return res.values[v.index]
}

// ObjectiveValue returns the value of the objective function for this
// optimization result, in the model's own direction.
func (res *Result) ObjectiveValue() float64 {
	return res.objective
}

// Iterations returns the number of pivots the solver needed.
func (res *Result) Iterations() int {
	return res.solution.Iterations()
}
