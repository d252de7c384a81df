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
	"fmt"
	"math"
)

// Problem is a linear program in the form accepted by the simplex engine:
//
//	minimize   C·x
//	subject to AEq·x = BEq
//	           AIneq·x <= BIneq
//	           x >= 0
//
// Every row of AEq and AIneq must have len(C) entries. Either row set may
// be empty.
type Problem struct {
	C     []float64
	AEq   [][]float64
	BEq   []float64
	AIneq [][]float64
	BIneq []float64
}

// VariableCount returns the number of structural variables.
func (p *Problem) VariableCount() int {
	return len(p.C)
}

// ConstraintCount returns the total number of rows, equalities first.
func (p *Problem) ConstraintCount() int {
	return len(p.AEq) + len(p.AIneq)
}

// Validate checks the dimensions and finiteness of the problem data.
// A nil return means the problem can be handed to a Solver.
func (p *Problem) Validate() error {
	if p == nil {
		return &MalformedProblemError{Reason: "nil problem"}
	}

	n := len(p.C)
	if n == 0 {
		return &MalformedProblemError{Reason: "problem has no variables"}
	}

	for j, c := range p.C {
		if !isFinite(c) {
			return &MalformedProblemError{Reason: fmt.Sprintf("objective coefficient %d is not finite: %v", j, c)}
		}
	}

	if err := validateRows("equality", p.AEq, p.BEq, n); err != nil {
		return err
	}

	return validateRows("inequality", p.AIneq, p.BIneq, n)
}

func validateRows(kind string, a [][]float64, b []float64, n int) error {
	if len(a) != len(b) {
		return &MalformedProblemError{
			Reason: fmt.Sprintf("inconsistent number of %s rows and right-hand sides: %d != %d", kind, len(a), len(b)),
		}
	}

	for i, row := range a {
		if len(row) != n {
			return &MalformedProblemError{
				Reason: fmt.Sprintf("%s row %d has %d coefficients, expected %d", kind, i, len(row), n),
			}
		}
		for j, v := range row {
			if !isFinite(v) {
				return &MalformedProblemError{
					Reason: fmt.Sprintf("%s row %d coefficient %d is not finite: %v", kind, i, j, v),
				}
			}
		}
		if !isFinite(b[i]) {
			return &MalformedProblemError{
				Reason: fmt.Sprintf("%s row %d right-hand side is not finite: %v", kind, i, b[i]),
			}
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
