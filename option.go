package dietlp

import (
	"errors"
	"fmt"
)

// DefaultTolerance is the absolute tolerance used for every comparison
// against zero unless WithTolerance says otherwise.
const DefaultTolerance = 1e-7

// MaxTolerance is the largest tolerance WithTolerance accepts. Looser
// settings would let phase 1 accept residuals that callers checking
// constraints at this precision reject.
const MaxTolerance = 1e-6

type Option func(*Solver) error

func WithLogger(logger Logger) Option {
	return func(s *Solver) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		s.logger = logger

		return nil
	}
}

// WithTolerance overrides the absolute tolerance governing feasibility,
// optimality and degeneracy checks. It must not exceed MaxTolerance.
func WithTolerance(tol float64) Option {
	return func(s *Solver) error {
		if !(tol > 0) || tol > MaxTolerance {
			return fmt.Errorf("tolerance must be in (0, %g], got %v", MaxTolerance, tol)
		}
		s.tol = tol

		return nil
	}
}

// WithIterationLimit caps the number of pivots per phase. Zero restores
// the default, which scales with the size of the tableau.
func WithIterationLimit(n int) Option {
	return func(s *Solver) error {
		if n < 0 {
			return fmt.Errorf("iteration limit must not be negative, got %d", n)
		}
		s.maxIter = n

		return nil
	}
}
