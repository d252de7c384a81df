package dietlp

import (
	"fmt"
)

// Variable is a column of a Model.
type Variable struct {
	model *Model
	index int
	name  string
	coef  float64
	lower float64
	upper float64
}

/* Variable-related functions (model variables, as opposed to Go variables) */

func (v *Variable) Name() string {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.name
}

// SetBounds sets the boundaries for the given variable.
// To leave a side unbounded, pass math.Inf(-1) or math.Inf(1).
func (v *Variable) SetBounds(lower, upper float64) error {
	if err := checkBounds(lower, upper); err != nil {
		return fmt.Errorf("variable %q: %w", v.Name(), err)
	}

	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.lower, v.upper = lower, upper

	return nil
}

func (v *Variable) Bounds() (lower, upper float64) {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.lower, v.upper
}

func (v *Variable) SetObjectiveCoefficient(coef float64) error {
	if !isFinite(coef) {
		return fmt.Errorf("objective coefficient of %q is not finite: %v", v.Name(), coef)
	}

	v.model.mu.Lock()
	defer v.model.mu.Unlock()

	v.coef = coef

	return nil
}

func (v *Variable) Coefficient() float64 {
	v.model.mu.RLock()
	defer v.model.mu.RUnlock()

	return v.coef
}
