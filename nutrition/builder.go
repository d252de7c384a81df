package nutrition

import (
	"fmt"
	"math"

	"github.com/costela/dietlp"
)

// BuildProblem translates foods and requirements into a standard-form
// linear program with one variable per food, in order, and one row per
// requirement. Exact requirements become equality rows, AtMost rows are
// kept as written and AtLeast rows are negated into AtMost form.
//
// Negative costs are passed through unchanged; the solver reports the
// resulting problem as unbounded unless some bound opposes it.
func BuildProblem(foods []FoodItem, reqs []NutrientRequirement) (*dietlp.Problem, error) {
	if err := validate(foods, reqs); err != nil {
		return nil, err
	}

	p := &dietlp.Problem{
		C: make([]float64, len(foods)),
	}
	for i, f := range foods {
		p.C[i] = f.cost
	}

	for _, r := range reqs {
		row := make([]float64, len(foods))
		for i, f := range foods {
			row[i] = f.nutrients[r.Nutrient]
		}

		switch r.Kind {
		case Exact:
			p.AEq = append(p.AEq, row)
			p.BEq = append(p.BEq, r.Value)
		case AtMost:
			p.AIneq = append(p.AIneq, row)
			p.BIneq = append(p.BIneq, r.Value)
		case AtLeast:
			for i := range row {
				row[i] = -row[i]
			}
			p.AIneq = append(p.AIneq, row)
			p.BIneq = append(p.BIneq, -r.Value)
		}
	}

	return p, nil
}

func validate(foods []FoodItem, reqs []NutrientRequirement) error {
	if len(foods) == 0 {
		return malformed("no foods given")
	}

	seen := make(map[string]struct{}, len(foods))
	for i, f := range foods {
		if f.name == "" {
			return malformed("food %d has no name", i)
		}
		if _, dup := seen[f.name]; dup {
			return malformed("duplicate food %q", f.name)
		}
		seen[f.name] = struct{}{}

		if !finite(f.cost) {
			return malformed("cost of %q is not finite: %v", f.name, f.cost)
		}
		for n, v := range f.nutrients {
			if !finite(v) {
				return malformed("%s of %q is not finite: %v", n, f.name, v)
			}
		}
	}

	for _, r := range reqs {
		switch r.Kind {
		case Exact, AtMost, AtLeast:
		default:
			return malformed("requirement on %s has unknown bound kind %v", r.Nutrient, r.Kind)
		}
		if !finite(r.Value) || r.Value < 0 {
			return malformed("requirement %v must have a finite, non-negative bound", r)
		}

		for _, f := range foods {
			if _, ok := f.nutrients[r.Nutrient]; !ok {
				return malformed("food %q has no value for %s", f.name, r.Nutrient)
			}
		}
	}

	return nil
}

func malformed(format string, args ...any) error {
	return &dietlp.MalformedProblemError{Reason: fmt.Sprintf(format, args...)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
