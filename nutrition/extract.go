package nutrition

import (
	"fmt"

	"github.com/costela/dietlp"
)

// CheckTolerance is the absolute tolerance of the consistency checks run
// by Extract on every requirement.
const CheckTolerance = 1e-6

// FoodReport describes the share of one food in a diet.
type FoodReport struct {
	Name      string
	Amount    float64
	TotalCost float64
	Nutrients map[Nutrient]float64
}

// RequirementCheck pairs a requirement with the total the diet achieves.
type RequirementCheck struct {
	Requirement NutrientRequirement
	Total       float64
}

// Slack returns how far the total is from the bound, in the direction the
// requirement allows. It is zero for a binding requirement.
func (c RequirementCheck) Slack() float64 {
	switch c.Requirement.Kind {
	case AtMost:
		return c.Requirement.Value - c.Total
	case AtLeast:
		return c.Total - c.Requirement.Value
	default:
		return 0
	}
}

// Report is the outcome of a diet computation. Only optimal reports carry
// per-food and per-nutrient detail.
type Report struct {
	Status    dietlp.SolveStatus
	Objective float64
	Foods     []FoodReport
	Nutrients []Nutrient
	Totals    map[Nutrient]float64
	Checks    []RequirementCheck
	Pivots    int
}

// Optimal is a shorthand for r.Status == dietlp.SolutionOptimal.
func (r *Report) Optimal() bool {
	return r.Status == dietlp.SolutionOptimal
}

// InconsistentSolutionError is returned by Extract when a solution
// reported optimal violates a requirement or a non-negativity bound. It
// signals a defect in the solver, never a property of the input.
type InconsistentSolutionError struct {
	Requirement NutrientRequirement
	Total       float64
	Food        string
}

func (e *InconsistentSolutionError) Error() string {
	if e.Food != "" {
		return fmt.Sprintf("inconsistent solution: negative amount %g of %q", e.Total, e.Food)
	}

	return fmt.Sprintf("inconsistent solution: %s total %g violates %v", e.Requirement.Nutrient, e.Total, e.Requirement)
}

// Extract maps sol back onto foods and recomputes every nutrient total.
// For optimal solutions each total is checked against its requirement;
// non-optimal solutions yield a report carrying only the status.
func Extract(foods []FoodItem, reqs []NutrientRequirement, sol *dietlp.Solution) (*Report, error) {
	report := &Report{
		Status: sol.Status(),
		Pivots: sol.Iterations(),
	}
	if !report.Optimal() {
		return report, nil
	}

	amounts := sol.Amounts()
	if len(amounts) != len(foods) {
		return nil, malformed("solution has %d amounts for %d foods", len(amounts), len(foods))
	}

	report.Objective = sol.ObjectiveValue()
	report.Nutrients = trackedNutrients(foods, reqs)
	report.Totals = make(map[Nutrient]float64, len(report.Nutrients))
	report.Foods = make([]FoodReport, len(foods))

	for i, f := range foods {
		amount := amounts[i]
		if amount < -dietlp.DefaultTolerance {
			return nil, &InconsistentSolutionError{Food: f.name, Total: amount}
		}

		fr := FoodReport{
			Name:      f.name,
			Amount:    amount,
			TotalCost: amount * f.cost,
			Nutrients: make(map[Nutrient]float64, len(report.Nutrients)),
		}
		for _, n := range report.Nutrients {
			v, ok := f.nutrients[n]
			if !ok {
				continue
			}
			fr.Nutrients[n] = amount * v
			report.Totals[n] += amount * v
		}
		report.Foods[i] = fr
	}

	report.Checks = make([]RequirementCheck, len(reqs))
	for i, r := range reqs {
		total := report.Totals[r.Nutrient]
		if !r.Satisfied(total, CheckTolerance) {
			return nil, &InconsistentSolutionError{Requirement: r, Total: total}
		}
		report.Checks[i] = RequirementCheck{Requirement: r, Total: total}
	}

	return report, nil
}

// TotalCost sums the cost of every food in the report.
func (r *Report) TotalCost() float64 {
	total := 0.0
	for _, f := range r.Foods {
		total += f.TotalCost
	}

	return total
}

// trackedNutrients returns every nutrient declared by some food or
// referenced by some requirement, standard nutrients first.
func trackedNutrients(foods []FoodItem, reqs []NutrientRequirement) []Nutrient {
	set := make(map[Nutrient]struct{})
	for _, f := range foods {
		for n := range f.nutrients {
			set[n] = struct{}{}
		}
	}
	for _, r := range reqs {
		set[r.Nutrient] = struct{}{}
	}

	out := make([]Nutrient, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sortNutrients(out)

	return out
}
