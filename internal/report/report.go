// Package report renders diet plans as plain text tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/costela/dietlp"
	"github.com/costela/dietlp/nutrition"
)

// Money rounds an amount of currency to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// quantity prints three decimals. Round-off that would print as -0.000
// prints as 0.000.
func quantity(v float64) string {
	if math.Abs(v) < 5e-4 {
		v = 0
	}

	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Render writes the plan r to w. Foods with a zero amount are left out.
// Non-optimal reports render as the status and a short explanation.
func Render(w io.Writer, r *nutrition.Report) error {
	switch r.Status {
	case dietlp.SolutionInfeasible:
		_, err := fmt.Fprintf(w, "status: %s\nno combination of foods satisfies every requirement\n", r.Status)
		return err
	case dietlp.SolutionUnbounded:
		_, err := fmt.Fprintf(w, "status: %s\nthe cost can be lowered without limit; check for negative costs\n", r.Status)
		return err
	}

	if _, err := fmt.Fprintf(w, "status: %s (%d pivots)\n\n", r.Status, r.Pivots); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FOOD\tAMOUNT\tCOST")
	for _, f := range r.Foods {
		if f.Amount <= dietlp.DefaultTolerance {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, quantity(f.Amount), Money(f.TotalCost).StringFixed(2))
	}
	// rounded from the objective, not summed from rounded rows
	fmt.Fprintf(tw, "TOTAL\t\t%s\n", Money(r.Objective).StringFixed(2))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "NUTRIENT\tTOTAL\tREQUIREMENT")
	for _, c := range r.Checks {
		req := c.Requirement
		fmt.Fprintf(tw, "%s\t%s %s\t%s %s\n",
			req.Nutrient, quantity(c.Total), req.Nutrient.Unit(), req.Kind.Symbol(), strconv.FormatFloat(req.Value, 'f', -1, 64))
	}

	return tw.Flush()
}

// RenderSweep writes one line per calorie target of a batch plan.
func RenderSweep(w io.Writer, calories []float64, reports []*nutrition.Report) error {
	if len(calories) != len(reports) {
		return fmt.Errorf("%d calorie targets for %d reports", len(calories), len(reports))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CALORIES\tSTATUS\tCOST")
	for i, r := range reports {
		cost := "-"
		if r.Optimal() {
			cost = Money(r.Objective).StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", strconv.FormatFloat(calories[i], 'f', -1, 64), r.Status, cost)
	}

	return tw.Flush()
}
