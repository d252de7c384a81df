package nutrition

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/costela/dietlp"
)

// Planner computes minimum-cost diets. It is safe for concurrent use.
type Planner struct {
	solver  *dietlp.Solver
	workers int
}

// NewPlanner returns a Planner whose solver is configured by opts.
func NewPlanner(opts ...dietlp.Option) (*Planner, error) {
	solver, err := dietlp.NewSolver(opts...)
	if err != nil {
		return nil, err
	}

	return &Planner{
		solver:  solver,
		workers: runtime.GOMAXPROCS(0),
	}, nil
}

// WithWorkers returns a copy of the planner whose batches run at most n
// solves at a time.
func (p *Planner) WithWorkers(n int) *Planner {
	clone := *p
	clone.workers = max(n, 1)

	return &clone
}

// Plan builds, solves and checks the diet for one set of requirements.
// Infeasible and unbounded problems produce a report with that status and
// a nil error.
func (p *Planner) Plan(ctx context.Context, foods []FoodItem, reqs []NutrientRequirement) (*Report, error) {
	prob, err := BuildProblem(foods, reqs)
	if err != nil {
		return nil, err
	}

	sol, err := p.solver.SolveWithContext(ctx, prob)
	if err != nil {
		return nil, fmt.Errorf("solving diet: %w", err)
	}

	return Extract(foods, reqs, sol)
}

// PlanBatch plans one diet per requirement set, in parallel. Reports are
// returned in the order of sets. The first error cancels the remaining
// solves and is returned.
func (p *Planner) PlanBatch(ctx context.Context, foods []FoodItem, sets [][]NutrientRequirement) ([]*Report, error) {
	reports := make([]*Report, len(sets))

	wp := pool.New().
		WithMaxGoroutines(p.workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, reqs := range sets {
		wp.Go(func(ctx context.Context) error {
			report, err := p.Plan(ctx, foods, reqs)
			if err != nil {
				return fmt.Errorf("requirement set %d: %w", i, err)
			}
			reports[i] = report

			return nil
		})
	}

	if err := wp.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
