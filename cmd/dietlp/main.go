// Command dietlp computes the cheapest combination of foods that meets a set
// of daily nutrient requirements.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/costela/dietlp"
	"github.com/costela/dietlp/internal/config"
	"github.com/costela/dietlp/internal/logging"
	"github.com/costela/dietlp/internal/metrics"
	"github.com/costela/dietlp/internal/report"
	"github.com/costela/dietlp/nutrition"
)

// Exit codes.
const (
	exitOptimal    = 0
	exitError      = 1
	exitInfeasible = 2
	exitUnbounded  = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

type app struct {
	v          *viper.Viper
	stdout     io.Writer
	stderr     io.Writer
	configPath string
	calories   float64
	sweep      []float64
	code       int
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		v:      config.New(),
		stdout: stdout,
		stderr: stderr,
	}

	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "dietlp: %v\n", err)
		return exitError
	}

	return a.code
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dietlp",
		Short: "Plan a minimum-cost diet",
		Long: `dietlp reads a food table and nutrient requirements and prints the
cheapest amounts of each food meeting every requirement.

Without a configuration file the built-in reference foods and the standard
daily requirements are used. Settings can also be given as environment
variables prefixed with ` + config.EnvPrefix + `_, e.g. ` + config.EnvPrefix + `_LOG_LEVEL=debug.

Exit status is 0 for an optimal plan, 2 if no plan exists, 3 if the cost is
unbounded and 1 on any other error.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runE,
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.configPath, "config", "c", "", "plan file (yaml, toml or json)")
	flags.Float64Var(&a.calories, "calories", 0, "exact daily calorie target, replacing any calorie requirement")
	flags.Float64SliceVar(&a.sweep, "sweep", nil, "plan once per calorie target, e.g. 1800,2000,2200")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	flags.String("log-file", "", "write logs to a rotated file instead of stderr")
	flags.Int("workers", 0, "maximum concurrent solves for --sweep (0 for one per CPU)")
	flags.String("metrics-file", "", "write Prometheus metrics to this file after the run")

	// flags take precedence over the plan file and the environment
	for key, flag := range map[string]string{
		"log.level":      "log-level",
		"log.format":     "log-format",
		"log.file":       "log-file",
		"solver.workers": "workers",
		"metrics.file":   "metrics-file",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return cmd
}

func (a *app) runE(cmd *cobra.Command, _ []string) error {
	conf, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}

	logger := logging.New(conf.Logging(), a.stderr)
	defer logger.Close()

	foods := conf.FoodItems()
	reqs, err := conf.NutrientRequirements()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("calories") {
		reqs = nutrition.WithCalories(reqs, a.calories)
	}

	opts := append(conf.SolverOptions(), dietlp.WithLogger(logger.Solver()))
	planner, err := nutrition.NewPlanner(opts...)
	if err != nil {
		return err
	}
	if conf.Solver.Workers > 0 {
		planner = planner.WithWorkers(conf.Solver.Workers)
	}

	logger.Debug("planning", "foods", len(foods), "requirements", len(reqs), "config", a.configPath)

	m := metrics.New()
	start := time.Now()

	if len(a.sweep) > 0 {
		err = a.planSweep(cmd.Context(), logger, m, planner, foods, reqs)
	} else {
		err = a.plan(cmd.Context(), logger, m, planner, foods, reqs)
	}
	if err != nil {
		return err
	}

	m.ObserveRun(time.Since(start))
	if conf.Metrics.File != "" {
		if err := m.WriteFile(conf.Metrics.File); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

func (a *app) plan(ctx context.Context, logger *logging.Logger, m *metrics.Metrics, planner *nutrition.Planner, foods []nutrition.FoodItem, reqs []nutrition.NutrientRequirement) error {
	r, err := planner.Plan(ctx, foods, reqs)
	if err != nil {
		return planError(err)
	}

	logger.Info("plan computed", "status", r.Status.String(), "cost", report.Money(r.Objective).String(), "pivots", r.Pivots)
	m.Observe(r, calorieLabel(reqs))
	a.code = exitCode(r.Status)

	return report.Render(a.stdout, r)
}

func (a *app) planSweep(ctx context.Context, logger *logging.Logger, m *metrics.Metrics, planner *nutrition.Planner, foods []nutrition.FoodItem, reqs []nutrition.NutrientRequirement) error {
	sets := make([][]nutrition.NutrientRequirement, len(a.sweep))
	for i, cal := range a.sweep {
		sets[i] = nutrition.WithCalories(reqs, cal)
	}

	reports, err := planner.PlanBatch(ctx, foods, sets)
	if err != nil {
		return planError(err)
	}

	for i, r := range reports {
		logger.Info("plan computed", "calories", a.sweep[i], "status", r.Status.String(), "pivots", r.Pivots)
		m.Observe(r, strconv.FormatFloat(a.sweep[i], 'f', -1, 64))
		if a.code == exitOptimal {
			a.code = exitCode(r.Status)
		}
	}

	return report.RenderSweep(a.stdout, a.sweep, reports)
}

// calorieLabel returns the exact calorie target of reqs, if there is one.
func calorieLabel(reqs []nutrition.NutrientRequirement) string {
	for _, r := range reqs {
		if r.Nutrient == nutrition.Calories && r.Kind == nutrition.Exact {
			return strconv.FormatFloat(r.Value, 'f', -1, 64)
		}
	}

	return ""
}

func exitCode(status dietlp.SolveStatus) int {
	switch status {
	case dietlp.SolutionOptimal:
		return exitOptimal
	case dietlp.SolutionInfeasible:
		return exitInfeasible
	case dietlp.SolutionUnbounded:
		return exitUnbounded
	default:
		return exitError
	}
}

func planError(err error) error {
	var malformed *dietlp.MalformedProblemError
	if errors.As(err, &malformed) {
		return fmt.Errorf("invalid plan: %w", err)
	}

	return err
}
