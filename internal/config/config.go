// Package config loads diet plans from YAML, TOML or JSON files with
// environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/costela/dietlp"
	"github.com/costela/dietlp/internal/logging"
	"github.com/costela/dietlp/nutrition"
)

// EnvPrefix prefixes every environment override, e.g. DIETLP_LOG_LEVEL.
const EnvPrefix = "DIETLP"

// Config is the content of a plan file.
type Config struct {
	Foods        []Food        `mapstructure:"foods"        validate:"dive"`
	Requirements []Requirement `mapstructure:"requirements" validate:"dive"`
	Log          LogConfig     `mapstructure:"log"`
	Solver       SolverConfig  `mapstructure:"solver"`
	Metrics      MetricsConfig `mapstructure:"metrics"`
}

// Food is one row of the food table. Nutrient keys are nutrient tags such
// as "calories" or "vitamin_c".
type Food struct {
	Name      string             `mapstructure:"name"      validate:"required"`
	Cost      float64            `mapstructure:"cost"      validate:"gte=0"`
	Nutrients map[string]float64 `mapstructure:"nutrients" validate:"required,min=1"`
}

// Requirement bounds the daily total of one nutrient.
type Requirement struct {
	Nutrient string  `mapstructure:"nutrient" validate:"required"`
	Bound    string  `mapstructure:"bound"    validate:"required,oneof=exact at_most at_least"`
	Value    float64 `mapstructure:"value"    validate:"gte=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"gte=0"` // MB
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"gte=0"` // days
	Compress   bool   `mapstructure:"compress"`
}

// SolverConfig tunes the simplex engine. Zero values select the defaults.
type SolverConfig struct {
	Tolerance     float64 `mapstructure:"tolerance"      validate:"gte=0,lte=0.000001"` // at most dietlp.MaxTolerance
	MaxIterations int     `mapstructure:"max_iterations" validate:"gte=0"`
	Workers       int     `mapstructure:"workers"        validate:"gte=0"`
}

// MetricsConfig names the Prometheus textfile written after a run. An
// empty file disables metrics.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// New returns a viper instance with the defaults and environment binding
// used by Load. Callers may bind command line flags to it before loading.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("solver.tolerance", dietlp.DefaultTolerance)
	v.SetDefault("solver.max_iterations", 0)
	v.SetDefault("solver.workers", 0)
	v.SetDefault("metrics.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the file at path into a Config and validates it. An empty
// path loads defaults and environment overrides only. The file type is
// taken from the extension.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return conf, nil
}

// FoodItems converts the food table, falling back to the reference foods
// if the file declares none.
func (c *Config) FoodItems() []nutrition.FoodItem {
	if len(c.Foods) == 0 {
		return nutrition.ReferenceFoods()
	}

	foods := make([]nutrition.FoodItem, len(c.Foods))
	for i, f := range c.Foods {
		nutrients := make(map[nutrition.Nutrient]float64, len(f.Nutrients))
		for tag, v := range f.Nutrients {
			nutrients[nutrition.Nutrient(strings.ToLower(tag))] = v
		}
		foods[i] = nutrition.NewFoodItem(f.Name, f.Cost, nutrients)
	}

	return foods
}

// NutrientRequirements converts the requirements, falling back to the
// standard daily set if the file declares none.
func (c *Config) NutrientRequirements() ([]nutrition.NutrientRequirement, error) {
	if len(c.Requirements) == 0 {
		return nutrition.StandardRequirements(nutrition.CalorieTarget), nil
	}

	reqs := make([]nutrition.NutrientRequirement, len(c.Requirements))
	for i, r := range c.Requirements {
		kind, err := nutrition.ParseBoundKind(r.Bound)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
		reqs[i] = nutrition.NutrientRequirement{
			Nutrient: nutrition.Nutrient(strings.ToLower(r.Nutrient)),
			Kind:     kind,
			Value:    r.Value,
		}
	}

	return reqs, nil
}

// SolverOptions returns the dietlp options selected by the solver section.
func (c *Config) SolverOptions() []dietlp.Option {
	var opts []dietlp.Option
	if c.Solver.Tolerance > 0 {
		opts = append(opts, dietlp.WithTolerance(c.Solver.Tolerance))
	}
	if c.Solver.MaxIterations > 0 {
		opts = append(opts, dietlp.WithIterationLimit(c.Solver.MaxIterations))
	}

	return opts
}

// Logging returns the logger settings of the log section.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
