// Package nutrition turns food tables and nutrient requirements into linear
// programs, solves them with dietlp and checks the resulting diets.
package nutrition

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Nutrient identifies one nutrient column of a food table. Values of a
// nutrient share a single unit across all foods and requirements.
type Nutrient string

const (
	Calories     Nutrient = "calories"      // kcal
	SaturatedFat Nutrient = "saturated_fat" // g
	Sodium       Nutrient = "sodium"        // mg
	VitaminC     Nutrient = "vitamin_c"     // mg
	VitaminA     Nutrient = "vitamin_a"     // µg
	Protein      Nutrient = "protein"       // g
)

// StandardNutrients lists the nutrients tracked by the standard
// requirements, in reporting order.
var StandardNutrients = []Nutrient{Calories, SaturatedFat, Sodium, VitaminC, VitaminA, Protein}

var units = map[Nutrient]string{
	Calories:     "kcal",
	SaturatedFat: "g",
	Sodium:       "mg",
	VitaminC:     "mg",
	VitaminA:     "µg",
	Protein:      "g",
}

// Unit returns the unit of the nutrient, or "" for unknown nutrients.
func (n Nutrient) Unit() string {
	return units[n]
}

// compareNutrients orders the standard nutrients first, in their
// reporting order, then everything else alphabetically.
func compareNutrients(a, b Nutrient) int {
	ia, ib := slices.Index(StandardNutrients, a), slices.Index(StandardNutrients, b)
	switch {
	case ia >= 0 && ib >= 0:
		return cmp.Compare(ia, ib)
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	default:
		return strings.Compare(string(a), string(b))
	}
}

func sortNutrients(ns []Nutrient) {
	slices.SortFunc(ns, compareNutrients)
}

// FoodItem is one unit of a food: its cost and its nutrient content. The
// unit itself (a serving, 100 g, an item) is up to the caller, but must be
// the same for cost and nutrients. FoodItem values are immutable.
type FoodItem struct {
	name      string
	cost      float64
	nutrients map[Nutrient]float64
}

// NewFoodItem returns a food with the given per-unit cost and nutrient
// content. The nutrient map is copied.
func NewFoodItem(name string, costPerUnit float64, nutrientPerUnit map[Nutrient]float64) FoodItem {
	return FoodItem{
		name:      name,
		cost:      costPerUnit,
		nutrients: maps.Clone(nutrientPerUnit),
	}
}

func (f FoodItem) Name() string {
	return f.name
}

func (f FoodItem) CostPerUnit() float64 {
	return f.cost
}

// NutrientPerUnit returns the amount of n in one unit of the food and
// whether the food declares n at all.
func (f FoodItem) NutrientPerUnit(n Nutrient) (float64, bool) {
	v, ok := f.nutrients[n]
	return v, ok
}

// Nutrients returns the nutrients declared by the food, standard
// nutrients first.
func (f FoodItem) Nutrients() []Nutrient {
	return slices.SortedFunc(maps.Keys(f.nutrients), compareNutrients)
}

func (f FoodItem) String() string {
	return fmt.Sprintf("%s (%g/unit)", f.name, f.cost)
}

// BoundKind is the direction of a NutrientRequirement.
type BoundKind int

const (
	Exact BoundKind = iota + 1
	AtMost
	AtLeast
)

func (k BoundKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case AtMost:
		return "at_most"
	case AtLeast:
		return "at_least"
	default:
		return fmt.Sprintf("BoundKind(%d)", int(k))
	}
}

// Symbol returns the relational operator of the bound.
func (k BoundKind) Symbol() string {
	switch k {
	case Exact:
		return "="
	case AtMost:
		return "<="
	case AtLeast:
		return ">="
	default:
		return "?"
	}
}

// ParseBoundKind accepts the names returned by BoundKind.String as well as
// the operators returned by Symbol.
func ParseBoundKind(s string) (BoundKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "eq", "=", "==":
		return Exact, nil
	case "at_most", "atmost", "max", "<=":
		return AtMost, nil
	case "at_least", "atleast", "min", ">=":
		return AtLeast, nil
	default:
		return 0, fmt.Errorf("unknown bound kind %q", s)
	}
}

// NutrientRequirement bounds the total amount of one nutrient in a diet.
type NutrientRequirement struct {
	Nutrient Nutrient
	Kind     BoundKind
	Value    float64
}

func (r NutrientRequirement) String() string {
	return fmt.Sprintf("%s %s %g", r.Nutrient, r.Kind.Symbol(), r.Value)
}

// Satisfied reports whether total meets the requirement within tol.
func (r NutrientRequirement) Satisfied(total, tol float64) bool {
	switch r.Kind {
	case Exact:
		return total >= r.Value-tol && total <= r.Value+tol
	case AtMost:
		return total <= r.Value+tol
	case AtLeast:
		return total >= r.Value-tol
	default:
		return false
	}
}
