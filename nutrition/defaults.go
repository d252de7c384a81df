package nutrition

// Daily limits used by StandardRequirements.
const (
	CalorieTarget     = 2000 // kcal
	SaturatedFatLimit = 20   // g
	SodiumLimit       = 2400 // mg
	VitaminCMinimum   = 90   // mg
	VitaminAMinimum   = 700  // µg
	ProteinMinimum    = 56   // g
)

// StandardRequirements returns the six daily requirements with the given
// calorie target.
func StandardRequirements(calories float64) []NutrientRequirement {
	return []NutrientRequirement{
		{Nutrient: Calories, Kind: Exact, Value: calories},
		{Nutrient: SaturatedFat, Kind: AtMost, Value: SaturatedFatLimit},
		{Nutrient: Sodium, Kind: AtMost, Value: SodiumLimit},
		{Nutrient: VitaminC, Kind: AtLeast, Value: VitaminCMinimum},
		{Nutrient: VitaminA, Kind: AtLeast, Value: VitaminAMinimum},
		{Nutrient: Protein, Kind: AtLeast, Value: ProteinMinimum},
	}
}

// ReferenceFoods returns a five-food table with per-serving values.
func ReferenceFoods() []FoodItem {
	return []FoodItem{
		NewFoodItem("chicken breast", 1.50, map[Nutrient]float64{
			Calories: 165, SaturatedFat: 1.0, Sodium: 74, VitaminC: 0, VitaminA: 6, Protein: 31,
		}),
		NewFoodItem("cereal", 0.40, map[Nutrient]float64{
			Calories: 150, SaturatedFat: 0.3, Sodium: 200, VitaminC: 6, VitaminA: 150, Protein: 3,
		}),
		NewFoodItem("tortilla", 0.25, map[Nutrient]float64{
			Calories: 140, SaturatedFat: 1.0, Sodium: 330, VitaminC: 0, VitaminA: 0, Protein: 4,
		}),
		NewFoodItem("broccoli", 0.60, map[Nutrient]float64{
			Calories: 31, SaturatedFat: 0.04, Sodium: 30, VitaminC: 81, VitaminA: 31, Protein: 2.6,
		}),
		NewFoodItem("avocado", 1.20, map[Nutrient]float64{
			Calories: 322, SaturatedFat: 4.3, Sodium: 14, VitaminC: 20, VitaminA: 14, Protein: 4,
		}),
	}
}

// SampleFoods returns two synthetic foods, useful for small examples.
func SampleFoods() []FoodItem {
	return []FoodItem{
		NewFoodItem("test_food_0", 2.5, map[Nutrient]float64{
			Calories: 350, SaturatedFat: 3, Sodium: 100, VitaminC: 50, VitaminA: 50, Protein: 10,
		}),
		NewFoodItem("test_food_1", 3.3, map[Nutrient]float64{
			Calories: 100, SaturatedFat: 0.1, Sodium: 200, VitaminC: 100, VitaminA: 100, Protein: 10,
		}),
	}
}

// WithCalories returns a copy of reqs in which every calorie requirement
// is replaced by a single Exact one at calories. If reqs has no calorie
// requirement, one is prepended.
func WithCalories(reqs []NutrientRequirement, calories float64) []NutrientRequirement {
	out := []NutrientRequirement{{Nutrient: Calories, Kind: Exact, Value: calories}}
	for _, r := range reqs {
		if r.Nutrient != Calories {
			out = append(out, r)
		}
	}

	return out
}
