package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardRequirements(t *testing.T) {
	reqs := StandardRequirements(1800)

	assert.Len(t, reqs, len(StandardNutrients))
	for i, r := range reqs {
		assert.Equal(t, StandardNutrients[i], r.Nutrient)
	}
	assert.Equal(t, NutrientRequirement{Nutrient: Calories, Kind: Exact, Value: 1800}, reqs[0])
}

func TestWithCalories(t *testing.T) {
	reqs := []NutrientRequirement{
		{Nutrient: Sodium, Kind: AtMost, Value: 2400},
		{Nutrient: Calories, Kind: AtLeast, Value: 1000},
		{Nutrient: Calories, Kind: AtMost, Value: 3000},
	}

	got := WithCalories(reqs, 2200)
	assert.Equal(t, []NutrientRequirement{
		{Nutrient: Calories, Kind: Exact, Value: 2200},
		{Nutrient: Sodium, Kind: AtMost, Value: 2400},
	}, got)

	// the input is left alone
	assert.Len(t, reqs, 3)

	assert.Equal(t, []NutrientRequirement{{Nutrient: Calories, Kind: Exact, Value: 1500}}, WithCalories(nil, 1500))
}

func TestReferenceFoodsDeclareStandardNutrients(t *testing.T) {
	for _, f := range append(ReferenceFoods(), SampleFoods()...) {
		assert.Equal(t, StandardNutrients, f.Nutrients(), f.Name())
		assert.GreaterOrEqual(t, f.CostPerUnit(), 0.0)
	}
}
