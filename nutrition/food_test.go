package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItem(t *testing.T) {
	nutrients := map[Nutrient]float64{Protein: 31, Calories: 165, "fiber": 0}
	f := NewFoodItem("chicken breast", 1.5, nutrients)

	// later changes to the caller's map are not visible
	nutrients[Calories] = 0

	assert.Equal(t, "chicken breast", f.Name())
	assert.Equal(t, 1.5, f.CostPerUnit())

	v, ok := f.NutrientPerUnit(Calories)
	assert.True(t, ok)
	assert.Equal(t, 165.0, v)

	_, ok = f.NutrientPerUnit(Sodium)
	assert.False(t, ok)

	assert.Equal(t, []Nutrient{Calories, Protein, "fiber"}, f.Nutrients())
	assert.Equal(t, "chicken breast (1.5/unit)", f.String())
}

func TestNutrientUnit(t *testing.T) {
	assert.Equal(t, "kcal", Calories.Unit())
	assert.Equal(t, "µg", VitaminA.Unit())
	assert.Equal(t, "", Nutrient("fiber").Unit())
}

func TestParseBoundKind(t *testing.T) {
	tests := []struct {
		in   string
		want BoundKind
	}{
		{"exact", Exact},
		{"=", Exact},
		{" AT_MOST ", AtMost},
		{"<=", AtMost},
		{"max", AtMost},
		{"at_least", AtLeast},
		{">=", AtLeast},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoundKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBoundKind("about")
	assert.Error(t, err)
}

func TestBoundKindString(t *testing.T) {
	for _, k := range []BoundKind{Exact, AtMost, AtLeast} {
		parsed, err := ParseBoundKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)

		parsed, err = ParseBoundKind(k.Symbol())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	assert.Equal(t, "BoundKind(9)", BoundKind(9).String())
}

func TestRequirementSatisfied(t *testing.T) {
	const tol = 1e-6

	exact := NutrientRequirement{Nutrient: Calories, Kind: Exact, Value: 2000}
	assert.True(t, exact.Satisfied(2000.0000001, tol))
	assert.False(t, exact.Satisfied(2000.1, tol))
	assert.False(t, exact.Satisfied(1999.9, tol))

	atMost := NutrientRequirement{Nutrient: Sodium, Kind: AtMost, Value: 2400}
	assert.True(t, atMost.Satisfied(0, tol))
	assert.False(t, atMost.Satisfied(2401, tol))

	atLeast := NutrientRequirement{Nutrient: Protein, Kind: AtLeast, Value: 56}
	assert.True(t, atLeast.Satisfied(100, tol))
	assert.False(t, atLeast.Satisfied(55, tol))

	assert.Equal(t, "protein >= 56", atLeast.String())
}
