package dietlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemCounts(t *testing.T) {
	p := &Problem{
		C:     []float64{1, 2, 3},
		AEq:   [][]float64{{1, 1, 1}},
		BEq:   []float64{1},
		AIneq: [][]float64{{1, 0, 0}, {0, 1, 0}},
		BIneq: []float64{1, 1},
	}

	assert.Equal(t, 3, p.VariableCount())
	assert.Equal(t, 3, p.ConstraintCount())
	assert.NoError(t, p.Validate())
}

func TestProblemValidate(t *testing.T) {
	tests := []struct {
		name   string
		p      *Problem
		reason string
	}{
		{"empty", &Problem{}, "problem has no variables"},
		{"rhs mismatch", &Problem{C: []float64{1}, AEq: [][]float64{{1}, {2}}, BEq: []float64{1}}, "inconsistent number of equality rows"},
		{"ragged", &Problem{C: []float64{1, 2}, AIneq: [][]float64{{1, 2}, {1}}, BIneq: []float64{1, 1}}, "inequality row 1 has 1 coefficients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.reason)
			}
		})
	}
}
