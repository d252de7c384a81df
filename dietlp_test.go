/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
package dietlp

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

var (
	bigModel     *Model
	bigModelOnce sync.Once
)

const bigModelSize = 200

func getBigModelCopy(t *testing.T) *Model {
	t.Helper()

	bigModelOnce.Do(func() {
		model, err := NewModel("testBig", Maximize)
		require.NoError(t, err)

		for i := 0; i < bigModelSize; i++ {
			v, err := model.AddVariable(fmt.Sprintf("x%d", i))
			require.NoError(t, err)
			err = model.AddConstraint(-float64(i), float64(i), []*Variable{v}, []float64{1})
			require.NoError(t, err)
		}

		bigModel = model
	})

	return bigModel.Clone()
}

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Maximize, model.Direction())

	model.SetDirection(Minimize)
	assert.Equal(t, Minimize, model.Direction())
}

func TestInstantiationWithBadOption(t *testing.T) {
	_, err := NewModel("bad", Minimize, WithTolerance(-1))
	assert.Error(t, err)

	_, err = NewModel("bad", Minimize, WithLogger(nil))
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name, Maximize)
	require.NoError(t, err)

	v, err := model.AddDefinedVariable("x", 1, 2, 3)
	require.NoError(t, err)

	err = model.AddConstraint(0, 1, []*Variable{v}, []float64{1})
	require.NoError(t, err)

	modelClone := model.Clone()

	assert.Equal(t, model.Name(), modelClone.Name())
	assert.Equal(t, model.Direction(), modelClone.Direction())
	assert.Equal(t, model.VariableCount(), modelClone.VariableCount())
	assert.Equal(t, model.ConstraintCount(), modelClone.ConstraintCount())

	// changes to the clone do not leak into the original
	require.NoError(t, modelClone.Variables()[0].SetBounds(0, 10))
	l, h := v.Bounds()
	assert.Equal(t, 2.0, l)
	assert.Equal(t, 3.0, h)
}

func TestAddVariableWithDetails(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, err := model.AddDefinedVariable("x", 3.1416, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, "x", v1.Name())
	assert.Equal(t, 3.1416, v1.Coefficient())
	l, h := v1.Bounds()
	assert.Equal(t, 0.0, l)
	assert.Equal(t, 1.0, h)

	v2, err := model.AddDefinedVariable("y", -1, math.Inf(-1), 5)
	require.NoError(t, err)

	assert.Equal(t, "y", v2.Name())
	assert.Equal(t, -1.0, v2.Coefficient())
	l, h = v2.Bounds()
	assert.Equal(t, math.Inf(-1), l)
	assert.Equal(t, 5.0, h)

	v3, err := model.AddVariable("")
	require.NoError(t, err)
	assert.Equal(t, "V2", v3.Name())

	_, err = model.AddDefinedVariable("z", 1, 3, 2)
	assert.Error(t, err)
	_, err = model.AddDefinedVariable("z", math.NaN(), 0, 1)
	assert.Error(t, err)
}

func TestSetObjectiveFunction(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	v1, _ := model.AddVariable("x")
	v2, _ := model.AddVariable("y")
	v3, _ := model.AddVariable("z")

	vars := []*Variable{v1, v2, v3}
	coefs := []float64{1.3, 2.7182, 3.1416}
	require.NoError(t, model.SetObjectiveFunction(coefs, vars))
	for i, coef := range coefs {
		assert.Equal(t, coef, vars[i].Coefficient())
	}

	assert.Error(t, model.SetObjectiveFunction(coefs[:2], vars))
}

func TestAddConstraintErrors(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)
	other, err := NewModel("other", Minimize)
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	y, _ := other.AddVariable("y")

	assert.Error(t, model.AddConstraint(0, 1, []*Variable{x}, []float64{1, 2}))
	assert.Error(t, model.AddConstraint(0, 1, []*Variable{y}, []float64{1}))
	assert.Error(t, model.AddConstraint(2, 1, []*Variable{x}, []float64{1}))
	assert.Error(t, model.AddConstraint(0, 1, []*Variable{x}, []float64{math.Inf(1)}))
	assert.Equal(t, 0, model.ConstraintCount())
}

func TestConstraintCount(t *testing.T) {
	model, err := NewModel("test", Minimize)
	require.NoError(t, err)
	x, _ := model.AddVariable("x")

	require.NoError(t, model.AddConstraint(math.Inf(-1), math.Inf(1), []*Variable{x}, []float64{1}))
	assert.Equal(t, 0, model.ConstraintCount())
	require.NoError(t, model.AddConstraint(math.Inf(-1), 1, []*Variable{x}, []float64{1}))
	assert.Equal(t, 1, model.ConstraintCount())
	require.NoError(t, model.AddConstraint(1, 1, []*Variable{x}, []float64{1}))
	assert.Equal(t, 2, model.ConstraintCount())
	require.NoError(t, model.AddConstraint(0, 1, []*Variable{x}, []float64{1}))
	assert.Equal(t, 4, model.ConstraintCount())
}

func TestSolveLP(t *testing.T) {
	model, err := NewModel("test", Maximize)
	require.NoError(t, err)

	x1, _ := model.AddDefinedVariable("x1", 1, 0, math.Inf(1))
	x2, _ := model.AddDefinedVariable("x2", 2, 0, math.Inf(1))
	x3, _ := model.AddDefinedVariable("x3", -1, 0, math.Inf(1))

	model.AddConstraint(0, 14, []*Variable{x1, x2, x3}, []float64{2, 1, 1})
	model.AddConstraint(0, 28, []*Variable{x1, x2, x3}, []float64{4, 2, 3})
	model.AddConstraint(0, 30, []*Variable{x1, x2, x3}, []float64{2, 5, 5})

	res, err := model.Solve()
	require.NoError(t, err)

	expected_xs := []float64{5, 4, 0}
	expected_obj := 13.0

	assert.Equal(t, SolutionOptimal, res.Status())

	// ignore numerical inaccuracies
	assert.InDelta(t, expected_obj, res.ObjectiveValue(), delta)

	for i, x := range []*Variable{x1, x2, x3} {
		assert.InDelta(t, expected_xs[i], res.Value(x), delta)
	}
}

func TestSolveWithVariableBounds(t *testing.T) {
	model, err := NewModel("bounds", Maximize)
	require.NoError(t, err)

	x, _ := model.AddDefinedVariable("x", 1, 2, 5)
	y, _ := model.AddDefinedVariable("y", 1, math.Inf(-1), 3)
	require.NoError(t, model.AddConstraint(1, math.Inf(1), []*Variable{x, y}, []float64{1, 1}))

	res, err := model.Solve()
	require.NoError(t, err)

	assert.InDelta(t, 8, res.ObjectiveValue(), delta)
	assert.InDelta(t, 5, res.Value(x), delta)
	assert.InDelta(t, 3, res.Value(y), delta)
}

func TestSolveFreeVariable(t *testing.T) {
	model, err := NewModel("free", Minimize)
	require.NoError(t, err)

	x, _ := model.AddVariable("x")
	require.NoError(t, model.AddConstraint(-4, math.Inf(1), []*Variable{x}, []float64{1}))

	res, err := model.Solve()
	require.NoError(t, err)

	assert.InDelta(t, -4, res.Value(x), delta)
	assert.InDelta(t, -4, res.ObjectiveValue(), delta)
}

func TestSolveInfeasibleModel(t *testing.T) {
	model, err := NewModel("infeasible", Minimize)
	require.NoError(t, err)

	x, _ := model.AddDefinedVariable("x", 1, 0, 1)
	require.NoError(t, model.AddConstraint(2, math.Inf(1), []*Variable{x}, []float64{1}))

	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrModelInfeasible)
}

func TestSolveUnboundedModel(t *testing.T) {
	model, err := NewModel("unbounded", Maximize)
	require.NoError(t, err)

	_, err = model.AddDefinedVariable("x", 1, 0, math.Inf(1))
	require.NoError(t, err)

	_, err = model.Solve()
	assert.ErrorIs(t, err, ErrModelUnbounded)
}

func TestSolveEmptyModel(t *testing.T) {
	model, err := NewModel("empty", Minimize)
	require.NoError(t, err)

	_, err = model.Solve()
	var malformed *MalformedProblemError
	assert.ErrorAs(t, err, &malformed)
}

func TestBig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	model := getBigModelCopy(t)

	res, err := model.Solve()
	require.NoError(t, err)

	expected := float64(bigModelSize*(bigModelSize-1)) / 2
	assert.InDelta(t, expected, res.ObjectiveValue(), delta)
}

func TestContext(t *testing.T) {
	model := getBigModelCopy(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := model.SolveWithContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// solves share no state, so concurrent solves of one model must agree
func TestParallel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	model := getBigModelCopy(t)

	results := make([]float64, 4)
	wg := sync.WaitGroup{}
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := model.Solve()
			if assert.NoError(t, err) {
				results[i] = res.ObjectiveValue()
			}
		}()
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

/* Benchmarks */

func BenchmarkSolveBig(b *testing.B) {
	model, err := NewModel("bench", Maximize)
	require.NoError(b, err)
	for i := 0; i < 50; i++ {
		v, _ := model.AddVariable(fmt.Sprintf("x%d", i))
		model.AddConstraint(-float64(i), float64(i), []*Variable{v}, []float64{1})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := model.Solve(); err != nil {
			b.Fatal(err)
		}
	}
}
