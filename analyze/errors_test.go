package analyze

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	exact := []complex128{1, 2i, -4}
	result := []complex128{1.1, 2i, -4 + 0.4i}

	rep, err := Errors(result, exact)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, rep.Targets[0].Rel, 1e-12)
	assert.Equal(t, 0.0, rep.Targets[1].Rel)
	assert.InDelta(t, 0.1, rep.Targets[2].Rel, 1e-12)
	assert.InDelta(t, 0.2/3, rep.Average, 1e-12)
	assert.InDelta(t, 0.1, rep.Maximum, 1e-12)
	assert.InDelta(t, math.Sqrt((0.01+0.16)/21), rep.Aggregate, 1e-12)
	assert.Equal(t, 3, rep.Measured)
}

func TestErrorsBothZero(t *testing.T) {
	rep, err := Errors([]complex128{0, 1}, []complex128{0, 1})
	require.NoError(t, err)

	assert.True(t, rep.Targets[0].Defined)
	assert.Equal(t, 0.0, rep.Targets[0].Rel)
	assert.Equal(t, 1, rep.Measured)
	assert.Equal(t, 0.0, rep.Aggregate)
	assert.Equal(t, 0.0, rep.Average)

	rep, err = Errors([]complex128{0}, []complex128{0})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Measured)
	assert.Equal(t, 0.0, rep.Aggregate)
	assert.Equal(t, 0.0, rep.Maximum)
}

func TestErrorsZeroExact(t *testing.T) {
	rep, err := Errors([]complex128{1e-3, 2, 0}, []complex128{0, 2, 0})
	require.Error(t, err)

	var dne *DegenerateNormError
	require.True(t, errors.As(err, &dne))
	assert.Equal(t, []int{0}, dne.Indices)

	require.NotNil(t, rep)
	assert.False(t, rep.Targets[0].Defined)
	for _, x := range []float64{rep.Aggregate, rep.Average, rep.Maximum} {
		assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
	}
	assert.Equal(t, 0.0, rep.Aggregate)
	assert.Equal(t, 1, rep.Measured)
}

func TestErrorsLengthMismatch(t *testing.T) {
	_, err := Errors([]complex128{1}, nil)
	assert.Error(t, err)
}
