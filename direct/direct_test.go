package direct

import (
	"math/cmplx"
	"testing"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatvec(t *testing.T) {
	k := kernel.Fourier{Scale: 1}
	sources := []geom.Vec{{0}, {0.5}}
	charges := []complex128{1, 2}
	targets := []geom.Vec{{0}, {0.5}, {1}}

	out, err := Matvec(k, sources, charges, targets)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// e^{2 pi i t s}: t = 0 gives 1 + 2, t = 0.5 gives 1 + 2i,
	// t = 1 gives 1 - 2.
	expected := []complex128{3, 1 + 2i, -1}
	for i := range expected {
		assert.InDelta(t, 0, cmplx.Abs(out[i]-expected[i]), 1e-12, "target %d", i)
	}
}

func TestMatvecManyRows(t *testing.T) {
	k := kernel.Fourier{Scale: 2}
	sources := []geom.Vec{{0.1, 0.2}}
	targets := make([]geom.Vec, 3*rowsPerTask+5)
	for i := range targets {
		targets[i] = geom.Vec{float64(i) / 100, 0}
	}
	out, err := Matvec(k, sources, []complex128{1i}, targets)
	require.NoError(t, err)
	for i, tv := range targets {
		assert.Equal(t, 1i*k.Value(tv, sources[0]), out[i])
	}
}

func TestMatvecErrors(t *testing.T) {
	_, err := Matvec(kernel.Fourier{}, []geom.Vec{{0}}, nil, []geom.Vec{{0}})
	assert.Error(t, err)
}
