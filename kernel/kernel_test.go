package kernel

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/stretchr/testify/assert"
)

func TestCis(t *testing.T) {
	table := []struct {
		cycles float64
		val    complex128
	}{
		{0, 1},
		{0.25, 1i},
		{0.5, -1},
		{-0.25, -1i},
		{1e6 + 0.25, 1i},
	}
	for i, test := range table {
		got := Cis(test.cycles)
		assert.InDelta(t, 0, cmplx.Abs(got-test.val), 1e-9, "%d) Cis(%g)",
			i, test.cycles)
	}
}

func TestFourier(t *testing.T) {
	k := Fourier{Scale: 1}
	tv, sv := geom.Vec{0.5}, geom.Vec{0.5}
	assert.InDelta(t, 0.25, k.Phase(tv, sv), 1e-15)
	assert.InDelta(t, 0, cmplx.Abs(k.Value(tv, sv)-1i), 1e-15)
	assert.Equal(t, 1.0, k.Amplitude(tv, sv))
}

func TestChirp(t *testing.T) {
	k := Chirp{Scale: 2, Decay: 3}
	tv, sv := geom.Vec{1, 0}, geom.Vec{0, 1}
	assert.InDelta(t, math.Exp(-6), k.Amplitude(tv, sv), 1e-15)
	assert.Equal(t, 0.0, k.Phase(tv, sv))
	assert.InDelta(t, math.Exp(-6), real(k.Value(tv, sv)), 1e-15)
}

type badKernel struct{ Fourier }

func (k badKernel) Value(t, s geom.Vec) complex128 {
	return 2 * k.Fourier.Value(t, s)
}

func TestCheck(t *testing.T) {
	gen := rand.New(rand.NewSource(5))
	ts := geom.UniformVecs(gen, 20, 2)
	ss := geom.UniformVecs(gen, 20, 2)

	assert.NoError(t, Check(Fourier{Scale: 3}, ts, ss, 1e-12))
	assert.NoError(t, Check(Chirp{Scale: 3, Decay: 1}, ts, ss, 1e-12))
	assert.Error(t, Check(badKernel{Fourier{Scale: 3}}, ts, ss, 1e-12))
}

func TestTraits(t *testing.T) {
	s := Traits(Fourier{Scale: 1}, 2)
	assert.Contains(t, s, "kernel.Fourier")
	assert.Contains(t, s, "[2]float64")
}
