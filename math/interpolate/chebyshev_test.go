package interpolate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestChebyshevNodes(t *testing.T) {
	xs := ChebyshevNodes(4)
	ws := ChebyshevWeights(4)
	for k := range xs {
		assert.InDelta(t, math.Cos(float64(2*k+1)*math.Pi/8), xs[k], 1e-15)
		assert.True(t, xs[k] > -1 && xs[k] < 1)
	}
	assert.True(t, ws[0] > 0 && ws[1] < 0 && ws[2] > 0 && ws[3] < 0)
}

func TestKroneckerAtNodes(t *testing.T) {
	c := NewChebyshev(2, 5)
	b := &geom.Bounds{Center: geom.Vec{1, -2}, HalfWidth: 0.5}
	nodes := c.Nodes(b)
	assert.Len(t, nodes, 25)

	for i, x := range nodes {
		vals := c.Eval(b, x, nil)
		for j := range vals {
			if i == j {
				assert.InDelta(t, 1.0, vals[j], 1e-12)
			} else {
				assert.InDelta(t, 0.0, vals[j], 1e-12)
			}
		}
	}
}

func TestPartitionOfUnity(t *testing.T) {
	gen := rand.New(rand.NewSource(3))
	c := NewChebyshev(3, 4)
	b := &geom.Bounds{Center: geom.Vec{0.5, 0.5, 0.5}, HalfWidth: 0.5}
	for _, x := range geom.UniformVecs(gen, 50, 3) {
		assert.InDelta(t, 1.0, floats.Sum(c.Eval(b, x, nil)), 1e-12)
	}
}

func TestPolynomialReproduction(t *testing.T) {
	poly := func(x geom.Vec) float64 {
		return 1 + 2*x[0] - 3*x[0]*x[0]*x[1] + x[1]*x[1]*x[1]
	}

	c := NewChebyshev(2, 4)
	b := &geom.Bounds{Center: geom.Vec{0.1, 0.2}, HalfWidth: 2}
	nodes := c.Nodes(b)
	vals := make([]float64, len(nodes))
	for i := range nodes {
		vals[i] = poly(nodes[i])
	}

	gen := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		x := geom.Vec{gen.Float64()*4 - 1.9, gen.Float64()*4 - 1.8}
		assert.InDelta(t, poly(x), floats.Dot(c.Eval(b, x, nil), vals), 1e-10)
	}
}

func TestMatrix(t *testing.T) {
	c := NewChebyshev(1, 3)
	b := &geom.Bounds{Center: geom.Vec{0}, HalfWidth: 1}
	xs := []geom.Vec{{0.3}, {-0.7}}
	m := c.Matrix(b, xs)
	assert.Len(t, m, 6)
	assert.Equal(t, c.Eval(b, xs[1], nil), m[3:6])
}

func TestNewChebyshevPanics(t *testing.T) {
	assert.Panics(t, func() { NewChebyshev(0, 3) })
	assert.Panics(t, func() { NewChebyshev(2, 0) })
}
