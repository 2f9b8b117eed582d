package interpolate

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/butterfly/geom"
	"gonum.org/v1/gonum/floats"
)

// ChebyshevNodes returns the n Chebyshev points of the first kind on [-1, 1],
// x_k = cos((2k + 1) pi / 2n).
func ChebyshevNodes(n int) []float64 {
	xs := make([]float64, n)
	for k := range xs {
		xs[k] = math.Cos(float64(2*k+1) * math.Pi / float64(2*n))
	}
	return xs
}

// ChebyshevWeights returns the barycentric weights of the points returned by
// ChebyshevNodes, w_k = (-1)^k sin((2k + 1) pi / 2n).
func ChebyshevWeights(n int) []float64 {
	ws := make([]float64, n)
	for k := range ws {
		ws[k] = math.Sin(float64(2*k+1) * math.Pi / float64(2*n))
		if k%2 == 1 {
			ws[k] = -ws[k]
		}
	}
	return ws
}

// Chebyshev is the tensor product of Order Chebyshev points along each of Dim
// axes. Grid nodes are indexed with axis 0 varying fastest.
type Chebyshev struct {
	Dim, Order int
	n          int
	xs, ws     []float64
}

// NewChebyshev creates a tensor grid with order points per axis.
func NewChebyshev(dim, order int) *Chebyshev {
	if dim < 1 {
		panic(fmt.Sprintf("Grid dimension %d is less than 1.", dim))
	} else if order < 1 {
		panic(fmt.Sprintf("Grid order %d is less than 1.", order))
	}

	n := 1
	for i := 0; i < dim; i++ {
		n *= order
	}
	return &Chebyshev{
		Dim: dim, Order: order, n: n,
		xs: ChebyshevNodes(order), ws: ChebyshevWeights(order),
	}
}

// Len returns order^dim.
func (c *Chebyshev) Len() int { return c.n }

// Nodes returns the grid nodes mapped onto b.
func (c *Chebyshev) Nodes(b *geom.Bounds) []geom.Vec {
	out := make([]geom.Vec, c.n)
	for i := range out {
		out[i] = make(geom.Vec, c.Dim)
		rem := i
		for j := 0; j < c.Dim; j++ {
			out[i][j] = b.Center[j] + b.HalfWidth*c.xs[rem%c.Order]
			rem /= c.Order
		}
	}
	return out
}

// Eval writes the values of the tensor Lagrange basis on b at x into out.
func (c *Chebyshev) Eval(b *geom.Bounds, x geom.Vec, out []float64) []float64 {
	if out == nil {
		out = make([]float64, c.n)
	}

	axes := make([]float64, c.Dim*c.Order)
	for j := 0; j < c.Dim; j++ {
		u := (x[j] - b.Center[j]) / b.HalfWidth
		c.eval1D(u, axes[j*c.Order:(j+1)*c.Order])
	}

	for i := range out {
		val, rem := 1.0, i
		for j := 0; j < c.Dim; j++ {
			val *= axes[j*c.Order+rem%c.Order]
			rem /= c.Order
		}
		out[i] = val
	}
	return out
}

// Matrix returns the len(xs) x Len() matrix of basis values at each x, stored
// row-major.
func (c *Chebyshev) Matrix(b *geom.Bounds, xs []geom.Vec) []float64 {
	out := make([]float64, len(xs)*c.n)
	for i, x := range xs {
		c.Eval(b, x, out[i*c.n:(i+1)*c.n])
	}
	return out
}

// eval1D evaluates the 1D basis at u using the second barycentric form.
func (c *Chebyshev) eval1D(u float64, out []float64) {
	for k, xk := range c.xs {
		if u == xk {
			for i := range out {
				out[i] = 0
			}
			out[k] = 1
			return
		}
	}

	for k, xk := range c.xs {
		out[k] = c.ws[k] / (u - xk)
	}
	floats.Scale(1/floats.Sum(out), out)
}
