/*package interpolate provides Lagrange interpolation on tensor grids of
Chebyshev points of the first kind.
*/
package interpolate

import (
	"github.com/phil-mansfield/butterfly/geom"
)

// Basis evaluates every Lagrange basis function of a grid at a point.
type Basis interface {
	// Len returns the number of basis functions.
	Len() int
	// Eval writes the basis values at x into out and returns out. If out is
	// nil a new slice is allocated.
	Eval(b *geom.Bounds, x geom.Vec, out []float64) []float64
	// Nodes returns the grid nodes mapped onto the cube b.
	Nodes(b *geom.Bounds) []geom.Vec
}

var (
	_ Basis = &Chebyshev{}
)
