/*package geom contains the D-dimensional points and axis-aligned cubes used
to partition source and target sets.
*/
package geom

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Vec is a point in D-dimensional space. The dimension is the length of the
// slice.
type Vec []float64

// Dim returns the dimension of v.
func (v Vec) Dim() int { return len(v) }

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 { return floats.Dot(v, u) }

// Sub writes v - u into out and returns it. If out is nil, a new Vec is
// allocated.
func (v Vec) Sub(u, out Vec) Vec {
	if out == nil {
		out = make(Vec, len(v))
	}
	floats.SubTo(out, v, u)
	return out
}

// Dist2 returns the squared Euclidean distance between v and u.
func (v Vec) Dist2(u Vec) float64 {
	sum := 0.0
	for i := range v {
		dx := v[i] - u[i]
		sum += dx * dx
	}
	return sum
}

// Copy returns a copy of v.
func (v Vec) Copy() Vec {
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

func (v Vec) String() string {
	return fmt.Sprintf("%g", []float64(v))
}

// CheckDim returns an error if the Vecs in vs do not all have dimension dim.
func CheckDim(vs []Vec, dim int) error {
	for i, v := range vs {
		if len(v) != dim {
			return fmt.Errorf(
				"Point %d has dimension %d, but dimension %d was expected.",
				i, len(v), dim,
			)
		}
	}
	return nil
}

// UniformVecs returns n points drawn uniformly from the unit cube [0, 1)^dim.
func UniformVecs(gen *rand.Rand, n, dim int) []Vec {
	vs := make([]Vec, n)
	for i := range vs {
		vs[i] = make(Vec, dim)
		for j := range vs[i] {
			vs[i][j] = gen.Float64()
		}
	}
	return vs
}
