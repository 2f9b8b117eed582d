package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// boundsInflation is the fractional padding added to a bounding cube so that
// points on its faces sit strictly inside.
const boundsInflation = 1e-6

// Bounds is an axis-aligned cube.
type Bounds struct {
	Center    Vec
	HalfWidth float64
}

// BoundingCube returns the smallest cube (slightly inflated) which contains
// every point in vs.
func BoundingCube(vs []Vec) (*Bounds, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("Cannot bound an empty point set.")
	}
	dim := len(vs[0])
	if dim == 0 {
		return nil, fmt.Errorf("Points must have a dimension of at least 1.")
	}
	if err := CheckDim(vs, dim); err != nil {
		return nil, err
	}

	lo, hi := vs[0].Copy(), vs[0].Copy()
	col := make([]float64, len(vs))
	for j := 0; j < dim; j++ {
		for i := range vs {
			col[i] = vs[i][j]
		}
		lo[j], hi[j] = floats.Min(col), floats.Max(col)
	}

	b := &Bounds{Center: make(Vec, dim)}
	for j := 0; j < dim; j++ {
		b.Center[j] = (lo[j] + hi[j]) / 2
		b.HalfWidth = math.Max(b.HalfWidth, (hi[j]-lo[j])/2)
	}

	if b.HalfWidth == 0 {
		// Every point coincides.
		b.HalfWidth = 0.5
	} else {
		b.HalfWidth *= 1 + boundsInflation
	}
	return b, nil
}

// Dim returns the dimension of the cube.
func (b *Bounds) Dim() int { return len(b.Center) }

// Contains returns true if v lies within b (faces included).
func (b *Bounds) Contains(v Vec) bool {
	for j := range b.Center {
		if math.Abs(v[j]-b.Center[j]) > b.HalfWidth {
			return false
		}
	}
	return true
}

// ChildIndex returns the index of the orthant of b which contains v. Bit j is
// set if v lies on the upper side of the center along axis j.
func (b *Bounds) ChildIndex(v Vec) int {
	idx := 0
	for j := range b.Center {
		if v[j] >= b.Center[j] {
			idx |= 1 << uint(j)
		}
	}
	return idx
}

// Child returns the cube for orthant idx, using the same bit convention as
// ChildIndex.
func (b *Bounds) Child(idx int) *Bounds {
	h := b.HalfWidth / 2
	c := &Bounds{Center: make(Vec, len(b.Center)), HalfWidth: h}
	for j := range b.Center {
		if idx&(1<<uint(j)) != 0 {
			c.Center[j] = b.Center[j] + h
		} else {
			c.Center[j] = b.Center[j] - h
		}
	}
	return c
}

// Corners returns the 2^D corners of b.
func (b *Bounds) Corners() []Vec {
	dim := len(b.Center)
	out := make([]Vec, 1<<uint(dim))
	for idx := range out {
		out[idx] = make(Vec, dim)
		for j := 0; j < dim; j++ {
			if idx&(1<<uint(j)) != 0 {
				out[idx][j] = b.Center[j] + b.HalfWidth
			} else {
				out[idx][j] = b.Center[j] - b.HalfWidth
			}
		}
	}
	return out
}

// Samples returns the corners of b followed by its center.
func (b *Bounds) Samples() []Vec {
	return append(b.Corners(), b.Center)
}
