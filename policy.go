package butterfly

import (
	"math"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"github.com/phil-mansfield/butterfly/tree"
)

const (
	// DefaultOrder is the default number of Chebyshev nodes per axis.
	DefaultOrder = 8
	// DefaultMaxSpread is the default phase spread threshold, in cycles.
	DefaultMaxSpread = 0.5
)

// Policy decides the expansion order and which box pairs may be
// compressed.
type Policy interface {
	// Order returns the number of interpolation nodes per axis.
	Order() int
	// Compressible returns true if the interaction between the source box
	// and the target box is low rank at the policy's order.
	Compressible(k kernel.Kernel, src, tgt *tree.Box) bool
}

// Chebyshev is a Policy which compresses a pair when its phase spread is no
// larger than MaxSpread.
type Chebyshev struct {
	Nodes     int
	MaxSpread float64
}

var _ Policy = Chebyshev{}

// DefaultPolicy returns the policy used when none is given.
func DefaultPolicy() Chebyshev {
	return Chebyshev{Nodes: DefaultOrder, MaxSpread: DefaultMaxSpread}
}

func (c Chebyshev) Order() int { return c.Nodes }

func (c Chebyshev) Compressible(k kernel.Kernel, src, tgt *tree.Box) bool {
	return Spread(k, src.Bounds(), tgt.Bounds()) <= c.MaxSpread
}

// Spread returns the largest magnitude of the mixed phase residual
//
//	R(t, s) = Phi(t, s) - Phi(t, cs) - Phi(ct, s) + Phi(ct, cs)
//
// over the corners and centers of the two cubes. This is the part of the
// phase which cannot be factored into a product of target and source terms.
func Spread(k kernel.Kernel, src, tgt *geom.Bounds) float64 {
	cs, ct := src.Center, tgt.Center
	ss, ts := src.Samples(), tgt.Samples()

	srcTerm := make([]float64, len(ss))
	for j, s := range ss {
		srcTerm[j] = k.Phase(ct, s)
	}
	center := k.Phase(ct, cs)

	spread := 0.0
	for _, t := range ts {
		tgtTerm := k.Phase(t, cs)
		for j, s := range ss {
			r := k.Phase(t, s) - tgtTerm - srcTerm[j] + center
			spread = math.Max(spread, math.Abs(r))
		}
	}
	return spread
}
