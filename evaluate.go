package butterfly

import (
	"github.com/phil-mansfield/butterfly/direct"
	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"github.com/phil-mansfield/butterfly/tree"
)

// Evaluate builds trees over sources and targets and computes
//
//	u(t_i) = sum_j K(t_i, s_j) charges_j.
//
// If both point sets fit in a single leaf the sum is evaluated directly, and
// the returned Stats has Fallback set.
func Evaluate(
	sources []geom.Vec, charges []complex128, targets []geom.Vec,
	k kernel.Kernel, leafSize int, opts ...Option,
) ([]complex128, *Stats, error) {
	if len(charges) != len(sources) {
		return nil, nil, configErrorf(
			"%d charges given for %d sources", len(charges), len(sources),
		)
	}

	src, err := tree.New(sources, leafSize)
	if err != nil {
		return nil, nil, &ConfigurationError{Msg: "source tree", Err: err}
	}
	tgt, err := tree.New(targets, leafSize)
	if err != nil {
		return nil, nil, &ConfigurationError{Msg: "target tree", Err: err}
	}

	if src.Levels() == 1 && tgt.Levels() == 1 {
		if src.Dim() != tgt.Dim() {
			return nil, nil, configErrorf(
				"source dimension %d does not match target dimension %d",
				src.Dim(), tgt.Dim(),
			)
		}
		out, err := direct.Matvec(k, sources, charges, targets)
		if err != nil {
			return nil, nil, err
		}
		return out, &Stats{Fallback: true}, nil
	}

	s, err := New(src, tgt, k, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s.Apply(charges)
}
