package io

import (
	"fmt"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/table"
)

func columns(n int) []int {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}

// ReadTargets reads dim-dimensional points from the first dim columns of a
// whitespace-separated table.
func ReadTargets(fname string, dim int) ([]geom.Vec, error) {
	cols, err := table.ReadTable(fname, columns(dim), nil)
	if err != nil {
		return nil, fmt.Errorf("Could not read targets: %w", err)
	}
	return toVecs(cols[:dim]), nil
}

// ReadSources reads dim-dimensional points and complex charges from a table
// whose rows are dim coordinates followed by the real and imaginary parts of
// the charge.
func ReadSources(fname string, dim int) ([]geom.Vec, []complex128, error) {
	cols, err := table.ReadTable(fname, columns(dim+2), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("Could not read sources: %w", err)
	}

	re, im := cols[dim], cols[dim+1]
	if len(re) != len(im) {
		return nil, nil, fmt.Errorf(
			"Charge columns of '%s' have different lengths.", fname,
		)
	}
	charges := make([]complex128, len(re))
	for i := range charges {
		charges[i] = complex(re[i], im[i])
	}
	return toVecs(cols[:dim]), charges, nil
}

func toVecs(cols [][]float64) []geom.Vec {
	n := len(cols[0])
	vs := make([]geom.Vec, n)
	for i := range vs {
		vs[i] = make(geom.Vec, len(cols))
		for j := range cols {
			vs[i][j] = cols[j][i]
		}
	}
	return vs
}
