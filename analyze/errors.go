/*package analyze compares approximate kernel sums against exact ones.
*/
package analyze

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Target is the error at a single target.
type Target struct {
	// Rel is |result - exact| / |exact|. It is 0 when both are 0.
	Rel float64
	// Defined is false if exact is 0 but result is not.
	Defined bool
}

// Report summarizes the error of a result vector.
type Report struct {
	// Aggregate is ||result - exact|| / ||exact|| over defined targets.
	Aggregate float64
	// Average and Maximum are taken over the per-target relative errors of
	// targets with a non-zero exact value.
	Average, Maximum float64
	// Measured is the number of targets contributing to Average.
	Measured int
	Targets  []Target
}

// DegenerateNormError is returned alongside a Report when some targets have
// an exact value of zero but a non-zero result. Those targets are excluded
// from every summary statistic.
type DegenerateNormError struct {
	Indices []int
}

func (e *DegenerateNormError) Error() string {
	return fmt.Sprintf(
		"%d targets have an exact value of zero but a non-zero result: %v",
		len(e.Indices), e.Indices,
	)
}

// Errors computes the error of result relative to exact. A non-nil Report
// is returned with any *DegenerateNormError.
func Errors(result, exact []complex128) (*Report, error) {
	if len(result) != len(exact) {
		return nil, fmt.Errorf(
			"Result has length %d, but exact has length %d.",
			len(result), len(exact),
		)
	}

	rep := &Report{Targets: make([]Target, len(exact))}
	rels := make([]float64, 0, len(exact))
	diff2 := make([]float64, 0, len(exact))
	norm2 := make([]float64, 0, len(exact))
	var undefined []int

	for i := range exact {
		norm := cmplx.Abs(exact[i])
		diff := cmplx.Abs(result[i] - exact[i])

		if norm == 0 {
			if diff == 0 {
				rep.Targets[i] = Target{Rel: 0, Defined: true}
			} else {
				undefined = append(undefined, i)
			}
			continue
		}

		rep.Targets[i] = Target{Rel: diff / norm, Defined: true}
		rels = append(rels, diff/norm)
		diff2 = append(diff2, diff*diff)
		norm2 = append(norm2, norm*norm)
	}

	if len(rels) > 0 {
		rep.Aggregate = math.Sqrt(floats.Sum(diff2) / floats.Sum(norm2))
		rep.Average = floats.Sum(rels) / float64(len(rels))
		rep.Maximum = floats.Max(rels)
		rep.Measured = len(rels)
	}

	if len(undefined) > 0 {
		return rep, &DegenerateNormError{Indices: undefined}
	}
	return rep, nil
}
