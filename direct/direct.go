/*package direct evaluates kernel sums by brute force. It is the reference
against which the butterfly is checked.
*/
package direct

import (
	"fmt"
	"runtime"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"golang.org/x/sync/errgroup"
)

// rowsPerTask is the number of target rows handed to a worker at once.
const rowsPerTask = 64

// Sum returns sum_j K(t, sources_j) charges_j.
func Sum(k kernel.Kernel, t geom.Vec, sources []geom.Vec, charges []complex128) complex128 {
	var sum complex128
	for j, s := range sources {
		sum += k.Value(t, s) * charges[j]
	}
	return sum
}

// Matvec computes the full kernel sum at every target in O(NM) time.
func Matvec(
	k kernel.Kernel, sources []geom.Vec, charges []complex128,
	targets []geom.Vec,
) ([]complex128, error) {
	if len(sources) != len(charges) {
		return nil, fmt.Errorf(
			"%d charges given for %d sources.", len(charges), len(sources),
		)
	}

	out := make([]complex128, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < len(targets); start += rowsPerTask {
		start := start
		end := start + rowsPerTask
		if end > len(targets) {
			end = len(targets)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = Sum(k, targets[i], sources, charges)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
