/*package kernel defines oscillatory kernels of the form

	K(t, s) = a(t, s) exp(2 pi i Phi(t, s))

where the amplitude a is real and smooth and the phase Phi is measured in
cycles.
*/
package kernel

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/phil-mansfield/butterfly/geom"
)

// Kernel is an oscillatory kernel. Value must equal
// complex(Amplitude(t, s), 0) * Cis(Phase(t, s)).
type Kernel interface {
	Value(t, s geom.Vec) complex128
	Phase(t, s geom.Vec) float64
	Amplitude(t, s geom.Vec) float64
}

var (
	_ Kernel = Fourier{}
	_ Kernel = Chirp{}
)

// Cis returns exp(2 pi i cycles). Whole cycles are removed before the
// trigonometric evaluation.
func Cis(cycles float64) complex128 {
	frac := cycles - math.Round(cycles)
	sin, cos := math.Sincos(2 * math.Pi * frac)
	return complex(cos, sin)
}

// Eval returns a(t, s) Cis(Phi(t, s)).
func Eval(k Kernel, t, s geom.Vec) complex128 {
	return complex(k.Amplitude(t, s), 0) * Cis(k.Phase(t, s))
}

// Fourier is the kernel exp(2 pi i Scale t.s).
type Fourier struct {
	Scale float64
}

func (k Fourier) Phase(t, s geom.Vec) float64     { return k.Scale * t.Dot(s) }
func (k Fourier) Amplitude(t, s geom.Vec) float64 { return 1 }
func (k Fourier) Value(t, s geom.Vec) complex128  { return Cis(k.Phase(t, s)) }

// Chirp is a Fourier kernel damped by a Gaussian in the separation:
// exp(-Decay |t - s|^2) exp(2 pi i Scale t.s).
type Chirp struct {
	Scale, Decay float64
}

func (k Chirp) Phase(t, s geom.Vec) float64 { return k.Scale * t.Dot(s) }

func (k Chirp) Amplitude(t, s geom.Vec) float64 {
	return math.Exp(-k.Decay * t.Dist2(s))
}

func (k Chirp) Value(t, s geom.Vec) complex128 {
	return complex(k.Amplitude(t, s), 0) * Cis(k.Phase(t, s))
}

// Check returns an error if Value disagrees with the amplitude and phase of
// k at any pair of ts and ss by more than a relative tolerance of tol.
func Check(k Kernel, ts, ss []geom.Vec, tol float64) error {
	for i, t := range ts {
		for j, s := range ss {
			val, fact := k.Value(t, s), Eval(k, t, s)
			if cmplx.IsNaN(val) || cmplx.IsInf(val) {
				return fmt.Errorf(
					"Kernel %T is not finite at target %d and source %d.",
					k, i, j,
				)
			}
			diff := cmplx.Abs(val - fact)
			if diff > tol*math.Max(1, cmplx.Abs(val)) {
				return fmt.Errorf(
					"Kernel %T: Value = %g, but Amplitude * Cis(Phase) = %g "+
						"at target %d and source %d.", k, val, fact, i, j,
				)
			}
		}
	}
	return nil
}

// Traits returns a human-readable description of k and the types it
// operates on.
func Traits(k Kernel, dim int) string {
	return fmt.Sprintf(
		"Kernel: %T%+v\n"+
			"  source_type: [%d]float64\n"+
			"  target_type: [%d]float64\n"+
			"  charge_type: complex128\n"+
			"  value_type:  complex128\n"+
			"  result_type: complex128",
		k, k, dim, dim,
	)
}
