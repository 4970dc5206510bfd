package spectral

import (
	"math"
	"math/cmplx"
)

// Angle writes the argument of each element of z into dst.
func Angle(dst []float64, z []complex128) {
	for i, c := range z {
		dst[i] = cmplx.Phase(c)
	}
}

// Unwrap returns a copy of phase with 2π jumps between consecutive samples removed.
func Unwrap(phase []float64) []float64 {
	out := make([]float64, len(phase))
	UnwrapTo(out, phase)
	return out
}

// UnwrapTo unwraps src into dst. Jumps larger than π in magnitude are
// replaced by their 2π complement. dst and src may be the same slice.
func UnwrapTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	prev := src[0]
	dst[0] = prev
	offset := 0.0
	for i := 1; i < len(src); i++ {
		cur := src[i]
		d := cur - prev
		prev = cur

		if math.Abs(d) >= math.Pi {
			dd := floorMod(d+math.Pi, 2*math.Pi) - math.Pi
			if dd == -math.Pi && d > 0 {
				dd = math.Pi
			}
			offset += dd - d
		}
		dst[i] = cur + offset
	}
}

// floorMod returns a mod m with the sign of m.
func floorMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}
