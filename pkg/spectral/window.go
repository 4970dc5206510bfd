package spectral

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/window"
)

// ErrFilterBandOutOfRange is returned when the bandpass band does not fit in
// the spectrum or is empty.
var ErrFilterBandOutOfRange = errors.New("filter band out of range")

// Band is a bandpass window placed around a carrier bin.
type Band struct {
	// Start is the first bin of the taper
	Start int

	// Width is the taper length, always even
	Width int

	// Center is the carrier bin the band was built around
	Center int

	// Weights is the full-length window, zero outside [Start, Start+Width)
	Weights []float64
}

// TukeyWindow returns a symmetric Tukey (tapered cosine) window of length n.
//
// alpha is the fraction of the window inside the cosine taper: alpha <= 0
// gives a rectangular window and alpha >= 1 gives a Hann window.
func TukeyWindow(n int, alpha float64) []float64 {
	w := make([]float64, n)
	if n == 0 {
		return w
	}
	if n == 1 || alpha <= 0 {
		for i := range w {
			w[i] = 1
		}
		return w
	}

	if alpha >= 1 {
		return window.Hann(n)
	}

	m := float64(n - 1)
	width := int(math.Floor(alpha * m / 2))
	for i := range w {
		x := float64(i)
		switch {
		case i <= width:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(-1+2*x/alpha/m)))
		case i >= n-width-1:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(-2/alpha+1+2*x/alpha/m)))
		default:
			w[i] = 1
		}
	}
	return w
}

// BandpassWindow builds the frequency-domain window for a row of cols bins
// with carrier at ifmax. The half width is round(ifmax*width), and shape is
// the Tukey taper fraction.
func BandpassWindow(cols, ifmax int, width, shape float64) (Band, error) {
	hw := int(math.RoundToEven(float64(ifmax) * width))
	band := Band{
		Start:  ifmax - hw,
		Width:  2 * hw,
		Center: ifmax,
	}

	if band.Width == 0 {
		return band, fmt.Errorf("%w: empty band at carrier bin %d (width %g)", ErrFilterBandOutOfRange, ifmax, width)
	}
	if band.Start < 0 || band.Start+band.Width > cols {
		return band, fmt.Errorf("%w: band [%d, %d) exceeds [0, %d)", ErrFilterBandOutOfRange, band.Start, band.Start+band.Width, cols)
	}

	band.Weights = make([]float64, cols)
	copy(band.Weights[band.Start:], TukeyWindow(band.Width, shape))
	return band, nil
}

// Apply multiplies spectrum by the window in place.
func (b Band) Apply(spectrum []complex128) {
	for i, w := range b.Weights {
		spectrum[i] *= complex(w, 0)
	}
}
