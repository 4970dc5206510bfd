package spectral

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Carrier search constants.
const (
	// CarrierSearchStart is the first bin searched for the carrier. Bins below
	// it carry the DC term and low-frequency background leakage.
	CarrierSearchStart = 9

	// carrierNoiseFloor is the peak magnitude, relative to the total spectral
	// magnitude of the row, below which the row is treated as carrying no fringes.
	carrierNoiseFloor = 1e-9
)

// ErrDegenerateCarrier is returned when no usable carrier peak exists in a
// reference row spectrum.
var ErrDegenerateCarrier = errors.New("degenerate carrier")

// MinCols is the narrowest row for which a carrier search band exists.
const MinCols = 2*CarrierSearchStart + 4

// DetectCarrier returns the absolute bin index of the dominant carrier in a
// full-length row spectrum, searching bins [CarrierSearchStart, n/2).
//
// The result is degenerate when the maximum lies on the first searched bin,
// or when the searched band holds no energy above numerical noise.
func DetectCarrier(spectrum []complex128) (int, error) {
	n := len(spectrum)
	if n < MinCols {
		return 0, fmt.Errorf("row of %d samples is too short for carrier search (minimum %d)", n, MinCols)
	}

	mags := make([]float64, n)
	for i, c := range spectrum {
		mags[i] = cmplx.Abs(c)
	}

	band := mags[CarrierSearchStart : n/2]
	imax := floats.MaxIdx(band)
	ifmax := imax + CarrierSearchStart

	if imax == 0 {
		return 0, fmt.Errorf("%w: maximum at first searched bin %d", ErrDegenerateCarrier, ifmax)
	}
	if band[imax] <= carrierNoiseFloor*floats.Sum(mags) {
		return 0, fmt.Errorf("%w: no fringe signal above noise floor", ErrDegenerateCarrier)
	}
	return ifmax, nil
}
