// Package fringe generates synthetic fringe images for exercising phase
// recovery without camera input.
package fringe

import (
	"fmt"
	"math"

	"fringephase/internal/models"
)

// PhaseField returns the phase modulation, in radians, at row r, column c.
type PhaseField func(r, c int) float64

// Carrier creates a rows x cols image of sin(2π·c/period + φ(r, c)).
// A nil phase produces the flat reference pattern.
func Carrier(rows, cols int, period float64, phase PhaseField) (*models.Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", rows, cols)
	}
	if period <= 0 {
		return nil, fmt.Errorf("fringe period must be positive, got %g", period)
	}

	k := 2 * math.Pi / period
	img := models.NewImage(rows, cols)
	for r := 0; r < rows; r++ {
		row := img.Row(r)
		for c := range row {
			arg := k * float64(c)
			if phase != nil {
				arg += phase(r, c)
			}
			row[c] = math.Sin(arg)
		}
	}
	return img, nil
}

// GaussianBump is an isotropic Gaussian phase field of the given peak
// amplitude centred on (centerRow, centerCol).
func GaussianBump(amplitude, centerRow, centerCol, sigma float64) PhaseField {
	twoSigma2 := 2 * sigma * sigma
	return func(r, c int) float64 {
		dr := float64(r) - centerRow
		dc := float64(c) - centerCol
		return amplitude * math.Exp(-(dr*dr+dc*dc)/twoSigma2)
	}
}

// Pair builds a flat reference image and a deformed image carrying phase.
func Pair(rows, cols int, period float64, phase PhaseField) (deformed, reference *models.Image, err error) {
	reference, err = Carrier(rows, cols, period, nil)
	if err != nil {
		return nil, nil, err
	}
	deformed, err = Carrier(rows, cols, period, phase)
	if err != nil {
		return nil, nil, err
	}
	return deformed, reference, nil
}
