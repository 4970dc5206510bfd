package models

import (
	"fmt"
)

// Image is a 2D field of real samples stored as a 1D array in row-major order.
// It is used for fringe intensity images as well as for phase maps.
type Image struct {
	// Data holds Rows*Cols samples, row after row
	Data []float64

	// Rows is the number of image rows (the cross-row unwrap axis)
	Rows int

	// Cols is the number of samples per row (the FFT axis)
	Cols int
}

// PhaseMap holds unwrapped phase in radians, one value per pixel.
type PhaseMap = Image

// PhaseDifferenceMap is the deformed phase minus the reference phase.
type PhaseDifferenceMap = Image

// NewImage allocates a zeroed rows x cols image.
func NewImage(rows, cols int) *Image {
	return &Image{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// ImageFromRows copies a slice of equal-length rows into a new Image.
func ImageFromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("image has no rows")
	}
	cols := len(rows[0])
	img := NewImage(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d samples, expected %d", r, len(row), cols)
		}
		copy(img.Data[r*cols:(r+1)*cols], row)
	}
	return img, nil
}

// At returns the sample at row r, column c.
func (m *Image) At(r, c int) float64 {
	return m.Data[r*m.Cols+c]
}

// Set stores v at row r, column c.
func (m *Image) Set(r, c int, v float64) {
	m.Data[r*m.Cols+c] = v
}

// Row returns row r. The returned slice aliases the image data.
func (m *Image) Row(r int) []float64 {
	return m.Data[r*m.Cols : (r+1)*m.Cols]
}

// Column returns a copy of column c.
func (m *Image) Column(c int) []float64 {
	col := make([]float64, m.Rows)
	for r := range col {
		col[r] = m.Data[r*m.Cols+c]
	}
	return col
}

// SameShape reports whether m and o have identical dimensions.
func (m *Image) SameShape(o *Image) bool {
	return m.Rows == o.Rows && m.Cols == o.Cols
}

// Validate checks that the dimensions are positive and match the data length.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("image is nil")
	}
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("image data has %d samples, expected %d (%dx%d)", len(m.Data), m.Rows*m.Cols, m.Rows, m.Cols)
	}
	return nil
}
