// Package recovery recovers the phase difference between a reference and a
// deformed fringe image by Fourier transform profilometry.
package recovery

import (
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"gonum.org/v1/gonum/floats"

	"fringephase/internal/models"
	"fringephase/pkg/spectral"
)

// Errors returned by Recover. All of them abort the whole call.
var (
	// ErrShapeMismatch means the two input images differ in dimensions.
	ErrShapeMismatch = errors.New("image shape mismatch")

	// ErrInvalidParameter means a filter, column or image argument is unusable.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateCarrier means a reference row has no usable carrier peak.
	ErrDegenerateCarrier = spectral.ErrDegenerateCarrier

	// ErrFilterBandOutOfRange means the bandpass band does not fit a row spectrum.
	ErrFilterBandOutOfRange = spectral.ErrFilterBandOutOfRange
)

// Params holds the phase recovery settings for one call.
type Params struct {
	// FilterWidth is the bandpass half width as a fraction of the carrier bin.
	// Typical values lie in (0, 1].
	FilterWidth float64

	// FilterShape is the Tukey taper fraction of the bandpass window:
	// <= 0 is rectangular, 1 is a fully tapered Hann window.
	FilterShape float64

	// ReferenceColumn is the column used to stitch rows together.
	// A negative value selects the image centre column.
	ReferenceColumn int

	// NumCores is the number of workers processing rows. Values <= 0 use all CPUs.
	NumCores int

	// FFTBackend names the spectral.Transformer implementation.
	FFTBackend string
}

// DefaultParams returns the settings used by the demo scenario.
func DefaultParams() *Params {
	return &Params{
		FilterWidth:     0.6,
		FilterShape:     1.0,
		ReferenceColumn: -1,
		NumCores:        runtime.NumCPU(),
		FFTBackend:      spectral.BackendGonum,
	}
}

// Result holds the outputs of a phase recovery.
type Result struct {
	// Difference is the deformed phase minus the reference phase
	Difference *models.PhaseDifferenceMap

	// Reference and Deformed are the stitched, unwrapped phase maps
	Reference *models.PhaseMap
	Deformed  *models.PhaseMap

	// Carriers holds the detected carrier bin of each reference row
	Carriers []int

	// ReferenceColumn is the column the rows were stitched on
	ReferenceColumn int
}

// Recoverer runs the phase recovery pipeline. It keeps no state between calls
// and may be shared by goroutines.
type Recoverer struct {
	params Params
	log    logging.Logger
}

// NewRecoverer creates a Recoverer. A nil params uses DefaultParams and a nil
// log discards all output.
func NewRecoverer(params *Params, log logging.Logger) *Recoverer {
	if params == nil {
		params = DefaultParams()
	}
	if log == nil {
		log = logging.New(logging.Fatal, io.Discard, true)
	}
	return &Recoverer{params: *params, log: log}
}

// RecoverPhaseDifference returns the unwrapped phase of deformed minus that
// of reference, using the given bandpass width and taper shape.
func RecoverPhaseDifference(deformed, reference *models.Image, filterWidth, filterShape float64) (*models.PhaseDifferenceMap, error) {
	params := DefaultParams()
	params.FilterWidth = filterWidth
	params.FilterShape = filterShape

	res, err := NewRecoverer(params, nil).Recover(deformed, reference)
	if err != nil {
		return nil, err
	}
	return res.Difference, nil
}

// Recover runs the full pipeline:
//  1. Per-row FFT, carrier detection, bandpass filtering, inverse FFT and
//     unwrapping, spread over NumCores workers
//  2. Cross-row stitching on the reference column
//  3. Subtraction of the reference phase from the deformed phase
func (r *Recoverer) Recover(deformed, reference *models.Image) (*Result, error) {
	colRef, err := r.validate(deformed, reference)
	if err != nil {
		return nil, err
	}

	rows, cols := reference.Rows, reference.Cols
	res := &Result{
		Reference:       models.NewImage(rows, cols),
		Deformed:        models.NewImage(rows, cols),
		Carriers:        make([]int, rows),
		ReferenceColumn: colRef,
	}

	start := time.Now()
	if err := r.processRows(deformed, reference, res); err != nil {
		return nil, err
	}
	r.log.Debug("row phase extraction complete", "rows", rows, "cols", cols, "duration (sec)", time.Since(start).Seconds())

	stitchRows(res.Reference, colRef)
	stitchRows(res.Deformed, colRef)

	res.Difference = models.NewImage(rows, cols)
	floats.SubTo(res.Difference.Data, res.Deformed.Data, res.Reference.Data)

	r.log.Debug("phase recovery complete", "reference column", colRef, "duration (sec)", time.Since(start).Seconds())
	return res, nil
}

// validate checks the inputs before any computation and returns the
// effective reference column.
func (r *Recoverer) validate(deformed, reference *models.Image) (int, error) {
	if err := reference.Validate(); err != nil {
		return 0, fmt.Errorf("%w: reference image: %v", ErrInvalidParameter, err)
	}
	if err := deformed.Validate(); err != nil {
		return 0, fmt.Errorf("%w: deformed image: %v", ErrInvalidParameter, err)
	}
	if !deformed.SameShape(reference) {
		return 0, fmt.Errorf("%w: deformed is %dx%d, reference is %dx%d",
			ErrShapeMismatch, deformed.Rows, deformed.Cols, reference.Rows, reference.Cols)
	}

	p := r.params
	if !(p.FilterWidth > 0) || math.IsInf(p.FilterWidth, 0) {
		return 0, fmt.Errorf("%w: filter width must be positive and finite, got %g", ErrInvalidParameter, p.FilterWidth)
	}
	if math.IsNaN(p.FilterShape) {
		return 0, fmt.Errorf("%w: filter shape is NaN", ErrInvalidParameter)
	}

	cols := reference.Cols
	if cols < spectral.MinCols {
		return 0, fmt.Errorf("%w: %d columns is too narrow for carrier search (minimum %d)", ErrInvalidParameter, cols, spectral.MinCols)
	}

	colRef := p.ReferenceColumn
	if colRef < 0 {
		colRef = cols / 2
	}
	if colRef >= cols {
		return 0, fmt.Errorf("%w: reference column %d outside image of width %d", ErrInvalidParameter, colRef, cols)
	}

	if _, err := spectral.NewTransformer(p.FFTBackend, cols); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return colRef, nil
}

// processRows runs the per-row stages in parallel. Rows are split into
// contiguous chunks, one per worker, and every worker writes only its own rows.
func (r *Recoverer) processRows(deformed, reference *models.Image, res *Result) error {
	rows, cols := reference.Rows, reference.Cols

	numCores := r.params.NumCores
	if numCores <= 0 {
		numCores = runtime.NumCPU()
	}
	if numCores > rows {
		numCores = rows
	}
	rowsPerCore := (rows + numCores - 1) / numCores

	errs := make([]error, rows)
	var wg sync.WaitGroup
	for c := 0; c < numCores; c++ {
		startRow := c * rowsPerCore
		endRow := min(startRow+rowsPerCore, rows)
		if startRow >= rows {
			break
		}

		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()

			w, err := newRowWorker(r.params, cols)
			if err != nil {
				errs[startRow] = err
				return
			}
			for i := startRow; i < endRow; i++ {
				res.Carriers[i], errs[i] = w.process(
					reference.Row(i), deformed.Row(i),
					res.Reference.Row(i), res.Deformed.Row(i),
				)
				if errs[i] != nil {
					return
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// stitchRows removes 2π offsets between independently unwrapped rows by
// unwrapping column col and shifting every row by its correction.
func stitchRows(m *models.PhaseMap, col int) {
	column := m.Column(col)
	unwrapped := spectral.Unwrap(column)
	for r := range column {
		if corr := unwrapped[r] - column[r]; corr != 0 {
			floats.AddConst(corr, m.Row(r))
		}
	}
}
