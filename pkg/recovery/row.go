package recovery

import (
	"fringephase/pkg/spectral"
)

// rowWorker holds the transform and scratch buffers for one goroutine.
type rowWorker struct {
	tr     spectral.Transformer
	width  float64
	shape  float64
	specR  []complex128
	specD  []complex128
	signal []complex128
}

func newRowWorker(p Params, cols int) (*rowWorker, error) {
	tr, err := spectral.NewTransformer(p.FFTBackend, cols)
	if err != nil {
		return nil, err
	}
	return &rowWorker{
		tr:     tr,
		width:  p.FilterWidth,
		shape:  p.FilterShape,
		specR:  make([]complex128, cols),
		specD:  make([]complex128, cols),
		signal: make([]complex128, cols),
	}, nil
}

// process extracts the unwrapped phase of one reference row and one deformed
// row into phaseR and phaseD, returning the carrier bin found in the reference.
func (w *rowWorker) process(ref, def, phaseR, phaseD []float64) (int, error) {
	w.tr.Forward(w.specR, ref)
	w.tr.Forward(w.specD, def)

	ifmax, err := spectral.DetectCarrier(w.specR)
	if err != nil {
		return 0, err
	}
	band, err := spectral.BandpassWindow(len(ref), ifmax, w.width, w.shape)
	if err != nil {
		return ifmax, err
	}

	w.extract(phaseR, w.specR, band)
	w.extract(phaseD, w.specD, band)
	return ifmax, nil
}

// extract filters spec in place, transforms it back and writes its unwrapped
// argument into phase.
func (w *rowWorker) extract(phase []float64, spec []complex128, band spectral.Band) {
	band.Apply(spec)
	w.tr.Inverse(w.signal, spec)
	spectral.Angle(phase, w.signal)
	spectral.UnwrapTo(phase, phase)
}
