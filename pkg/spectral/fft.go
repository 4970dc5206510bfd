package spectral

import (
	"fmt"

	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Supported FFT backends.
const (
	BackendGonum = "gonum"
	BackendGoDSP = "godsp"
)

// Transformer computes full-length forward and inverse DFTs of a single row.
//
// A Transformer is not required to be safe for concurrent use; callers that
// process rows in parallel create one per worker.
type Transformer interface {
	// Forward writes the length-n spectrum of the real row into dst.
	Forward(dst []complex128, row []float64)

	// Inverse writes the normalised inverse transform of coeff into dst,
	// so that Inverse(Forward(x)) == x.
	Inverse(dst, coeff []complex128)

	// Len returns the transform length.
	Len() int
}

// NewTransformer creates a Transformer of length n for the named backend.
func NewTransformer(backend string, n int) (Transformer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("transform length must be positive, got %d", n)
	}
	switch backend {
	case BackendGonum, "":
		return newGonumTransformer(n), nil
	case BackendGoDSP:
		return &goDSPTransformer{n: n}, nil
	default:
		return nil, fmt.Errorf("unknown FFT backend %q", backend)
	}
}

// gonumTransformer uses the gonum real FFT for rows and the complex FFT for
// the inverse. Both hold scratch space, so instances are per goroutine.
type gonumTransformer struct {
	n    int
	rfft *fourier.FFT
	cplx *fourier.CmplxFFT
	half []complex128
}

func newGonumTransformer(n int) *gonumTransformer {
	return &gonumTransformer{
		n:    n,
		rfft: fourier.NewFFT(n),
		cplx: fourier.NewCmplxFFT(n),
		half: make([]complex128, n/2+1), // Gonum FFT output size for real input
	}
}

func (t *gonumTransformer) Len() int { return t.n }

func (t *gonumTransformer) Forward(dst []complex128, row []float64) {
	t.rfft.Coefficients(t.half, row)

	copy(dst, t.half)
	// Use conjugate symmetry: F(n-k) = F*(k)
	for j := len(t.half); j < t.n; j++ {
		k := t.n - j
		dst[j] = complex(real(t.half[k]), -imag(t.half[k]))
	}
}

func (t *gonumTransformer) Inverse(dst, coeff []complex128) {
	t.cplx.Sequence(dst, coeff)
	scale := complex(1/float64(t.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
}

// goDSPTransformer wraps mjibson/go-dsp, which handles any length and is
// safe for concurrent use.
type goDSPTransformer struct {
	n int
}

func (t *goDSPTransformer) Len() int { return t.n }

func (t *goDSPTransformer) Forward(dst []complex128, row []float64) {
	copy(dst, dspfft.FFTReal(row))
}

func (t *goDSPTransformer) Inverse(dst, coeff []complex128) {
	copy(dst, dspfft.IFFT(coeff))
}
