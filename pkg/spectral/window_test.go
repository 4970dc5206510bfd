package spectral

import (
	"errors"
	"math"
	"testing"
)

// TestTukeyWindowLimits verifies the rectangular and Hann ends of the family
func TestTukeyWindowLimits(t *testing.T) {
	const n = 16

	for _, alpha := range []float64{0, -0.5} {
		for i, v := range TukeyWindow(n, alpha) {
			if v != 1 {
				t.Errorf("alpha=%g: expected w[%d]=1, got %f", alpha, i, v)
			}
		}
	}

	for _, alpha := range []float64{1, 2} {
		w := TukeyWindow(n, alpha)
		for i, v := range w {
			hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/(n-1))
			if math.Abs(v-hann) > 1e-12 {
				t.Errorf("alpha=%g: expected w[%d]=%f, got %f", alpha, i, hann, v)
			}
		}
	}

	if w := TukeyWindow(1, 0.5); len(w) != 1 || w[0] != 1 {
		t.Errorf("Expected [1] for single sample window, got %v", w)
	}
	if w := TukeyWindow(0, 0.5); len(w) != 0 {
		t.Errorf("Expected empty window, got %v", w)
	}
}

// TestTukeyWindowTaper checks a partially tapered window: zero ends,
// flat top and symmetry
func TestTukeyWindowTaper(t *testing.T) {
	const n = 21
	w := TukeyWindow(n, 0.5)

	if w[0] != 0 || math.Abs(w[n-1]) > 1e-12 {
		t.Errorf("Expected zero end points, got %f and %f", w[0], w[n-1])
	}
	// width = floor(0.5*20/2) = 5, so samples 6..14 are flat
	for i := 6; i <= 14; i++ {
		if w[i] != 1 {
			t.Errorf("Expected flat top w[%d]=1, got %f", i, w[i])
		}
	}
	for i := 0; i < n; i++ {
		if math.Abs(w[i]-w[n-1-i]) > 1e-12 {
			t.Errorf("Window not symmetric: w[%d]=%f, w[%d]=%f", i, w[i], n-1-i, w[n-1-i])
		}
	}
	if !(w[3] > 0 && w[3] < 1) {
		t.Errorf("Expected taper value in (0,1) at w[3], got %f", w[3])
	}
}

// TestBandpassWindow verifies placement, width and symmetry of the band
func TestBandpassWindow(t *testing.T) {
	tests := []struct {
		cols, ifmax  int
		width, shape float64
		wantHW       int
	}{
		{1000, 50, 0.6, 1, 30},
		{256, 16, 0.6, 0.5, 10},  // 9.6 rounds to 10
		{256, 25, 0.5, 0.25, 12}, // 12.5 rounds half to even
		{256, 16, 1.0, 0, 16},
	}

	for _, tc := range tests {
		band, err := BandpassWindow(tc.cols, tc.ifmax, tc.width, tc.shape)
		if err != nil {
			t.Fatalf("BandpassWindow(%d, %d, %g) failed: %v", tc.cols, tc.ifmax, tc.width, err)
		}
		if band.Width != 2*tc.wantHW || band.Start != tc.ifmax-tc.wantHW {
			t.Errorf("Expected band [%d, %d), got [%d, %d)",
				tc.ifmax-tc.wantHW, tc.ifmax+tc.wantHW, band.Start, band.Start+band.Width)
		}
		if band.Start+band.Width/2 != band.Center {
			t.Errorf("Expected band centred on %d, got start %d width %d", band.Center, band.Start, band.Width)
		}
		if len(band.Weights) != tc.cols {
			t.Fatalf("Expected %d weights, got %d", tc.cols, len(band.Weights))
		}

		for i, v := range band.Weights {
			inside := i >= band.Start && i < band.Start+band.Width
			if !inside && v != 0 {
				t.Errorf("Expected zero weight outside band at %d, got %f", i, v)
			}
			if inside && i > band.Start && i < band.Start+band.Width-1 && v <= 0 {
				t.Errorf("Expected positive weight inside band at %d, got %f", i, v)
			}
		}
		for i := 0; i < band.Width; i++ {
			a, b := band.Weights[band.Start+i], band.Weights[band.Start+band.Width-1-i]
			if math.Abs(a-b) > 1e-12 {
				t.Errorf("Band not symmetric at offset %d: %f vs %f", i, a, b)
			}
		}
	}
}

// TestBandpassWindowOutOfRange ensures bands that do not fit are reported
func TestBandpassWindowOutOfRange(t *testing.T) {
	tests := []struct {
		name        string
		cols, ifmax int
		width       float64
	}{
		{"negative start", 256, 20, 1.5},
		{"past end", 64, 40, 0.8},
		{"empty band", 256, 20, 0.01},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BandpassWindow(tc.cols, tc.ifmax, tc.width, 1)
			if !errors.Is(err, ErrFilterBandOutOfRange) {
				t.Errorf("Expected ErrFilterBandOutOfRange, got %v", err)
			}
		})
	}
}

// TestBandApply checks that filtering zeroes bins outside the band
func TestBandApply(t *testing.T) {
	band, err := BandpassWindow(64, 16, 0.5, 0)
	if err != nil {
		t.Fatalf("BandpassWindow failed: %v", err)
	}
	spec := make([]complex128, 64)
	for i := range spec {
		spec[i] = complex(1, 1)
	}
	band.Apply(spec)

	for i, c := range spec {
		inside := i >= 8 && i < 24
		if inside && c != complex(1, 1) {
			t.Errorf("Expected bin %d unchanged by rectangular band, got %v", i, c)
		}
		if !inside && c != 0 {
			t.Errorf("Expected bin %d zeroed, got %v", i, c)
		}
	}
}
