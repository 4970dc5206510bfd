package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"fringephase/internal/models"
	"fringephase/pkg/config"
	"fringephase/pkg/fringe"
	"fringephase/pkg/recovery"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "fringephase.yaml", "YAML configuration file (defaults are used if it does not exist)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	numCores := flag.Int("cores", 0, "Number of CPU cores to use (overrides the config when > 0)")
	backend := flag.String("fft", "", "FFT backend, gonum or godsp (overrides the config)")
	height := flag.Bool("height", false, "Also convert the recovered phase to height using the configured geometry")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "could not write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if *numCores > 0 {
		cfg.Processing.NumCores = *numCores
	}
	if *backend != "" {
		cfg.Processing.FFTBackend = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}

	syn := cfg.Synthetic
	log.Info("generating synthetic fringe pair", "rows", syn.Rows, "cols", syn.Cols, "period", syn.Period, "amplitude", syn.Amplitude)
	bump := fringe.GaussianBump(syn.Amplitude, float64(syn.Rows/2), float64(syn.Cols/2), syn.Sigma)
	deformed, reference, err := fringe.Pair(syn.Rows, syn.Cols, syn.Period, bump)
	if err != nil {
		log.Fatal("could not generate fringe images", "error", err.Error())
	}

	rec := recovery.NewRecoverer(cfg.RecoveryParams(), log)
	startTime := time.Now()
	res, err := rec.Recover(deformed, reference)
	if err != nil {
		log.Fatal("phase recovery failed", "error", err.Error())
	}
	processingTime := time.Since(startTime)

	diff := res.Difference
	cr, cc := diff.Rows/2, diff.Cols/2
	peak := diff.At(cr, cc)

	fmt.Printf("\nPhase recovery completed in %.2f seconds\n", processingTime.Seconds())
	fmt.Printf("Image size: %dx%d, FFT backend: %s, cores: %d\n", diff.Rows, diff.Cols, cfg.Processing.FFTBackend, cfg.Processing.NumCores)
	fmt.Printf("Carrier bin (row %d): %d\n", cr, res.Carriers[cr])
	fmt.Printf("Reference column: %d\n", res.ReferenceColumn)
	fmt.Printf("Phase difference at (%d,%d): %.3f rad (imposed %.3f rad)\n", cr, cc, peak, bump(cr, cc))
	fmt.Printf("Phase difference mean: %.3f rad, std dev: %.3f rad\n", stat.Mean(diff.Data, nil), stat.StdDev(diff.Data, nil))
	fmt.Printf("Max abs error against imposed field (interior): %.3f rad\n", interiorError(diff, bump, 20))

	if *height {
		h := phaseToHeight(diff, cfg.Geometry.L, cfg.Geometry.D, cfg.Geometry.W)
		fmt.Printf("Height at (%d,%d): %.4f, range [%.4f, %.4f]\n", cr, cc, h.At(cr, cc), floats.Min(h.Data), floats.Max(h.Data))
	}
}

// interiorError returns the largest absolute deviation of the recovered phase
// from the imposed field, ignoring a border of margin pixels.
func interiorError(diff *models.PhaseDifferenceMap, field fringe.PhaseField, margin int) float64 {
	worst := 0.0
	for r := margin; r < diff.Rows-margin; r++ {
		for c := margin; c < diff.Cols-margin; c++ {
			worst = math.Max(worst, math.Abs(diff.At(r, c)-field(r, c)))
		}
	}
	return worst
}

// phaseToHeight applies h = L*phi / (phi - w*D) and replaces non-finite
// heights with zero.
func phaseToHeight(phase *models.PhaseDifferenceMap, l, d, w float64) *models.Image {
	h := models.NewImage(phase.Rows, phase.Cols)
	for i, p := range phase.Data {
		v := l * p / (p - w*d)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		h.Data[i] = v
	}
	return h
}
