// Package config provides configuration loading and management for fringephase.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"fringephase/pkg/recovery"
	"fringephase/pkg/spectral"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Bandpass filter parameters
	Filter struct {
		// Width is the band half width as a fraction of the carrier bin
		Width float64 `yaml:"width"`

		// Shape is the Tukey taper fraction (1 = Hann, <= 0 = rectangular)
		Shape float64 `yaml:"shape"`
	} `yaml:"filter"`

	// Unwrapping parameters
	Unwrap struct {
		// ReferenceColumn is the column used for cross-row unwrapping, -1 for the centre
		ReferenceColumn int `yaml:"referenceColumn"`
	} `yaml:"unwrap"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for parallel processing
		NumCores int `yaml:"numCores"`

		// FFTBackend selects the FFT implementation ("gonum" or "godsp")
		FFTBackend string `yaml:"fftBackend"`
	} `yaml:"processing"`

	// Geometry holds the optical constants of the phase to height relation
	// h = L*phi / (phi - W*D). They are only used by callers of the core.
	Geometry struct {
		L float64 `yaml:"l"`
		D float64 `yaml:"d"`
		W float64 `yaml:"w"`
	} `yaml:"geometry"`

	// Logging parameters
	Logging struct {
		// Verbosity is one of debug, info, warning, error or fatal
		Verbosity string `yaml:"verbosity"`

		// File is the log file path; empty logs to stderr only
		File string `yaml:"file"`

		MaxSize    int `yaml:"maxSize"` // MB
		MaxBackups int `yaml:"maxBackups"`
		MaxAge     int `yaml:"maxAge"` // days
	} `yaml:"logging"`

	// Synthetic scenario used by the demo driver
	Synthetic struct {
		Rows      int     `yaml:"rows"`
		Cols      int     `yaml:"cols"`
		Period    float64 `yaml:"period"`
		Amplitude float64 `yaml:"amplitude"`
		Sigma     float64 `yaml:"sigma"`
	} `yaml:"synthetic"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Filter.Width = 0.6
	cfg.Filter.Shape = 1.0

	cfg.Unwrap.ReferenceColumn = -1

	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.FFTBackend = spectral.BackendGonum

	cfg.Geometry.L = 1.0
	cfg.Geometry.D = 0.1
	cfg.Geometry.W = 2 * math.Pi / 20

	cfg.Logging.Verbosity = "info"
	cfg.Logging.MaxSize = 500
	cfg.Logging.MaxBackups = 10
	cfg.Logging.MaxAge = 28

	cfg.Synthetic.Rows = 1000
	cfg.Synthetic.Cols = 1000
	cfg.Synthetic.Period = 20
	cfg.Synthetic.Amplitude = 40
	cfg.Synthetic.Sigma = 150

	return cfg
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if !(c.Filter.Width > 0) {
		return fmt.Errorf("filter.width must be positive, got %g", c.Filter.Width)
	}
	switch c.Processing.FFTBackend {
	case spectral.BackendGonum, spectral.BackendGoDSP:
	default:
		return fmt.Errorf("processing.fftBackend %q is not one of %q, %q",
			c.Processing.FFTBackend, spectral.BackendGonum, spectral.BackendGoDSP)
	}
	if _, err := ParseVerbosity(c.Logging.Verbosity); err != nil {
		return err
	}
	if c.Synthetic.Rows <= 0 || c.Synthetic.Cols <= 0 {
		return fmt.Errorf("synthetic image must have positive dimensions, got %dx%d", c.Synthetic.Rows, c.Synthetic.Cols)
	}
	if !(c.Synthetic.Period > 0) {
		return fmt.Errorf("synthetic.period must be positive, got %g", c.Synthetic.Period)
	}
	return nil
}

// RecoveryParams converts the configuration into phase recovery parameters.
func (c *Config) RecoveryParams() *recovery.Params {
	return &recovery.Params{
		FilterWidth:     c.Filter.Width,
		FilterShape:     c.Filter.Shape,
		ReferenceColumn: c.Unwrap.ReferenceColumn,
		NumCores:        c.Processing.NumCores,
		FFTBackend:      c.Processing.FFTBackend,
	}
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
