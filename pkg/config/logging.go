package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Suppress repeated log messages.
const logSuppress = true

// ParseVerbosity maps a verbosity name to a logging level.
func ParseVerbosity(name string) (int8, error) {
	switch strings.ToLower(name) {
	case "debug":
		return logging.Debug, nil
	case "info", "":
		return logging.Info, nil
	case "warning", "warn":
		return logging.Warning, nil
	case "error":
		return logging.Error, nil
	case "fatal":
		return logging.Fatal, nil
	default:
		return 0, fmt.Errorf("unknown log verbosity %q", name)
	}
}

// NewLogger creates a JSON logger writing to stderr and, when a log file is
// configured, to a size-rotated file.
func (c *Config) NewLogger() (*logging.JSONLogger, error) {
	level, err := ParseVerbosity(c.Logging.Verbosity)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	if c.Logging.File != "" {
		fileLog := &lumberjack.Logger{
			Filename:   c.Logging.File,
			MaxSize:    c.Logging.MaxSize,
			MaxBackups: c.Logging.MaxBackups,
			MaxAge:     c.Logging.MaxAge,
		}
		w = io.MultiWriter(os.Stderr, fileLog)
	}
	return logging.New(level, w, logSuppress), nil
}
