// Package logging builds the zap logger shared by the viewer and the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbose enables debug-level output, including per-frame diagnostics.
	Verbose bool
	// JSON switches from the console encoder to JSON lines.
	JSON bool
	// OutputPaths defaults to stderr.
	OutputPaths []string
}

// New returns a logger for a developer-facing tool: console encoding,
// no sampling, no caller annotations.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	if opts.JSON {
		encoding = "json"
		encoderCfg = zap.NewProductionEncoderConfig()
	}

	out := opts.OutputPaths
	if len(out) == 0 {
		out = []string{"stderr"}
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       out,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: !opts.Verbose,
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("floorcal"), nil
}

// Vec2 returns a zap field rendering an (x, y) pair with two decimals.
func Vec2(key string, x, y float64) zap.Field {
	return zap.String(key, fmt.Sprintf("%.2f, %.2f", x, y))
}
