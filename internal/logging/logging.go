// Package logging builds the zap logger used for stderr diagnostics,
// keeping stdout free for result output as the engine's external
// interface requires.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity selects how much diagnostic detail is written to stderr.
type Verbosity int

const (
	// Quiet suppresses everything but errors (-q / --quiet).
	Quiet Verbosity = iota
	// Normal is the default: warnings and errors only.
	Normal
	// Info enables per-step progress diagnostics (--info).
	Info
)

// New builds a zap.Logger writing structured, stderr-only output.
func New(v Verbosity) *zap.Logger {
	level := zapcore.WarnLevel
	switch v {
	case Quiet:
		level = zapcore.ErrorLevel
	case Info:
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		// Falling back to a no-op logger keeps a logging misconfiguration
		// from being fatal to the reconfiguration run itself.
		return zap.NewNop()
	}
	return logger
}
