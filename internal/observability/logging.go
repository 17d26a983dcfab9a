// Package observability builds the structured logger shared by the tavern
// CLI and the generator core.
//
// Generated layouts are written to stdout, so every log line goes to stderr.
// The generator logs each abandoned growth branch at debug level; together
// with the seed draws logged by dice.LoggedSource that trail is enough to
// explain any layout, so sampling is disabled and debug output is complete.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tavern/internal/config"
)

// LoggerName is the root name of every logger built here. Generator loggers
// add a "tavern" field carrying the display name of the layout in progress.
const LoggerName = "tavern"

// NewLogger creates the structured logger described by cfg.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns an unsampled logger named LoggerName that writes
// only to stderr, or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	zapCfg, err := baseConfig(cfg.Format)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// baseConfig maps a format name onto zap's preset for it: JSON for piping
// runs into log tooling, console for reading a single generation by eye.
func baseConfig(format string) (zap.Config, error) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), nil
	case "console":
		cfg := zap.NewDevelopmentConfig()
		// Console output carries no stack traces.
		cfg.Development = false
		cfg.DisableStacktrace = true
		return cfg, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", format)
	}
}
