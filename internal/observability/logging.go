// Package observability provides structured logging for skirmish.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// LoggerName names every logger built by NewLogger.
const LoggerName = "skirmish"

// TUILogFile receives logs in TUI mode when they would otherwise go to a
// standard stream the terminal UI draws over.
const TUILogFile = "skirmish.log"

// LoggingFor returns the logging settings to use under cfg's UI mode.
//
// Postcondition: in "tui" mode an Output of "stderr" or "stdout" becomes
// TUILogFile; every other setting is returned unchanged.
func LoggingFor(cfg config.Config) config.LoggingConfig {
	l := cfg.Logging
	if cfg.UI.Mode == "tui" && (l.Output == "stderr" || l.Output == "stdout") {
		l.Output = TUILogFile
	}
	return l
}

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a zap.Logger named LoggerName writing to cfg.Output
// (stderr when empty) or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		// Dice draws arrive in bursts that sampling would drop.
		zapCfg.Sampling = nil
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
		zapCfg.ErrorOutputPaths = []string{cfg.Output}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger %s: %w", cfg.Output, err)
	}
	return logger.Named(LoggerName), nil
}
