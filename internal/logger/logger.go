// Package logger wraps zap with level-based initialization.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger carries the underlying zap logger.
type Logger struct {
	// Log is the configured zap logger. No-op until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance so that callers may
// log safely before Init.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init configures the logger at the given level ("Debug", "Info",
// "Warn", "Error") using zap's production JSON configuration.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = logger
	return nil
}
