// Package logger builds the process-wide zap logger.
package logger

import (
	"errors"
	"syscall"

	"go.uber.org/zap"
)

// Logger owns the zap logger shared by every component.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the logger with a JSON production logger at level.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.InitialFields = map[string]interface{}{"service": "link-tracker"}

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}

// Sync flushes buffered entries. Sync on a terminal stderr fails with EINVAL
// or ENOTTY, which is ignored.
func (l *Logger) Sync() error {
	err := l.Log.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
