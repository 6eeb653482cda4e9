// Package log provides the structured logging interface used by glib models.
//
// The Logger interface is slog-compatible and backend-agnostic. glib ships a
// zerolog backend (NewZerologLogger), an slog setup for applications that already
// use log/slog (SetupLogger, ErrFmtHandler), a no-op logger (Nop) which is the
// default for every model, and an in-memory TestLogger.
//
// Loggers are always passed in explicitly, e.g. with linear.WithLogger; nothing in
// glib reads a package-level logger.
//
// Example usage:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelInfo).With(
//	    log.ModelNameKey, "Ridge",
//	    log.ComponentKey, "linear",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. With returns a child logger that
// includes the given fields in every record.
type Logger interface {
	// Debug logs diagnostic information, e.g. per-iteration training progress.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the caller, e.g. a diverged fit
	// that the caller may retry.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If the first field is an error it is
	// attached as the record's error rather than as a key.
	//
	// Example:
	//   logger.Error("Model training failed",
	//       err,
	//       log.OperationKey, "fit",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers that share a backend and level.
type LoggerProvider interface {
	// GetLogger returns the provider's root logger.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers created by this provider.
	SetLevel(level Level)
}
