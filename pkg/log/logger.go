package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// SetupLogger builds a JSON slog.Logger writing to w in Cloud Logging format,
// with error stack traces extracted by ErrFmtHandler.
func SetupLogger(w io.Writer, level Level) *slog.Logger {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	return slog.New(WrapByErrFmtHandler(handler))
}

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.Newf("invalid log level: %q", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger returns a Logger backed by l.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }

func (s *slogLogger) Error(msg string, fields ...any) {
	if err, rest, ok := splitError(fields); ok {
		s.l.Error(msg, append([]any{ErrAttr(err)}, rest...)...)
		return
	}
	s.l.Error(msg, fields...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// splitError separates a leading error value from the key-value pairs.
func splitError(fields []any) (error, []any, bool) {
	if len(fields) == 0 {
		return nil, fields, false
	}
	err, ok := fields[0].(error)
	if !ok {
		return nil, fields, false
	}
	return err, fields[1:], true
}
