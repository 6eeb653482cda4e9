package log

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type zerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) Logger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

// NewConsoleLogger returns a Logger writing human-readable lines to w.
func NewConsoleLogger(w io.Writer, level Level) Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	zl := zerolog.New(cw).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

// Nop returns a Logger that discards everything. It is the default logger of
// every model.
func Nop() Logger {
	return &zerologLogger{zl: zerolog.Nop()}
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.zl.Debug().Fields(pairs(fields)).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	z.zl.Info().Fields(pairs(fields)).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.zl.Warn().Fields(pairs(fields)).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	ev := z.zl.Error()
	if err, rest, ok := splitError(fields); ok {
		var obj zerolog.LogObjectMarshaler
		if errors.As(err, &obj) {
			ev = ev.Object("error_detail", obj)
		}
		ev = ev.Err(err)
		if code := ErrorCode(err); code != "" && !hasKey(rest, ErrorCodeKey) {
			ev = ev.Str(ErrorCodeKey, code)
		}
		fields = rest
	}
	ev.Fields(pairs(fields)).Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: z.zl.With().Fields(pairs(fields)).Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	current := z.zl.GetLevel()
	return current != zerolog.Disabled && toZerologLevel(level) >= current
}

func hasKey(fields []any, key string) bool {
	for i := 0; i < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok && k == key {
			return true
		}
	}
	return false
}

// pairs pads a dangling key so zerolog never sees an odd-length list.
func pairs(fields []any) []any {
	if len(fields)%2 == 0 {
		return fields
	}
	return append(fields[:len(fields):len(fields)], nil)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ZerologProvider hands out zerolog-backed loggers that share one writer.
type ZerologProvider struct {
	mu      sync.RWMutex
	w       io.Writer
	level   Level
	console bool
}

// NewZerologProvider creates a provider. format is "json" or "text".
func NewZerologProvider(w io.Writer, level Level, format string) *ZerologProvider {
	return &ZerologProvider{w: w, level: level, console: format == "text"}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.console {
		return NewConsoleLogger(p.w, p.level)
	}
	return NewZerologLogger(p.w, p.level)
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel. Loggers already handed out keep
// their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}
