package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	glerrors "github.com/YuminosukeSato/glib/pkg/errors"
)

// ErrorCode maps err to one of the Error* codes, or "" for errors outside the
// glib taxonomy.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, glerrors.ErrDiverged):
		return ErrorDiverged
	case errors.Is(err, glerrors.ErrNotFitted):
		return ErrorNotFitted
	case errors.Is(err, glerrors.ErrDimensionMismatch):
		return ErrorDimensionMismatch
	case errors.Is(err, glerrors.ErrEmptyDataset):
		return ErrorEmptyData
	case errors.Is(err, glerrors.ErrInvalidConfiguration):
		return ErrorInvalidConfig
	}
	return ""
}

// ErrFmtHandler decorates records carrying ErrAttr(err) with the error's
// stack trace and, for glib errors, its error code.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with an ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var (
		err     error
		hasCode bool
	)
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case ErrAttrKey:
			if e, ok := attr.Value.Any().(error); ok && err == nil {
				err = e
			}
		case ErrorCodeKey:
			hasCode = true
		}
		return true
	})
	if err == nil {
		return eh.handler.Handle(ctx, r)
	}

	if st := extractStacktrace(err); st != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, st))
	}
	if code := ErrorCode(err); code != "" && !hasCode {
		r.AddAttrs(slog.String(ErrorCodeKey, code))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// extractStacktrace returns the first safe detail cockroachdb/errors recorded
// for err, which holds the stack of its innermost WithStack.
func extractStacktrace(err error) string {
	if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return ""
}
