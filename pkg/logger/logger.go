package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/geocodry/geocodry/pkg/middleware"
)

func InitGlobalSlog(service string) {
	handler := NewContextJSONHandler(os.Stdout, nil)
	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)
}

// ContextJSONHandler is a JSON slog handler that copies the request's trace
// ID from the context into every record.
type ContextJSONHandler struct {
	inner slog.Handler
}

func NewContextJSONHandler(w io.Writer, opts *slog.HandlerOptions) *ContextJSONHandler {
	return &ContextJSONHandler{inner: slog.NewJSONHandler(w, opts)}
}

func (h *ContextJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextJSONHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextJSONHandler) WithGroup(name string) slog.Handler {
	return &ContextJSONHandler{inner: h.inner.WithGroup(name)}
}

func (h *ContextJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID, ok := middleware.TraceIDFromContext(ctx); ok {
		r.AddAttrs(slog.String(string(middleware.CtxKeyTraceID), traceID))
	}

	return h.inner.Handle(ctx, r)
}
