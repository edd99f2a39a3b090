package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithRunID returns a context carrying the identifier of one monitoring run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, runID)
}

// RunIDFromContext extracts the run ID from the context, or "" if absent.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// RunIDHandler wraps an slog.Handler to automatically inject
// run_id from the context into every log record.
type RunIDHandler struct {
	inner slog.Handler
}

// NewRunIDHandler creates a handler that adds run_id from context.
func NewRunIDHandler(inner slog.Handler) *RunIDHandler {
	return &RunIDHandler{inner: inner}
}

// Handle adds run_id from context before delegating to inner handler.
func (h *RunIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := RunIDFromContext(ctx); runID != "" {
		r.AddAttrs(slog.String("run_id", runID))
	}
	return h.inner.Handle(ctx, r)
}

// Enabled delegates to the inner handler.
func (h *RunIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *RunIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RunIDHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RunIDHandler) WithGroup(name string) slog.Handler {
	return &RunIDHandler{inner: h.inner.WithGroup(name)}
}
