package logging

import (
	"context"
	"log/slog"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

type contextKey string

const attrsContextKey contextKey = "slogAttrs"

// ContextHandler decorates an [slog.Handler] so that attributes attached to the
// [context.Context] with [WithAttrs] end up on every log record.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler constructs a ContextHandler wrapping the given handler.
func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle enriches the record with the attributes stored in ctx before delegating.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsContextKey).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs returns a context carrying the given attributes for [ContextHandler].
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(attrsContextKey).([]slog.Attr); ok {
		attrs = append(existing[:len(existing):len(existing)], attrs...)
	}
	return context.WithValue(ctx, attrsContextKey, attrs)
}
