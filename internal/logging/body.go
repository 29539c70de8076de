package logging

import (
	"context"
	"log/slog"
)

// BodyKey is the attribute naming the body the observer is attached to.
const BodyKey = "body"

// BodyFunc returns the center name of the active body, or "" while the
// observer is not attached to any body.
type BodyFunc func() string

// bodyHandler tags each record with the active body at the time it is
// handled, not when the logger was derived.
type bodyHandler struct {
	slog.Handler
	body BodyFunc
}

func (h *bodyHandler) Handle(ctx context.Context, r slog.Record) error {
	if name := h.body(); name != "" {
		r.AddAttrs(slog.String(BodyKey, name))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *bodyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &bodyHandler{Handler: h.Handler.WithAttrs(attrs), body: h.body}
}

func (h *bodyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &bodyHandler{Handler: h.Handler.WithGroup(name), body: h.body}
}
