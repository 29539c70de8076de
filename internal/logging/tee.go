package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler writes every record to the local sink and to the OTel bridge.
type teeHandler []slog.Handler

// tee combines the non-nil handlers. A single handler is returned as is.
func tee(handlers ...slog.Handler) slog.Handler {
	var t teeHandler
	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}
	if len(t) == 1 {
		return t[0]
	}
	return t
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes the record to every enabled handler. A failing sink does not
// keep the record from the others; all failures are returned together.
func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
