package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event represents an invocation of a named command from the web view.
type Event struct {
	Command   string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger interface for pluggable logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

type entry struct {
	description string
	handler     HandlerFunc
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers map[string]entry
	logger   Logger

	// OTEL metrics
	processed metric.Int64Counter
	failed    metric.Int64Counter
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]entry),
		logger:   logger,
	}

	m := meter()

	var err error

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total commands handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"dispatcher.events.failed",
		metric.WithDescription("Total commands whose handler returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given command, replacing any previous one.
func (d *Dispatcher) Register(command, description string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h

	if cfg.logged {
		handler = d.withLogging(command, handler)
	}

	d.handlers[command] = entry{description: description, handler: handler}
}

// Unregister removes the handler for the command. It reports whether one
// was registered.
func (d *Dispatcher) Unregister(command string) bool {
	if _, ok := d.handlers[command]; !ok {
		return false
	}
	delete(d.handlers, command)
	return true
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	h, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}

	cmdAttr := metric.WithAttributes(attribute.String("command", e.Command))
	result, err := h.handler(e)
	d.processed.Add(context.Background(), 1, cmdAttr)
	if err != nil {
		d.failed.Add(context.Background(), 1, cmdAttr)
	}
	return result, err
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Description returns the human readable description of a command.
func (d *Dispatcher) Description(command string) (string, bool) {
	h, ok := d.handlers[command]
	return h.description, ok
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) withLogging(command string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling command", "command", command, "queued", start.Sub(e.Timestamp))

		result, err := h(e)

		if err != nil {
			d.logger.Error("command failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("command complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
