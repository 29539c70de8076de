// Package gui provides a GuiManager that records what a plugin does to the
// web view instead of driving a browser.
package gui

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cosmoscout/csp-minimap/internal/dispatcher"
	"github.com/cosmoscout/csp-minimap/pkg/host"
)

// Kind names the GuiManager method behind a Call.
type Kind string

const (
	KindScript               Kind = "addScriptToGuiFromJS"
	KindCSS                  Kind = "addCssToGui"
	KindHTML                 Kind = "addHtmlToGui"
	KindExecute              Kind = "executeJavascript"
	KindCall                 Kind = "callJavascript"
	KindRegisterCallback     Kind = "registerCallback"
	KindUnregisterCallback   Kind = "unregisterCallback"
	KindAddTimelineButton    Kind = "addTimelineButton"
	KindRemoveTimelineButton Kind = "removeTimelineButton"
)

// Call is one recorded GuiManager invocation. Target is the path, script,
// function, callback or button label the call is about.
type Call struct {
	Kind   Kind
	Target string
	Args   []any
}

// Script renders the call as script text. Calls into the web view render
// as what the browser would run; host-side calls render as a pseudo call.
func (c Call) Script() string {
	switch c.Kind {
	case KindExecute:
		return c.Target
	case KindCall:
		return c.Target + "(" + renderArgs(c.Args) + ")"
	default:
		return string(c.Kind) + "(" + renderArgs(append([]any{c.Target}, c.Args...)) + ")"
	}
}

func renderArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		data, err := json.Marshal(a)
		if err != nil {
			parts = append(parts, fmt.Sprintf("%q", fmt.Sprint(a)))
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, ", ")
}

// Recorder implements host.GuiManager.
type Recorder struct {
	log       *slog.Logger
	callbacks *dispatcher.Dispatcher
	buttons   map[string]string // label -> callback
	calls     []Call
}

var _ host.GuiManager = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder(logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d, err := dispatcher.New(logger)
	if err != nil {
		return nil, fmt.Errorf("creating callback dispatcher: %w", err)
	}
	return &Recorder{
		log:       logger.With("component", "gui"),
		callbacks: d,
		buttons:   make(map[string]string),
	}, nil
}

func (r *Recorder) record(kind Kind, target string, args ...any) {
	c := Call{Kind: kind, Target: target, Args: slices.Clone(args)}
	r.calls = append(r.calls, c)
	r.log.Debug("gui call", "script", c.Script())
}

func (r *Recorder) AddScriptToGuiFromJS(path string) { r.record(KindScript, path) }
func (r *Recorder) AddCSSToGui(path string)          { r.record(KindCSS, path) }
func (r *Recorder) AddHTMLToGui(name, path string)   { r.record(KindHTML, name, path) }
func (r *Recorder) ExecuteJavascript(code string)    { r.record(KindExecute, code) }

func (r *Recorder) CallJavascript(function string, args ...any) {
	r.record(KindCall, function, args...)
}

// RegisterCallback makes fn invocable by name, replacing an earlier one.
func (r *Recorder) RegisterCallback(name, description string, fn func()) {
	r.record(KindRegisterCallback, name, description)
	r.callbacks.Register(name, description, func(dispatcher.Event) (any, error) {
		fn()
		return nil, nil
	}, dispatcher.Logged())
}

func (r *Recorder) UnregisterCallback(name string) error {
	r.record(KindUnregisterCallback, name)
	if !r.callbacks.Unregister(name) {
		return fmt.Errorf("callback %q: %w", name, host.ErrNotRegistered)
	}
	return nil
}

func (r *Recorder) AddTimelineButton(label, icon, callback string) {
	r.record(KindAddTimelineButton, label, icon, callback)
	r.buttons[label] = callback
}

func (r *Recorder) RemoveTimelineButton(label string) error {
	r.record(KindRemoveTimelineButton, label)
	if _, ok := r.buttons[label]; !ok {
		return fmt.Errorf("timeline button %q: %w", label, host.ErrNotRegistered)
	}
	delete(r.buttons, label)
	return nil
}

// Invoke runs a registered callback the way the web view would.
func (r *Recorder) Invoke(name string) error {
	_, err := r.callbacks.Dispatch(dispatcher.Event{Command: name, Timestamp: time.Now()})
	return err
}

// Press invokes the callback bound to a timeline button.
func (r *Recorder) Press(label string) error {
	callback, ok := r.buttons[label]
	if !ok {
		return fmt.Errorf("timeline button %q: %w", label, host.ErrNotRegistered)
	}
	return r.Invoke(callback)
}

// Calls returns all recorded calls in order.
func (r *Recorder) Calls() []Call {
	return slices.Clone(r.calls)
}

// CallsTo returns the recorded CallJavascript calls of one function.
func (r *Recorder) CallsTo(function string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Kind == KindCall && c.Target == function {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how often a call of kind on target was recorded.
func (r *Recorder) Count(kind Kind, target string) int {
	n := 0
	for _, c := range r.calls {
		if c.Kind == kind && c.Target == target {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls. Registrations stay.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Callbacks returns the registered callback names, sorted.
func (r *Recorder) Callbacks() []string {
	return r.callbacks.Commands()
}

// Description returns the description a callback was registered with.
func (r *Recorder) Description(name string) (string, bool) {
	return r.callbacks.Description(name)
}

// TimelineButtons returns the labels of the present buttons, sorted.
func (r *Recorder) TimelineButtons() []string {
	labels := make([]string, 0, len(r.buttons))
	for label := range r.buttons {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}
