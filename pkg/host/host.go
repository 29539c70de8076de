// Package host defines what a plugin consumes from the host application and
// what the host's plugin loader expects back.
package host

import (
	"encoding/json"
	"errors"

	"github.com/cosmoscout/csp-minimap/pkg/core"
	"github.com/cosmoscout/csp-minimap/pkg/event"
)

// ErrNotRegistered is returned by the host when a plugin removes a callback
// or button that is not registered.
var ErrNotRegistered = errors.New("not registered")

// Lifecycle is implemented by every plugin. The host owns the instance and
// calls DeInit exactly before dropping it; DeInit must also tolerate an Init
// that returned an error.
type Lifecycle interface {
	Init() error
	DeInit()
}

// Factory creates a plugin bound to the host's services.
type Factory func(Services) (Lifecycle, error)

// Services bundles the host components handed to a plugin on creation.
type Services struct {
	Settings    SettingsStore
	Gui         GuiManager
	Bookmarks   BookmarkStore
	SolarSystem SolarSystem
}

// SettingsStore is the host's global settings document.
type SettingsStore interface {
	// OnLoad fires after the document was (re)loaded. Errors returned by
	// handlers fail the load.
	OnLoad() *event.Signal[struct{}]
	// OnSave fires before the document is written.
	OnSave() *event.Signal[struct{}]
	// PluginSettings returns the sub-document stored for a plugin.
	PluginSettings(name string) (json.RawMessage, bool)
	// SetPluginSettings replaces the sub-document stored for a plugin.
	SetPluginSettings(name string, doc json.RawMessage) error
}

// GuiManager gives access to the host's embedded web view.
type GuiManager interface {
	AddScriptToGuiFromJS(path string)
	AddCSSToGui(path string)
	AddHTMLToGui(name, path string)

	// ExecuteJavascript runs script text in the web view.
	ExecuteJavascript(code string)
	// CallJavascript calls a script-side function with positional arguments.
	CallJavascript(function string, args ...any)

	RegisterCallback(name, description string, fn func())
	UnregisterCallback(name string) error

	AddTimelineButton(label, icon, callback string)
	RemoveTimelineButton(label string) error
}

// BookmarkStore is the host's bookmark collection.
type BookmarkStore interface {
	OnBookmarkAdded() *event.Signal[core.Bookmark]
	OnBookmarkRemoved() *event.Signal[core.Bookmark]
	// Bookmarks returns all bookmarks ordered by ID.
	Bookmarks() []core.Bookmark
}

// SolarSystem exposes the body the observer is currently attached to. The
// active body is nil while the observer is in free space.
type SolarSystem interface {
	ActiveBody() *event.Property[core.Body]
}
