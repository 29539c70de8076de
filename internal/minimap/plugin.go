// Package minimap is the CosmoScout VR minimap plugin. It injects a Leaflet
// map into the host GUI, points it at the tile source configured for the
// active body and mirrors the host's bookmarks onto it.
package minimap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cosmoscout/csp-minimap/internal/config"
	"github.com/cosmoscout/csp-minimap/internal/settings"
	"github.com/cosmoscout/csp-minimap/internal/widget"
	"github.com/cosmoscout/csp-minimap/pkg/core"
	"github.com/cosmoscout/csp-minimap/pkg/event"
	"github.com/cosmoscout/csp-minimap/pkg/host"
)

const (
	// DefaultSettingsKey is the plugin's section in the host settings.
	DefaultSettingsKey = "csp-minimap"

	TemplateName        = "minimap-template"
	ToggleCallback      = "minimap.toggle"
	ToggleDescription   = "Toggles the Minimap."
	TimelineButtonLabel = "Toggle Minimap"
	TimelineButtonIcon  = "map"

	toggleScript = "document.querySelector('#minimap').classList.toggle('visible')"
	removeScript = "document.querySelector('#minimap').remove()"
)

// Dependencies holds everything a Plugin is built from.
type Dependencies struct {
	host.Services

	Logger      *slog.Logger
	Resources   config.ResourceConfig
	SettingsKey string
}

// Plugin implements host.Lifecycle. All methods run on the host's main
// thread.
type Plugin struct {
	deps    Dependencies
	log     *slog.Logger
	widget  *widget.Widget
	metrics *metrics

	settings   settings.Settings
	activeBody core.Body

	onLoadConn  event.ConnectionID
	onSaveConn  event.ConnectionID
	addedConn   event.ConnectionID
	removedConn event.ConnectionID
	bodyConn    event.ConnectionID

	resourcesAdded     bool
	callbackRegistered bool
	buttonAdded        bool
}

var _ host.Lifecycle = (*Plugin)(nil)

// New creates an uninitialized plugin.
func New(deps Dependencies) (*Plugin, error) {
	switch {
	case deps.Settings == nil:
		return nil, errors.New("minimap: settings store is required")
	case deps.Gui == nil:
		return nil, errors.New("minimap: gui manager is required")
	case deps.Bookmarks == nil:
		return nil, errors.New("minimap: bookmark store is required")
	case deps.SolarSystem == nil:
		return nil, errors.New("minimap: solar system is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.SettingsKey == "" {
		deps.SettingsKey = DefaultSettingsKey
	}

	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	return &Plugin{
		deps:        deps,
		log:         deps.Logger.With("plugin", deps.SettingsKey),
		widget:      widget.New(deps.Gui),
		metrics:     m,
		onLoadConn:  event.NoConnection,
		onSaveConn:  event.NoConnection,
		addedConn:   event.NoConnection,
		removedConn: event.NoConnection,
		bodyConn:    event.NoConnection,
	}, nil
}

// Factory returns a host.Factory producing plugins with the given runtime
// configuration.
func Factory(logger *slog.Logger, resources config.ResourceConfig, settingsKey string) host.Factory {
	return func(s host.Services) (host.Lifecycle, error) {
		return New(Dependencies{
			Services:    s,
			Logger:      logger,
			Resources:   resources,
			SettingsKey: settingsKey,
		})
	}
}

// Settings returns the currently applied settings.
func (p *Plugin) Settings() settings.Settings {
	return p.settings
}

// Init registers the plugin with the host and loads its settings. On error
// the host still calls DeInit, which releases what was registered so far.
func (p *Plugin) Init() error {
	p.log.Info("Loading plugin...")

	p.onLoadConn = p.deps.Settings.OnLoad().Connect(func(struct{}) error { return p.onLoad() })
	p.onSaveConn = p.deps.Settings.OnSave().Connect(func(struct{}) error { return p.onSave() })

	res := p.deps.Resources
	gui := p.deps.Gui
	gui.AddScriptToGuiFromJS(res.LeafletScript)
	gui.AddCSSToGui(res.LeafletCSS)
	gui.AddCSSToGui(res.PluginCSS)
	gui.AddHTMLToGui(TemplateName, res.HTMLTemplate)
	gui.AddScriptToGuiFromJS(res.PluginScript)
	p.resourcesAdded = true

	gui.RegisterCallback(ToggleCallback, ToggleDescription, func() {
		gui.ExecuteJavascript(toggleScript)
	})
	p.callbackRegistered = true

	gui.AddTimelineButton(TimelineButtonLabel, TimelineButtonIcon, ToggleCallback)
	p.buttonAdded = true

	if err := p.onLoad(); err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	p.addedConn = p.deps.Bookmarks.OnBookmarkAdded().Connect(p.onBookmarkAdded)
	p.removedConn = p.deps.Bookmarks.OnBookmarkRemoved().Connect(p.onBookmarkRemoved)

	var err error
	p.bodyConn, err = p.deps.SolarSystem.ActiveBody().ConnectAndTouch(p.onActiveBodyChanged)
	if err != nil {
		return fmt.Errorf("showing active body: %w", err)
	}

	p.log.Info("Loading done.")
	return nil
}

// DeInit undoes Init. Only what was registered is released, and every
// registration is released once.
func (p *Plugin) DeInit() {
	p.log.Info("Unloading plugin...")

	disconnect(p.deps.Settings.OnLoad(), &p.onLoadConn)
	disconnect(p.deps.Settings.OnSave(), &p.onSaveConn)
	disconnect(p.deps.Bookmarks.OnBookmarkAdded(), &p.addedConn)
	disconnect(p.deps.Bookmarks.OnBookmarkRemoved(), &p.removedConn)
	if p.bodyConn != event.NoConnection {
		p.deps.SolarSystem.ActiveBody().Disconnect(p.bodyConn)
		p.bodyConn = event.NoConnection
	}

	if p.resourcesAdded {
		p.widget.UnregisterHTML(TemplateName)
		p.widget.UnregisterCSS(p.deps.Resources.PluginCSS)
		p.deps.Gui.ExecuteJavascript(removeScript)
		p.resourcesAdded = false
	}

	if p.buttonAdded {
		p.release("timeline button", TimelineButtonLabel, p.deps.Gui.RemoveTimelineButton(TimelineButtonLabel))
		p.buttonAdded = false
	}

	if p.callbackRegistered {
		p.release("callback", ToggleCallback, p.deps.Gui.UnregisterCallback(ToggleCallback))
		p.callbackRegistered = false
	}

	p.activeBody = nil
	p.log.Info("Unloading done.")
}

func disconnect[T any](s *event.Signal[T], id *event.ConnectionID) {
	if *id == event.NoConnection {
		return
	}
	s.Disconnect(*id)
	*id = event.NoConnection
}

func (p *Plugin) release(what, name string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, host.ErrNotRegistered):
		p.log.Debug("Already unregistered", "kind", what, "name", name)
	default:
		p.log.Warn("Failed to unregister", "kind", what, "name", name, "error", err)
	}
}

// onLoad replaces the settings with the host's copy. On error the previous
// settings stay in effect.
func (p *Plugin) onLoad() error {
	raw, _ := p.deps.Settings.PluginSettings(p.deps.SettingsKey)

	s, err := settings.Decode(raw)
	if err != nil {
		p.metrics.loads.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", "error")))
		p.log.Error("Failed to read settings", "error", err)
		return err
	}
	p.metrics.loads.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", "ok")))

	p.settings = s
	p.log.Debug("Settings loaded", "maps", len(s.Maps), "targets", len(s.Targets), "defaultMap", s.DefaultMap != nil)

	if p.activeBody != nil {
		return p.configureMap()
	}
	return nil
}

func (p *Plugin) onSave() error {
	raw, err := settings.Encode(p.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := p.deps.Settings.SetPluginSettings(p.deps.SettingsKey, raw); err != nil {
		return fmt.Errorf("storing settings: %w", err)
	}
	return nil
}

func (p *Plugin) onActiveBodyChanged(body core.Body) error {
	p.activeBody = body
	p.widget.RemoveBookmarks()

	if body == nil {
		p.log.Debug("No active body")
		return nil
	}
	p.log.Debug("Active body changed", "body", body.CenterName())

	if err := p.configureMap(); err != nil {
		return err
	}
	for _, b := range p.deps.Bookmarks.Bookmarks() {
		p.addBookmark(b)
	}
	return nil
}

func (p *Plugin) onBookmarkAdded(b core.Bookmark) error {
	p.addBookmark(b)
	return nil
}

func (p *Plugin) onBookmarkRemoved(b core.Bookmark) error {
	p.widget.RemoveBookmark(b.ID)
	return nil
}

func (p *Plugin) addBookmark(b core.Bookmark) {
	marker, err := ProjectBookmark(b, p.activeBody)
	if err != nil {
		reason := skipReason(err)
		p.metrics.skipped.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
		p.log.Debug("Bookmark not shown", "id", b.ID, "reason", reason, "error", err)
		return
	}

	p.widget.AddBookmark(marker)
	p.metrics.added.Add(context.Background(), 1)
}

// configureMap points the widget at the map of the active body, or clears
// it when none is configured.
func (p *Plugin) configureMap() error {
	m, ok := p.settings.MapFor(p.activeBody.CenterName())
	if !ok {
		p.log.Debug("No map configured", "body", p.activeBody.CenterName())
		return p.widget.Configure(nil)
	}
	cfg := widget.NewMapConfig(m)
	return p.widget.Configure(&cfg)
}
