// Package widget drives the Leaflet minimap living in the host's web view.
// The function names below are the contract with csp-minimap.js.
//
// FuncConfigure goes beyond the bookmark calls of the stock widget script:
// csp-minimap.js must define CosmoScout.minimap.configure(config) and switch
// the Leaflet base layer to the projection, protocol, URL and options it is
// given. Without it the widget keeps its built-in layer.
package widget

import (
	"encoding/json"
	"fmt"

	"github.com/cosmoscout/csp-minimap/internal/geo"
	"github.com/cosmoscout/csp-minimap/internal/settings"
	geom "github.com/peterstace/simplefeatures/geom"
)

const (
	FuncAddBookmark     = "CosmoScout.minimap.addBookmark"
	FuncRemoveBookmark  = "CosmoScout.minimap.removeBookmark"
	FuncRemoveBookmarks = "CosmoScout.minimap.removeBookmarks"
	FuncConfigure       = "CosmoScout.minimap.configure"
	FuncUnregisterHTML  = "CosmoScout.gui.unregisterHtml"
	FuncUnregisterCSS   = "CosmoScout.gui.unregisterCss"
)

// Caller calls script-side functions with positional arguments.
type Caller interface {
	CallJavascript(function string, args ...any)
}

// Marker is a bookmark as the widget draws it.
type Marker struct {
	ID       uint64
	Color    string     // CSS color, e.g. "rgb(204, 204, 255)"
	Location geom.Point // x = longitude, y = latitude, degrees
}

// MapConfig is the tile source payload of FuncConfigure.
type MapConfig struct {
	Projection  settings.Projection `json:"projection"`
	Type        settings.MapType    `json:"type"`
	URL         string              `json:"url"`
	Config      json.RawMessage     `json:"config,omitempty"`
	MaxLatitude float64             `json:"maxLatitude"`
}

// NewMapConfig builds the widget payload for a map.
func NewMapConfig(m settings.Map) MapConfig {
	return MapConfig{
		Projection:  m.Projection,
		Type:        m.Type,
		URL:         m.URL,
		Config:      m.Config,
		MaxLatitude: geo.LatitudeLimit(m.Projection),
	}
}

// Widget wraps the script bridge of the minimap.
type Widget struct {
	gui Caller
}

// New returns a Widget calling into gui.
func New(gui Caller) *Widget {
	return &Widget{gui: gui}
}

// AddBookmark draws a marker. Markers without coordinates are ignored.
func (w *Widget) AddBookmark(m Marker) {
	lng, lat, ok := geo.PointLngLat(m.Location)
	if !ok {
		return
	}
	w.gui.CallJavascript(FuncAddBookmark, m.ID, m.Color, lng, lat)
}

// RemoveBookmark removes a marker. The widget ignores unknown ids.
func (w *Widget) RemoveBookmark(id uint64) {
	w.gui.CallJavascript(FuncRemoveBookmark, id)
}

// RemoveBookmarks removes all markers.
func (w *Widget) RemoveBookmarks() {
	w.gui.CallJavascript(FuncRemoveBookmarks)
}

// Configure switches the tile source. A nil config clears the map.
func (w *Widget) Configure(cfg *MapConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding map config: %w", err)
	}
	w.gui.CallJavascript(FuncConfigure, string(data))
	return nil
}

// UnregisterHTML removes a template added with AddHTMLToGui.
func (w *Widget) UnregisterHTML(name string) {
	w.gui.CallJavascript(FuncUnregisterHTML, name)
}

// UnregisterCSS removes a stylesheet added with AddCSSToGui.
func (w *Widget) UnregisterCSS(path string) {
	w.gui.CallJavascript(FuncUnregisterCSS, path)
}
