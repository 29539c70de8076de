// Package settings holds the minimap's plugin settings and their JSON form.
package settings

import (
	"encoding/json"
	"fmt"
)

// Projection is the map projection used by a tile source.
type Projection int

const (
	ProjectionNone Projection = iota
	ProjectionMercator
	ProjectionEquirectangular
)

var projectionNames = map[Projection]string{
	ProjectionNone:            "none",
	ProjectionMercator:        "mercator",
	ProjectionEquirectangular: "equirectangular",
}

func (p Projection) String() string {
	if s, ok := projectionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Projection) MarshalText() ([]byte, error) {
	s, ok := projectionNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown projection %d", int(p))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Projection) UnmarshalText(text []byte) error {
	for k, v := range projectionNames {
		if v == string(text) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown projection %q", text)
}

// MapType is the tile protocol of a map.
type MapType int

const (
	MapTypeNone MapType = iota
	MapTypeWMS
	MapTypeWMTS
)

var mapTypeNames = map[MapType]string{
	MapTypeNone: "none",
	MapTypeWMS:  "wms",
	MapTypeWMTS: "wmts",
}

func (t MapType) String() string {
	if s, ok := mapTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("MapType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t MapType) MarshalText() ([]byte, error) {
	s, ok := mapTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown map type %d", int(t))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MapType) UnmarshalText(text []byte) error {
	for k, v := range mapTypeNames {
		if v == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown map type %q", text)
}

// Layer is a tile layer of the legacy "targets" settings.
type Layer struct {
	URL         string
	Layer       *string
	Attribution *string
}

// Map describes the tile source shown for a body. Config is handed to the
// map widget as is; Encode only compacts its whitespace.
type Map struct {
	Projection Projection
	Type       MapType
	URL        string
	Config     json.RawMessage
}

// Settings is the minimap's section of the host settings. A nil map is
// absent from the document, an empty one is written as {}.
type Settings struct {
	// Targets is the legacy per-body layer list. Maps takes precedence.
	Targets    map[string][]Layer
	Maps       map[string]Map
	DefaultMap *Map
}
