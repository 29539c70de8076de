package settings

import "encoding/json"

// MapFor returns the map to show for the body with the given center name.
// A body-specific entry wins over the default map; bodies only configured
// through the legacy targets get their first layer as a Mercator map.
func (s Settings) MapFor(center string) (Map, bool) {
	if m, ok := s.Maps[center]; ok {
		return m, true
	}
	if s.DefaultMap != nil {
		return *s.DefaultMap, true
	}
	if layers := s.Targets[center]; len(layers) > 0 {
		return layers[0].asMap(), true
	}
	return Map{}, false
}

func (l Layer) asMap() Map {
	m := Map{
		Projection: ProjectionMercator,
		Type:       MapTypeNone,
		URL:        l.URL,
	}
	if l.Layer != nil {
		m.Type = MapTypeWMS
	}

	cfg := map[string]string{}
	if l.Layer != nil {
		cfg["layers"] = *l.Layer
	}
	if l.Attribution != nil {
		cfg["attribution"] = *l.Attribution
	}
	if len(cfg) > 0 {
		// a map of strings always marshals
		m.Config, _ = json.Marshal(cfg)
	}
	return m
}
