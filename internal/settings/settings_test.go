package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRoundTrip_Targets(t *testing.T) {
	in := Settings{
		Targets: map[string][]Layer{
			"Earth": {
				{URL: "https://maps.example.org/wms", Layer: strPtr("bluemarble"), Attribution: strPtr("NASA")},
				{URL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"},
			},
			"Moon": {
				{URL: "https://moon.example.org/wms", Layer: strPtr("lroc")},
			},
		},
	}

	raw, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRoundTrip_Maps(t *testing.T) {
	in := Settings{
		Maps: map[string]Map{
			"Earth": {
				Projection: ProjectionMercator,
				Type:       MapTypeWMS,
				URL:        "https://maps.example.org/wms",
				Config:     json.RawMessage(`{"layers":"earth","format":"image/png"}`),
			},
			"Mars": {
				Projection: ProjectionEquirectangular,
				Type:       MapTypeWMTS,
				URL:        "https://mars.example.org/wmts",
			},
		},
		DefaultMap: &Map{
			Projection: ProjectionNone,
			Type:       MapTypeNone,
			URL:        "",
		},
	}

	raw, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRoundTrip_Empty(t *testing.T) {
	raw, err := Encode(Settings{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))

	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, out)
}

func TestRoundTrip_EmptyMaps(t *testing.T) {
	in := Settings{Targets: map[string][]Layer{}, Maps: map[string]Map{}}

	raw, err := Encode(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"targets": {}, "maps": {}}`, string(raw))

	out, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, out.Targets)
	require.NotNil(t, out.Maps)
	assert.Equal(t, in, out)
}

func TestEncode_CompactsConfig(t *testing.T) {
	in := Settings{DefaultMap: &Map{
		Type:   MapTypeWMS,
		URL:    "u",
		Config: json.RawMessage("{\n  \"layers\": \"earth\"\n}"),
	}}

	raw, err := Encode(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"config":{"layers":"earth"}`)
}

func TestEncode_UnknownEnum(t *testing.T) {
	_, err := Encode(Settings{Maps: map[string]Map{"Earth": {Projection: Projection(9)}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maps[Earth]")

	_, err = Encode(Settings{DefaultMap: &Map{Type: MapType(7)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defaultMap")
}

func TestDecode_EmptyDocuments(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "{}"} {
		s, err := Decode(json.RawMessage(raw))
		require.NoError(t, err, "document %q", raw)
		assert.Equal(t, Settings{}, s)
	}
}

func TestDecode_Document(t *testing.T) {
	raw := `{
		"maps": {
			"Earth": {
				"projection": "mercator",
				"type": "wms",
				"url": "https://maps.example.org/wms",
				"config": {"layers": "earth"}
			}
		},
		"defaultMap": {"projection": "equirectangular", "type": "none", "url": "https://tiles/{z}/{x}/{y}.png"}
	}`

	s, err := Decode(json.RawMessage(raw))
	require.NoError(t, err)

	require.Contains(t, s.Maps, "Earth")
	earth := s.Maps["Earth"]
	assert.Equal(t, ProjectionMercator, earth.Projection)
	assert.Equal(t, MapTypeWMS, earth.Type)
	assert.JSONEq(t, `{"layers": "earth"}`, string(earth.Config))

	require.NotNil(t, s.DefaultMap)
	assert.Equal(t, ProjectionEquirectangular, s.DefaultMap.Projection)
	assert.Nil(t, s.DefaultMap.Config)
	assert.Nil(t, s.Targets)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "missing layer url",
			raw:       `{"targets": {"Earth": [{"layer": "x"}]}}`,
			wantField: "targets[Earth][0].url",
		},
		{
			name:      "missing map projection",
			raw:       `{"maps": {"Earth": {"type": "wms", "url": "u"}}}`,
			wantField: "maps[Earth].projection",
		},
		{
			name:      "missing default map type",
			raw:       `{"defaultMap": {"projection": "mercator", "url": "u"}}`,
			wantField: "defaultMap.type",
		},
		{
			name:      "unknown projection",
			raw:       `{"maps": {"Earth": {"projection": "polar", "type": "wms", "url": "u"}}}`,
			wantField: "maps[Earth].projection",
		},
		{
			name:      "unknown map type",
			raw:       `{"defaultMap": {"projection": "none", "type": "xyz", "url": "u"}}`,
			wantField: "defaultMap.type",
		},
		{
			name: "wrong type",
			raw:  `{"maps": {"Earth": {"projection": "none", "type": "none", "url": 42}}}`,
		},
		{
			name: "not an object",
			raw:  `[1, 2]`,
		},
		{
			name: "syntax error",
			raw:  `{"maps": `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(json.RawMessage(tt.raw))
			require.Error(t, err)

			var de *DeserializationError
			require.True(t, errors.As(err, &de), "expected DeserializationError, got %T", err)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, de.Field)
			}
			assert.Contains(t, err.Error(), "deserializing settings")
		})
	}
}

func TestDecode_EmptyStringsAreValid(t *testing.T) {
	s, err := Decode(json.RawMessage(`{"maps": {"Earth": {"projection": "none", "type": "none", "url": ""}}}`))
	require.NoError(t, err)
	assert.Equal(t, "", s.Maps["Earth"].URL)
}

func TestEnums_Text(t *testing.T) {
	for p, name := range projectionNames {
		text, err := p.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))
		assert.Equal(t, name, p.String())
	}
	for m, name := range mapTypeNames {
		text, err := m.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))
		assert.Equal(t, name, m.String())
	}

	_, err := Projection(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "MapType(7)", MapType(7).String())
}

func TestMapFor(t *testing.T) {
	earth := Map{Projection: ProjectionMercator, Type: MapTypeWMS, URL: "earth"}
	fallback := Map{Projection: ProjectionEquirectangular, Type: MapTypeNone, URL: "fallback"}

	t.Run("body specific map", func(t *testing.T) {
		s := Settings{Maps: map[string]Map{"Earth": earth}, DefaultMap: &fallback}
		m, ok := s.MapFor("Earth")
		assert.True(t, ok)
		assert.Equal(t, earth, m)
	})

	t.Run("default map", func(t *testing.T) {
		s := Settings{Maps: map[string]Map{"Earth": earth}, DefaultMap: &fallback}
		m, ok := s.MapFor("Moon")
		assert.True(t, ok)
		assert.Equal(t, fallback, m)
	})

	t.Run("legacy wms layer", func(t *testing.T) {
		s := Settings{Targets: map[string][]Layer{
			"Moon": {{URL: "https://moon/wms", Layer: strPtr("lroc"), Attribution: strPtr("LRO")}},
		}}
		m, ok := s.MapFor("Moon")
		require.True(t, ok)
		assert.Equal(t, ProjectionMercator, m.Projection)
		assert.Equal(t, MapTypeWMS, m.Type)
		assert.Equal(t, "https://moon/wms", m.URL)
		assert.JSONEq(t, `{"layers": "lroc", "attribution": "LRO"}`, string(m.Config))
	})

	t.Run("legacy plain layer", func(t *testing.T) {
		s := Settings{Targets: map[string][]Layer{"Moon": {{URL: "https://tiles"}}}}
		m, ok := s.MapFor("Moon")
		require.True(t, ok)
		assert.Equal(t, MapTypeNone, m.Type)
		assert.Nil(t, m.Config)
	})

	t.Run("nothing configured", func(t *testing.T) {
		s := Settings{Targets: map[string][]Layer{"Moon": {}}}
		_, ok := s.MapFor("Moon")
		assert.False(t, ok)
	})
}
