package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// The *Doc types are the JSON schema of the settings. Pointer fields tagged
// required must be present in the document; everything else is optional.
// Maps are held by pointer so that an empty object survives a round trip.

type layerDoc struct {
	URL         *string `json:"url" validate:"required"`
	Layer       *string `json:"layer,omitempty"`
	Attribution *string `json:"attribution,omitempty"`
}

type mapDoc struct {
	Projection *string         `json:"projection" validate:"required,oneof=none mercator equirectangular"`
	Type       *string         `json:"type" validate:"required,oneof=none wms wmts"`
	URL        *string         `json:"url" validate:"required"`
	Config     json.RawMessage `json:"config,omitempty"`
}

type settingsDoc struct {
	Targets    *map[string][]layerDoc `json:"targets,omitempty" validate:"omitempty,dive,dive"`
	Maps       *map[string]mapDoc     `json:"maps,omitempty" validate:"omitempty,dive"`
	DefaultMap *mapDoc                `json:"defaultMap,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses a settings document. An empty or null document yields empty
// Settings. Missing required fields and malformed values are reported as
// *DeserializationError.
func Decode(raw json.RawMessage) (Settings, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Settings{}, nil
	}

	var doc settingsDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Settings{}, &DeserializationError{Field: typeErr.Field, Err: err}
		}
		return Settings{}, &DeserializationError{Err: err}
	}

	if err := validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return Settings{}, &DeserializationError{
				Field: fieldPath(fe.Namespace()),
				Err:   fmt.Errorf("failed on %q", fe.Tag()),
			}
		}
		return Settings{}, &DeserializationError{Err: err}
	}

	s, err := fromDoc(doc)
	if err != nil {
		return Settings{}, &DeserializationError{Err: err}
	}
	return s, nil
}

// Encode renders the settings as a JSON document. Map configs are written in
// compact form.
func Encode(s Settings) (json.RawMessage, error) {
	doc, err := toDoc(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fromDoc(doc settingsDoc) (Settings, error) {
	var s Settings

	if doc.Targets != nil {
		s.Targets = make(map[string][]Layer, len(*doc.Targets))
		for body, layers := range *doc.Targets {
			out := make([]Layer, 0, len(layers))
			for _, l := range layers {
				out = append(out, Layer{URL: *l.URL, Layer: l.Layer, Attribution: l.Attribution})
			}
			s.Targets[body] = out
		}
	}

	if doc.Maps != nil {
		s.Maps = make(map[string]Map, len(*doc.Maps))
		for body, d := range *doc.Maps {
			m, err := mapFromDoc(d)
			if err != nil {
				return Settings{}, fmt.Errorf("maps[%s]: %w", body, err)
			}
			s.Maps[body] = m
		}
	}

	if doc.DefaultMap != nil {
		m, err := mapFromDoc(*doc.DefaultMap)
		if err != nil {
			return Settings{}, fmt.Errorf("defaultMap: %w", err)
		}
		s.DefaultMap = &m
	}

	return s, nil
}

func mapFromDoc(d mapDoc) (Map, error) {
	m := Map{URL: *d.URL, Config: d.Config}
	if err := m.Projection.UnmarshalText([]byte(*d.Projection)); err != nil {
		return Map{}, err
	}
	if err := m.Type.UnmarshalText([]byte(*d.Type)); err != nil {
		return Map{}, err
	}
	return m, nil
}

func toDoc(s Settings) (settingsDoc, error) {
	var doc settingsDoc

	if s.Targets != nil {
		targets := make(map[string][]layerDoc, len(s.Targets))
		for body, layers := range s.Targets {
			out := make([]layerDoc, 0, len(layers))
			for _, l := range layers {
				url := l.URL
				out = append(out, layerDoc{URL: &url, Layer: l.Layer, Attribution: l.Attribution})
			}
			targets[body] = out
		}
		doc.Targets = &targets
	}

	if s.Maps != nil {
		maps := make(map[string]mapDoc, len(s.Maps))
		for body, m := range s.Maps {
			d, err := mapToDoc(m)
			if err != nil {
				return settingsDoc{}, fmt.Errorf("maps[%s]: %w", body, err)
			}
			maps[body] = d
		}
		doc.Maps = &maps
	}

	if s.DefaultMap != nil {
		d, err := mapToDoc(*s.DefaultMap)
		if err != nil {
			return settingsDoc{}, fmt.Errorf("defaultMap: %w", err)
		}
		doc.DefaultMap = &d
	}

	return doc, nil
}

func mapToDoc(m Map) (mapDoc, error) {
	projection, err := m.Projection.MarshalText()
	if err != nil {
		return mapDoc{}, err
	}
	mapType, err := m.Type.MarshalText()
	if err != nil {
		return mapDoc{}, err
	}
	p, t, url := string(projection), string(mapType), m.URL
	return mapDoc{
		Projection: &p,
		Type:       &t,
		URL:        &url,
		Config:     m.Config,
	}, nil
}
