package minimap

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmoscout/csp-minimap/internal/geo"
	"github.com/cosmoscout/csp-minimap/pkg/core"
)

func TestCSSColor(t *testing.T) {
	tests := []struct {
		name  string
		color *mgl32.Vec3
		want  string
	}{
		{"default", nil, "rgb(204, 204, 255)"},
		{"black", &mgl32.Vec3{0, 0, 0}, "rgb(0, 0, 0)"},
		{"fractional channel", &mgl32.Vec3{1, 0, 0.5}, "rgb(255, 0, 127.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSSColor(tt.color))
		})
	}
}

func TestProjectBookmark_UsesEquatorialRadius(t *testing.T) {
	// strongly flattened body: a point on the polar axis above the polar
	// radius still projects onto the pole of the equatorial sphere
	body := &core.StaticBody{Name: "Flat", Semiaxes: mgl64.Vec3{1000, 10, 1000}}

	m, err := ProjectBookmark(onBody(7, "Flat", mgl64.Vec3{0, 500, 0}), body)
	require.NoError(t, err)

	lng, lat, ok := geo.PointLngLat(m.Location)
	require.True(t, ok)
	assert.Equal(t, uint64(7), m.ID)
	assert.InDelta(t, 0, lng, 1e-9)
	assert.InDelta(t, 90, lat, 1e-9)
}

func TestProjectBookmark_Errors(t *testing.T) {
	earth := &core.StaticBody{Name: "Earth", Semiaxes: mgl64.Vec3{earthRadius, earthRadius, earthRadius}}

	tests := []struct {
		name       string
		bookmark   core.Bookmark
		body       core.Body
		wantErr    error
		wantReason string
	}{
		{"no body", onBody(1, "Earth", mgl64.Vec3{1, 0, 0}), nil, ErrNoActiveBody, "no_active_body"},
		{"no location", core.Bookmark{ID: 2}, earth, ErrNoPosition, "no_position"},
		{"other body", onBody(3, "Mars", mgl64.Vec3{1, 0, 0}), earth, ErrOtherBody, "other_body"},
		{"body center", onBody(4, "Earth", mgl64.Vec3{}), earth, geo.ErrDegeneratePosition, "degenerate_position"},
		{"zero radii", onBody(5, "X", mgl64.Vec3{1, 0, 0}), &core.StaticBody{Name: "X"}, geo.ErrInvalidCoordinates, "invalid_coordinates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectBookmark(tt.bookmark, tt.body)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantReason, skipReason(err))
		})
	}

	assert.Equal(t, "unknown", skipReason(errors.New("other")))
}
