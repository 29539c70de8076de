package minimap

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cosmoscout/csp-minimap/internal/geo"
	"github.com/cosmoscout/csp-minimap/internal/widget"
	"github.com/cosmoscout/csp-minimap/pkg/core"
)

var (
	ErrNoActiveBody = errors.New("no active body")
	ErrNoPosition   = errors.New("bookmark has no position")
	ErrOtherBody    = errors.New("bookmark belongs to another body")
)

// DefaultColor is used for bookmarks without a color.
var DefaultColor = mgl32.Vec3{0.8, 0.8, 1.0}

// ProjectBookmark places b on the map of body. Positions are projected onto
// a sphere with the body's equatorial radius.
func ProjectBookmark(b core.Bookmark, body core.Body) (widget.Marker, error) {
	if body == nil {
		return widget.Marker{}, ErrNoActiveBody
	}

	center, pos, ok := b.Position()
	if !ok {
		return widget.Marker{}, ErrNoPosition
	}
	if center != body.CenterName() {
		return widget.Marker{}, fmt.Errorf("%w: %q", ErrOtherBody, center)
	}

	r := core.EquatorialRadius(body)
	lngLatHeight, err := geo.CartesianToLngLatHeight(pos, mgl64.Vec2{r, r})
	if err != nil {
		return widget.Marker{}, fmt.Errorf("bookmark %d: %w", b.ID, err)
	}

	loc, err := geo.LngLatPoint(geo.ToDegrees(lngLatHeight.Vec2()))
	if err != nil {
		return widget.Marker{}, fmt.Errorf("bookmark %d: %w", b.ID, err)
	}

	return widget.Marker{
		ID:       b.ID,
		Color:    CSSColor(b.Color),
		Location: loc,
	}, nil
}

// CSSColor formats a [0,1] RGB color as "rgb(r, g, b)" with channels scaled
// to [0,255]. Channels are not rounded. A nil color gives DefaultColor.
func CSSColor(c *mgl32.Vec3) string {
	col := DefaultColor
	if c != nil {
		col = *c
	}
	return "rgb(" + channel(col[0]) + ", " + channel(col[1]) + ", " + channel(col[2]) + ")"
}

func channel(v float32) string {
	return strconv.FormatFloat(float64(v*255), 'f', -1, 32)
}

// skipReason is the metric label of a projection error.
func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveBody):
		return "no_active_body"
	case errors.Is(err, ErrNoPosition):
		return "no_position"
	case errors.Is(err, ErrOtherBody):
		return "other_body"
	case errors.Is(err, geo.ErrDegeneratePosition):
		return "degenerate_position"
	case errors.Is(err, geo.ErrInvalidCoordinates):
		return "invalid_coordinates"
	default:
		return "unknown"
	}
}
