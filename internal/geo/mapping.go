package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/cosmoscout/csp-minimap/internal/settings"
	"github.com/go-gl/mathgl/mgl64"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// ErrInvalidCoordinates is returned for longitudes or latitudes that are not
// finite numbers.
var ErrInvalidCoordinates = errors.New("invalid geographic coordinates")

// webMercatorExtent is half the side length of the EPSG:3857 square in meters.
const webMercatorExtent = math.Pi * 6378137

// LatitudeLimit returns the largest latitude in degrees a map with the given
// projection can show. Web Mercator cuts the poles off where the projected
// map becomes square.
func LatitudeLimit(p settings.Projection) float64 {
	if p != settings.ProjectionMercator {
		return 90
	}
	f := wgs84.EPSG().Transform(3857, 4326)
	_, lat, _ := f(0, webMercatorExtent, 0)
	return lat
}

// LngLatPoint creates a point in degrees with x = longitude and y = latitude.
// NaN or infinite coordinates are rejected.
func LngLatPoint(lngLatDeg mgl64.Vec2) (geom.Point, error) {
	p, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: lngLatDeg[0], Y: lngLatDeg[1]},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return p, nil
}

// PointLngLat returns the longitude and latitude of a point created by
// LngLatPoint. ok is false for empty points.
func PointLngLat(p geom.Point) (lng, lat float64, ok bool) {
	c, ok := p.Coordinates()
	if !ok {
		return 0, 0, false
	}
	return c.X, c.Y, true
}
