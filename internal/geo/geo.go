// Package geo converts between body-fixed cartesian coordinates and the
// geographic coordinates understood by the map widget.
//
// Body-fixed frames follow the host's convention: y is the polar axis, the
// prime meridian lies in the y-z plane and longitude grows towards +x.
package geo

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegeneratePosition is returned for positions at the body center, which
// have no defined longitude and latitude.
var ErrDegeneratePosition = errors.New("position has no geographic coordinates")

// accuracy of the geodetic surface iteration, relative to the squared radii
const surfaceTolerance = 1e-12

// CartesianToLngLatHeight converts a body-fixed position to longitude,
// latitude (radians) and height (meters) over the spheroid with the given
// equatorial (radii[0]) and polar (radii[1]) radius.
func CartesianToLngLatHeight(p mgl64.Vec3, radii mgl64.Vec2) (mgl64.Vec3, error) {
	if p.Len() == 0 {
		return mgl64.Vec3{}, ErrDegeneratePosition
	}

	surface := scaleToGeodeticSurface(p, radii)
	n := SurfaceNormal(surface, radii)
	lngLat := SurfaceNormalToLngLat(n)

	height := p.Sub(surface).Len()
	if p.Dot(p.Sub(surface)) < 0 {
		height = -height
	}

	return mgl64.Vec3{lngLat[0], lngLat[1], height}, nil
}

// LngLatHeightToCartesian is the inverse of CartesianToLngLatHeight.
func LngLatHeightToCartesian(lngLatHeight mgl64.Vec3, radii mgl64.Vec2) mgl64.Vec3 {
	n := LngLatToSurfaceNormal(mgl64.Vec2{lngLatHeight[0], lngLatHeight[1]})
	r2 := radiiSquared(radii)
	k := mgl64.Vec3{r2[0] * n[0], r2[1] * n[1], r2[2] * n[2]}
	gamma := math.Sqrt(n.Dot(k))
	return k.Mul(1 / gamma).Add(n.Mul(lngLatHeight[2]))
}

// SurfaceNormal returns the geodetic surface normal at a point on the spheroid.
func SurfaceNormal(surface mgl64.Vec3, radii mgl64.Vec2) mgl64.Vec3 {
	r2 := radiiSquared(radii)
	return mgl64.Vec3{surface[0] / r2[0], surface[1] / r2[1], surface[2] / r2[2]}.Normalize()
}

// SurfaceNormalToLngLat returns longitude and latitude (radians) of a normal.
func SurfaceNormalToLngLat(n mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{math.Atan2(n[0], n[2]), math.Asin(clamp(n[1], -1, 1))}
}

// LngLatToSurfaceNormal is the inverse of SurfaceNormalToLngLat.
func LngLatToSurfaceNormal(lngLat mgl64.Vec2) mgl64.Vec3 {
	lng, lat := lngLat[0], lngLat[1]
	return mgl64.Vec3{
		math.Cos(lat) * math.Sin(lng),
		math.Sin(lat),
		math.Cos(lat) * math.Cos(lng),
	}
}

// ToDegrees converts a longitude/latitude pair from radians to degrees.
func ToDegrees(lngLat mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{mgl64.RadToDeg(lngLat[0]), mgl64.RadToDeg(lngLat[1])}
}

// scaleToGeodeticSurface projects p along the geodetic normal onto the
// spheroid surface using Newton iteration.
func scaleToGeodeticSurface(p mgl64.Vec3, radii mgl64.Vec2) mgl64.Vec3 {
	r2 := radiiSquared(radii)
	inv2 := mgl64.Vec3{1 / r2[0], 1 / r2[1], 1 / r2[2]}

	x2 := p[0] * p[0] * inv2[0]
	y2 := p[1] * p[1] * inv2[1]
	z2 := p[2] * p[2] * inv2[2]

	// first guess: the geocentric intersection
	ratio := math.Sqrt(1 / (x2 + y2 + z2))
	intersection := p.Mul(ratio)

	gradient := mgl64.Vec3{
		intersection[0] * inv2[0] * 2,
		intersection[1] * inv2[1] * 2,
		intersection[2] * inv2[2] * 2,
	}

	lambda := (1 - ratio) * p.Len() / (0.5 * gradient.Len())
	correction := 0.0

	var mx, my, mz float64
	for i := 0; i < 100; i++ {
		lambda -= correction

		mx = 1 / (1 + lambda*inv2[0])
		my = 1 / (1 + lambda*inv2[1])
		mz = 1 / (1 + lambda*inv2[2])

		f := x2*mx*mx + y2*my*my + z2*mz*mz - 1
		if math.Abs(f) <= surfaceTolerance {
			break
		}

		denominator := x2*mx*mx*mx*inv2[0] + y2*my*my*my*inv2[1] + z2*mz*mz*mz*inv2[2]
		correction = f / (-2 * denominator)
	}

	return mgl64.Vec3{p[0] * mx, p[1] * my, p[2] * mz}
}

func radiiSquared(radii mgl64.Vec2) mgl64.Vec3 {
	return mgl64.Vec3{radii[0] * radii[0], radii[1] * radii[1], radii[0] * radii[0]}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
