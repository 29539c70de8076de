// pkg/core/body.go
package core

import "github.com/go-gl/mathgl/mgl64"

// Body is a celestial body of the host's solar system.
type Body interface {
	// CenterName is the SPICE center name identifying the body.
	CenterName() string
	// Radii returns the semi-axes (x, y, z) in meters; y is the polar axis.
	Radii() mgl64.Vec3
}

// StaticBody is a Body with fixed name and radii.
type StaticBody struct {
	Name     string
	Semiaxes mgl64.Vec3
}

// CenterName implements Body.
func (b *StaticBody) CenterName() string { return b.Name }

// Radii implements Body.
func (b *StaticBody) Radii() mgl64.Vec3 { return b.Semiaxes }

// EquatorialRadius returns the x semi-axis of a body.
func EquatorialRadius(b Body) float64 {
	return b.Radii()[0]
}
