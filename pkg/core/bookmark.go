// pkg/core/bookmark.go
package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Bookmark is a point of interest owned by the host's bookmark store.
// ID is assigned by the store and is unique while the bookmark exists.
type Bookmark struct {
	ID       uint64
	Name     string
	Location *Location
	Color    *mgl32.Vec3 // RGB, components in [0,1]
}

// Location places a bookmark relative to a celestial body.
type Location struct {
	Center   string      // center name of the body, e.g. "Earth"
	Frame    string      // reference frame, e.g. "IAU_Earth"
	Position *mgl64.Vec3 // body-fixed cartesian position in meters
}

// Position returns the body-fixed position and the center it refers to.
// ok is false if the bookmark has no location or no position.
func (b Bookmark) Position() (center string, pos mgl64.Vec3, ok bool) {
	if b.Location == nil || b.Location.Position == nil {
		return "", mgl64.Vec3{}, false
	}
	return b.Location.Center, *b.Location.Position, true
}
