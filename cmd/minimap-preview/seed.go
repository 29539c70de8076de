package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cosmoscout/csp-minimap/internal/bookmarks"
	"github.com/cosmoscout/csp-minimap/internal/config"
	"github.com/cosmoscout/csp-minimap/internal/geo"
	"github.com/cosmoscout/csp-minimap/pkg/core"
)

type landmark struct {
	name     string
	center   string
	lng, lat float64 // degrees
	color    *mgl32.Vec3
}

var landmarks = []landmark{
	{name: "Berlin", center: "Earth", lng: 13.405, lat: 52.52},
	{name: "Cape Canaveral", center: "Earth", lng: -80.6, lat: 28.4, color: &mgl32.Vec3{1, 0.5, 0}},
	{name: "Tranquility Base", center: "Moon", lng: 23.473, lat: 0.674, color: &mgl32.Vec3{1, 1, 1}},
	{name: "Olympus Mons", center: "Mars", lng: -133.8, lat: 18.65, color: &mgl32.Vec3{0.8, 0.2, 0.1}},
}

// seedBookmarks adds the landmarks of the configured bodies.
func seedBookmarks(store *bookmarks.Store, bodies []config.BodyConfig) error {
	radii := make(map[string]mgl64.Vec2, len(bodies))
	for _, b := range bodies {
		radii[b.Name] = mgl64.Vec2{b.Radii[0], b.Radii[1]}
	}

	for _, l := range landmarks {
		r, ok := radii[l.center]
		if !ok {
			continue
		}
		pos := geo.LngLatHeightToCartesian(mgl64.Vec3{mgl64.DegToRad(l.lng), mgl64.DegToRad(l.lat), 0}, r)
		if _, err := store.Add(core.Bookmark{
			Name:     l.name,
			Location: &core.Location{Center: l.center, Frame: "IAU_" + l.center, Position: &pos},
			Color:    l.color,
		}); err != nil {
			return err
		}
	}
	return nil
}
