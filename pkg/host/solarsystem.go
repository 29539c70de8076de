package host

import (
	"fmt"

	"github.com/cosmoscout/csp-minimap/pkg/core"
	"github.com/cosmoscout/csp-minimap/pkg/event"
)

// StaticSolarSystem is a SolarSystem over a fixed set of bodies.
type StaticSolarSystem struct {
	bodies map[string]core.Body
	active *event.Property[core.Body]
}

// NewStaticSolarSystem returns a solar system with no active body.
func NewStaticSolarSystem(bodies ...core.Body) *StaticSolarSystem {
	s := &StaticSolarSystem{
		bodies: make(map[string]core.Body, len(bodies)),
		active: event.NewProperty[core.Body](nil),
	}
	for _, b := range bodies {
		s.bodies[b.CenterName()] = b
	}
	return s
}

// ActiveBody implements SolarSystem.
func (s *StaticSolarSystem) ActiveBody() *event.Property[core.Body] {
	return s.active
}

// Body looks up a body by center name.
func (s *StaticSolarSystem) Body(center string) (core.Body, bool) {
	b, ok := s.bodies[center]
	return b, ok
}

// Activate makes the named body active. An empty name detaches the observer.
func (s *StaticSolarSystem) Activate(center string) error {
	if center == "" {
		return s.active.Set(nil)
	}
	b, ok := s.bodies[center]
	if !ok {
		return fmt.Errorf("unknown body %q", center)
	}
	return s.active.Set(b)
}
