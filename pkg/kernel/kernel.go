// Package kernel defines the coordinate mapping boundary between the host
// view and the scene. Implementations (sdfx) keep the pan/zoom transform
// behind this interface, so shapes and actors only ever see scene
// coordinates.
package kernel

import "github.com/chazu/drafter/pkg/geom"

// Mapper converts points between view (pointer) space and scene space.
type Mapper interface {
	MapToScene(p geom.Vec2) geom.Vec2
	MapFromScene(p geom.Vec2) geom.Vec2
}

// View is a Mapper whose transform is driven by the host: the frame size,
// a pan offset in scene units and a uniform zoom.
type View interface {
	Mapper

	// Resize sets the frame size; the scene origin maps to its centre.
	Resize(w, h float64)
	// Pan shifts the scene by delta given in view units.
	Pan(delta geom.Vec2)
	// Zoom multiplies the current scale by factor.
	Zoom(factor float64)
	Scale() float64

	// Affine returns the scene-to-view transform.
	Affine() Affine
}

// Identity maps every point to itself.
type Identity struct{}

func (Identity) MapToScene(p geom.Vec2) geom.Vec2   { return p }
func (Identity) MapFromScene(p geom.Vec2) geom.Vec2 { return p }
