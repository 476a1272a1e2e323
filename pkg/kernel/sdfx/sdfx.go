// Package sdfx implements kernel.View on top of the 2D affine matrices of
// the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
)

// Compile-time interface check.
var _ kernel.View = (*View)(nil)

// View maps scene space to view space as
// translate(frame centre) * scale * translate(pan).
type View struct {
	centre geom.Vec2
	pan    geom.Vec2
	scale  float64

	fromScene sdf.M33
	toScene   sdf.M33
}

// New returns a View with unit scale, no pan and a zero-sized frame.
func New() *View {
	v := &View{scale: 1}
	v.update()
	return v
}

// update rebuilds both matrices after any change to the view state.
func (v *View) update() {
	v.fromScene = sdf.Translate2d(v.centre).
		Mul(sdf.Scale2d(geom.V(v.scale, v.scale))).
		Mul(sdf.Translate2d(v.pan))
	v.toScene = v.fromScene.Inverse()
}

func (v *View) MapToScene(p geom.Vec2) geom.Vec2 {
	return v.toScene.MulPosition(p)
}

func (v *View) MapFromScene(p geom.Vec2) geom.Vec2 {
	return v.fromScene.MulPosition(p)
}

func (v *View) Resize(w, h float64) {
	v.centre = geom.V(w/2, h/2)
	v.update()
}

// Pan converts delta to scene units at the current scale.
func (v *View) Pan(delta geom.Vec2) {
	v.pan = v.pan.Add(delta.DivScalar(v.scale))
	v.update()
}

// Zoom ignores non-positive factors.
func (v *View) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	v.scale *= factor
	v.update()
}

func (v *View) Scale() float64 { return v.scale }

// PanOffset returns the pan in scene units.
func (v *View) PanOffset() geom.Vec2 { return v.pan }

func (v *View) Affine() kernel.Affine {
	return kernel.AffineOf(v)
}
