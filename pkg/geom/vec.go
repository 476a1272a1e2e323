// Package geom holds the small 2D value types shared by the shape model,
// the representations and the render backends. Points are sdfx vectors so
// they pass straight into the view matrices.
package geom

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Vec2 is a point or displacement in scene space.
type Vec2 = v2.Vec

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Dist returns the distance between two points.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Length()
}

// Unit returns the unit vector of v. The zero vector stays zero, where
// v2.Vec.Normalize would give NaNs.
func Unit(v Vec2) Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.DivScalar(l)
}

// Project returns the component of v along the unit axis n.
func Project(v, n Vec2) Vec2 {
	return n.MulScalar(v.Dot(n))
}

// Rotate rotates v by deg degrees about the origin (counter-clockwise in a
// y-up frame).
func Rotate(v Vec2, deg float64) Vec2 {
	return sdf.Rotate2d(sdf.DtoR(deg)).MulPosition(v)
}

// Mid returns the midpoint of a and b.
func Mid(a, b Vec2) Vec2 {
	return a.Add(b).MulScalar(0.5)
}

//----------

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// Y grows downwards, as in pointer space.
type Rect struct {
	Min  Vec2
	Size Vec2
}

// R builds a Rect from its top-left corner and size.
func R(x, y, w, h float64) Rect {
	return Rect{Min: V(x, y), Size: V(w, h)}
}

func (r Rect) TopLeft() Vec2     { return r.Min }
func (r Rect) TopRight() Vec2    { return V(r.Min.X+r.Size.X, r.Min.Y) }
func (r Rect) BottomRight() Vec2 { return r.Min.Add(r.Size) }
func (r Rect) BottomLeft() Vec2  { return V(r.Min.X, r.Min.Y+r.Size.Y) }
func (r Rect) Center() Vec2      { return r.Min.Add(r.Size.MulScalar(0.5)) }
