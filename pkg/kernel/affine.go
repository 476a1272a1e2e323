package kernel

import (
	"fmt"

	"github.com/chazu/drafter/pkg/geom"
)

// Affine is a 2D affine transform in the column-major layout used by SVG
// and canvas APIs: x' = A*x + C*y + E, y' = B*x + D*y + F.
type Affine struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// AffineOf samples m at the origin and the unit vectors.
func AffineOf(m Mapper) Affine {
	o := m.MapFromScene(geom.V(0, 0))
	x := m.MapFromScene(geom.V(1, 0)).Sub(o)
	y := m.MapFromScene(geom.V(0, 1)).Sub(o)
	return Affine{A: x.X, B: x.Y, C: y.X, D: y.Y, E: o.X, F: o.Y}
}

// Apply maps p through the transform.
func (t Affine) Apply(p geom.Vec2) geom.Vec2 {
	return geom.V(t.A*p.X+t.C*p.Y+t.E, t.B*p.X+t.D*p.Y+t.F)
}

// Scale is the length a unit vector along x is mapped to.
func (t Affine) Scale() float64 {
	return geom.V(t.A, t.B).Length()
}

// SVG formats the transform as an SVG transform attribute value.
func (t Affine) SVG() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", t.A, t.B, t.C, t.D, t.E, t.F)
}
