package render

import (
	"math"

	"github.com/chazu/drafter/pkg/geom"
)

// ellipseSegments is the number of chords used to approximate an ellipse.
const ellipseSegments = 48

// rectOutline returns the corners of a w by h box centred on c and rotated
// by angle degrees, clockwise from the top-left.
func rectOutline(c geom.Vec2, w, h, angle float64) []geom.Vec2 {
	hw, hh := w/2, h/2
	corners := []geom.Vec2{
		geom.V(-hw, -hh), geom.V(hw, -hh), geom.V(hw, hh), geom.V(-hw, hh),
	}
	for i, p := range corners {
		corners[i] = c.Add(geom.Rotate(p, angle))
	}
	return corners
}

// ellipseOutline approximates an ellipse with ellipseSegments points.
func ellipseOutline(c geom.Vec2, rx, ry, angle float64) []geom.Vec2 {
	pts := make([]geom.Vec2, ellipseSegments)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = c.Add(geom.Rotate(geom.V(rx*math.Cos(t), ry*math.Sin(t)), angle))
	}
	return pts
}
