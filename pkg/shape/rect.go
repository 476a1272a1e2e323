package shape

import (
	"math"

	"github.com/chazu/drafter/pkg/geom"
)

const (
	// CornerGuard is the minimum distance between the center and a
	// dragged corner; closer drags are ignored to avoid collapse.
	CornerGuard = 5.0
	// RotationHandleOffset is how far the rotation handle sits beyond
	// corner A along the A diagonal.
	RotationHandleOffset = 20.0
)

// IntRect is a rotatable rectangle stored as a center and two half
// diagonals. Corners are A = c+diaA, B = c+diaB, C = c-diaA, D = c-diaB.
//
// It owns six nodes, registered in this order: the four corners, a
// rotation handle R and a center handle M.
type IntRect struct {
	modelBase
	diaA, diaB geom.Vec2

	a, b, c, d *Node
	rot, mid   *Node
}

// NewIntRect builds an unrotated rectangle covering r.
func NewIntRect(r geom.Rect) *IntRect {
	center := r.Center()
	m := &IntRect{
		modelBase: newModelBase(center),
		diaA:      r.TopLeft().Sub(center),
		diaB:      r.TopRight().Sub(center),
	}
	m.a = NewNode(r.TopLeft())
	m.b = NewNode(r.TopRight())
	m.c = NewNode(r.BottomRight())
	m.d = NewNode(r.BottomLeft())
	m.rot = NewNode(m.rotationPoint())
	m.mid = NewNode(center)
	for _, n := range []*Node{m.a, m.b, m.c, m.d, m.rot, m.mid} {
		m.addNode(n)
	}

	m.a.OnMoved(func(_, to geom.Vec2) { m.dragCorner(to, m.c, true, 1) })
	m.b.OnMoved(func(_, to geom.Vec2) { m.dragCorner(to, m.d, false, 1) })
	m.c.OnMoved(func(_, to geom.Vec2) { m.dragCorner(to, m.a, true, -1) })
	m.d.OnMoved(func(_, to geom.Vec2) { m.dragCorner(to, m.b, false, -1) })
	m.rot.OnMoved(func(_, to geom.Vec2) { m.rotateTowards(to) })
	m.mid.OnMoved(func(_, to geom.Vec2) {
		m.position = to
		m.UpdateNodes()
	})
	m.OnMoved(func(from, to geom.Vec2) {
		m.translate(from, to)
		m.UpdateNodes()
	})
	return m
}

// Corner handles in A, B, C, D order.
func (m *IntRect) Corners() [4]*Node { return [4]*Node{m.a, m.b, m.c, m.d} }

func (m *IntRect) RotationHandle() *Node { return m.rot }
func (m *IntRect) CenterHandle() *Node   { return m.mid }

func (m *IntRect) Center() geom.Vec2  { return m.position }
func (m *IntRect) DiaVecA() geom.Vec2 { return m.diaA }
func (m *IntRect) DiaVecB() geom.Vec2 { return m.diaB }

// Width is the length of side AB.
func (m *IntRect) Width() float64 {
	return geom.Dist(m.diaA, m.diaB)
}

// Height is the length of side AD.
func (m *IntRect) Height() float64 {
	return geom.Dist(m.diaA, m.diaB.Neg())
}

// AngleZ is the angle in degrees of the AB side.
func (m *IntRect) AngleZ() float64 {
	x := geom.Unit(m.diaB.Sub(m.diaA))
	return math.Atan2(x.Y, x.X) * 180 / math.Pi
}

// dragCorner recomputes the rectangle so that the dragged corner lands on
// to while the opposite corner stays put. setA tells which half diagonal
// the dragged corner lies on and sign whether it is the positive or
// negative end of it. The other diagonal is the reflection of the first
// across the minor axis, which keeps the rectangle's orientation.
func (m *IntRect) dragCorner(to geom.Vec2, opposite *Node, setA bool, sign float64) {
	if geom.Dist(m.position, to) < CornerGuard {
		return
	}
	axis := m.minorAxis()
	center := to.Add(opposite.Position()).MulScalar(0.5)
	m.position = center

	d := to.Sub(center).MulScalar(sign)
	reflected := geom.Project(d, axis).MulScalar(2).Sub(d)
	if setA {
		m.diaA, m.diaB = d, reflected
	} else {
		m.diaB, m.diaA = d, reflected
	}
	m.UpdateNodes()
}

// minorAxis is the unit normal of side AB, or the direction of the
// diagonals' sum when AB is degenerate.
func (m *IntRect) minorAxis() geom.Vec2 {
	ab := m.diaB.Sub(m.diaA)
	if ab.Length() > 1 {
		return geom.Unit(geom.V(ab.Y, -ab.X))
	}
	return geom.Unit(m.diaB.Add(m.diaA).MulScalar(0.5))
}

// rotateTowards rotates both diagonals so that the A diagonal points at to.
func (m *IntRect) rotateTowards(to geom.Vec2) {
	dev := geom.Unit(to.Sub(m.position))
	s := dev.Cross(geom.Unit(m.diaA))
	s = math.Max(-1, math.Min(1, s))
	angle := math.Asin(s) * 180 / math.Pi
	m.diaA = geom.Rotate(m.diaA, -angle)
	m.diaB = geom.Rotate(m.diaB, -angle)
	m.UpdateNodes()
}

func (m *IntRect) rotationPoint() geom.Vec2 {
	return m.position.Add(m.diaA).Add(geom.Unit(m.diaA).MulScalar(RotationHandleOffset))
}

// UpdateNodes places every handle from the center and diagonals and
// notifies change observers.
func (m *IntRect) UpdateNodes() {
	c := m.position
	m.a.SetPosition(c.Add(m.diaA))
	m.b.SetPosition(c.Add(m.diaB))
	m.c.SetPosition(c.Sub(m.diaA))
	m.d.SetPosition(c.Sub(m.diaB))
	m.rot.SetPosition(m.rotationPoint())
	m.mid.SetPosition(c)
	m.emitChanged()
}

// IsPointOn reports whether p lies inside the rectangle.
func (m *IntRect) IsPointOn(p geom.Vec2) bool {
	rel := p.Sub(m.position)
	midY := geom.Unit(m.diaA.Add(m.diaB).MulScalar(0.5))
	midX := geom.Unit(m.diaB.Sub(m.diaA).MulScalar(0.5))
	return math.Abs(rel.Dot(midY)) <= m.Height()/2 &&
		math.Abs(rel.Dot(midX)) <= m.Width()/2
}
