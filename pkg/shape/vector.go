package shape

import (
	"fmt"
	"math"

	"github.com/chazu/drafter/pkg/geom"
)

// LineTolerance is the distance from a segment within which a point is on
// it.
const LineTolerance = 3.0

// Mode selects how an IntVector reacts to an endpoint being dragged.
type Mode int

const (
	// Free moves the dragged endpoint by the pointer delta.
	Free Mode = iota
	// FixedDirection keeps the dragged endpoint on the construction-time
	// axis through the other endpoint.
	FixedDirection
	// ParallelDirection keeps the construction-time direction by shifting
	// the other endpoint perpendicular to it.
	ParallelDirection
)

func (m Mode) String() string {
	switch m {
	case Free:
		return "free"
	case FixedDirection:
		return "fixed"
	case ParallelDirection:
		return "parallel"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "free":
		return Free, nil
	case "fixed":
		return FixedDirection, nil
	case "parallel":
		return ParallelDirection, nil
	}
	return 0, fmt.Errorf("unknown vector mode %q", s)
}

// IntVector is a two-endpoint segment. Its position is kept at the
// midpoint of the endpoints.
type IntVector struct {
	modelBase
	a, b *Node
	mode Mode
	axis geom.Vec2
}

// NewIntVector builds a segment between a and b whose endpoints react to
// drags according to mode. The direction used by the constrained modes is
// captured here and never changes.
func NewIntVector(a, b *Node, mode Mode) *IntVector {
	v := newSegment(a, b)
	v.liftNodes()
	v.mode = mode
	if mode != Free {
		v.axis = geom.Unit(b.Position().Sub(a.Position()))
	}

	switch mode {
	case FixedDirection:
		a.OnMoved(v.fixedMove(b, a))
		b.OnMoved(v.fixedMove(a, b))
	case ParallelDirection:
		a.OnMoved(v.parallelMove(b, a))
		b.OnMoved(v.parallelMove(a, b))
	default:
		a.OnMoved(v.freeMove(a))
		b.OnMoved(v.freeMove(b))
	}
	return v
}

// newSegment builds a segment that only handles body moves. Endpoint
// movement and zOrder are left to the owner of the nodes.
func newSegment(a, b *Node) *IntVector {
	v := &IntVector{
		modelBase: newModelBase(geom.Mid(a.Position(), b.Position())),
		a:         a,
		b:         b,
	}
	v.attachNode(a)
	v.attachNode(b)
	v.OnMoved(v.bodyMove)
	return v
}

func (v *IntVector) A() *Node   { return v.a }
func (v *IntVector) B() *Node   { return v.b }
func (v *IntVector) Mode() Mode { return v.mode }

// Direction is the unit axis captured at construction. It is zero in Free
// mode.
func (v *IntVector) Direction() geom.Vec2 { return v.axis }

func (v *IntVector) Length() float64 {
	return geom.Dist(v.a.Position(), v.b.Position())
}

func (v *IntVector) bodyMove(from, to geom.Vec2) {
	v.translate(from, to)
	translateNode(v.a, from, to)
	translateNode(v.b, from, to)
	v.emitChanged()
}

func (v *IntVector) freeMove(n *Node) MovedFunc {
	return func(from, to geom.Vec2) {
		translateNode(n, from, to)
		v.endpointsMoved()
	}
}

// fixedMove places moving at the projection of the pointer onto the axis
// through fixed.
func (v *IntVector) fixedMove(fixed, moving *Node) MovedFunc {
	return func(from, to geom.Vec2) {
		if v.axis == (geom.Vec2{}) {
			v.freeMove(moving)(from, to)
			return
		}
		rel := to.Sub(fixed.Position())
		moving.SetPosition(fixed.Position().Add(geom.Project(rel, v.axis)))
		moving.SetGrabAnchor(to)
		v.endpointsMoved()
	}
}

// parallelMove puts moving at the pointer and shifts other by the part of
// the motion perpendicular to the axis.
func (v *IntVector) parallelMove(other, moving *Node) MovedFunc {
	return func(from, to geom.Vec2) {
		if v.axis == (geom.Vec2{}) {
			v.freeMove(moving)(from, to)
			return
		}
		rel := to.Sub(other.Position())
		perp := rel.Sub(geom.Project(rel, v.axis))
		other.SetPosition(other.Position().Add(perp))
		moving.SetPosition(to)
		moving.SetGrabAnchor(to)
		v.endpointsMoved()
	}
}

func (v *IntVector) endpointsMoved() {
	v.syncMid()
	v.emitChanged()
}

func (v *IntVector) syncMid() {
	v.position = geom.Mid(v.a.Position(), v.b.Position())
}

func (v *IntVector) IsPointOn(p geom.Vec2) bool {
	return segmentDist(p, v.a.Position(), v.b.Position()) < LineTolerance
}

// segmentDist is the distance from p to the segment ab.
func segmentDist(p, a, b geom.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return geom.Dist(p, a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return geom.Dist(p, a.Add(ab.MulScalar(t)))
}
