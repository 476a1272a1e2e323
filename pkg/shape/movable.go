// Package shape defines the interactive geometric model: draggable nodes
// and the composite models that own them and propagate movement between
// them.
//
// Every primitive follows the same movement protocol. A grab records the
// pointer position as the grab anchor; each expected position reported by
// the pointer fires the primitive's moved observers with the anchor and the
// new position; observers apply the delta and advance the anchor. All of it
// runs synchronously on the caller's goroutine.
package shape

import "github.com/chazu/drafter/pkg/geom"

// NoiseThreshold is the distance under which an expected position is
// treated as no movement at all.
const NoiseThreshold = 0.1

// MovedFunc observes a move from the grab anchor to a new pointer position.
type MovedFunc func(from, to geom.Vec2)

// Movable is the capability shared by nodes and models. It can only be
// implemented by types in this package.
type Movable interface {
	Position() geom.Vec2
	SetPosition(p geom.Vec2)
	GrabAnchor() geom.Vec2
	SetGrabAnchor(p geom.Vec2)

	ZOrder() float64
	SetZOrder(z float64)

	IsGrabbed() bool
	IsSelected() bool
	SetSelected(selected bool)

	// Parent is a non-owning back reference used only to propagate
	// selection from a handle to the shape that owns it.
	Parent() Movable
	SetParent(parent Movable)

	GrabOn(p geom.Vec2)
	SetExpectedPosition(p geom.Vec2)
	Released()
	OnMoved(fn MovedFunc)

	IsPointOn(p geom.Vec2) bool

	core() *base
}

// base carries the state common to every Movable.
type base struct {
	position geom.Vec2
	anchor   geom.Vec2
	zOrder   float64
	grabbed  bool
	selected bool
	parent   Movable
	moved    []MovedFunc
}

func newBase(p geom.Vec2) base {
	return base{position: p, selected: true}
}

func (b *base) core() *base { return b }

func (b *base) Position() geom.Vec2       { return b.position }
func (b *base) SetPosition(p geom.Vec2)   { b.position = p }
func (b *base) GrabAnchor() geom.Vec2     { return b.anchor }
func (b *base) SetGrabAnchor(p geom.Vec2) { b.anchor = p }
func (b *base) ZOrder() float64           { return b.zOrder }
func (b *base) SetZOrder(z float64)       { b.zOrder = z }
func (b *base) IsGrabbed() bool           { return b.grabbed }
func (b *base) IsSelected() bool          { return b.selected }
func (b *base) SetSelected(s bool)        { b.selected = s }
func (b *base) Parent() Movable           { return b.parent }
func (b *base) SetParent(p Movable)       { b.parent = p }

// GrabOn marks the primitive grabbed and selected, selects its parent and
// records p as the grab anchor.
func (b *base) GrabOn(p geom.Vec2) {
	b.grabbed = true
	b.selected = true
	if b.parent != nil {
		b.parent.SetSelected(true)
	}
	b.anchor = p
}

// SetExpectedPosition reports a new pointer position. Positions within
// NoiseThreshold of the current position are ignored.
func (b *base) SetExpectedPosition(p geom.Vec2) {
	if geom.Dist(b.position, p) < NoiseThreshold {
		return
	}
	from := b.anchor
	for _, fn := range b.moved {
		fn(from, p)
	}
}

func (b *base) Released() {
	b.grabbed = false
}

// OnMoved registers fn to run, in registration order, on every move.
func (b *base) OnMoved(fn MovedFunc) {
	b.moved = append(b.moved, fn)
}

// translate applies the delta of a move to the position and advances the
// grab anchor.
func (b *base) translate(from, to geom.Vec2) geom.Vec2 {
	delta := to.Sub(from)
	b.position = b.position.Add(delta)
	b.anchor = to
	return delta
}
