// Package actor holds the two collections that sit between the host's input
// events and the shape models: Drawables orders representations for drawing
// and selection, Movables dispatches grabs and drags to the primitive under
// the pointer.
package actor

import (
	"cmp"
	"slices"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/shape"
	"github.com/samber/lo"
)

// Movables is the grab dispatcher. It holds every registered model together
// with every node the model owns.
type Movables struct {
	items []shape.Movable
}

func NewMovables() *Movables {
	return &Movables{}
}

// Add registers m and its nodes. Primitives already present are skipped.
func (ms *Movables) Add(m shape.Model) {
	ms.add(m)
	for _, n := range m.Nodes() {
		ms.add(n)
	}
}

func (ms *Movables) add(mv shape.Movable) {
	if !lo.Contains(ms.items, mv) {
		ms.items = append(ms.items, mv)
	}
}

// refresh orders the primitives by descending zOrder. Equal zOrders keep
// registration order.
func (ms *Movables) refresh() {
	slices.SortStableFunc(ms.items, func(a, b shape.Movable) int {
		return cmp.Compare(b.ZOrder(), a.ZOrder())
	})
}

// GrabOn grabs the topmost primitive under p and returns it, or nil when
// nothing is hit. Any previous grab is released first so at most one
// primitive is ever grabbed.
func (ms *Movables) GrabOn(p geom.Vec2) shape.Movable {
	ms.ReleaseAll()
	ms.refresh()
	hit, ok := lo.Find(ms.items, func(mv shape.Movable) bool { return mv.IsPointOn(p) })
	if !ok {
		return nil
	}
	hit.GrabOn(p)
	return hit
}

// Grabbed returns the grabbed primitive, or nil.
func (ms *Movables) Grabbed() shape.Movable {
	mv, _ := lo.Find(ms.items, func(mv shape.Movable) bool { return mv.IsGrabbed() })
	return mv
}

// SetExpectedToGrabbed forwards a pointer position to the grabbed
// primitive, if any.
func (ms *Movables) SetExpectedToGrabbed(p geom.Vec2) {
	if mv := ms.Grabbed(); mv != nil {
		mv.SetExpectedPosition(p)
	}
}

func (ms *Movables) ReleaseAll() {
	for _, mv := range ms.items {
		mv.Released()
	}
}

// RemoveNodeModel drops m and every node it owns in one pass.
func (ms *Movables) RemoveNodeModel(m shape.Model) {
	nodes := m.Nodes()
	ms.items = lo.Reject(ms.items, func(mv shape.Movable, _ int) bool {
		if mv == shape.Movable(m) {
			return true
		}
		n, ok := mv.(*shape.Node)
		return ok && lo.Contains(nodes, n)
	})
}

func (ms *Movables) Len() int { return len(ms.items) }

// Items returns the primitives in their current order.
func (ms *Movables) Items() []shape.Movable {
	return slices.Clone(ms.items)
}

func (ms *Movables) contains(mv shape.Movable) bool {
	return lo.Contains(ms.items, mv)
}
