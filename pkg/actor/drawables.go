package actor

import (
	"cmp"
	"slices"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/samber/lo"
)

// Drawables keeps representations sorted ascending by zOrder and handles
// selection and front/back ordering. Every mutation re-bases the zOrders
// to 0..n-1 and fires the updated observers.
type Drawables struct {
	items    []rep.Representation
	movables *Movables
	updated  []func()
}

// NewDrawables returns an empty collection that forwards every added model
// to movables.
func NewDrawables(movables *Movables) *Drawables {
	return &Drawables{movables: movables}
}

// OnUpdated registers fn to run whenever a redraw is needed.
func (d *Drawables) OnUpdated(fn func()) {
	d.updated = append(d.updated, fn)
}

func (d *Drawables) fireUpdated() {
	for _, fn := range d.updated {
		fn()
	}
}

// Add places r on top of every existing representation and registers its
// model with the grab dispatcher. Adding r again does nothing.
func (d *Drawables) Add(r rep.Representation) {
	if lo.Contains(d.items, r) {
		return
	}
	m := r.Model()
	m.OnChanged(d.fireUpdated)
	m.SetParentToNodes(m)
	m.SetZOrder(d.maxZ() + 1)
	d.items = append(d.items, r)
	d.refresh()
	d.movables.Add(m)
	d.fireUpdated()
}

// DeleteSelected removes the first selected representation and its model
// and nodes. It returns the removed representation, or nil.
func (d *Drawables) DeleteSelected() rep.Representation {
	r := d.Selected()
	if r == nil {
		return nil
	}
	d.movables.RemoveNodeModel(r.Model())
	d.items = lo.Without(d.items, r)
	d.refresh()
	d.fireUpdated()
	return r
}

func (d *Drawables) BringSelectedToFront() {
	r := d.Selected()
	if r == nil {
		return
	}
	top := d.maxZ()
	if r.Model().ZOrder() >= top {
		return
	}
	r.Model().SetZOrder(top + 1)
	d.refresh()
	d.fireUpdated()
}

func (d *Drawables) SendSelectedToBack() {
	r := d.Selected()
	if r == nil {
		return
	}
	bottom := d.minZ()
	if r.Model().ZOrder() <= bottom {
		return
	}
	r.Model().SetZOrder(bottom - 1)
	d.refresh()
	d.fireUpdated()
}

func (d *Drawables) UnSelectAll() {
	for _, r := range d.items {
		r.Model().SetSelected(false)
	}
	d.fireUpdated()
}

// SelectOn selects the first representation, in draw order, whose model is
// under p.
func (d *Drawables) SelectOn(p geom.Vec2) rep.Representation {
	r, ok := lo.Find(d.items, func(r rep.Representation) bool { return r.Model().IsPointOn(p) })
	if !ok {
		return nil
	}
	r.Model().SetSelected(true)
	d.fireUpdated()
	return r
}

// Selected returns the first selected representation in draw order, or nil.
func (d *Drawables) Selected() rep.Representation {
	r, _ := lo.Find(d.items, func(r rep.Representation) bool { return r.Model().IsSelected() })
	return r
}

func (d *Drawables) AnySelected() bool {
	return d.Selected() != nil
}

// Draw draws every representation in ascending zOrder.
func (d *Drawables) Draw(c rep.Canvas) {
	for _, r := range d.items {
		r.Draw(c)
	}
}

func (d *Drawables) Len() int { return len(d.items) }

// Items returns the representations in draw order.
func (d *Drawables) Items() []rep.Representation {
	return slices.Clone(d.items)
}

// Movables returns the grab dispatcher models are forwarded to.
func (d *Drawables) Movables() *Movables { return d.movables }

// refresh deduplicates, sorts ascending by zOrder (stable, so ties keep
// insertion order) and renumbers the zOrders 0..n-1.
func (d *Drawables) refresh() {
	d.items = lo.Uniq(d.items)
	slices.SortStableFunc(d.items, func(a, b rep.Representation) int {
		return cmp.Compare(a.Model().ZOrder(), b.Model().ZOrder())
	})
	for i, r := range d.items {
		r.Model().SetZOrder(float64(i))
	}
}

func (d *Drawables) maxZ() float64 {
	if len(d.items) == 0 {
		return 0
	}
	return lo.MaxBy(d.items, func(a, b rep.Representation) bool {
		return a.Model().ZOrder() > b.Model().ZOrder()
	}).Model().ZOrder()
}

func (d *Drawables) minZ() float64 {
	if len(d.items) == 0 {
		return 0
	}
	return lo.MinBy(d.items, func(a, b rep.Representation) bool {
		return a.Model().ZOrder() < b.Model().ZOrder()
	}).Model().ZOrder()
}
