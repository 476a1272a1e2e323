package actor

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/chazu/drafter/pkg/shape"
	"github.com/davecgh/go-spew/spew"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newActors() (*Drawables, *Movables) {
	ms := NewMovables()
	return NewDrawables(ms), ms
}

func rectAt(x, y, w, h float64) *rep.RectRep {
	return rep.NewRectRep(shape.NewIntRect(geom.R(x, y, w, h)))
}

// zOrders returns the zOrders of the drawables in draw order.
func zOrders(d *Drawables) []float64 {
	var zs []float64
	for _, r := range d.Items() {
		zs = append(zs, r.Model().ZOrder())
	}
	return zs
}

func assertContiguous(t *testing.T, d *Drawables) {
	t.Helper()
	for i, z := range zOrders(d) {
		if z != float64(i) {
			t.Fatalf("zOrders not contiguous: %v", zOrders(d))
		}
	}
}

func assertValid(t *testing.T, d *Drawables) {
	t.Helper()
	for _, e := range Validate(d) {
		if e.Severity == SeverityError {
			t.Errorf("validation: %v\n%s", e, spew.Sdump(zOrders(d)))
		}
	}
}

func selectOnly(d *Drawables, p geom.Vec2) {
	d.UnSelectAll()
	d.SelectOn(p)
}

// ---------------------------------------------------------------------------
// Drawables
// ---------------------------------------------------------------------------

func TestAddAssignsCreationOrder(t *testing.T) {
	d, ms := newActors()
	a, b, c := rectAt(0, 0, 20, 20), rectAt(100, 0, 20, 20), rectAt(200, 0, 20, 20)
	d.Add(a)
	d.Add(b)
	d.Add(c)

	items := d.Items()
	if items[0] != a || items[1] != b || items[2] != c {
		t.Fatalf("draw order wrong: %s", spew.Sdump(zOrders(d)))
	}
	assertContiguous(t, d)
	if ms.Len() != 3*7 {
		t.Errorf("movables = %d, want 21", ms.Len())
	}
	assertValid(t, d)
}

func TestAddTwiceKeepsOneEntry(t *testing.T) {
	d, ms := newActors()
	a := rectAt(0, 0, 20, 20)
	d.Add(a)
	d.Add(a)
	if d.Len() != 1 || ms.Len() != 7 {
		t.Errorf("drawables=%d movables=%d", d.Len(), ms.Len())
	}
	assertContiguous(t, d)

	updates := 0
	d.OnUpdated(func() { updates++ })
	a.Model().(*shape.IntRect).UpdateNodes()
	if updates != 1 {
		t.Errorf("one model change fired %d updates, want 1", updates)
	}
}

func TestFrontBackScenario(t *testing.T) {
	d, _ := newActors()
	a, b, c := rectAt(0, 0, 20, 20), rectAt(100, 0, 20, 20), rectAt(200, 0, 20, 20)
	d.Add(a)
	d.Add(b)
	d.Add(c)

	updates := 0
	d.OnUpdated(func() { updates++ })

	selectOnly(d, geom.V(10, 10))
	if d.Selected() != a {
		t.Fatal("A not selected")
	}
	updates = 0
	d.SendSelectedToBack()
	if updates != 0 || a.Model().ZOrder() != 0 {
		t.Errorf("send-to-back of back item changed state: z=%v updates=%d", a.Model().ZOrder(), updates)
	}

	selectOnly(d, geom.V(210, 10))
	updates = 0
	d.BringSelectedToFront()
	if updates != 0 || c.Model().ZOrder() != 2 {
		t.Errorf("bring-to-front of front item changed state: z=%v updates=%d", c.Model().ZOrder(), updates)
	}

	selectOnly(d, geom.V(110, 10))
	d.BringSelectedToFront()
	items := d.Items()
	if items[0] != a || items[1] != c || items[2] != b {
		t.Fatalf("order after bring-to-front = %s", spew.Sdump(zOrders(d)))
	}
	assertContiguous(t, d)
	assertValid(t, d)
}

func TestSendToBack(t *testing.T) {
	d, _ := newActors()
	a, b := rectAt(0, 0, 20, 20), rectAt(100, 0, 20, 20)
	d.Add(a)
	d.Add(b)

	selectOnly(d, geom.V(110, 10))
	d.SendSelectedToBack()
	items := d.Items()
	if items[0] != b || items[1] != a {
		t.Errorf("order = %v", zOrders(d))
	}
	assertValid(t, d)
}

func TestRepeatedReorderNoDrift(t *testing.T) {
	d, _ := newActors()
	for i := 0; i < 4; i++ {
		d.Add(rectAt(float64(i)*100, 0, 20, 20))
	}
	for i := 0; i < 50; i++ {
		selectOnly(d, geom.V(float64(i%4)*100+10, 10))
		if i%2 == 0 {
			d.BringSelectedToFront()
		} else {
			d.SendSelectedToBack()
		}
		assertContiguous(t, d)
	}
	assertValid(t, d)
}

func TestEmptySelectionIsNoop(t *testing.T) {
	d, ms := newActors()
	d.Add(rectAt(0, 0, 20, 20))
	d.UnSelectAll()

	before := zOrders(d)
	d.BringSelectedToFront()
	d.SendSelectedToBack()
	if r := d.DeleteSelected(); r != nil {
		t.Error("deleted with nothing selected")
	}
	if d.Len() != 1 || ms.Len() != 7 || zOrders(d)[0] != before[0] {
		t.Error("state changed with empty selection")
	}
	if d.SelectOn(geom.V(500, 500)) != nil {
		t.Error("selected on empty space")
	}
}

func TestCascadingDelete(t *testing.T) {
	d, ms := newActors()
	a := rectAt(0, 0, 20, 20)
	b := rep.NewVectorRep(shape.NewIntVector(shape.NewNode(geom.V(100, 0)), shape.NewNode(geom.V(200, 0)), shape.Free))
	d.Add(a)
	d.Add(b)

	before := ms.Len()
	k := len(a.Model().Nodes())
	selectOnly(d, geom.V(10, 10))
	if got := d.DeleteSelected(); got != a {
		t.Fatal("wrong representation deleted")
	}
	if ms.Len() != before-(k+1) {
		t.Errorf("movables %d -> %d, want a drop of %d", before, ms.Len(), k+1)
	}
	if d.Len() != 1 || d.Items()[0] != b {
		t.Error("representation not removed")
	}
	for _, n := range a.Model().Nodes() {
		if ms.contains(n) {
			t.Error("orphan node left grabbable")
		}
	}
	assertContiguous(t, d)
	assertValid(t, d)
}

func TestSelectOnFirstMatch(t *testing.T) {
	d, _ := newActors()
	a, b := rectAt(0, 0, 100, 100), rectAt(50, 50, 100, 100)
	d.Add(a)
	d.Add(b)
	d.UnSelectAll()

	if got := d.SelectOn(geom.V(75, 75)); got != a {
		t.Error("SelectOn did not pick the first in draw order")
	}
	if b.Model().IsSelected() {
		t.Error("more than one shape selected")
	}
}

func TestUpdatedOnModelChange(t *testing.T) {
	d, ms := newActors()
	d.Add(rectAt(0, 0, 100, 100))
	updates := 0
	d.OnUpdated(func() { updates++ })

	ms.GrabOn(geom.V(50, 30))
	ms.SetExpectedToGrabbed(geom.V(60, 30))
	if updates == 0 {
		t.Error("model change did not fire update")
	}
}

func assertLifted(t *testing.T, m shape.Model) {
	t.Helper()
	for i, n := range m.Nodes() {
		if want := m.ZOrder() + shape.HandleLift; math.Abs(n.ZOrder()-want) > 1e-9 {
			t.Errorf("node %d zOrder = %g, want %g", i, n.ZOrder(), want)
		}
	}
}

func TestCloseRegisteredPath(t *testing.T) {
	d, ms := newActors()
	d.Add(rectAt(0, 0, 20, 20))
	p := shape.NewIntPath()
	first := p.AddPoint(geom.V(100, 0))
	p.AddPoint(geom.V(200, 0))
	p.AddPoint(geom.V(200, 100))
	d.Add(rep.NewPathRep(p))

	p.Close()
	assertLifted(t, p)
	assertValid(t, d)
	if got := ms.GrabOn(geom.V(100, 0)); got != first {
		t.Errorf("GrabOn(first node) = %T, want the node", got)
	}
}

func TestRepOverRegisteredModel(t *testing.T) {
	d, _ := newActors()
	d.Add(rectAt(0, 0, 20, 20))
	b := rectAt(100, 0, 20, 20)
	d.Add(b)

	m := b.Model().(*shape.IntRect)
	rep.NewRectRep(m)
	rep.NewEllipseRep(m)
	assertLifted(t, m)
	assertValid(t, d)
}

// ---------------------------------------------------------------------------
// Movables
// ---------------------------------------------------------------------------

func TestGrabPriority(t *testing.T) {
	d, ms := newActors()
	a, b := rectAt(0, 0, 100, 100), rectAt(50, 50, 100, 100)
	d.Add(a)
	d.Add(b)

	tests := []struct {
		name string
		p    geom.Vec2
		want shape.Movable
	}{
		{"upper body", geom.V(75, 75), b.Model()},
		{"lower body", geom.V(25, 25), a.Model()},
		{"handle over body", geom.V(2, 2), a.Model().Nodes()[0]},
		{"nothing", geom.V(400, 400), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ms.GrabOn(tt.p)
			if got != tt.want {
				t.Errorf("GrabOn(%v) = %T, want %T", tt.p, got, tt.want)
			}
			ms.ReleaseAll()
		})
	}
}

func TestExclusiveGrab(t *testing.T) {
	d, ms := newActors()
	d.Add(rectAt(0, 0, 100, 100))
	d.Add(rectAt(200, 0, 100, 100))

	ms.GrabOn(geom.V(50, 30))
	ms.GrabOn(geom.V(250, 30))

	grabbed := 0
	for _, mv := range ms.Items() {
		if mv.IsGrabbed() {
			grabbed++
		}
	}
	if grabbed != 1 {
		t.Errorf("%d primitives grabbed", grabbed)
	}
	assertValid(t, d)

	ms.ReleaseAll()
	if ms.Grabbed() != nil {
		t.Error("still grabbed after ReleaseAll")
	}
}

func TestDragThroughDispatcher(t *testing.T) {
	d, ms := newActors()
	a := rectAt(0, 0, 100, 100)
	d.Add(a)

	ms.GrabOn(geom.V(50, 30))
	ms.SetExpectedToGrabbed(geom.V(60, 40))
	ms.SetExpectedToGrabbed(geom.V(70, 50))
	ms.ReleaseAll()

	if got := a.Model().Position(); got != geom.V(70, 70) {
		t.Errorf("center = %v, want (70, 70)", got)
	}
	ms.SetExpectedToGrabbed(geom.V(0, 0))
	if got := a.Model().Position(); got != geom.V(70, 70) {
		t.Errorf("move after release changed center to %v", got)
	}
}

func TestGrabSelectsOwner(t *testing.T) {
	d, ms := newActors()
	a := rectAt(0, 0, 100, 100)
	d.Add(a)
	d.UnSelectAll()

	ms.GrabOn(geom.V(100, 100))
	if !a.Model().IsSelected() {
		t.Error("grabbing a corner did not select the rectangle")
	}
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidateFindsOrphans(t *testing.T) {
	d, ms := newActors()
	d.Add(rectAt(0, 0, 10, 10))
	ms.Add(shape.NewIntRect(geom.R(50, 50, 10, 10)))

	errs := Validate(d)
	found := false
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, "orphan") {
			found = true
		}
		if e.Severity == SeverityError {
			t.Errorf("unexpected error: %v", e)
		}
	}
	if !found {
		t.Errorf("no orphan warning in %v", errs)
	}
}

func TestValidateFindsBrokenOrder(t *testing.T) {
	d, _ := newActors()
	a := rectAt(0, 0, 10, 10)
	d.Add(a)
	a.Model().SetZOrder(5)

	errs := Validate(d)
	if len(errs) == 0 || !strings.Contains(errs[0].Error(), "zOrder 5") {
		t.Errorf("errs = %v", errs)
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if Severity(9).String() != "Severity(9)" {
		t.Errorf("got %q", Severity(9).String())
	}
}
