package rep

import (
	"fmt"
	"math"
	"testing"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/shape"
)

func pt(v geom.Vec2) string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// recorder is a Canvas that records one line per call.
type recorder struct {
	ops []string
}

func (r *recorder) Line(a, b geom.Vec2) {
	r.ops = append(r.ops, fmt.Sprintf("line %s %s", pt(a), pt(b)))
}

func (r *recorder) Rect(c geom.Vec2, w, h, angle float64) {
	r.ops = append(r.ops, fmt.Sprintf("rect %s %.0fx%.0f %.0f", pt(c), w, h, angle))
}

func (r *recorder) Ellipse(c geom.Vec2, rx, ry, angle float64) {
	r.ops = append(r.ops, fmt.Sprintf("ellipse %s %.0fx%.0f %.0f", pt(c), rx, ry, angle))
}

func (r *recorder) Text(o geom.Vec2, w, h, angle float64, s string) {
	r.ops = append(r.ops, fmt.Sprintf("text %s %.0fx%.0f %q", pt(o), w, h, s))
}

func (r *recorder) Handle(c geom.Vec2, radius float64) {
	r.ops = append(r.ops, fmt.Sprintf("handle %s", pt(c)))
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestNodeRep(t *testing.T) {
	m := shape.NewIntNode(shape.NewNode(geom.V(3, 4)))
	var c recorder
	NewNodeRep(m).Draw(&c)
	if len(c.ops) != 1 || c.ops[0] != "handle (3.00, 4.00)" {
		t.Errorf("ops = %v", c.ops)
	}
}

func TestHandlesOnlyWhenSelected(t *testing.T) {
	rect := shape.NewIntRect(geom.R(0, 0, 10, 10))
	vec := shape.NewIntVector(shape.NewNode(geom.V(0, 0)), shape.NewNode(geom.V(5, 0)), shape.Free)
	path := shape.NewIntPath()
	path.AddPoint(geom.V(0, 0))
	path.AddPoint(geom.V(5, 5))
	path.AddPoint(geom.V(10, 0))

	tests := []struct {
		name    string
		rep     Representation
		handles int
	}{
		{"vector", NewVectorRep(vec), 2},
		{"path", NewPathRep(path), 3},
		{"rect", NewRectRep(rect), 6},
		{"ellipse", NewEllipseRep(rect), 6},
		{"text", NewTextRep("hi", rect), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.rep.Model()

			m.SetSelected(true)
			var sel recorder
			tt.rep.Draw(&sel)
			if got := sel.count("handle"); got != tt.handles {
				t.Errorf("selected: %d handles, want %d", got, tt.handles)
			}

			m.SetSelected(false)
			var unsel recorder
			tt.rep.Draw(&unsel)
			if got := unsel.count("handle"); got != 0 {
				t.Errorf("unselected: %d handles, want 0", got)
			}
		})
	}
}

func TestRectRepGeometry(t *testing.T) {
	m := shape.NewIntRect(geom.R(0, 0, 100, 50))
	m.SetSelected(false)
	var c recorder
	NewRectRep(m).Draw(&c)
	if len(c.ops) != 1 || c.ops[0] != "rect (50.00, 25.00) 100x50 0" {
		t.Errorf("ops = %v", c.ops)
	}

	var e recorder
	NewEllipseRep(m).Draw(&e)
	if len(e.ops) != 1 || e.ops[0] != "ellipse (50.00, 25.00) 50x25 0" {
		t.Errorf("ops = %v", e.ops)
	}
}

func TestEllipseDrawsFrameWhenSelected(t *testing.T) {
	m := shape.NewIntRect(geom.R(0, 0, 20, 20))
	var c recorder
	NewEllipseRep(m).Draw(&c)
	if c.count("ellipse") != 1 || c.count("rect") != 1 {
		t.Errorf("ops = %v", c.ops)
	}
}

func TestTextRep(t *testing.T) {
	m := shape.NewIntRect(geom.R(10, 20, 160, 80))
	m.SetSelected(false)
	r := NewTextRep("hello", m)
	r.SetText("world")
	if r.Text() != "world" {
		t.Errorf("Text = %q", r.Text())
	}
	var c recorder
	r.Draw(&c)
	if len(c.ops) != 1 || c.ops[0] != `text (10.00, 20.00) 160x80 "world"` {
		t.Errorf("ops = %v", c.ops)
	}
}

func TestPathRepFollowsNodes(t *testing.T) {
	p := shape.NewIntPath()
	p.AddPoint(geom.V(0, 0))
	b := p.AddPoint(geom.V(10, 0))
	p.SetSelected(false)

	b.GrabOn(geom.V(10, 0))
	b.SetExpectedPosition(geom.V(10, 10))
	b.Released()

	var c recorder
	NewPathRep(p).Draw(&c)
	if len(c.ops) != 1 || c.ops[0] != "line (0.00, 0.00) (10.00, 10.00)" {
		t.Errorf("ops = %v", c.ops)
	}
}

func TestRotatedRectAngle(t *testing.T) {
	m := shape.NewIntRect(geom.R(-50, -50, 100, 100))
	h := m.RotationHandle()
	h.GrabOn(h.Position())
	h.SetExpectedPosition(geom.V(0, -100))
	h.Released()
	m.SetSelected(false)

	var c recorder
	NewRectRep(m).Draw(&c)
	if len(c.ops) != 1 {
		t.Fatalf("ops = %v", c.ops)
	}
	if math.Abs(math.Abs(m.AngleZ())-45) > 1e-6 {
		t.Errorf("AngleZ = %f", m.AngleZ())
	}
}
