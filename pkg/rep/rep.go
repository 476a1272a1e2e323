// Package rep pairs every shape model with the code that draws it.
//
// A representation holds its model and the representations of the handles
// it exposes while the model is selected. Drawing goes through Canvas, an
// abstract capability implemented by the render backends; all coordinates
// handed to a Canvas are in scene space.
package rep

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/shape"
)

// Canvas is the drawing capability a representation draws onto. Angles are
// in degrees.
type Canvas interface {
	Line(a, b geom.Vec2)
	Rect(center geom.Vec2, w, h, angle float64)
	Ellipse(center geom.Vec2, rx, ry, angle float64)
	// Text lays s out inside the w by h box whose top-left corner is
	// origin, rotated by angle around origin.
	Text(origin geom.Vec2, w, h, angle float64, s string)
	Handle(center geom.Vec2, r float64)
}

// Representation is the closed set of drawable adapters: NodeRep,
// VectorRep, PathRep, RectRep, EllipseRep and TextRep.
type Representation interface {
	Model() shape.Model
	Draw(c Canvas)
	representation()
}

// -----------------------------------------------------------------------------
// Node
// -----------------------------------------------------------------------------

// NodeRep draws a single node as a handle circle.
type NodeRep struct {
	node *shape.IntNode
}

func NewNodeRep(n *shape.IntNode) *NodeRep { return &NodeRep{node: n} }

// handleRep wraps a node owned by another model in a passive IntNode.
func handleRep(n *shape.Node) *NodeRep {
	return NewNodeRep(shape.NewIntNode(n))
}

func (r *NodeRep) Model() shape.Model { return r.node }
func (r *NodeRep) representation()    {}

func (r *NodeRep) Draw(c Canvas) {
	c.Handle(r.node.Node().Position(), shape.HandleRadius)
}

// -----------------------------------------------------------------------------
// Vector
// -----------------------------------------------------------------------------

type VectorRep struct {
	vec  *shape.IntVector
	a, b *NodeRep
}

func NewVectorRep(v *shape.IntVector) *VectorRep {
	return &VectorRep{
		vec: v,
		a:   handleRep(v.A()),
		b:   handleRep(v.B()),
	}
}

func (r *VectorRep) Model() shape.Model { return r.vec }
func (r *VectorRep) representation()    {}

func (r *VectorRep) Draw(c Canvas) {
	c.Line(r.vec.A().Position(), r.vec.B().Position())
	if !r.vec.IsSelected() {
		return
	}
	r.a.Draw(c)
	r.b.Draw(c)
}

// -----------------------------------------------------------------------------
// Path
// -----------------------------------------------------------------------------

// PathRep draws every segment of a path and, while the path is selected,
// a handle on each of its nodes.
type PathRep struct {
	path *shape.IntPath
}

func NewPathRep(p *shape.IntPath) *PathRep { return &PathRep{path: p} }

func (r *PathRep) Model() shape.Model { return r.path }
func (r *PathRep) representation()    {}

func (r *PathRep) Draw(c Canvas) {
	for _, s := range r.path.Segments() {
		c.Line(s.A().Position(), s.B().Position())
	}
	if !r.path.IsSelected() {
		return
	}
	for _, n := range r.path.Nodes() {
		c.Handle(n.Position(), shape.HandleRadius)
	}
}

// -----------------------------------------------------------------------------
// Rect, Ellipse, Text
// -----------------------------------------------------------------------------

type RectRep struct {
	rect    *shape.IntRect
	handles []*NodeRep
}

func NewRectRep(m *shape.IntRect) *RectRep {
	r := &RectRep{rect: m}
	r.handles = append(r.handles, handleRep(m.RotationHandle()), handleRep(m.CenterHandle()))
	for _, n := range m.Corners() {
		r.handles = append(r.handles, handleRep(n))
	}
	return r
}

func (r *RectRep) Model() shape.Model { return r.rect }
func (r *RectRep) representation()    {}

func (r *RectRep) Draw(c Canvas) {
	c.Rect(r.rect.Center(), r.rect.Width(), r.rect.Height(), r.rect.AngleZ())
	r.drawHandles(c)
}

func (r *RectRep) drawHandles(c Canvas) {
	if !r.rect.IsSelected() {
		return
	}
	for _, h := range r.handles {
		h.Draw(c)
	}
}

// EllipseRep draws the ellipse inscribed in a rectangle model, with the
// rectangle's outline and handles while selected.
type EllipseRep struct {
	rect  *shape.IntRect
	frame *RectRep
}

func NewEllipseRep(m *shape.IntRect) *EllipseRep {
	return &EllipseRep{rect: m, frame: NewRectRep(m)}
}

func (r *EllipseRep) Model() shape.Model { return r.rect }
func (r *EllipseRep) representation()    {}

func (r *EllipseRep) Draw(c Canvas) {
	c.Ellipse(r.rect.Center(), r.rect.Width()/2, r.rect.Height()/2, r.rect.AngleZ())
	if r.rect.IsSelected() {
		r.frame.Draw(c)
	}
}

// TextRep draws a text string laid out in a rectangle model.
type TextRep struct {
	rect  *shape.IntRect
	frame *RectRep
	text  string
}

func NewTextRep(text string, m *shape.IntRect) *TextRep {
	return &TextRep{rect: m, frame: NewRectRep(m), text: text}
}

func (r *TextRep) Model() shape.Model { return r.rect }
func (r *TextRep) representation()    {}

func (r *TextRep) Text() string        { return r.text }
func (r *TextRep) SetText(text string) { r.text = text }

func (r *TextRep) Draw(c Canvas) {
	c.Text(r.rect.Corners()[0].Position(), r.rect.Width(), r.rect.Height(), r.rect.AngleZ(), r.text)
	if r.rect.IsSelected() {
		r.frame.Draw(c)
	}
}
