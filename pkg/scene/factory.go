package scene

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/chazu/drafter/pkg/shape"
)

// TextBoxSize is the size of a newly created text box.
var TextBoxSize = geom.V(160, 80)

// CreateShape builds a shape of kind at p. Rectangles, ellipses and lines
// come back with a handle already grabbed so the drag that follows sizes
// them. Kinds without a factory yield nil.
func CreateShape(kind Kind, p geom.Vec2) rep.Representation {
	switch kind {
	case KindRect:
		m := shape.NewIntRect(geom.R(p.X, p.Y, 1, 1))
		m.Corners()[2].GrabOn(p)
		return rep.NewRectRep(m)
	case KindEllipse:
		m := shape.NewIntRect(geom.R(p.X, p.Y, 1, 1))
		m.Corners()[2].GrabOn(p)
		return rep.NewEllipseRep(m)
	case KindLine:
		v := shape.NewIntVector(shape.NewNode(p), shape.NewNode(p), shape.Free)
		v.B().GrabOn(p)
		return rep.NewVectorRep(v)
	case KindNode:
		m := shape.NewIntNode(shape.NewNode(p))
		m.SetParentToNodes(m)
		m.Free()
		return rep.NewNodeRep(m)
	case KindText:
		return NewText(p, "")
	}
	return nil
}

// NewText builds a text box with its top-left corner at p.
func NewText(p geom.Vec2, text string) *rep.TextRep {
	return rep.NewTextRep(text, shape.NewIntRect(geom.Rect{Min: p, Size: TextBoxSize}))
}

// KindOf reports the shape kind a representation draws.
func KindOf(r rep.Representation) Kind {
	switch r.(type) {
	case *rep.NodeRep:
		return KindNode
	case *rep.VectorRep:
		return KindLine
	case *rep.PathRep:
		return KindPath
	case *rep.RectRep:
		return KindRect
	case *rep.EllipseRep:
		return KindEllipse
	case *rep.TextRep:
		return KindText
	}
	return KindNone
}
