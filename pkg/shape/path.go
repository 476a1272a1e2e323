package shape

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/samber/lo"
)

// IntPath is a polyline of nodes joined by segments, optionally closed.
// The path owns all node movement; its segments only describe geometry.
// The position of a path is the centroid of its nodes.
//
// Nodes added after the path has been handed to an actor are not known to
// that actor, so build the path first.
type IntPath struct {
	modelBase
	segments []*IntVector
	closed   bool
}

func NewIntPath() *IntPath {
	p := &IntPath{modelBase: newModelBase(geom.Vec2{})}
	p.OnMoved(p.bodyMove)
	return p
}

// AddPoint appends a new node at pt.
func (p *IntPath) AddPoint(pt geom.Vec2) *Node {
	n := NewNode(pt)
	p.AddNode(n)
	return n
}

// AddNode appends n, joining it to the previous last node. Adding a node
// the path already owns does nothing.
func (p *IntPath) AddNode(n *Node) {
	var last *Node
	if len(p.nodes) > 0 {
		last = p.nodes[len(p.nodes)-1]
	}
	if p.closed || !p.addNode(n) {
		return
	}
	n.OnMoved(func(from, to geom.Vec2) {
		translateNode(n, from, to)
		p.nodesMoved()
	})
	if last != nil {
		p.segments = append(p.segments, newSegment(last, n))
	}
	p.nodesMoved()
}

// Close joins the last node back to the first. Paths of fewer than three
// nodes cannot be closed.
func (p *IntPath) Close() {
	if p.closed || len(p.nodes) < 3 {
		return
	}
	p.closed = true
	p.segments = append(p.segments, newSegment(p.nodes[len(p.nodes)-1], p.nodes[0]))
	p.emitChanged()
}

func (p *IntPath) Closed() bool { return p.closed }

func (p *IntPath) Segments() []*IntVector {
	return append([]*IntVector(nil), p.segments...)
}

// Points returns the node positions in order.
func (p *IntPath) Points() []geom.Vec2 {
	return lo.Map(p.nodes, func(n *Node, _ int) geom.Vec2 { return n.Position() })
}

func (p *IntPath) bodyMove(from, to geom.Vec2) {
	p.translate(from, to)
	for _, n := range p.nodes {
		translateNode(n, from, to)
	}
	p.syncSegments()
	p.emitChanged()
}

func (p *IntPath) nodesMoved() {
	var sum geom.Vec2
	for _, n := range p.nodes {
		sum = sum.Add(n.Position())
	}
	if len(p.nodes) > 0 {
		p.position = sum.MulScalar(1 / float64(len(p.nodes)))
	}
	p.syncSegments()
	p.emitChanged()
}

func (p *IntPath) syncSegments() {
	for _, s := range p.segments {
		s.syncMid()
	}
}

// IsPointOn reports whether p lies on any segment.
func (p *IntPath) IsPointOn(pt geom.Vec2) bool {
	return lo.ContainsBy(p.segments, func(s *IntVector) bool { return s.IsPointOn(pt) })
}
