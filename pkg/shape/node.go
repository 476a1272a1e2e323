package shape

import "github.com/chazu/drafter/pkg/geom"

// HandleRadius is the hit radius of a node.
const HandleRadius = 10.0

// Node is a terminal draggable point. Nodes have no behaviour of their own
// when moved; the model owning them subscribes to their moves.
type Node struct {
	base
}

func NewNode(p geom.Vec2) *Node {
	return &Node{base: newBase(p)}
}

func (n *Node) IsPointOn(p geom.Vec2) bool {
	return geom.Dist(n.position, p) < HandleRadius
}
