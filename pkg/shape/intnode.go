package shape

import "github.com/chazu/drafter/pkg/geom"

// IntNode is a model wrapping a single node. Once freed, the model and its
// node move in lock-step whichever of the two is dragged.
type IntNode struct {
	modelBase
	node  *Node
	bound bool
}

// NewIntNode wraps n without binding any movement or changing its zOrder.
// Handle representations use such passive wrappers; call Free to make it a
// standalone shape.
func NewIntNode(n *Node) *IntNode {
	m := &IntNode{
		modelBase: newModelBase(n.Position()),
		node:      n,
	}
	m.attachNode(n)
	return m
}

// Free binds the lock-step movement handlers and lifts the node above the
// model. Calling it again is a no-op.
func (m *IntNode) Free() {
	if m.bound {
		return
	}
	m.bound = true
	m.liftNodes()
	m.node.OnMoved(m.follow)
	m.OnMoved(m.follow)
}

func (m *IntNode) follow(from, to geom.Vec2) {
	m.translate(from, to)
	m.node.SetPosition(m.position)
	m.node.SetGrabAnchor(to)
	m.emitChanged()
}

func (m *IntNode) Node() *Node { return m.node }

func (m *IntNode) IsPointOn(p geom.Vec2) bool {
	return m.node.IsPointOn(p)
}
