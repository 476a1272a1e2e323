package shape

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// HandleLift is added to a model's zOrder to get the zOrder of its nodes,
// so handles always win grab priority over the body that owns them.
const HandleLift = 0.1

// Model is a composite shape exclusively owning a set of nodes. The set of
// models is closed: IntNode, IntVector, IntRect and IntPath.
type Model interface {
	Movable

	// ID is a random identifier assigned at construction.
	ID() string

	// Nodes returns the owned nodes in registration order.
	Nodes() []*Node

	// SetParentToNodes points every owned node's parent at p.
	SetParentToNodes(p Movable)

	// OnChanged registers fn to run whenever the shape needs a redraw.
	OnChanged(fn func())

	model() *modelBase
}

// modelBase carries the state common to every model.
type modelBase struct {
	base
	id      string
	nodes   []*Node
	changed []func()
}

func newModelBase(p geom.Vec2) modelBase {
	return modelBase{base: newBase(p), id: uuid.NewString()}
}

func (m *modelBase) model() *modelBase { return m }

func (m *modelBase) ID() string { return m.id }

func (m *modelBase) Nodes() []*Node {
	return append([]*Node(nil), m.nodes...)
}

// addNode adds n to the owned set and lifts it above the model.
func (m *modelBase) addNode(n *Node) bool {
	if !m.attachNode(n) {
		return false
	}
	n.SetZOrder(m.zOrder + HandleLift)
	return true
}

// attachNode adds n to the owned set without touching its zOrder. Views
// over nodes that another model lifts, such as path segments and handle
// wrappers, attach instead of add. Membership is by identity.
func (m *modelBase) attachNode(n *Node) bool {
	if lo.Contains(m.nodes, n) {
		return false
	}
	m.nodes = append(m.nodes, n)
	return true
}

// liftNodes puts every owned node just above the model.
func (m *modelBase) liftNodes() {
	m.SetZOrder(m.zOrder)
}

// SetZOrder sets the model's zOrder and lifts every owned node above it.
func (m *modelBase) SetZOrder(z float64) {
	m.zOrder = z
	for _, n := range m.nodes {
		n.SetZOrder(z + HandleLift)
	}
}

func (m *modelBase) SetParentToNodes(p Movable) {
	for _, n := range m.nodes {
		n.SetParent(p)
	}
}

func (m *modelBase) OnChanged(fn func()) {
	m.changed = append(m.changed, fn)
}

func (m *modelBase) emitChanged() {
	for _, fn := range m.changed {
		fn()
	}
}

// translateNode moves n by the delta of a move and advances its anchor.
func translateNode(n *Node, from, to geom.Vec2) {
	n.core().translate(from, to)
}
