package render

import (
	"github.com/chazu/drafter/pkg/geom"
	"github.com/samber/lo"
)

// OpKind names a recorded Canvas call.
type OpKind string

const (
	OpLine    OpKind = "line"
	OpRect    OpKind = "rect"
	OpEllipse OpKind = "ellipse"
	OpText    OpKind = "text"
	OpHandle  OpKind = "handle"
)

// Op is one recorded Canvas call. Points holds the line endpoints, or the
// single centre/origin for the other kinds.
type Op struct {
	Kind   OpKind
	Points []geom.Vec2
	W, H   float64
	Angle  float64
	Text   string
}

// Recorder is a Canvas that keeps every call in scene coordinates.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Line(a, b geom.Vec2) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []geom.Vec2{a, b}})
}

func (r *Recorder) Rect(center geom.Vec2, w, h, angle float64) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Points: []geom.Vec2{center}, W: w, H: h, Angle: angle})
}

func (r *Recorder) Ellipse(center geom.Vec2, rx, ry, angle float64) {
	r.Ops = append(r.Ops, Op{Kind: OpEllipse, Points: []geom.Vec2{center}, W: rx, H: ry, Angle: angle})
}

func (r *Recorder) Text(origin geom.Vec2, w, h, angle float64, s string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []geom.Vec2{origin}, W: w, H: h, Angle: angle, Text: s})
}

func (r *Recorder) Handle(center geom.Vec2, radius float64) {
	r.Ops = append(r.Ops, Op{Kind: OpHandle, Points: []geom.Vec2{center}, W: radius, H: radius})
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	return lo.CountBy(r.Ops, func(op Op) bool { return op.Kind == kind })
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
