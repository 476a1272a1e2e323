// Package scene is the surface the GUI host talks to. It turns pointer and
// key events into grabs, drags, shape creation and view changes, and tells
// the host when to repaint, show a context menu or open a text editor.
//
// Pointer positions passed in are in view coordinates; the scene maps them
// through its kernel.View before they reach the shapes. Everything runs on
// the caller's goroutine.
package scene

import (
	"log"

	"github.com/chazu/drafter/pkg/actor"
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/chazu/drafter/pkg/kernel/sdfx"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/chazu/drafter/pkg/shape"
)

// DefaultZoomStep is the scale factor applied per zoom drag step.
const DefaultZoomStep = 1.05

type viewAction int

const (
	actionNone viewAction = iota
	actionPan
	actionZoom
	actionRotate
)

// ShapeInfo summarizes one shape for the host's layer list.
type ShapeInfo struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	ZOrder   float64 `json:"zOrder"`
	Selected bool    `json:"selected"`
	Text     string  `json:"text,omitempty"`
}

type Scene struct {
	view      kernel.View
	drawables *actor.Drawables
	movables  *actor.Movables
	texts     *TextActor

	current  Kind
	action   viewAction
	anchor   geom.Vec2
	zoomStep float64
	logger   *log.Logger

	updated     []func()
	contextMenu []func(pos geom.Vec2, cmds []Command)
}

type Option func(*Scene)

// WithLogger traces pointer dispatch to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

func WithZoomStep(step float64) Option {
	return func(s *Scene) {
		if step > 1 {
			s.zoomStep = step
		}
	}
}

// WithView replaces the default sdfx view.
func WithView(v kernel.View) Option {
	return func(s *Scene) { s.view = v }
}

func New(opts ...Option) *Scene {
	s := &Scene{zoomStep: DefaultZoomStep}
	for _, opt := range opts {
		opt(s)
	}
	if s.view == nil {
		s.view = sdfx.New()
	}
	s.movables = actor.NewMovables()
	s.drawables = actor.NewDrawables(s.movables)
	s.drawables.OnUpdated(s.fireUpdated)
	s.texts = NewTextActor(s.view, func(t *rep.TextRep) { s.drawables.Add(t) })
	return s
}

func (s *Scene) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// -----------------------------------------------------------------------------
// Observers
// -----------------------------------------------------------------------------

// OnUpdated registers fn to run whenever the host should repaint.
func (s *Scene) OnUpdated(fn func()) {
	s.updated = append(s.updated, fn)
}

// OnContextMenu registers fn to be asked to show cmds at pos, in view
// coordinates.
func (s *Scene) OnContextMenu(fn func(pos geom.Vec2, cmds []Command)) {
	s.contextMenu = append(s.contextMenu, fn)
}

// OnTextEdit registers fn to be asked to open a text editor at pos.
func (s *Scene) OnTextEdit(fn func(pos geom.Vec2, initial string)) {
	s.texts.OnEdit(fn)
}

func (s *Scene) fireUpdated() {
	for _, fn := range s.updated {
		fn()
	}
}

func (s *Scene) requestContextMenu(pos geom.Vec2) {
	cmds := Commands(s.drawables.AnySelected())
	if len(cmds) == 0 {
		return
	}
	for _, fn := range s.contextMenu {
		fn(pos, cmds)
	}
}

// -----------------------------------------------------------------------------
// Input
// -----------------------------------------------------------------------------

// SetCurrentShape arms kind for the next edit press.
func (s *Scene) SetCurrentShape(kind Kind) {
	s.current = kind
}

func (s *Scene) CurrentShape() Kind { return s.current }

// PointerDown handles a button press at pos. The left button drives the
// view: pan, or zoom with Ctrl, or rotate with Shift. The right button
// edits: it clears the selection and any grab left over from a lost
// release, then creates the armed shape or grabs whatever is under the
// pointer; with Ctrl it also asks for the context menu.
func (s *Scene) PointerDown(pos geom.Vec2, button MouseButton, mods KeyModifiers) {
	s.anchor = pos
	switch button {
	case ButtonLeft:
		s.action = actionPan
		if mods.Is(ModShift) {
			s.action = actionRotate
		}
		if mods.Is(ModCtrl) {
			s.action = actionZoom
		}
		return
	case ButtonRight:
	default:
		return
	}

	s.movables.ReleaseAll()
	s.drawables.UnSelectAll()
	p := s.view.MapToScene(pos)

	if s.current == KindNone {
		hit := s.movables.GrabOn(p)
		s.logf("scene: grab at %v: %T", p, hit)
		if mods.Is(ModCtrl) {
			s.requestContextMenu(pos)
		}
		return
	}

	kind := s.current
	s.current = KindNone
	if kind == KindText {
		s.texts.ShowTextEdit(pos)
		return
	}
	if r := CreateShape(kind, p); r != nil {
		s.logf("scene: create %s at %v", kind, p)
		s.drawables.Add(r)
	}
}

// PointerMove handles motion with buttons held.
func (s *Scene) PointerMove(pos geom.Vec2, buttons MouseButtons) {
	if buttons.Is(ButtonLeft) {
		s.moveView(pos)
		return
	}
	if !buttons.Is(ButtonRight) {
		return
	}
	s.movables.SetExpectedToGrabbed(s.view.MapToScene(pos))
}

// PointerUp releases every grab and ends any view action.
func (s *Scene) PointerUp() {
	s.movables.ReleaseAll()
	s.action = actionNone
}

// Key handles a key press. Delete removes the selection; Escape disarms
// the current shape and drops a pending text edit.
func (s *Scene) Key(k Key) {
	switch k {
	case KeyDelete:
		s.DeleteSelected()
	case KeyEscape:
		s.current = KindNone
		s.texts.Cancel()
	}
}

func (s *Scene) moveView(pos geom.Vec2) {
	if s.action == actionNone || geom.Dist(s.anchor, pos) < shape.NoiseThreshold {
		return
	}
	delta := pos.Sub(s.anchor)
	switch s.action {
	case actionPan:
		s.view.Pan(delta)
	case actionZoom:
		switch {
		case delta.Y < 0:
			s.view.Zoom(s.zoomStep)
		case delta.Y > 0:
			s.view.Zoom(1 / s.zoomStep)
		}
	case actionRotate:
		// reserved
	}
	s.anchor = pos
	s.fireUpdated()
}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

// Run executes a context menu command. pos is where the menu was opened,
// in view coordinates.
func (s *Scene) Run(cmd Command, pos geom.Vec2) {
	switch cmd {
	case CmdBringToFront:
		s.drawables.BringSelectedToFront()
	case CmdSendToBack:
		s.drawables.SendSelectedToBack()
	case CmdAddText:
		s.texts.ShowTextEdit(pos)
	case CmdEditText:
		s.texts.EditText()
	case CmdDelete:
		s.DeleteSelected()
	}
}

// DeleteSelected removes the selected shape, and its text entry if it is a
// text box.
func (s *Scene) DeleteSelected() {
	r := s.drawables.DeleteSelected()
	if t, ok := r.(*rep.TextRep); ok {
		s.texts.Forget(t)
	}
}

// CommitText ends the text edit in progress with text.
func (s *Scene) CommitText(text string) {
	s.texts.Commit(text)
	s.fireUpdated()
}

func (s *Scene) EditSelectedText() {
	s.texts.EditText()
}

// -----------------------------------------------------------------------------
// Drawing and state
// -----------------------------------------------------------------------------

// Add registers a representation built outside the scene, such as one
// produced by a script.
func (s *Scene) Add(r rep.Representation) {
	if t, ok := r.(*rep.TextRep); ok {
		s.texts.Track(t)
	}
	s.drawables.Add(r)
}

// Resize sets the view frame size.
func (s *Scene) Resize(w, h float64) {
	s.view.Resize(w, h)
	s.fireUpdated()
}

// Draw draws every shape, back to front, onto c.
func (s *Scene) Draw(c rep.Canvas) {
	s.drawables.Draw(c)
}

// Mapper returns the current view transform.
func (s *Scene) Mapper() kernel.View { return s.view }

func (s *Scene) Drawables() *actor.Drawables { return s.drawables }
func (s *Scene) Movables() *actor.Movables   { return s.movables }
func (s *Scene) Texts() *TextActor           { return s.texts }

// Shapes lists the shapes in draw order.
func (s *Scene) Shapes() []ShapeInfo {
	var out []ShapeInfo
	for _, r := range s.drawables.Items() {
		m := r.Model()
		info := ShapeInfo{
			ID:       m.ID(),
			Kind:     KindOf(r).String(),
			ZOrder:   m.ZOrder(),
			Selected: m.IsSelected(),
		}
		if t, ok := r.(*rep.TextRep); ok {
			info.Text = t.Text()
		}
		out = append(out, info)
	}
	return out
}

// Validate checks the actor invariants.
func (s *Scene) Validate() []actor.ValidationError {
	return actor.Validate(s.drawables)
}
