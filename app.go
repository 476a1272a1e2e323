package main

import (
	"context"
	"log"
	"sync"

	"github.com/chazu/drafter/pkg/config"
	"github.com/chazu/drafter/pkg/engine"
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/chazu/drafter/pkg/render"
	"github.com/chazu/drafter/pkg/scene"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Events emitted to the frontend.
const (
	EventFrame       = "frame"
	EventContextMenu = "contextmenu"
	EventTextEdit    = "textedit"
)

// App is the Wails backend. It exposes methods to the frontend via bindings
// and pushes repaint, context menu and text edit requests as events.
type App struct {
	ctx context.Context

	mu       sync.Mutex
	scene    *scene.Scene
	engine   *engine.Engine
	settings config.Settings
	style    render.Style
	width    int
	height   int
	dirty    bool

	// emit sends an event to the frontend; replaced in tests.
	emit func(name string, data ...interface{})
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Shapes []scene.ShapeInfo `json:"shapes"`
	Errors []EvalErrorData   `json:"errors"`
}

// MenuItem is one context menu entry. ID is passed back to Run.
type MenuItem struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ContextMenu asks the frontend to show Items at X, Y.
type ContextMenu struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Items []MenuItem `json:"items"`
}

// TextEdit asks the frontend to open a text editor at X, Y.
type TextEdit struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Initial string  `json:"initial"`
}

// NewApp creates an App with the given settings and an empty scene.
func NewApp(settings config.Settings) *App {
	style, err := settings.RenderStyle()
	if err != nil {
		log.Printf("style: %v; using defaults", err)
		style = render.DefaultStyle()
	}
	a := &App{
		engine:   engine.NewEngine(engine.WithTimeout(settings.ScriptTimeout())),
		settings: settings,
		style:    style,
		width:    settings.Window.Width,
		height:   settings.Window.Height,
	}
	a.emit = a.emitRuntime
	a.scene = a.newScene(nil)
	a.scene.Resize(float64(a.width), float64(a.height))
	a.dirty = false
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) emitRuntime(name string, data ...interface{}) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, name, data...)
}

// newScene builds a scene wired to the app's events. A nil view gets the
// default one.
func (a *App) newScene(view kernel.View) *scene.Scene {
	opts := []scene.Option{scene.WithZoomStep(a.settings.View.ZoomStep)}
	if view != nil {
		opts = append(opts, scene.WithView(view))
	}
	s := scene.New(opts...)
	s.OnUpdated(func() { a.dirty = true })
	s.OnContextMenu(func(pos geom.Vec2, cmds []scene.Command) {
		menu := ContextMenu{X: pos.X, Y: pos.Y}
		for _, c := range cmds {
			menu.Items = append(menu.Items, MenuItem{ID: int(c), Label: c.String()})
		}
		a.emit(EventContextMenu, menu)
	})
	s.OnTextEdit(func(pos geom.Vec2, initial string) {
		a.emit(EventTextEdit, TextEdit{X: pos.X, Y: pos.Y, Initial: initial})
	})
	return s
}

// do runs fn under the lock and pushes a new frame if the scene changed.
func (a *App) do(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
	if a.dirty {
		a.dirty = false
		a.emit(EventFrame, a.frameLocked())
	}
}

func (a *App) frameLocked() string {
	return render.FrameSVG(a.scene, a.width, a.height, a.scene.Mapper(), a.style)
}

// ---------------------------------------------------------------------------
// Bindings
// ---------------------------------------------------------------------------

// PointerDown forwards a DOM mousedown. button is MouseEvent.button.
func (a *App) PointerDown(x, y float64, button int, shift, ctrl, alt bool) {
	a.do(func() {
		a.scene.PointerDown(geom.V(x, y), scene.ButtonFromDOM(button), scene.ModsFromDOM(shift, ctrl, alt))
	})
}

// PointerMove forwards a DOM mousemove. buttons is MouseEvent.buttons.
func (a *App) PointerMove(x, y float64, buttons int) {
	a.do(func() {
		a.scene.PointerMove(geom.V(x, y), scene.ButtonsFromDOM(buttons))
	})
}

func (a *App) PointerUp() {
	a.do(a.scene.PointerUp)
}

// Key forwards a DOM KeyboardEvent.key.
func (a *App) Key(key string) {
	a.do(func() { a.scene.Key(scene.KeyFromDOM(key)) })
}

// SetShape arms the shape kind created by the next edit press.
func (a *App) SetShape(kind string) error {
	k, err := scene.ParseKind(kind)
	if err != nil {
		return err
	}
	a.do(func() { a.scene.SetCurrentShape(k) })
	return nil
}

// Resize sets the frame size in pixels.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.do(func() {
		a.width, a.height = width, height
		a.scene.Resize(float64(width), float64(height))
	})
}

// Frame returns the current scene as an SVG document.
func (a *App) Frame() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frameLocked()
}

// Run executes the context menu entry id, opened at x, y.
func (a *App) Run(id int, x, y float64) {
	a.do(func() { a.scene.Run(scene.Command(id), geom.V(x, y)) })
}

// CommitText ends the pending text edit with text.
func (a *App) CommitText(text string) {
	a.do(func() { a.scene.CommitText(text) })
}

// Shapes lists the shapes in draw order for the layer panel.
func (a *App) Shapes() []scene.ShapeInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return shapesOrEmpty(a.scene.Shapes())
}

// LoadScript evaluates source and, on success, replaces the scene with
// the shapes it builds. The view transform is kept. On failure the scene
// is left untouched.
func (a *App) LoadScript(source string) EvalResult {
	result := EvalResult{
		Shapes: []scene.ShapeInfo{},
		Errors: []EvalErrorData{},
	}

	shapes, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("LoadScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.do(func() {
		a.scene = a.newScene(a.scene.Mapper())
		for _, r := range shapes {
			a.scene.Add(r)
		}
		a.scene.Drawables().UnSelectAll()
		a.dirty = true
		result.Shapes = shapesOrEmpty(a.scene.Shapes())
	})
	return result
}

// shapesOrEmpty keeps JSON output an array rather than null.
func shapesOrEmpty(s []scene.ShapeInfo) []scene.ShapeInfo {
	if s == nil {
		return []scene.ShapeInfo{}
	}
	return s
}
