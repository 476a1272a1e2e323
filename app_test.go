package main

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/chazu/drafter/pkg/config"
)

type event struct {
	name string
	data []interface{}
}

// newTestApp returns an App whose events are captured instead of sent to
// the Wails runtime.
func newTestApp(t *testing.T) (*App, *[]event) {
	t.Helper()
	s := config.Default()
	s.Window.Width, s.Window.Height = 400, 300
	app := NewApp(s)
	var events []event
	app.emit = func(name string, data ...interface{}) {
		events = append(events, event{name, data})
	}
	return app, &events
}

func countEvents(events []event, name string) int {
	n := 0
	for _, e := range events {
		if e.name == name {
			n++
		}
	}
	return n
}

// TestE2EExampleScripts loads every example through the same path the
// Wails binding takes.
func TestE2EExampleScripts(t *testing.T) {
	for _, name := range []string{"examples/shapes.drafter", "examples/floorplan.drafter"} {
		t.Run(name, func(t *testing.T) {
			app, events := newTestApp(t)
			source, err := os.ReadFile(name)
			if err != nil {
				t.Fatalf("failed to read %s: %v", name, err)
			}

			result := app.LoadScript(string(source))
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					t.Errorf("eval error (line %d): %s", e.Line, e.Message)
				}
				t.FailNow()
			}
			if len(result.Shapes) == 0 {
				t.Fatal("no shapes loaded")
			}
			for i, s := range result.Shapes {
				if s.ZOrder != float64(i) {
					t.Errorf("shape %d has zOrder %g", i, s.ZOrder)
				}
				if s.Selected {
					t.Errorf("shape %d (%s) is selected after load", i, s.Kind)
				}
			}
			if countEvents(*events, EventFrame) != 1 {
				t.Errorf("frames emitted = %d, want 1", countEvents(*events, EventFrame))
			}
			if errs := app.scene.Validate(); len(errs) > 0 {
				t.Errorf("scene invalid: %v", errs)
			}
		})
	}
}

func TestE2EEmptySource(t *testing.T) {
	app, _ := newTestApp(t)
	result := app.LoadScript("")

	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	// Non-nil so JSON serializes as [] not null.
	if result.Shapes == nil || result.Errors == nil {
		t.Error("result slices should be non-nil")
	}
	if len(result.Shapes) != 0 {
		t.Errorf("expected 0 shapes, got %d", len(result.Shapes))
	}
}

func TestE2ESyntaxErrorKeepsScene(t *testing.T) {
	app, _ := newTestApp(t)
	app.LoadScript("(rect 0 0 10 10)")

	result := app.LoadScript("(rect 0 0")
	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if result.Errors[0].Message == "" {
		t.Error("error has no message")
	}
	if got := len(app.Shapes()); got != 1 {
		t.Errorf("scene has %d shapes after a failed load, want 1", got)
	}
}

func TestE2EDrawRectangle(t *testing.T) {
	app, events := newTestApp(t)
	if err := app.SetShape("rect"); err != nil {
		t.Fatal(err)
	}
	app.PointerDown(200, 150, 2, false, false, false)
	app.PointerMove(260, 190, 2)
	app.PointerUp()

	shapes := app.Shapes()
	if len(shapes) != 1 || shapes[0].Kind != "rect" {
		t.Fatalf("shapes = %+v", shapes)
	}
	if countEvents(*events, EventFrame) == 0 {
		t.Error("no frame emitted")
	}
	if !strings.Contains(app.Frame(), "<polygon") {
		t.Error("frame has no rectangle")
	}
}

func TestE2ESetShapeUnknown(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.SetShape("hexagon"); err == nil {
		t.Error("expected error for unknown shape kind")
	}
}

func TestE2EContextMenuAndDelete(t *testing.T) {
	app, events := newTestApp(t)
	app.LoadScript("(rect -50 -50 100 100)")

	// Ctrl + secondary button over the rectangle body.
	app.PointerDown(200, 170, 2, false, true, false)
	app.PointerUp()

	var menu ContextMenu
	for _, e := range *events {
		if e.name == EventContextMenu {
			menu = e.data[0].(ContextMenu)
		}
	}
	if len(menu.Items) != 5 {
		t.Fatalf("menu = %+v", menu)
	}
	del := -1
	for _, it := range menu.Items {
		if it.Label == "Delete" {
			del = it.ID
		}
	}
	app.Run(del, menu.X, menu.Y)
	if n := len(app.Shapes()); n != 0 {
		t.Errorf("%d shapes left after delete", n)
	}
}

func TestE2ETextEdit(t *testing.T) {
	app, events := newTestApp(t)
	if err := app.SetShape("text"); err != nil {
		t.Fatal(err)
	}
	app.PointerDown(100, 100, 2, false, false, false)
	app.PointerUp()

	if countEvents(*events, EventTextEdit) != 1 {
		t.Fatalf("text edit events = %d", countEvents(*events, EventTextEdit))
	}
	app.CommitText("hello")

	shapes := app.Shapes()
	if len(shapes) != 1 || shapes[0].Text != "hello" {
		t.Fatalf("shapes = %+v", shapes)
	}
	if !strings.Contains(app.Frame(), "hello") {
		t.Error("frame does not show the text")
	}
}

func TestE2EDeleteKey(t *testing.T) {
	app, _ := newTestApp(t)
	app.LoadScript("(rect -50 -50 100 100)")
	app.PointerDown(200, 170, 2, false, false, false)
	app.PointerUp()
	app.Key("Delete")
	if n := len(app.Shapes()); n != 0 {
		t.Errorf("%d shapes left after Delete", n)
	}
}

func TestE2EResizeIgnoresEmpty(t *testing.T) {
	app, _ := newTestApp(t)
	app.Resize(0, 100)
	if app.width != 400 || app.height != 300 {
		t.Errorf("size = %dx%d", app.width, app.height)
	}
	app.Resize(800, 600)
	if !strings.Contains(app.Frame(), `width="800"`) {
		t.Error("frame not resized")
	}
}

// TestE2ERapidLoads runs loads and pointer events concurrently. Run with
// -race to detect data races.
func TestE2ERapidLoads(t *testing.T) {
	app, _ := newTestApp(t)
	var emitMu sync.Mutex
	app.emit = func(string, ...interface{}) {
		emitMu.Lock()
		defer emitMu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			app.LoadScript("(rect 0 0 10 10) (node 5 5)")
		}()
		go func() {
			defer wg.Done()
			app.PointerDown(200, 150, 0, false, false, false)
			app.PointerMove(210, 150, 1)
			app.PointerUp()
		}()
	}
	wg.Wait()
	_ = app.Frame()
}
