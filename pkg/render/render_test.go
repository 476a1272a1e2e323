package render_test

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/chazu/drafter/pkg/kernel/sdfx"
	"github.com/chazu/drafter/pkg/render"
	"github.com/chazu/drafter/pkg/rep"
	"github.com/chazu/drafter/pkg/shape"
)

// drawFunc adapts a function to render.Drawer.
type drawFunc func(c rep.Canvas)

func (f drawFunc) Draw(c rep.Canvas) { f(c) }

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}, false},
		{"10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}, false},
		{"#12", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := render.ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := render.Hex(color.RGBA{0x1e, 0x66, 0xf5, 0xff}); got != "#1e66f5" {
		t.Errorf("got %q", got)
	}
	if got := render.Hex(color.RGBA{1, 2, 3, 4}); got != "#01020304" {
		t.Errorf("got %q", got)
	}
}

func TestRecorder(t *testing.T) {
	var c render.Recorder
	r := rep.NewRectRep(shape.NewIntRect(geom.R(0, 0, 10, 10)))
	r.Draw(&c)
	if c.Count(render.OpRect) != 1 {
		t.Errorf("rects = %d", c.Count(render.OpRect))
	}
	if c.Count(render.OpHandle) != 6 {
		t.Errorf("handles = %d, want 6 while selected", c.Count(render.OpHandle))
	}

	c.Reset()
	r.Model().SetSelected(false)
	r.Draw(&c)
	if len(c.Ops) != 1 || c.Ops[0].Kind != render.OpRect {
		t.Errorf("ops = %+v", c.Ops)
	}
	if c.Ops[0].Points[0] != geom.V(5, 5) || c.Ops[0].W != 10 {
		t.Errorf("rect op = %+v", c.Ops[0])
	}
}

func TestFrameSVG(t *testing.T) {
	d := drawFunc(func(c rep.Canvas) {
		c.Rect(geom.V(50, 50), 20, 10, 0)
		c.Line(geom.V(0, 0), geom.V(100, 100))
		c.Ellipse(geom.V(20, 20), 5, 3, 30)
		c.Text(geom.V(10, 10), 160, 80, 0, "a < b")
		c.Handle(geom.V(5, 5), 10)
	})
	out := render.FrameSVG(d, 200, 100, kernel.Identity{}, render.DefaultStyle())

	for _, want := range []string{"<svg", "<polygon", "<line", "<ellipse", "<text", "<circle", "</svg>", "rotate(30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "a < b") {
		t.Error("text was not escaped")
	}
}

func TestSVGScalesThroughView(t *testing.T) {
	v := sdfx.New()
	v.Zoom(2)
	d := drawFunc(func(c rep.Canvas) { c.Handle(geom.V(0, 0), 10) })
	out := render.FrameSVG(d, 100, 100, v, render.DefaultStyle())
	if !strings.Contains(out, `r="20"`) {
		t.Errorf("handle radius not scaled:\n%s", out)
	}
}

func TestRasterStroke(t *testing.T) {
	st := render.DefaultStyle()
	c, err := render.Raster(100, 40, kernel.Identity{}, st)
	if err != nil {
		t.Fatal(err)
	}
	c.Line(geom.V(0, 10), geom.V(100, 10))

	img := c.Image()
	if got := img.RGBAAt(50, 10); got == st.Background {
		t.Errorf("pixel on the line is background %v", got)
	}
	if got := img.RGBAAt(50, 30); got != st.Background {
		t.Errorf("pixel off the line is %v", got)
	}
}

func TestRasterText(t *testing.T) {
	st := render.DefaultStyle()
	c, err := render.Raster(200, 60, kernel.Identity{}, st)
	if err != nil {
		t.Fatal(err)
	}
	c.Text(geom.V(10, 10), 160, 80, 0, "HHHH")

	img := c.Image()
	inked := false
	for y := 10; y < 30 && !inked; y++ {
		for x := 10; x < 60; x++ {
			if img.RGBAAt(x, y) != st.Background {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("no text pixels drawn")
	}
}

func TestFramePNG(t *testing.T) {
	var buf bytes.Buffer
	d := drawFunc(func(c rep.Canvas) { c.Rect(geom.V(20, 20), 10, 10, 45) })
	if err := render.FramePNG(&buf, d, 40, 40, kernel.Identity{}, render.DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
