package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chazu/drafter/pkg/kernel"
	"github.com/chazu/drafter/pkg/rep"
)

// Drawer is anything that draws itself onto a canvas, such as a scene.
type Drawer interface {
	Draw(c rep.Canvas)
}

// FrameSVG renders d into a complete SVG document.
func FrameSVG(d Drawer, width, height int, m kernel.Mapper, st Style) string {
	var buf bytes.Buffer
	c := SVG(&buf, width, height, m, st)
	d.Draw(c)
	c.Close()
	return buf.String()
}

// FramePNG renders d and writes it to w as PNG.
func FramePNG(w io.Writer, d Drawer, width, height int, m kernel.Mapper, st Style) error {
	c, err := Raster(width, height, m, st)
	if err != nil {
		return fmt.Errorf("raster canvas: %w", err)
	}
	d.Draw(c)
	return c.WritePNG(w)
}
