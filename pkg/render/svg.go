package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
)

// SVGCanvas writes an SVG document. Call Close to end it.
type SVGCanvas struct {
	doc    *svg.SVG
	mapper kernel.Mapper
	scale  float64
	style  Style
}

// SVG starts a width by height document on w, filled with the background
// colour, that maps scene coordinates through m.
func SVG(w io.Writer, width, height int, m kernel.Mapper, st Style) *SVGCanvas {
	doc := svg.New(w)
	doc.Start(width, height)
	doc.Rect(0, 0, width, height, "fill:"+Hex(st.Background))
	return &SVGCanvas{doc: doc, mapper: m, scale: kernel.AffineOf(m).Scale(), style: st}
}

// Close ends the document.
func (c *SVGCanvas) Close() {
	c.doc.End()
}

func (c *SVGCanvas) stroke(col string) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", col, c.style.StrokeWidth)
}

func (c *SVGCanvas) point(p geom.Vec2) (int, int) {
	v := c.mapper.MapFromScene(p)
	return round(v.X), round(v.Y)
}

func (c *SVGCanvas) polygon(pts []geom.Vec2) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = c.point(p)
	}
	return xs, ys
}

func (c *SVGCanvas) Line(a, b geom.Vec2) {
	x1, y1 := c.point(a)
	x2, y2 := c.point(b)
	c.doc.Line(x1, y1, x2, y2, c.stroke(Hex(c.style.Stroke)))
}

func (c *SVGCanvas) Rect(center geom.Vec2, w, h, angle float64) {
	xs, ys := c.polygon(rectOutline(center, w, h, angle))
	c.doc.Polygon(xs, ys, c.stroke(Hex(c.style.Stroke)))
}

func (c *SVGCanvas) Ellipse(center geom.Vec2, rx, ry, angle float64) {
	x, y := c.point(center)
	rot := fmt.Sprintf(`transform="rotate(%g %d %d)"`, angle, x, y)
	c.doc.Ellipse(x, y, round(rx*c.scale), round(ry*c.scale), rot, c.stroke(Hex(c.style.Stroke)))
}

func (c *SVGCanvas) Text(origin geom.Vec2, w, h, angle float64, s string) {
	x, y := c.point(origin)
	size := c.style.FontSize * c.scale
	rot := fmt.Sprintf(`transform="rotate(%g %d %d)"`, angle, x, y)
	st := fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%gpx", Hex(c.style.Text), size)
	c.doc.Text(x, y+round(size), s, rot, st)
}

func (c *SVGCanvas) Handle(center geom.Vec2, r float64) {
	x, y := c.point(center)
	c.doc.Circle(x, y, round(r*c.scale), c.stroke(Hex(c.style.Handle)))
}

func round(f float64) int { return int(math.Round(f)) }
