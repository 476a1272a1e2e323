package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/chazu/drafter/pkg/geom"
	"github.com/chazu/drafter/pkg/kernel"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterCanvas draws onto an RGBA image. Strokes are filled quads
// rasterized with x/image/vector; text uses the Go Regular face.
type RasterCanvas struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	mapper kernel.Mapper
	scale  float64
	style  Style
	face   font.Face
}

var regularFont = sync.OnceValues(func() (*truetype.Font, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	return f, nil
})

// Raster returns a width by height canvas filled with the background
// colour that maps scene coordinates through m.
func Raster(width, height int, m kernel.Mapper, st Style) (*RasterCanvas, error) {
	f, err := regularFont()
	if err != nil {
		return nil, err
	}
	scale := kernel.AffineOf(m).Scale()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(st.Background), image.Point{}, draw.Src)
	return &RasterCanvas{
		img:    img,
		z:      vector.NewRasterizer(width, height),
		mapper: m,
		scale:  scale,
		style:  st,
		face:   truetype.NewFace(f, &truetype.Options{Size: st.FontSize * scale, DPI: 72}),
	}, nil
}

// Image returns the frame drawn so far.
func (c *RasterCanvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the frame as PNG.
func (c *RasterCanvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// segment fills the quad of width StrokeWidth around a-b, in view space.
func (c *RasterCanvas) segment(a, b geom.Vec2, col color.RGBA) {
	n := geom.Unit(b.Sub(a))
	if n == (geom.Vec2{}) {
		return
	}
	off := geom.V(-n.Y, n.X).MulScalar(c.style.StrokeWidth / 2)
	quad := []geom.Vec2{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}

	bounds := c.img.Bounds()
	c.z.Reset(bounds.Dx(), bounds.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(quad[0].X), float32(quad[0].Y))
	for _, p := range quad[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, bounds, image.NewUniform(col), image.Point{})
}

// loop strokes the closed outline pts, given in scene space.
func (c *RasterCanvas) loop(pts []geom.Vec2, col color.RGBA) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c.segment(c.mapper.MapFromScene(p), c.mapper.MapFromScene(q), col)
	}
}

func (c *RasterCanvas) Line(a, b geom.Vec2) {
	c.segment(c.mapper.MapFromScene(a), c.mapper.MapFromScene(b), c.style.Stroke)
}

func (c *RasterCanvas) Rect(center geom.Vec2, w, h, angle float64) {
	c.loop(rectOutline(center, w, h, angle), c.style.Stroke)
}

func (c *RasterCanvas) Ellipse(center geom.Vec2, rx, ry, angle float64) {
	c.loop(ellipseOutline(center, rx, ry, angle), c.style.Stroke)
}

// Text draws s unrotated from origin; the box size is not used for
// wrapping.
func (c *RasterCanvas) Text(origin geom.Vec2, w, h, angle float64, s string) {
	o := c.mapper.MapFromScene(origin)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.style.Text),
		Face: c.face,
		Dot:  fixed.P(round(o.X), round(o.Y)).Add(fixed.Point26_6{Y: c.face.Metrics().Ascent}),
	}
	d.DrawString(s)
}

func (c *RasterCanvas) Handle(center geom.Vec2, r float64) {
	c.loop(ellipseOutline(center, r, r, 0), c.style.Handle)
}
