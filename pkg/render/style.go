// Package render implements rep.Canvas backends: SVG documents through
// svgo, RGBA frames through x/image/vector with freetype text, and a
// Recorder that keeps the calls for inspection.
//
// Representations draw in scene coordinates. Every backend maps them
// through a kernel.Mapper into view pixels.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style holds the colours and sizes a backend draws with.
type Style struct {
	Stroke      color.RGBA
	Handle      color.RGBA
	Text        color.RGBA
	Background  color.RGBA
	StrokeWidth float64
	FontSize    float64
}

// DefaultStyle is dark strokes on white with blue handles.
func DefaultStyle() Style {
	return Style{
		Stroke:      color.RGBA{0x20, 0x20, 0x20, 0xff},
		Handle:      color.RGBA{0x1e, 0x66, 0xf5, 0xff},
		Text:        color.RGBA{0x10, 0x10, 0x10, 0xff},
		Background:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		StrokeWidth: 1.5,
		FontSize:    14,
	}
}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
