package scene

import (
	"fmt"
	"strings"
)

// Kind names the shape the next edit press creates. Only Line, Rect,
// Ellipse, Text and Node produce shapes; the rest are accepted and ignored.
type Kind int

const (
	KindNone Kind = iota
	KindLine
	KindPoints
	KindPolyline
	KindPolygon
	KindRect
	KindRoundedRect
	KindEllipse
	KindArc
	KindChord
	KindPie
	KindPath
	KindText
	KindPixmap
	KindNode
)

var kindNames = [...]string{
	KindNone:        "none",
	KindLine:        "line",
	KindPoints:      "points",
	KindPolyline:    "polyline",
	KindPolygon:     "polygon",
	KindRect:        "rect",
	KindRoundedRect: "rounded-rect",
	KindEllipse:     "ellipse",
	KindArc:         "arc",
	KindChord:       "chord",
	KindPie:         "pie",
	KindPath:        "path",
	KindText:        "text",
	KindPixmap:      "pixmap",
	KindNode:        "node",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the case-insensitive inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("unknown shape kind %q", s)
}
