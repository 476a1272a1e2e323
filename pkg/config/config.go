// Package config loads drafter settings from a TOML file. Missing files
// and missing keys fall back to the built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/chazu/drafter/pkg/render"
)

// Settings is the top-level TOML structure.
type Settings struct {
	Window WindowSettings `toml:"window"`
	View   ViewSettings   `toml:"view"`
	Style  StyleSettings  `toml:"style"`
	Script ScriptSettings `toml:"script"`
}

type WindowSettings struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type ViewSettings struct {
	ZoomStep float64 `toml:"zoom_step"` // scale factor per zoom drag step, > 1
}

// StyleSettings holds colours as "#rrggbb" or "#rrggbbaa" strings.
type StyleSettings struct {
	Stroke      string  `toml:"stroke"`
	Handle      string  `toml:"handle"`
	Text        string  `toml:"text"`
	Background  string  `toml:"background"`
	StrokeWidth float64 `toml:"stroke_width"`
	FontSize    float64 `toml:"font_size"`
}

type ScriptSettings struct {
	Timeout string `toml:"timeout"` // time.ParseDuration syntax
}

// DefaultTOML is the default configuration, written out by Save and
// documented for users.
const DefaultTOML = `# drafter settings

[window]
width = 1024
height = 768

[view]
# scale factor applied per zoom drag step
zoom_step = 1.05

[style]
stroke = "#202020"
handle = "#1e66f5"
text = "#101010"
background = "#ffffff"
stroke_width = 1.5
font_size = 14.0

[script]
# hard limit for one script evaluation
timeout = "5s"
`

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: 1024, Height: 768},
		View:   ViewSettings{ZoomStep: 1.05},
		Style: StyleSettings{
			Stroke:      "#202020",
			Handle:      "#1e66f5",
			Text:        "#101010",
			Background:  "#ffffff",
			StrokeWidth: 1.5,
			FontSize:    14,
		},
		Script: ScriptSettings{Timeout: "5s"},
	}
}

// Path returns $XDG_CONFIG_HOME/drafter/drafter.toml, or the platform
// equivalent.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "drafter", "drafter.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML over the defaults and replaces out-of-range values
// with their defaults.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return normalize(s), nil
}

// Save writes s to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalize(s)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func normalize(s Settings) Settings {
	def := Default()
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		s.Window = def.Window
	}
	if s.View.ZoomStep <= 1 {
		s.View.ZoomStep = def.View.ZoomStep
	}
	if s.Style.StrokeWidth <= 0 {
		s.Style.StrokeWidth = def.Style.StrokeWidth
	}
	if s.Style.FontSize <= 0 {
		s.Style.FontSize = def.Style.FontSize
	}
	if d, err := time.ParseDuration(s.Script.Timeout); err != nil || d <= 0 {
		s.Script.Timeout = def.Script.Timeout
	}
	return s
}

// ScriptTimeout returns the evaluation limit as a duration.
func (s Settings) ScriptTimeout() time.Duration {
	d, err := time.ParseDuration(s.Script.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// RenderStyle converts the style section for the render backends.
func (s Settings) RenderStyle() (render.Style, error) {
	st := render.DefaultStyle()
	var err error
	if st.Stroke, err = render.ParseColor(s.Style.Stroke); err != nil {
		return render.DefaultStyle(), fmt.Errorf("style.stroke: %w", err)
	}
	if st.Handle, err = render.ParseColor(s.Style.Handle); err != nil {
		return render.DefaultStyle(), fmt.Errorf("style.handle: %w", err)
	}
	if st.Text, err = render.ParseColor(s.Style.Text); err != nil {
		return render.DefaultStyle(), fmt.Errorf("style.text: %w", err)
	}
	if st.Background, err = render.ParseColor(s.Style.Background); err != nil {
		return render.DefaultStyle(), fmt.Errorf("style.background: %w", err)
	}
	st.StrokeWidth = s.Style.StrokeWidth
	st.FontSize = s.Style.FontSize
	return st, nil
}
