package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/drafter/pkg/config"
	"github.com/chazu/drafter/pkg/engine"
	"github.com/chazu/drafter/pkg/render"
	"github.com/chazu/drafter/pkg/scene"
)

type renderer struct {
	settings config.Settings
	style    render.Style
	eng      *engine.Engine
	logger   *log.Logger
}

func newRenderer(s config.Settings) (*renderer, error) {
	st, err := s.RenderStyle()
	if err != nil {
		return nil, err
	}
	return &renderer{
		settings: s,
		style:    st,
		eng:      engine.NewEngine(engine.WithTimeout(s.ScriptTimeout())),
	}, nil
}

// build evaluates source into a fresh scene sized to the frame.
func (r *renderer) build(source string) (*scene.Scene, error) {
	shapes, evalErrs, err := r.eng.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, errors.New(strings.Join(msgs, "\n"))
	}

	opts := []scene.Option{scene.WithZoomStep(r.settings.View.ZoomStep)}
	if r.logger != nil {
		opts = append(opts, scene.WithLogger(r.logger))
	}
	s := scene.New(opts...)
	s.Resize(float64(r.settings.Window.Width), float64(r.settings.Window.Height))
	for _, shp := range shapes {
		s.Add(shp)
	}
	s.Drawables().UnSelectAll()
	return s, nil
}

// renderFile renders the script at in to out, choosing the format by
// extension.
func (r *renderer) renderFile(in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	s, err := r.build(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w, h := r.settings.Window.Width, r.settings.Window.Height
	if strings.EqualFold(filepath.Ext(out), ".svg") {
		if _, err := f.WriteString(render.FrameSVG(s, w, h, s.Mapper(), r.style)); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		return nil
	}
	return render.FramePNG(f, s, w, h, s.Mapper(), r.style)
}
