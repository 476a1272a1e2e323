// Command drafter-render evaluates a scene script and writes the scene as
// PNG or SVG. With -watch it re-renders whenever the script changes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/drafter/pkg/config"
)

func main() {
	out := flag.String("o", "scene.png", "output file; .svg writes SVG, anything else PNG")
	width := flag.Int("width", 0, "frame width (default from config)")
	height := flag.Int("height", 0, "frame height (default from config)")
	cfgPath := flag.String("config", "", "settings file (default $XDG_CONFIG_HOME/drafter/drafter.toml)")
	watch := flag.Bool("watch", false, "re-render when the script changes")
	verbose := flag.Bool("v", false, "verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: drafter-render [flags] script.drafter\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	script := flag.Arg(0)

	settings, err := loadSettings(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}

	r, err := newRenderer(settings)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		r.logger = log.Default()
	}

	if err := r.renderFile(script, *out); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Printf("render: %v", err)
	}
	if !*watch {
		return
	}
	if err := watchFile(script, func() {
		if err := r.renderFile(script, *out); err != nil {
			log.Printf("render: %v", err)
			return
		}
		log.Printf("rendered %s", *out)
	}); err != nil {
		log.Fatal(err)
	}
}

func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}
