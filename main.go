package main

import (
	"embed"
	"log"

	"github.com/chazu/drafter/pkg/config"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	settings := config.Default()
	if path, err := config.Path(); err == nil {
		s, err := config.Load(path)
		if err != nil {
			log.Printf("config: %v; using defaults", err)
		}
		settings = s
	}

	app := NewApp(settings)

	err := wails.Run(&options.App{
		Title:  "Drafter",
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
