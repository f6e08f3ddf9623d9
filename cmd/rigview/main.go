// Command rigview opens a window and flies a camera rig between presets with the arrow keys
// (or WASD). The frame is cleared to a color that follows the camera's facing direction and
// the window title names the current preset.
//
// Usage:
//
//	rigview [-config rig.yaml] [-tick-rate 120] [-vsync] [-profile]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
)

func main() {
	configPath := flag.String("config", "", "rig YAML file (default: built-in five-station rig)")
	tickRate := flag.Float64("tick-rate", 120, "rig ticks per second")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	vsync := flag.Bool("vsync", true, "wait for vertical blank when presenting")
	software := flag.Bool("software", false, "force the software fallback adapter")
	profile := flag.Bool("profile", false, "log frame statistics every second")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[RigView] %v", err)
	}
	graph, err := cfg.Graph()
	if err != nil {
		log.Fatalf("[RigView] %v", err)
	}

	win, err := window.NewWindow(
		window.WithTitle(title(graph, cfg.ResolveStartIndex(graph))),
		window.WithSize(*width, *height),
	)
	if err != nil {
		log.Fatalf("[RigView] %v", err)
	}
	defer win.Close()

	cam := camera.NewCamera()
	rc, err := config.NewRigController(cfg, cam, rig.WithOnArrive(func(index int) {
		win.SetTitle(title(graph, index))
	}))
	if err != nil {
		log.Fatalf("[RigView] %v", err)
	}
	// the start index may have been substituted
	win.SetTitle(title(graph, rc.CurrentIndex()))

	dispatcher := input.NewDispatcher()
	binder := input.BindKeys(win, dispatcher, input.DefaultKeyBindings())
	defer binder.Unbind()
	if err := rc.Start(dispatcher); err != nil {
		log.Fatalf("[RigView] %v", err)
	}
	defer rc.Stop()

	presentMode := renderer.PresentModeUncapped
	if *vsync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(*software),
	)
	if err != nil {
		log.Fatalf("[RigView] %v", err)
	}
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r, cam),
		engine.WithTickRate(*tickRate),
		engine.WithTickCallback(rc.Tick),
		engine.WithProfiling(*profile),
	)
	eng.Run()
}

func loadConfig(path string) (*config.RigConfig, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func title(graph *rig.PresetGraph, index int) string {
	if index < 0 || index >= graph.Count() {
		return "oxy-rig"
	}
	name := graph.PresetAt(index).Name
	if name == "" {
		name = fmt.Sprintf("#%d", index)
	}
	return "oxy-rig - " + name
}
