// Command rigterm runs a camera rig in the terminal: arrow keys (or WASD/HJKL) move between
// presets, q quits. Useful on machines without a GPU.
//
// Usage:
//
//	rigterm [-config rig.yaml] [-tick-rate 60]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/terminal"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "rig YAML file (default: built-in five-station rig)")
	tickRate := flag.Float64("tick-rate", 60, "rig ticks per second")
	logPath := flag.String("log", "", "write rig diagnostics to this file instead of discarding them")
	flag.Parse()

	// The alternate screen owns stdout, so diagnostics go to a file or nowhere.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("[RigTerm] %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[RigTerm] %v", err)
	}

	cam := camera.NewCamera()
	rc, err := config.NewRigController(cfg, cam, rig.WithDiagnostics(rig.NewLogDiagnostics(logger)))
	if err != nil {
		log.Fatalf("[RigTerm] %v", err)
	}

	interval := time.Second / 60
	if *tickRate > 0 {
		interval = time.Duration(float64(time.Second) / *tickRate)
	}
	model, err := terminal.NewModel(rc, cam, terminal.WithTickInterval(interval))
	if err != nil {
		log.Fatalf("[RigTerm] %v", err)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.RigConfig, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}
