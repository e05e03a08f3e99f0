// Command tweakdemo shows a tweak bar over a spinning scene.
//
// Every supported variable type is on the bar, plus an enum, a callback
// variable, an unrecorded "paused" toggle and a read-only frame counter.
// F5 saves the recorded variables to the settings file, F9 loads them back.
//
//	go run ./cmd/tweakdemo                  # OpenGL panel
//	go run ./cmd/tweakdemo -backend fyne    # fyne widgets
//
// Settings come from tweakdemo.yaml when present, then TWEAKDEMO_* variables
// (also read from .env and .env.local), then flags.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/go-theft-auto/tweakbar"
	"github.com/go-theft-auto/tweakbar/ui"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "tweakdemo.yaml", "optional YAML config")
	backend := flag.String("backend", "", "gl or fyne (overrides config)")
	settings := flag.String("settings", "", "settings file for Save and Load (overrides config)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	cfg, err := Resolve(*configPath, os.Getenv)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *settings != "" {
		cfg.Settings.File = *settings
	}
	if *verbose {
		cfg.Verbose = true
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	tweakbar.SetVerbose(cfg.Verbose)
	ui.SetVerbose(cfg.Verbose)
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.Debug("config", "backend", cfg.Backend, "settings", cfg.Settings.File, "autoload", cfg.Settings.Autoload)

	switch cfg.Backend {
	case "fyne":
		return runFyne(cfg, log)
	default:
		return runGL(cfg, log)
	}
}

// newDemo builds the bar on top of be (nil for the built-in panel).
func newDemo(cfg *Config, be tweakbar.Backend, withFPS bool, log *slog.Logger) (*demo, error) {
	opts := []tweakbar.Option{tweakbar.WithLogger(log)}
	if be != nil {
		opts = append(opts, tweakbar.WithBackend(be))
	}
	bar, err := tweakbar.New(cfg.Bar.Name, opts...)
	if err != nil {
		return nil, err
	}
	d := &demo{bar: bar, scene: newScene(), settings: cfg.Settings.File, log: log}
	if err := d.build(withFPS); err != nil {
		return nil, fmt.Errorf("build bar: %w", err)
	}
	if err := d.applyBarDefinition(cfg.Bar.Definition); err != nil {
		return nil, fmt.Errorf("bar definition: %w", err)
	}
	if cfg.Settings.Autoload {
		if _, err := os.Stat(cfg.Settings.File); err == nil {
			d.load()
		}
	}
	return d, nil
}
