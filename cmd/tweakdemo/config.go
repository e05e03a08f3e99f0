package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the optional tweakdemo.yaml.
type Config struct {
	Backend  string         `yaml:"backend,omitempty"` // "gl" or "fyne"
	Verbose  bool           `yaml:"verbose,omitempty"`
	Window   WindowConfig   `yaml:"window"`
	Bar      BarConfig      `yaml:"bar"`
	Settings SettingsConfig `yaml:"settings"`
}

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// BarConfig names and styles the tweak bar.
type BarConfig struct {
	Name  string `yaml:"name,omitempty"`
	Style string `yaml:"style,omitempty"` // "ant" or "default", GL only
	// Definition is applied to the bar after it is built, e.g.
	// "position='40 40' refresh=0.5".
	Definition string `yaml:"definition,omitempty"`
}

// SettingsConfig is where Save and Load go.
type SettingsConfig struct {
	File     string `yaml:"file,omitempty"`
	Autoload bool   `yaml:"autoload,omitempty"`
}

func defaultConfig() Config {
	return Config{
		Backend: "gl",
		Window:  WindowConfig{Title: "tweakdemo", Width: 1024, Height: 720},
		Bar:     BarConfig{Name: "Scene", Style: "ant"},
		Settings: SettingsConfig{
			File: "tweakdemo.tw",
		},
	}
}

// LoadOptional reads path if present. Missing fields keep their defaults.
func LoadOptional(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// envPrefix marks environment overrides, e.g. TWEAKDEMO_BACKEND=fyne.
const envPrefix = "TWEAKDEMO_"

// applyEnv overrides cfg from TWEAKDEMO_* variables read through getenv.
func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(envPrefix + name)); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v := strings.TrimSpace(getenv(envPrefix + name))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	flag := func(name string, dst *bool) error {
		v := strings.TrimSpace(getenv(envPrefix + name))
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("BACKEND", &c.Backend)
	str("BAR", &c.Bar.Name)
	str("STYLE", &c.Bar.Style)
	str("SETTINGS", &c.Settings.File)
	return errors.Join(
		num("WIDTH", &c.Window.Width),
		num("HEIGHT", &c.Window.Height),
		flag("AUTOLOAD", &c.Settings.Autoload),
		flag("VERBOSE", &c.Verbose),
	)
}

func (c *Config) validate() error {
	switch c.Backend {
	case "gl", "fyne":
	default:
		return fmt.Errorf("backend %q: want gl or fyne", c.Backend)
	}
	switch c.Bar.Style {
	case "ant", "default":
	default:
		return fmt.Errorf("bar style %q: want ant or default", c.Bar.Style)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if strings.TrimSpace(c.Bar.Name) == "" {
		return errors.New("bar name is empty")
	}
	return nil
}

// Resolve loads path, applies environment overrides and validates.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
