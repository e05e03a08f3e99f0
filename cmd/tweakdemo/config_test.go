package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadOptionalMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), *cfg)
}

func TestLoadOptionalKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweakdemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: fyne
window:
  width: 640
bar:
  definition: "position='40 40'"
settings:
  autoload: true
`), 0o644))

	cfg, err := LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, "fyne", cfg.Backend)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Scene", cfg.Bar.Name)
	assert.Equal(t, "position='40 40'", cfg.Bar.Definition)
	assert.True(t, cfg.Settings.Autoload)
	assert.Equal(t, "tweakdemo.tw", cfg.Settings.File)
}

func TestLoadOptionalBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweakdemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))

	_, err := LoadOptional(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestResolveEnvOverrides(t *testing.T) {
	cfg, err := Resolve(filepath.Join(t.TempDir(), "none.yaml"), env(map[string]string{
		"TWEAKDEMO_BACKEND":  "fyne",
		"TWEAKDEMO_SETTINGS": "/tmp/x.tw",
		"TWEAKDEMO_WIDTH":    "800",
		"TWEAKDEMO_AUTOLOAD": "true",
		"TWEAKDEMO_STYLE":    "default",
	}))
	require.NoError(t, err)
	assert.Equal(t, "fyne", cfg.Backend)
	assert.Equal(t, "/tmp/x.tw", cfg.Settings.File)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.True(t, cfg.Settings.Autoload)
	assert.Equal(t, "default", cfg.Bar.Style)
}

func TestResolveRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad backend", map[string]string{"TWEAKDEMO_BACKEND": "vulkan"}},
		{"bad style", map[string]string{"TWEAKDEMO_STYLE": "neon"}},
		{"bad width", map[string]string{"TWEAKDEMO_WIDTH": "wide"}},
		{"zero height", map[string]string{"TWEAKDEMO_HEIGHT": "0"}},
		{"bad bool", map[string]string{"TWEAKDEMO_VERBOSE": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(filepath.Join(dir, "none.yaml"), env(tt.env))
			assert.Error(t, err)
		})
	}
}
