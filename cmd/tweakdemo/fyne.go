package main

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/go-theft-auto/tweakbar/backend/fynebar"
)

// newFyneDemo builds the bar on fyne widgets. The scene does not animate:
// it changes only through widget callbacks, hotkeys and buttons, all of which
// fyne runs on its event goroutine, so the bar stays on one goroutine.
func newFyneDemo(cfg *Config, log *slog.Logger) (*demo, *fynebar.Backend, error) {
	be := fynebar.New(fynebar.WithLogger(log))
	d, err := newDemo(cfg, be, false, log)
	if err != nil {
		return nil, nil, err
	}
	return d, be, nil
}

func runFyne(cfg *Config, log *slog.Logger) error {
	a := app.NewWithID("com.go-theft-auto.tweakdemo")
	w := a.NewWindow(cfg.Window.Title)

	_, be, err := newFyneDemo(cfg, log)
	if err != nil {
		return err
	}

	w.SetContent(be.Content())
	w.Canvas().SetOnTypedKey(be.TypedKey)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width)/2, float32(cfg.Window.Height)))
	w.ShowAndRun()
	return nil
}
