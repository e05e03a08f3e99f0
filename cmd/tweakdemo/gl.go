package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tweakbar/backend/opengl"
	"github.com/go-theft-auto/tweakbar/ui"
)

func runGL(cfg *Config, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewGLFWInputAdapter(window)
	input.OnKey = func(key glfw.Key, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape {
			window.SetShouldClose(true)
		}
	}

	style := ui.AntStyle()
	if cfg.Bar.Style == "default" {
		style = ui.DefaultStyle()
	}
	gui := ui.New(renderer, ui.WithStyle(style))

	d, err := newDemo(cfg, nil, true, log)
	if err != nil {
		return err
	}
	s := d.scene

	vsync := int32(-1)
	last := time.Now()
	for !window.ShouldClose() {
		if s.vsync != vsync {
			vsync = s.vsync
			glfw.SwapInterval(int(vsync))
		}

		in := input.Update()
		glfw.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		s.step(dt)

		ww, wh := window.GetSize()
		fw, fh := window.GetFramebufferSize()
		renderer.Resize(ww, wh)
		if ww > 0 {
			renderer.SetFramebufferScale(float32(fw) / float32(ww))
		}

		gl.Viewport(0, 0, int32(fw), int32(fh))
		bg := s.ambient
		e := s.exposure
		gl.ClearColor(min(bg[0]*e, 1), min(bg[1]*e, 1), min(bg[2]*e, 1), 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := gui.Begin(in, ui.Vec2{X: float32(ww), Y: float32(wh)}, dt)
		d.bar.Draw(ctx)
		if err := gui.End(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}
	return nil
}
