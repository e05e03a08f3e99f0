package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tweakbar/ui"
)

// GLFWInputAdapter feeds GLFW window events into a ui.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *ui.InputState

	// OnKey, when set, sees every key press the adapter does not swallow,
	// so the host can keep its own bindings next to the bar's hotkeys.
	OnKey func(key glfw.Key, mods glfw.ModifierKey)
}

// NewGLFWInputAdapter installs its callbacks on window. It replaces any key,
// char, mouse button, scroll and cursor callbacks already set.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		input:  ui.NewInputState(),
	}
	window.SetKeyCallback(a.keyCallback)
	window.SetCharCallback(a.charCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	return a
}

// Update clears last frame's edges and samples the pointer and modifiers.
// Call it once per frame before glfw.PollEvents.
func (a *GLFWInputAdapter) Update() *ui.InputState {
	a.input.Reset()

	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	down := func(l, r glfw.Key) bool {
		return a.window.GetKey(l) == glfw.Press || a.window.GetKey(r) == glfw.Press
	}
	a.input.ModCtrl = down(glfw.KeyLeftControl, glfw.KeyRightControl)
	a.input.ModShift = down(glfw.KeyLeftShift, glfw.KeyRightShift)
	a.input.ModAlt = down(glfw.KeyLeftAlt, glfw.KeyRightAlt)
	return a.input
}

// Input returns the state Update fills.
func (a *GLFWInputAdapter) Input() *ui.InputState {
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press && a.OnKey != nil {
		a.OnKey(key, mods)
	}
	k := glfwKeyToUIKey(key)
	if k == ui.KeyNone {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) charCallback(_ *glfw.Window, char rune) {
	a.input.AddInputChar(char)
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButtonToUI(button)
	if b < 0 {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

func glfwKeyToUIKey(key glfw.Key) ui.Key {
	switch key {
	case glfw.KeyLeft:
		return ui.KeyLeft
	case glfw.KeyRight:
		return ui.KeyRight
	case glfw.KeyUp:
		return ui.KeyUp
	case glfw.KeyDown:
		return ui.KeyDown
	case glfw.KeyBackspace:
		return ui.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyEnter
	case glfw.KeyEscape:
		return ui.KeyEscape
	}
	if key >= glfw.KeyF1 && key <= glfw.KeyF12 {
		return ui.KeyF1 + ui.Key(key-glfw.KeyF1)
	}
	return ui.KeyNone
}

func glfwMouseButtonToUI(button glfw.MouseButton) ui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return ui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return ui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return ui.MouseButtonMiddle
	}
	return -1
}
