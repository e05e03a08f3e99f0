package ui

import (
	"fmt"
	"math"
	"strings"
)

func formatNumber(format string, v float64) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, int(math.Round(v)))
	}
	return fmt.Sprintf(format, v)
}

func clamp64(v, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(maxVal, v))
}

func (ctx *Context) controlWidth(o options) float32 {
	if w := GetOpt(o, OptWidth); w > 0 {
		return w
	}
	return ctx.style.ControlWidth
}

// SliderFloat draws a horizontal slider for float32 values.
// Returns true if the value was changed.
//
// Usage:
//
//	if ctx.SliderFloat("Volume", &volume, 0, 1) {
//	    updateVolume(volume)
//	}
func (ctx *Context) SliderFloat(label string, value *float32, minVal, maxVal float32, opts ...Option) bool {
	f := float64(*value)
	if !ctx.SliderFloat64(label, &f, float64(minVal), float64(maxVal), opts...) {
		return false
	}
	if float32(f) == *value {
		return false
	}
	*value = float32(f)
	return true
}

// SliderFloat64 is SliderFloat for float64 values. The value keeps its full
// precision; only the grab position is computed in screen space.
func (ctx *Context) SliderFloat64(label string, value *float64, minVal, maxVal float64, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)
	state := GetState(ctx, id, SliderState{})
	disabled := GetOpt(o, OptDisabled)

	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	w := ctx.controlWidth(o)
	h := ctx.FrameHeight()
	grabW := float32(10)
	rect := Rect{X: x, Y: pos.Y, W: w, H: h}

	hovered := !disabled && ctx.isHovered(id, rect)
	step := GetOpt(o, OptStep)
	changed := false

	set := func(v float64) {
		if step > 0 {
			v = minVal + math.Round((v-minVal)/step)*step
		}
		v = clamp64(v, minVal, maxVal)
		if v != *value {
			*value = v
			changed = true
		}
	}

	if ctx.Input != nil && !disabled {
		if hovered && ctx.Input.MouseClicked(MouseButtonLeft) {
			state.Dragging = true
		}
		if state.Dragging {
			if ctx.Input.MouseDown(MouseButtonLeft) {
				ratio := float64(clampf((ctx.Input.MouseX-x-grabW/2)/(w-grabW), 0, 1))
				set(minVal + ratio*(maxVal-minVal))
			} else {
				state.Dragging = false
			}
		}
		if hovered && ctx.Input.MouseWheelY != 0 {
			wheelStep := step
			if wheelStep == 0 {
				wheelStep = (maxVal - minVal) / 100
			}
			set(*value + float64(ctx.Input.MouseWheelY)*wheelStep)
		}
	}
	SetState(ctx, id, state)

	ratio := float32(0)
	if maxVal > minVal {
		ratio = float32(clamp64((*value-minVal)/(maxVal-minVal), 0, 1))
	}
	trackH := h * 0.4
	trackY := pos.Y + (h-trackH)/2
	ctx.DrawList.AddRect(x, trackY, w, trackH, ctx.style.SliderTrackColor)
	if fill := ratio * w; fill > 0 {
		ctx.DrawList.AddRect(x, trackY, fill, trackH, ctx.style.SliderFillColor)
	}

	grab := ctx.style.SliderGrabColor
	if state.Dragging {
		grab = ctx.style.SliderGrabActive
	} else if hovered {
		grab = ctx.style.SliderGrabHovered
	}
	grabX := x + ratio*(w-grabW)
	ctx.DrawList.AddRect(grabX, pos.Y, grabW, h, grab)
	ctx.DrawList.AddRectOutline(grabX, pos.Y, grabW, h, ctx.style.InputBorderColor, 1)

	format := GetOpt(o, OptFormat)
	if format == "" {
		format = "%.2f"
	}
	text := formatNumber(format, *value)
	ctx.AddText(x+w+ctx.style.ItemSpacing, pos.Y+ctx.style.ButtonPadding, text, ctx.style.TextColor)
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: x - pos.X + w, H: h}, o)

	ctx.AdvanceCursor(Vec2{X: x - pos.X + w + ctx.style.ItemSpacing + ctx.MeasureText(text).X, Y: h})
	return changed
}

// SliderInt draws a horizontal slider for int values.
func (ctx *Context) SliderInt(label string, value *int, minVal, maxVal int, opts ...Option) bool {
	f := float64(*value)
	o := applyOptions(opts)
	if !HasOpt(o, OptStep) {
		opts = append(opts, WithStep(1))
	}
	if !HasOpt(o, OptFormat) {
		opts = append(opts, WithFormat("%d"))
	}
	if !ctx.SliderFloat64(label, &f, float64(minVal), float64(maxVal), opts...) {
		return false
	}
	n := int(math.Round(f))
	if n == *value {
		return false
	}
	*value = n
	return true
}

// DragFloat draws a number field adjusted by dragging horizontally or with
// the mouse wheel. WithRange, WithMin and WithMax clamp, WithStep sets the
// wheel increment and WithDragSpeed the change per pixel.
func (ctx *Context) DragFloat(label string, value *float32, opts ...Option) bool {
	f := float64(*value)
	if !ctx.DragFloat64(label, &f, opts...) {
		return false
	}
	if float32(f) == *value {
		return false
	}
	*value = float32(f)
	return true
}

// DragFloat64 is DragFloat for float64 values.
func (ctx *Context) DragFloat64(label string, value *float64, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)

	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	w := ctx.controlWidth(o)
	changed := ctx.dragField(id, x, pos.Y, w, value, o)
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: x - pos.X + w, H: ctx.FrameHeight()}, o)

	ctx.AdvanceCursor(Vec2{X: x - pos.X + w, Y: ctx.FrameHeight()})
	return changed
}

// DragInt is the integer variant of DragFloat.
func (ctx *Context) DragInt(label string, value *int, opts ...Option) bool {
	f := float64(*value)
	o := applyOptions(opts)
	if !HasOpt(o, OptStep) {
		opts = append(opts, WithStep(1))
	}
	if !HasOpt(o, OptFormat) {
		opts = append(opts, WithFormat("%d"))
	}
	if !ctx.DragFloat64(label, &f, opts...) {
		return false
	}
	n := int(math.Round(f))
	if n == *value {
		return false
	}
	*value = n
	return true
}

// DragFloatN draws one drag field per component on a single row sharing one
// label, for vectors, quaternions and colors.
func (ctx *Context) DragFloatN(label string, values []float32, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	base := ctx.widgetID(label, o)

	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	total := ctx.controlWidth(o)
	n := float32(len(values))
	if n == 0 {
		return false
	}
	gap := ctx.style.ItemSpacing
	w := (total - gap*(n-1)) / n

	changed := false
	for i := range values {
		id := base ^ ID(i+1)*0x9E3779B97F4A7C15
		f := float64(values[i])
		if ctx.dragField(id, x+float32(i)*(w+gap), pos.Y, w, &f, o) && float32(f) != values[i] {
			values[i] = float32(f)
			changed = true
		}
	}
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: x - pos.X + total, H: ctx.FrameHeight()}, o)

	ctx.AdvanceCursor(Vec2{X: x - pos.X + total, Y: ctx.FrameHeight()})
	return changed
}

// dragField draws one framed number and applies drag/wheel input to it.
func (ctx *Context) dragField(id ID, x, y, w float32, value *float64, o options) bool {
	h := ctx.FrameHeight()
	rect := Rect{X: x, Y: y, W: w, H: h}
	disabled := GetOpt(o, OptDisabled)
	state := GetState(ctx, id, DragState{})
	hovered := !disabled && ctx.isHovered(id, rect)

	step := GetOpt(o, OptStep)
	speed := GetOpt(o, OptSpeed)
	if speed == 0 {
		speed = step
	}
	if speed == 0 {
		speed = 0.01
	}
	hasMin, hasMax := HasOpt(o, OptMin), HasOpt(o, OptMax)
	minVal, maxVal := GetOpt(o, OptMin), GetOpt(o, OptMax)

	changed := false
	set := func(v float64) {
		if step > 0 {
			v = math.Round(v/step) * step
		}
		if hasMin {
			v = math.Max(v, minVal)
		}
		if hasMax {
			v = math.Min(v, maxVal)
		}
		if v != *value {
			*value = v
			changed = true
		}
	}

	if ctx.Input != nil && !disabled {
		if hovered && ctx.Input.MouseClicked(MouseButtonLeft) {
			state = DragState{Dragging: true, DragStartX: ctx.Input.MouseX, DragStartValue: *value}
		}
		if state.Dragging {
			if ctx.Input.MouseDown(MouseButtonLeft) {
				set(state.DragStartValue + float64(ctx.Input.MouseX-state.DragStartX)*speed)
			} else {
				state.Dragging = false
			}
		}
		if hovered && ctx.Input.MouseWheelY != 0 {
			wheel := step
			if wheel == 0 {
				wheel = speed * 10
			}
			set(*value + float64(ctx.Input.MouseWheelY)*wheel)
		}
	}
	SetState(ctx, id, state)

	bg := ctx.style.InputBgColor
	if state.Dragging || hovered {
		bg = ctx.style.InputFocusedBgColor
	}
	ctx.DrawList.AddRect(x, y, w, h, bg)
	ctx.DrawList.AddRectOutline(x, y, w, h, ctx.style.InputBorderColor, 1)

	format := GetOpt(o, OptFormat)
	if format == "" {
		format = "%.3f"
	}
	text := formatNumber(format, *value)
	tw := ctx.MeasureText(text).X
	textColor := ctx.style.TextColor
	if disabled {
		textColor = ctx.style.TextDisabledColor
	}
	ctx.DrawList.PushClipRect(x, y, x+w, y+h)
	ctx.AddText(x+maxf((w-tw)/2, ctx.style.ButtonPadding), y+ctx.style.ButtonPadding, text, textColor)
	ctx.DrawList.PopClipRect()
	return changed
}
