package ui

// Text draws basic text at the current cursor position.
func (ctx *Context) Text(text string) {
	ctx.TextColored(text, ctx.style.TextColor)
}

// TextColored draws text with a specific color.
func (ctx *Context) TextColored(text string, color uint32) {
	pos := ctx.ItemPos()
	ctx.AddText(pos.X, pos.Y, text, color)
	ctx.AdvanceCursor(ctx.MeasureText(text))
}

// TextDisabled draws text with the disabled color.
func (ctx *Context) TextDisabled(text string) {
	ctx.TextColored(text, ctx.style.TextDisabledColor)
}

// labelColumn draws a row label and returns the x where the control starts.
func (ctx *Context) labelColumn(pos Vec2, label string, color uint32) float32 {
	if label == "" {
		return pos.X
	}
	ctx.AddText(pos.X, pos.Y+ctx.style.ButtonPadding, label, color)
	w := ctx.style.LabelWidth
	if w <= 0 {
		w = ctx.MeasureText(label).X + ctx.style.ItemSpacing*2
	}
	return pos.X + w
}

// LabelText draws a label and a read-only value in the control column.
func (ctx *Context) LabelText(label, value string, opts ...Option) {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	ctx.AddText(x, pos.Y+ctx.style.ButtonPadding, value, ctx.style.TextDisabledColor)
	size := Vec2{X: x - pos.X + ctx.MeasureText(value).X, Y: ctx.FrameHeight()}
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}, o)
	ctx.AdvanceCursor(size)
}

func (ctx *Context) hoverTooltip(rect Rect, o options) {
	if tip := GetOpt(o, OptTooltip); tip != "" && ctx.isHovered(0, rect) {
		ctx.Tooltip(tip)
	}
}

func (ctx *Context) widgetID(label string, o options) ID {
	if optID := GetOpt(o, OptID); optID != "" {
		return ctx.GetID(optID)
	}
	return ctx.GetID(label)
}

// Button draws a button and returns true if clicked.
func (ctx *Context) Button(label string, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)

	textSize := ctx.MeasureText(label)
	size := Vec2{
		X: textSize.X + ctx.style.ButtonPadding*4,
		Y: ctx.FrameHeight(),
	}
	if w := GetOpt(o, OptWidth); w > 0 {
		size.X = w
	}
	rect := Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}

	disabled := GetOpt(o, OptDisabled)
	hovered := !disabled && ctx.isHovered(id, rect)
	pressed := !disabled && ctx.Input != nil && ctx.isPressed(id, rect)

	bg := ctx.style.ButtonColor
	switch {
	case disabled:
		bg = ctx.style.ButtonDisabledColor
	case pressed:
		bg = ctx.style.ButtonActiveColor
	case hovered:
		bg = ctx.style.ButtonHoveredColor
	}
	ctx.DrawList.AddRect(pos.X, pos.Y, size.X, size.Y, bg)

	textColor := ctx.style.TextColor
	if disabled {
		textColor = ctx.style.TextDisabledColor
	}
	ctx.AddText(pos.X+(size.X-textSize.X)/2, pos.Y+(size.Y-textSize.Y)/2, label, textColor)
	ctx.hoverTooltip(rect, o)

	clicked := !disabled && ctx.isClicked(id, rect)
	ctx.AdvanceCursor(size)
	return clicked
}

// Checkbox draws a checkbox in the control column after its label.
// Returns true if the value changed.
func (ctx *Context) Checkbox(label string, value *bool, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)
	disabled := GetOpt(o, OptDisabled)

	labelColor := ctx.style.TextColor
	if disabled {
		labelColor = ctx.style.TextDisabledColor
	}
	x := ctx.labelColumn(pos, label, labelColor)

	h := ctx.FrameHeight()
	box := ctx.LineHeight()
	boxY := pos.Y + (h-box)/2
	rect := Rect{X: pos.X, Y: pos.Y, W: x - pos.X + box, H: h}

	hovered := !disabled && ctx.isHovered(id, rect)
	bg := ctx.style.InputBgColor
	if hovered {
		bg = ctx.style.InputFocusedBgColor
	}
	ctx.DrawList.AddRect(x, boxY, box, box, bg)
	ctx.DrawList.AddRectOutline(x, boxY, box, box, ctx.style.InputBorderColor, 1)

	if *value {
		pad := box * 0.25
		ctx.DrawList.AddRect(x+pad, boxY+pad, box-pad*2, box-pad*2, ctx.style.SliderFillColor)
	}
	ctx.hoverTooltip(rect, o)

	changed := false
	if !disabled && ctx.isClicked(id, rect) {
		*value = !*value
		changed = true
	}

	ctx.AdvanceCursor(Vec2{X: rect.W, Y: h})
	return changed
}

// CollapsingHeader draws a header spanning the layout width.
// Returns true if the section is expanded.
func (ctx *Context) CollapsingHeader(label string, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)

	state := GetState(ctx, id, CollapsingHeaderState{Open: GetOpt(o, OptOpen)})

	w := ctx.CurrentLayoutWidth()
	h := ctx.FrameHeight()
	rect := Rect{X: pos.X, Y: pos.Y, W: w, H: h}

	bg := ctx.style.ButtonColor
	if ctx.isHovered(id, rect) {
		bg = ctx.style.ButtonHoveredColor
	}
	ctx.DrawList.AddRect(pos.X, pos.Y, w, h, bg)

	// Arrow: right when closed, down when open.
	a := ctx.LineHeight() * 0.5
	ax := pos.X + ctx.style.ButtonPadding + 2
	ay := pos.Y + h/2
	if state.Open {
		ctx.DrawList.AddTriangle(ax, ay-a/2, ax+a, ay-a/2, ax+a/2, ay+a/2, ctx.style.ComboArrowColor)
	} else {
		ctx.DrawList.AddTriangle(ax, ay-a/2, ax+a/2, ay, ax, ay+a/2, ctx.style.ComboArrowColor)
	}
	ctx.AddText(ax+a+ctx.style.ItemSpacing*2, pos.Y+ctx.style.ButtonPadding, label, ctx.style.TextColor)

	if ctx.isClicked(id, rect) {
		state.Open = !state.Open
	}
	SetState(ctx, id, state)

	ctx.AdvanceCursor(Vec2{X: w, Y: h})
	return state.Open
}
