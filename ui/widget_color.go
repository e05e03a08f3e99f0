package ui

// ColorEdit draws a color swatch followed by one drag field per channel.
// rgba holds 3 or 4 channels in [0, 1]. The fourth channel gets a field
// only with WithAlpha. Returns true if any channel changed.
func (ctx *Context) ColorEdit(label string, rgba []float32, opts ...Option) bool {
	if len(rgba) < 3 {
		return false
	}
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	h := ctx.FrameHeight()

	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	a := float32(1)
	if len(rgba) > 3 {
		a = rgba[3]
	}
	swatch := h
	ctx.DrawList.AddRect(x, pos.Y, swatch, h, RGBAf(rgba[0], rgba[1], rgba[2], a))
	ctx.DrawList.AddRectOutline(x, pos.Y, swatch, h, ctx.style.InputBorderColor, 1)

	channels := rgba[:3]
	if len(rgba) > 3 && GetOpt(o, OptAlpha) {
		channels = rgba[:4]
	}
	fieldW := ctx.controlWidth(o) - swatch - ctx.style.ItemSpacing
	id := ctx.widgetID(label, o)
	gap := ctx.style.ItemSpacing
	n := float32(len(channels))
	w := (fieldW - gap*(n-1)) / n

	// Caller options override the channel defaults.
	fieldOpts := applyOptions(append([]Option{
		WithDragSpeed(0.005), WithRange(0, 1), WithFormat("%.2f"),
	}, opts...))

	changed := false
	startX := x + swatch + gap
	for i := range channels {
		cid := id ^ ID(i+1)*0x9E3779B97F4A7C15
		f := float64(channels[i])
		if ctx.dragField(cid, startX+float32(i)*(w+gap), pos.Y, w, &f, fieldOpts) && float32(f) != channels[i] {
			channels[i] = float32(f)
			changed = true
		}
	}
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: x - pos.X + ctx.controlWidth(o), H: h}, o)

	ctx.AdvanceCursor(Vec2{X: x - pos.X + ctx.controlWidth(o), Y: h})
	return changed
}
