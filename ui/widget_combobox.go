package ui

// ComboBox draws a dropdown selection widget.
// Returns true if the selection changed.
//
// Usage:
//
//	items := []string{"Low", "Medium", "High"}
//	if ctx.ComboBox("Quality", &selectedIndex, items) {
//	    applyQuality(selectedIndex)
//	}
func (ctx *Context) ComboBox(label string, selectedIndex *int, items []string, opts ...Option) bool {
	pos := ctx.ItemPos()
	o := applyOptions(opts)
	id := ctx.widgetID(label, o)
	state := GetState(ctx, id, ComboBoxState{})
	disabled := GetOpt(o, OptDisabled)

	x := ctx.labelColumn(pos, label, ctx.style.TextColor)
	w := ctx.controlWidth(o)
	h := ctx.FrameHeight()
	arrowSize := float32(8)
	header := Rect{X: x, Y: pos.Y, W: w, H: h}

	hovered := !disabled && ctx.isHovered(id, header)
	changed := false

	bg := ctx.style.ButtonColor
	if hovered || state.Open {
		bg = ctx.style.ButtonHoveredColor
	}
	ctx.DrawList.AddRect(x, pos.Y, w, h, bg)
	ctx.DrawList.AddRectOutline(x, pos.Y, w, h, ctx.style.InputBorderColor, 1)

	selected := ""
	if *selectedIndex >= 0 && *selectedIndex < len(items) {
		selected = items[*selectedIndex]
	}
	textColor := ctx.style.TextColor
	if disabled {
		textColor = ctx.style.TextDisabledColor
	}
	ctx.DrawList.PushClipRect(x, pos.Y, x+w-arrowSize-ctx.style.ButtonPadding, pos.Y+h)
	ctx.AddText(x+ctx.style.ButtonPadding, pos.Y+ctx.style.ButtonPadding, selected, textColor)
	ctx.DrawList.PopClipRect()

	// Down arrow
	ax := x + w - ctx.style.ButtonPadding - arrowSize
	ay := pos.Y + h/2
	ctx.DrawList.AddTriangle(
		ax, ay-arrowSize/4,
		ax+arrowSize, ay-arrowSize/4,
		ax+arrowSize/2, ay+arrowSize/4,
		ctx.style.ComboArrowColor,
	)
	ctx.hoverTooltip(Rect{X: pos.X, Y: pos.Y, W: x - pos.X + w, H: h}, o)

	opening := false
	if !disabled && !state.Open && ctx.isClicked(id, header) {
		state.Open = true
		opening = true
		ctx.SetActivePopup(id)
	}

	if state.Open {
		fg := ctx.ForegroundDrawList
		if fg == nil {
			fg = ctx.DrawList
		}
		itemH := ctx.LineHeight() + ctx.style.ItemSpacing
		dropY := pos.Y + h
		dropH := float32(len(items)) * itemH
		fg.AddRect(x, dropY, w, dropH, ctx.style.DropdownBgColor)
		fg.AddRectOutline(x, dropY, w, dropH, ctx.style.InputBorderColor, 1)

		clicked := !opening && ctx.Input != nil && ctx.Input.MouseClicked(MouseButtonLeft)
		for i, item := range items {
			r := Rect{X: x + 1, Y: dropY + float32(i)*itemH, W: w - 2, H: itemH}
			switch {
			case i == *selectedIndex:
				fg.AddRect(r.X, r.Y, r.W, r.H, ctx.style.SliderFillColor)
			case ctx.isHovered(id, r):
				fg.AddRect(r.X, r.Y, r.W, r.H, ctx.style.HoveredBgColor)
			}
			ctx.addTextTo(fg, r.X+ctx.style.ItemSpacing, r.Y+ctx.style.ItemSpacing/2, item, ctx.style.TextColor)

			if clicked && ctx.isHovered(id, r) && i != *selectedIndex {
				*selectedIndex = i
				changed = true
			}
		}

		// Any click closes the list. The popup stays claimed for the rest of
		// this frame so the click does not reach widgets under the list.
		if clicked || (ctx.Input != nil && ctx.Input.KeyPressed(KeyEscape)) {
			state.Open = false
		}
		if ctx.Input != nil && (Rect{X: x, Y: pos.Y, W: w, H: h + dropH}).Contains(Vec2{ctx.Input.MouseX, ctx.Input.MouseY}) {
			ctx.WantCaptureMouse = true
		}
	} else if ctx.activePopupID == id {
		ctx.SetActivePopup(0)
	}
	SetState(ctx, id, state)

	ctx.AdvanceCursor(Vec2{X: x - pos.X + w, Y: h})
	return changed
}
