package ui

import (
	"log/slog"
	"os"
)

// logLevel controls debug logging for the toolkit.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for UI components.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

var uiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// Renderer is the interface for rendering GUI draw data.
type Renderer interface {
	Render(dl *DrawList) error
	FontTextureID() uint32
	Resize(width, height int)
}

// GUI owns the per-frame Context and hands its draw lists to a Renderer.
type GUI struct {
	renderer   Renderer
	stateStore StateStore
	style      Style
	ctx        *Context
}

// GUIOption configures a GUI instance.
type GUIOption func(*GUI)

// WithStyle sets the GUI style.
func WithStyle(style Style) GUIOption {
	return func(g *GUI) { g.style = style }
}

// WithStateStore sets a custom state store.
func WithStateStore(store StateStore) GUIOption {
	return func(g *GUI) { g.stateStore = store }
}

// New creates a new GUI instance.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{
		renderer:   renderer,
		stateStore: make(MapStateStore),
		style:      DefaultStyle(),
		ctx:        NewContext(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Begin starts a new frame and returns the context to draw with.
func (g *GUI) Begin(input *InputState, displaySize Vec2, deltaTime float32) *Context {
	ctx := g.ctx
	ctx.DrawList = AcquireDrawList()
	ctx.ForegroundDrawList = AcquireDrawList()
	ctx.Input = input
	ctx.stateStore = g.stateStore
	ctx.style = g.style
	ctx.FontTextureID = g.renderer.FontTextureID()
	ctx.Reset(displaySize, deltaTime)
	return ctx
}

// End finishes the frame and renders the main then foreground draw lists.
func (g *GUI) End() error {
	ctx := g.ctx
	if ctx.DrawList == nil {
		return nil
	}
	ctx.flushTooltip()

	err := g.renderer.Render(ctx.DrawList)
	if err == nil && len(ctx.ForegroundDrawList.CmdBuffer) > 0 {
		err = g.renderer.Render(ctx.ForegroundDrawList)
	}

	ReleaseDrawList(ctx.DrawList)
	ReleaseDrawList(ctx.ForegroundDrawList)
	ctx.DrawList = nil
	ctx.ForegroundDrawList = nil
	return err
}

// Style returns the current GUI style.
func (g *GUI) Style() Style {
	return g.style
}

// SetStyle sets the GUI style.
func (g *GUI) SetStyle(style Style) {
	g.style = style
}

// Resize notifies the renderer of a display size change.
func (g *GUI) Resize(width, height int) {
	g.renderer.Resize(width, height)
}

// LayoutType defines the direction of a layout.
type LayoutType uint8

const (
	LayoutVertical LayoutType = iota
	LayoutHorizontal
)

// Layout tracks the current layout state.
type Layout struct {
	Type LayoutType

	StartX, StartY      float32
	Width               float32 // Available width
	MaxWidth, MaxHeight float32 // Accumulated content size

	Gap     float32
	Padding float32

	ItemCount int
}

// LayoutOption configures a layout container.
type LayoutOption func(*Layout)

// Gap sets spacing between children.
func Gap(pixels float32) LayoutOption {
	return func(l *Layout) { l.Gap = pixels }
}

// Padding sets inner padding on all sides.
func Padding(pixels float32) LayoutOption {
	return func(l *Layout) { l.Padding = pixels }
}

// Width fixes the layout width.
func Width(w float32) LayoutOption {
	return func(l *Layout) { l.Width = w }
}

// Context holds all state for UI rendering in a single frame.
type Context struct {
	DrawList           *DrawList
	ForegroundDrawList *DrawList // popups and tooltips, drawn on top

	style       Style
	cursor      Vec2
	layoutStack []*Layout

	// Input is read-only during the frame.
	Input *InputState

	stateStore StateStore
	idStack    []ID

	DisplaySize Vec2
	FrameCount  uint64
	DeltaTime   float32

	// FontTextureID is the renderer's font atlas texture.
	FontTextureID uint32

	// WantCaptureMouse reports whether the mouse is over a panel this frame,
	// so the host can ignore the click.
	WantCaptureMouse bool

	activePopupID ID
	tooltip       string
}

// NewContext creates a new GUI context with default settings.
func NewContext() *Context {
	return &Context{
		style:       DefaultStyle(),
		layoutStack: make([]*Layout, 0, 16),
		idStack:     make([]ID, 0, 16),
		stateStore:  make(MapStateStore),
	}
}

// Reset prepares the context for a new frame.
func (ctx *Context) Reset(displaySize Vec2, deltaTime float32) {
	ctx.FrameCount++
	ctx.cursor = Vec2{}
	ctx.layoutStack = ctx.layoutStack[:0]
	ctx.idStack = ctx.idStack[:0]
	ctx.DisplaySize = displaySize
	ctx.DeltaTime = deltaTime
	ctx.WantCaptureMouse = false
	ctx.tooltip = ""
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle sets the base style.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
}

// SetCursorPos sets the cursor position for the next widget.
func (ctx *Context) SetCursorPos(x, y float32) {
	ctx.cursor = Vec2{X: x, Y: y}
}

// CursorPos returns the current cursor position.
func (ctx *Context) CursorPos() Vec2 {
	return ctx.cursor
}

// LineHeight returns the height of a single line of text.
func (ctx *Context) LineHeight() float32 {
	return ctx.style.CharHeight * ctx.style.FontScale
}

// FrameHeight is the height of a framed control (button, field, combo).
func (ctx *Context) FrameHeight() float32 {
	return ctx.LineHeight() + ctx.style.ButtonPadding*2
}

// MeasureText returns the size of rendered monospace text.
func (ctx *Context) MeasureText(text string) Vec2 {
	n := 0
	for range text {
		n++
	}
	return Vec2{
		X: float32(n) * ctx.style.CharWidth * ctx.style.FontScale,
		Y: ctx.LineHeight(),
	}
}

// AddText draws text with the current style into the main draw list.
func (ctx *Context) AddText(x, y float32, text string, color uint32) {
	ctx.addTextTo(ctx.DrawList, x, y, text, color)
}

func (ctx *Context) addTextTo(dl *DrawList, x, y float32, text string, color uint32) {
	if dl == nil {
		return
	}
	dl.SetTexture(ctx.FontTextureID)
	dl.AddText(x, y, text, color, ctx.style.FontScale, ctx.style.CharWidth, ctx.style.CharHeight)
	dl.SetTexture(0)
}

// isHovered returns true if the widget area is under the mouse cursor.
// While a popup is open only the popup's own widgets report hover.
func (ctx *Context) isHovered(id ID, rect Rect) bool {
	if ctx.Input == nil {
		return false
	}
	if ctx.activePopupID != 0 && ctx.activePopupID != id {
		return false
	}
	return rect.Contains(Vec2{ctx.Input.MouseX, ctx.Input.MouseY})
}

// isClicked returns true if the widget was clicked this frame.
func (ctx *Context) isClicked(id ID, rect Rect) bool {
	if ctx.Input == nil || !ctx.Input.MouseClicked(MouseButtonLeft) {
		return false
	}
	hovered := ctx.isHovered(id, rect)
	if logLevel.Level() <= slog.LevelDebug {
		uiLogger.Debug("click", "id", id, "hit", hovered, "rect", rect,
			"mouse", Vec2{ctx.Input.MouseX, ctx.Input.MouseY})
	}
	return hovered
}

// isPressed returns true if the widget is being held down.
func (ctx *Context) isPressed(id ID, rect Rect) bool {
	return ctx.isHovered(id, rect) && ctx.Input.MouseDown(MouseButtonLeft)
}

// SetActivePopup marks a popup (dropdown) as open; 0 closes it.
func (ctx *Context) SetActivePopup(id ID) {
	ctx.activePopupID = id
}

// HasActivePopup returns true if a popup is currently open.
func (ctx *Context) HasActivePopup() bool {
	return ctx.activePopupID != 0
}

func (ctx *Context) currentLayout() *Layout {
	if len(ctx.layoutStack) > 0 {
		return ctx.layoutStack[len(ctx.layoutStack)-1]
	}
	return nil
}

// CurrentLayoutWidth returns the available width in the current layout.
func (ctx *Context) CurrentLayoutWidth() float32 {
	if l := ctx.currentLayout(); l != nil {
		return l.Width - l.Padding*2
	}
	return ctx.DisplaySize.X
}

func (ctx *Context) layoutGap(l *Layout) float32 {
	if l.Gap > 0 {
		return l.Gap
	}
	return ctx.style.ItemSpacing
}

// ItemPos returns the position for the next widget with the layout gap applied.
func (ctx *Context) ItemPos() Vec2 {
	l := ctx.currentLayout()
	if l != nil && l.ItemCount > 0 {
		if l.Type == LayoutVertical {
			ctx.cursor.Y += ctx.layoutGap(l)
		} else {
			ctx.cursor.X += ctx.layoutGap(l)
		}
	}
	return ctx.cursor
}

// AdvanceCursor moves the cursor past an item of the given size.
func (ctx *Context) AdvanceCursor(size Vec2) {
	l := ctx.currentLayout()
	if l == nil {
		ctx.cursor.Y += size.Y + ctx.style.ItemSpacing
		return
	}

	if l.Type == LayoutVertical {
		ctx.cursor.Y += size.Y
		l.MaxWidth = maxf(l.MaxWidth, ctx.cursor.X+size.X-l.StartX-l.Padding)
		l.MaxHeight = ctx.cursor.Y - l.StartY - l.Padding
	} else {
		ctx.cursor.X += size.X
		l.MaxWidth = ctx.cursor.X - l.StartX - l.Padding
		l.MaxHeight = maxf(l.MaxHeight, size.Y)
	}
	l.ItemCount++
}

func (ctx *Context) pushLayout(l *Layout) {
	l.StartX = ctx.cursor.X
	l.StartY = ctx.cursor.Y
	if l.Width == 0 {
		l.Width = ctx.CurrentLayoutWidth()
	}
	ctx.cursor.X += l.Padding
	ctx.cursor.Y += l.Padding
	ctx.layoutStack = append(ctx.layoutStack, l)
}

// popLayout removes the current layout and reports it to its parent as one item.
func (ctx *Context) popLayout() Rect {
	n := len(ctx.layoutStack)
	if n == 0 {
		return Rect{}
	}
	l := ctx.layoutStack[n-1]
	ctx.layoutStack = ctx.layoutStack[:n-1]

	bounds := Rect{
		X: l.StartX,
		Y: l.StartY,
		W: l.MaxWidth + l.Padding*2,
		H: l.MaxHeight + l.Padding*2,
	}

	ctx.cursor = Vec2{X: l.StartX, Y: l.StartY}
	ctx.AdvanceCursor(Vec2{X: bounds.W, Y: bounds.H})
	return bounds
}

// VStack lays its contents out top to bottom.
func (ctx *Context) VStack(opts ...LayoutOption) func(func()) {
	return ctx.stack(LayoutVertical, opts)
}

// HStack lays its contents out left to right.
func (ctx *Context) HStack(opts ...LayoutOption) func(func()) {
	return ctx.stack(LayoutHorizontal, opts)
}

func (ctx *Context) stack(t LayoutType, opts []LayoutOption) func(func()) {
	return func(contents func()) {
		ctx.ItemPos()
		l := &Layout{Type: t}
		for _, opt := range opts {
			opt(l)
		}
		ctx.pushLayout(l)
		contents()
		ctx.popLayout()
	}
}

// Panel draws a titled container sized to its content.
//
// Usage:
//
//	ctx.Panel("Settings", ui.Width(260))(func() {
//	    ctx.Checkbox("Wireframe", &wire)
//	})
func (ctx *Context) Panel(title string, opts ...LayoutOption) func(func()) {
	return func(contents func()) {
		startX, startY := ctx.cursor.X, ctx.cursor.Y

		headerH := float32(0)
		if title != "" {
			headerH = ctx.FrameHeight()
		}

		l := &Layout{Type: LayoutVertical, Padding: ctx.style.PanelPadding}
		for _, opt := range opts {
			opt(l)
		}
		userWidth := l.Width

		ctx.cursor.Y += headerH
		ctx.pushLayout(l)
		contents()
		bounds := ctx.popLayout()

		panelW := maxf(bounds.W, userWidth)
		panelH := bounds.H + headerH

		ctx.DrawList.InsertRect(startX, startY, panelW, panelH, ctx.style.PanelColor)

		if title != "" {
			headerBg := ctx.style.PanelHeaderBgColor
			if headerBg == 0 {
				headerBg = ctx.style.ButtonColor
			}
			headerText := ctx.style.PanelHeaderTextColor
			if headerText == 0 {
				headerText = ctx.style.TextColor
			}
			ctx.DrawList.AddRect(startX, startY, panelW, headerH, headerBg)
			ctx.AddText(startX+ctx.style.PanelPadding, startY+ctx.style.ButtonPadding, title, headerText)
		}

		if ctx.style.BorderSize > 0 {
			ctx.DrawList.AddRectOutline(startX, startY, panelW, panelH,
				ctx.style.PanelBorderColor, ctx.style.BorderSize)
		}

		if ctx.Input != nil {
			r := Rect{X: startX, Y: startY, W: panelW, H: panelH}
			if r.Contains(Vec2{ctx.Input.MouseX, ctx.Input.MouseY}) {
				ctx.WantCaptureMouse = true
			}
		}

		ctx.cursor = Vec2{X: startX, Y: startY + panelH}
	}
}

// Spacing adds vertical space.
func (ctx *Context) Spacing(pixels float32) {
	ctx.cursor.Y += pixels
}

// Separator draws a horizontal line across the current layout.
func (ctx *Context) Separator() {
	pos := ctx.ItemPos()
	w := ctx.CurrentLayoutWidth()
	if l := ctx.currentLayout(); l != nil && l.MaxWidth > 0 {
		w = l.MaxWidth
	}
	y := pos.Y + 2
	ctx.DrawList.AddLine(pos.X, y, pos.X+w, y, ctx.style.SeparatorColor, 1)
	ctx.AdvanceCursor(Vec2{X: 0, Y: 4})
}

// Tooltip shows text next to the mouse at the end of the frame.
func (ctx *Context) Tooltip(text string) {
	ctx.tooltip = text
}

func (ctx *Context) flushTooltip() {
	if ctx.tooltip == "" || ctx.Input == nil || ctx.ForegroundDrawList == nil {
		return
	}
	size := ctx.MeasureText(ctx.tooltip)
	pad := ctx.style.ButtonPadding * 2
	x := ctx.Input.MouseX + 14
	y := ctx.Input.MouseY + 14
	ctx.ForegroundDrawList.AddRect(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.TooltipBgColor)
	ctx.ForegroundDrawList.AddRectOutline(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.PanelBorderColor, 1)
	ctx.addTextTo(ctx.ForegroundDrawList, x+pad, y+pad, ctx.tooltip, ctx.style.TextColor)
}
