package tweakbar

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-theft-auto/tweakbar/ui"
)

// Panel is the default Backend: an immediate-mode bar drawn with the ui
// toolkit. Call Draw once per frame between ui.GUI Begin and End.
//
// Bar parameters: label, visible, iconified, position ("x y"), size ("w h";
// width 0 fits the content) and refresh (seconds between read-only updates).
// Variable parameters: label, help, group, visible, readonly, min, max, step,
// precision and key (a hotkey that presses a button or toggles a bool).
// Groups take opened and label.
type Panel struct {
	name      string
	label     string
	visible   bool
	iconified bool
	pos       ui.Vec2
	size      ui.Vec2
	refresh   float32

	items  []*panelItem
	byName map[string]*panelItem
	groups map[string]*panelGroup
	nextID ID

	clock float32
	stale bool
	log   *slog.Logger
}

type panelGroup struct {
	label  string
	open   bool
	synced bool // open pushed into the widget state store
}

type itemKind uint8

const (
	itemVar itemKind = iota
	itemButton
	itemSeparator
)

type panelItem struct {
	kind   itemKind
	id     ID
	name   string
	v      VarSpec
	button ButtonSpec
	params map[string][]string

	cached   string
	cachedAt float32
	hasCache bool
}

var defaultPanelPos = ui.Vec2{X: 16, Y: 16}

// NewPanel returns an empty panel backend. Bar calls NewBar on it.
func NewPanel() *Panel {
	p := &Panel{log: defaultLogger}
	p.reset("")
	return p
}

func (p *Panel) reset(name string) {
	p.name = name
	p.label = ""
	p.visible = true
	p.iconified = false
	p.pos = defaultPanelPos
	p.size = ui.Vec2{}
	p.refresh = 0
	p.items = nil
	p.byName = make(map[string]*panelItem)
	p.groups = make(map[string]*panelGroup)
	p.nextID = 1
	p.stale = true
}

// Name returns the bar name.
func (p *Panel) Name() string { return p.name }

// NewBar clears the panel and renames it.
func (p *Panel) NewBar(name string) error {
	if name == "" {
		return fmt.Errorf("bar name: %w", ErrInvalidName)
	}
	p.reset(name)
	return nil
}

func (p *Panel) add(it *panelItem, def Definition) (ID, error) {
	if it.name != "" {
		if _, dup := p.byName[it.name]; dup {
			return 0, fmt.Errorf("%q: %w", it.name, ErrDuplicateName)
		}
	}
	for _, prm := range def {
		if err := checkItemParam(it, prm.Key, []string{prm.Value}); err != nil {
			return 0, err
		}
	}
	it.params = make(map[string][]string)
	for _, prm := range def {
		p.commitItemParam(it, prm.Key, []string{prm.Value})
	}
	it.id = p.nextID
	p.nextID++
	p.items = append(p.items, it)
	if it.name != "" {
		p.byName[it.name] = it
	}
	return it.id, nil
}

// AddVar adds a variable row.
func (p *Panel) AddVar(spec VarSpec) (ID, error) {
	return p.add(&panelItem{kind: itemVar, name: spec.Name, v: spec}, spec.Def)
}

// AddButton adds a button row.
func (p *Panel) AddButton(spec ButtonSpec) (ID, error) {
	return p.add(&panelItem{kind: itemButton, name: spec.Name, button: spec}, spec.Def)
}

// AddSeparator adds a separator line.
func (p *Panel) AddSeparator(name string, def Definition) (ID, error) {
	return p.add(&panelItem{kind: itemSeparator, name: name}, def)
}

// Refresh forces read-only values to be re-read on the next frame.
func (p *Panel) Refresh() error {
	p.stale = true
	return nil
}

// SetParam implements Backend.
func (p *Panel) SetParam(varName, param string, values []string) error {
	if varName == "" || varName == p.name {
		return p.setBarParam(param, values)
	}
	if it, ok := p.byName[varName]; ok {
		return p.setItemParam(it, param, values)
	}
	if g, ok := p.groups[varName]; ok {
		return setGroupParam(g, param, values)
	}
	return fmt.Errorf("%q: %w", varName, ErrUnknownVar)
}

// GetParam implements Backend.
func (p *Panel) GetParam(varName, param string) ([]string, error) {
	if varName == "" || varName == p.name {
		return p.barParam(param)
	}
	if it, ok := p.byName[varName]; ok {
		return it.paramValues(param)
	}
	if g, ok := p.groups[varName]; ok {
		switch param {
		case "opened":
			return []string{strconv.FormatBool(g.open)}, nil
		case "label":
			return []string{g.label}, nil
		}
		return nil, fmt.Errorf("group %s: %w", param, ErrUnknownParam)
	}
	return nil, fmt.Errorf("%q: %w", varName, ErrUnknownVar)
}

func (p *Panel) setBarParam(param string, values []string) error {
	joined := strings.Join(values, " ")
	switch param {
	case "label":
		p.label = joined
	case "visible", "iconified":
		b, err := ParseBool(joined)
		if err != nil {
			return err
		}
		if param == "visible" {
			p.visible = b
		} else {
			p.iconified = b
		}
	case "position", "size":
		v, err := parseVec2(joined)
		if err != nil {
			return err
		}
		if param == "position" {
			p.pos = v
		} else {
			p.size = v
		}
	case "refresh":
		f, err := strconv.ParseFloat(joined, 32)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: refresh %q", ErrParse, joined)
		}
		p.refresh = float32(f)
	default:
		return fmt.Errorf("bar %s: %w", param, ErrUnknownParam)
	}
	return nil
}

func (p *Panel) barParam(param string) ([]string, error) {
	switch param {
	case "label":
		return []string{p.title()}, nil
	case "visible":
		return []string{strconv.FormatBool(p.visible)}, nil
	case "iconified":
		return []string{strconv.FormatBool(p.iconified)}, nil
	case "position":
		return formatVec2(p.pos), nil
	case "size":
		return formatVec2(p.size), nil
	case "refresh":
		return []string{strconv.FormatFloat(float64(p.refresh), 'g', -1, 32)}, nil
	}
	return nil, fmt.Errorf("bar %s: %w", param, ErrUnknownParam)
}

func (p *Panel) setItemParam(it *panelItem, param string, values []string) error {
	if err := checkItemParam(it, param, values); err != nil {
		return err
	}
	p.commitItemParam(it, param, values)
	return nil
}

// checkItemParam validates a variable parameter without touching the panel.
func checkItemParam(it *panelItem, param string, values []string) error {
	joined := strings.Join(values, " ")
	switch param {
	case "label", "help", "group":
	case "visible", "readonly":
		if _, err := ParseBool(joined); err != nil {
			return err
		}
	case "min", "max", "step":
		if _, err := strconv.ParseFloat(joined, 64); err != nil {
			return fmt.Errorf("%w: %s %q", ErrParse, param, joined)
		}
	case "precision":
		if n, err := strconv.Atoi(joined); err != nil || n < 0 || n > 12 {
			return fmt.Errorf("%w: precision %q", ErrParse, joined)
		}
	case "key":
		if ui.KeyByName(joined) == ui.KeyNone {
			return fmt.Errorf("%w: key %q", ErrParse, joined)
		}
	default:
		return fmt.Errorf("%q %s: %w", it.name, param, ErrUnknownParam)
	}
	return nil
}

func (p *Panel) commitItemParam(it *panelItem, param string, values []string) {
	if param == "group" {
		if g := strings.Join(values, " "); g != "" {
			if _, ok := p.groups[g]; !ok {
				p.groups[g] = &panelGroup{open: true}
			}
		}
	}
	it.params[param] = append([]string(nil), values...)
}

func setGroupParam(g *panelGroup, param string, values []string) error {
	joined := strings.Join(values, " ")
	switch param {
	case "opened":
		b, err := ParseBool(joined)
		if err != nil {
			return err
		}
		g.open = b
		g.synced = false
	case "label":
		g.label = joined
	default:
		return fmt.Errorf("group %s: %w", param, ErrUnknownParam)
	}
	return nil
}

func (it *panelItem) paramValues(param string) ([]string, error) {
	if v, ok := it.params[param]; ok {
		return append([]string(nil), v...), nil
	}
	switch param {
	case "label":
		return []string{it.name}, nil
	case "visible":
		return []string{"true"}, nil
	case "readonly":
		return []string{strconv.FormatBool(it.v.ReadOnly)}, nil
	case "help", "group", "min", "max", "step", "precision", "key":
		return nil, nil
	}
	return nil, fmt.Errorf("%q %s: %w", it.name, param, ErrUnknownParam)
}

func (it *panelItem) param(key string) string {
	return strings.Join(it.params[key], " ")
}

func (it *panelItem) float(key string) (float64, bool) {
	v, ok := it.params[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Join(v, " "), 64)
	return f, err == nil
}

func (it *panelItem) flag(key string, def bool) bool {
	v, ok := it.params[key]
	if !ok {
		return def
	}
	b, err := ParseBool(strings.Join(v, " "))
	if err != nil {
		return def
	}
	return b
}

func (it *panelItem) label() string {
	if l := it.param("label"); l != "" {
		return l
	}
	return it.name
}

func (it *panelItem) readOnly() bool {
	return it.v.ReadOnly || it.flag("readonly", false)
}

func (p *Panel) title() string {
	if p.label != "" {
		return p.label
	}
	return p.name
}

func parseVec2(s string) (ui.Vec2, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return ui.Vec2{}, fmt.Errorf("%w: want \"x y\", got %q", ErrParse, s)
	}
	x, errX := strconv.ParseFloat(f[0], 32)
	y, errY := strconv.ParseFloat(f[1], 32)
	if errX != nil || errY != nil {
		return ui.Vec2{}, fmt.Errorf("%w: want \"x y\", got %q", ErrParse, s)
	}
	return ui.Vec2{X: float32(x), Y: float32(y)}, nil
}

func formatVec2(v ui.Vec2) []string {
	return []string{
		strconv.FormatFloat(float64(v.X), 'g', -1, 32),
		strconv.FormatFloat(float64(v.Y), 'g', -1, 32),
	}
}

// Draw draws the bar and applies this frame's edits to the variables.
func (p *Panel) Draw(ctx *ui.Context) {
	if !p.visible {
		return
	}
	p.clock += ctx.DeltaTime
	p.handleKeys(ctx)

	ctx.SetCursorPos(p.pos.X, p.pos.Y)
	ctx.PushID(p.name)
	defer ctx.PopID()

	if p.iconified {
		if ctx.Button(p.title(), ui.WithID("#restore")) {
			p.iconified = false
		}
		return
	}

	opts := []ui.LayoutOption{ui.Gap(2)}
	if p.size.X > 0 {
		opts = append(opts, ui.Width(p.size.X))
	}
	ctx.Panel(p.title(), opts...)(func() {
		drawn := make(map[string]bool, len(p.groups))
		for _, it := range p.items {
			g := it.param("group")
			if g == "" {
				if it.flag("visible", true) {
					p.drawItem(ctx, it)
				}
				continue
			}
			if !drawn[g] {
				drawn[g] = true
				p.drawGroup(ctx, g)
			}
		}
	})
	p.stale = false
}

// drawGroup draws a collapsible group at the position of its first member.
func (p *Panel) drawGroup(ctx *ui.Context, name string) {
	g := p.groups[name]
	id := "#group:" + name
	if !g.synced {
		ui.SetState(ctx, ctx.GetID(id), ui.CollapsingHeaderState{Open: g.open})
		g.synced = true
	}
	label := g.label
	if label == "" {
		label = name
	}
	g.open = ctx.CollapsingHeader(label, ui.WithID(id))
	if !g.open {
		return
	}
	for _, it := range p.items {
		if it.param("group") == name && it.flag("visible", true) {
			p.drawItem(ctx, it)
		}
	}
}

func (p *Panel) drawItem(ctx *ui.Context, it *panelItem) {
	opts := []ui.Option{ui.WithID(it.name)}
	if help := it.param("help"); help != "" {
		opts = append(opts, ui.WithTooltip(help))
	}

	switch it.kind {
	case itemSeparator:
		ctx.Separator()
	case itemButton:
		if it.button.Func == nil {
			ctx.Text(it.label())
			return
		}
		if ctx.Button(it.label(), opts...) {
			p.press(it)
		}
	case itemVar:
		p.drawVar(ctx, it, opts)
	}
}

func (p *Panel) drawVar(ctx *ui.Context, it *panelItem, opts []ui.Option) {
	spec := it.v
	label := it.label()
	if it.readOnly() {
		ctx.LabelText(label, p.readOnlyText(it), opts...)
		return
	}

	v, err := spec.Slot.Load()
	if err != nil {
		p.log.Debug("panel: load failed", "name", it.name, "error", err)
		ctx.LabelText(label, "?", opts...)
		return
	}

	var edited any
	t := spec.Type
	switch {
	case t == TypeBoolCPP || t == TypeBool32:
		b := v.(bool)
		if ctx.Checkbox(label, &b, opts...) {
			edited = b
		}
	case t == TypeInt32:
		n := int(v.(int32))
		if p.drawInt(ctx, it, label, &n, opts) {
			edited = int32(n)
		}
	case t == TypeFloat:
		f := v.(float32)
		if p.drawFloat(ctx, it, label, &f, opts) {
			edited = f
		}
	case t == TypeDouble:
		f := v.(float64)
		if p.drawDouble(ctx, it, label, &f, opts) {
			edited = f
		}
	case t == TypeColor3F || t == TypeColor4F:
		fs, _ := toFloats(v)
		if t == TypeColor4F {
			opts = append(opts, ui.WithAlpha())
		}
		if ctx.ColorEdit(label, fs, opts...) {
			edited = makeVector(t, fs)
		}
	case t.components() > 0:
		fs, _ := toFloats(v)
		opts = append(opts, it.numberOpts(0.01)...)
		if ctx.DragFloatN(label, fs, opts...) {
			edited = makeVector(t, fs)
		}
	case t.IsEnum():
		vals, _ := spec.Types.EnumValues(t)
		labels := make([]string, len(vals))
		idx := -1
		for i, ev := range vals {
			labels[i] = ev.Label
			if ev.Value == v.(int32) {
				idx = i
			}
		}
		if ctx.ComboBox(label, &idx, labels, opts...) && idx >= 0 {
			edited = vals[idx].Value
		}
	}

	if edited != nil {
		if err := spec.Slot.Store(edited); err != nil {
			p.log.Warn("panel: store failed", "name", it.name, "error", err)
		}
	}
}

// numberOpts turns min/max/step/precision params into widget options.
func (it *panelItem) numberOpts(defaultSpeed float64) []ui.Option {
	var opts []ui.Option
	if step, ok := it.float("step"); ok && step > 0 {
		opts = append(opts, ui.WithStep(step), ui.WithDragSpeed(step))
	} else {
		opts = append(opts, ui.WithDragSpeed(defaultSpeed))
	}
	if minV, ok := it.float("min"); ok {
		opts = append(opts, ui.WithMin(minV))
	}
	if maxV, ok := it.float("max"); ok {
		opts = append(opts, ui.WithMax(maxV))
	}
	if prec, err := strconv.Atoi(it.param("precision")); err == nil {
		opts = append(opts, ui.WithFormat("%."+strconv.Itoa(prec)+"f"))
	}
	return opts
}

func (p *Panel) drawFloat(ctx *ui.Context, it *panelItem, label string, f *float32, opts []ui.Option) bool {
	minV, hasMin := it.float("min")
	maxV, hasMax := it.float("max")
	opts = append(opts, it.numberOpts(0.01)...)
	if hasMin && hasMax {
		return ctx.SliderFloat(label, f, float32(minV), float32(maxV), opts...)
	}
	return ctx.DragFloat(label, f, opts...)
}

// drawDouble keeps DOUBLE values in float64 end to end.
func (p *Panel) drawDouble(ctx *ui.Context, it *panelItem, label string, f *float64, opts []ui.Option) bool {
	minV, hasMin := it.float("min")
	maxV, hasMax := it.float("max")
	opts = append(opts, it.numberOpts(0.01)...)
	if hasMin && hasMax {
		return ctx.SliderFloat64(label, f, minV, maxV, opts...)
	}
	return ctx.DragFloat64(label, f, opts...)
}

func (p *Panel) drawInt(ctx *ui.Context, it *panelItem, label string, n *int, opts []ui.Option) bool {
	minV, hasMin := it.float("min")
	maxV, hasMax := it.float("max")
	opts = append(opts, it.numberOpts(0.1)...)
	if hasMin && hasMax {
		return ctx.SliderInt(label, n, int(minV), int(maxV), opts...)
	}
	return ctx.DragInt(label, n, opts...)
}

// readOnlyText formats a read-only value, re-reading it at most every
// refresh seconds unless Refresh was called.
func (p *Panel) readOnlyText(it *panelItem) string {
	if it.hasCache && !p.stale && p.refresh > 0 && p.clock-it.cachedAt < p.refresh {
		return it.cached
	}
	s := "?"
	if v, err := it.v.Slot.Load(); err == nil {
		if fs, err := it.v.Types.FormatValue(it.v.Type, v); err == nil {
			s = fs
		}
	}
	it.cached, it.cachedAt, it.hasCache = s, p.clock, true
	return s
}

func (p *Panel) handleKeys(ctx *ui.Context) {
	if ctx.Input == nil {
		return
	}
	for _, it := range p.items {
		key := it.param("key")
		if key == "" || !ctx.Input.KeyPressed(ui.KeyByName(key)) {
			continue
		}
		switch {
		case it.kind == itemButton && it.button.Func != nil:
			p.press(it)
		case it.kind == itemVar && !it.readOnly() &&
			(it.v.Type == TypeBoolCPP || it.v.Type == TypeBool32):
			if v, err := it.v.Slot.Load(); err == nil {
				if err := it.v.Slot.Store(!v.(bool)); err != nil {
					p.log.Warn("panel: store failed", "name", it.name, "error", err)
				}
			}
		}
	}
}

func (p *Panel) press(it *panelItem) {
	p.log.Debug("panel: button", "bar", p.name, "name", it.name)
	it.button.Func(it.button.ClientData)
}
