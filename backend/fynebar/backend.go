// Package fynebar is a tweakbar.Backend that builds the bar from fyne
// widgets. Put Content() in a window; edits are stored as soon as a widget
// reports them, and Refresh re-reads every variable into its widget.
package fynebar

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/go-theft-auto/tweakbar"
	"github.com/go-theft-auto/tweakbar/ui"
)

// Backend lays variables out one row each, with a label column on the left.
// Rows with a group parameter go into a collapsible accordion per group.
//
// Variable parameters: label, help, group, visible, readonly, min, max,
// step, precision and key. Bar parameters: label and visible. Groups take
// opened and label. help is accepted and kept but not shown.
type Backend struct {
	name   string
	title  *widget.Label
	body   *fyne.Container
	root   *fyne.Container
	rows   []*row
	byName map[string]*row
	groups map[string]*group
	nextID tweakbar.ID
	log    *slog.Logger
}

type group struct {
	name string
	acc  *widget.Accordion
	item *widget.AccordionItem
	rows *fyne.Container
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for store failures and rejected entries.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// New returns an empty backend. A fyne app must exist before the bar's
// widgets are shown.
func New(opts ...Option) *Backend {
	b := &Backend{log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	b.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	b.body = container.NewVBox()
	b.root = container.NewBorder(b.title, nil, nil, nil, container.NewVScroll(b.body))
	b.reset("")
	return b
}

// Content returns the object to place in a window.
func (b *Backend) Content() fyne.CanvasObject { return b.root }

// Control returns the input widget of a variable or button, or nil.
func (b *Backend) Control(name string) fyne.CanvasObject {
	if r, ok := b.byName[name]; ok {
		return r.control
	}
	return nil
}

func (b *Backend) reset(name string) {
	b.name = name
	b.rows = nil
	b.byName = make(map[string]*row)
	b.groups = make(map[string]*group)
	b.nextID = 1
	b.body.Objects = nil
	b.body.Refresh()
	b.title.SetText(name)
	b.root.Show()
}

// NewBar implements tweakbar.Backend.
func (b *Backend) NewBar(name string) error {
	if name == "" {
		return fmt.Errorf("bar name: %w", tweakbar.ErrInvalidName)
	}
	b.reset(name)
	return nil
}

func (b *Backend) add(r *row, def tweakbar.Definition) (tweakbar.ID, error) {
	if r.name != "" {
		if _, dup := b.byName[r.name]; dup {
			return 0, fmt.Errorf("%q: %w", r.name, tweakbar.ErrDuplicateName)
		}
	}
	r.params = make(map[string][]string)
	for _, p := range def {
		if err := r.checkParam(p.Key, p.Value); err != nil {
			return 0, err
		}
		r.params[p.Key] = []string{p.Value}
	}
	r.build(b)
	r.id = b.nextID
	b.nextID++
	b.rows = append(b.rows, r)
	if r.name != "" {
		b.byName[r.name] = r
	}
	b.place(r)
	r.applyParams()
	return r.id, nil
}

// place puts the row into the bar body or its group.
func (b *Backend) place(r *row) {
	name := r.param("group")
	if name == "" {
		b.body.Add(r.box)
		return
	}
	g := b.group(name)
	g.rows.Add(r.box)
}

func (b *Backend) group(name string) *group {
	if g, ok := b.groups[name]; ok {
		return g
	}
	g := &group{name: name, rows: container.NewVBox()}
	g.item = widget.NewAccordionItem(name, g.rows)
	g.acc = widget.NewAccordion(g.item)
	g.acc.Open(0)
	b.groups[name] = g
	b.body.Add(g.acc)
	return g
}

func (b *Backend) ungroup(r *row) {
	for _, g := range b.groups {
		g.rows.Remove(r.box)
	}
	b.body.Remove(r.box)
}

// AddVar implements tweakbar.Backend.
func (b *Backend) AddVar(spec tweakbar.VarSpec) (tweakbar.ID, error) {
	return b.add(&row{kind: rowVar, name: spec.Name, spec: spec, log: b.log}, spec.Def)
}

// AddButton implements tweakbar.Backend.
func (b *Backend) AddButton(spec tweakbar.ButtonSpec) (tweakbar.ID, error) {
	return b.add(&row{kind: rowButton, name: spec.Name, button: spec, log: b.log}, spec.Def)
}

// AddSeparator implements tweakbar.Backend.
func (b *Backend) AddSeparator(name string, def tweakbar.Definition) (tweakbar.ID, error) {
	return b.add(&row{kind: rowSeparator, name: name, log: b.log}, def)
}

// TypedKey runs the hotkeys given with the key parameter: buttons are
// pressed and writable bools toggled. Install it with
// window.Canvas().SetOnTypedKey.
func (b *Backend) TypedKey(ev *fyne.KeyEvent) {
	pressed := ui.KeyByName(strings.ToUpper(string(ev.Name)))
	if pressed == ui.KeyNone || !b.root.Visible() {
		return
	}
	for _, r := range b.rows {
		key := r.param("key")
		if key == "" || ui.KeyByName(key) != pressed {
			continue
		}
		switch {
		case r.kind == rowButton && r.button.Func != nil:
			r.btn.OnTapped()
		case r.check != nil && !r.readOnly():
			r.check.SetChecked(!r.check.Checked)
		}
	}
}

// Refresh implements tweakbar.Backend.
func (b *Backend) Refresh() error {
	for _, r := range b.rows {
		r.sync()
	}
	return nil
}

// SetParam implements tweakbar.Backend.
func (b *Backend) SetParam(varName, param string, values []string) error {
	joined := strings.Join(values, " ")
	if varName == "" || varName == b.name {
		switch param {
		case "label":
			if joined == "" {
				joined = b.name
			}
			b.title.SetText(joined)
		case "visible":
			v, err := tweakbar.ParseBool(joined)
			if err != nil {
				return err
			}
			if v {
				b.root.Show()
			} else {
				b.root.Hide()
			}
		default:
			return fmt.Errorf("bar %s: %w", param, tweakbar.ErrUnknownParam)
		}
		return nil
	}
	if r, ok := b.byName[varName]; ok {
		if err := r.checkParam(param, joined); err != nil {
			return err
		}
		old := r.param("group")
		r.params[param] = append([]string(nil), values...)
		if param == "group" && joined != old {
			b.ungroup(r)
			b.place(r)
		}
		r.applyParams()
		return nil
	}
	if g, ok := b.groups[varName]; ok {
		switch param {
		case "opened":
			v, err := tweakbar.ParseBool(joined)
			if err != nil {
				return err
			}
			if v {
				g.acc.Open(0)
			} else {
				g.acc.Close(0)
			}
		case "label":
			if joined == "" {
				joined = g.name
			}
			g.item.Title = joined
			g.acc.Refresh()
		default:
			return fmt.Errorf("group %s: %w", param, tweakbar.ErrUnknownParam)
		}
		return nil
	}
	return fmt.Errorf("%q: %w", varName, tweakbar.ErrUnknownVar)
}

// GetParam implements tweakbar.Backend.
func (b *Backend) GetParam(varName, param string) ([]string, error) {
	if varName == "" || varName == b.name {
		switch param {
		case "label":
			return []string{b.title.Text}, nil
		case "visible":
			return []string{strconv.FormatBool(b.root.Visible())}, nil
		}
		return nil, fmt.Errorf("bar %s: %w", param, tweakbar.ErrUnknownParam)
	}
	if r, ok := b.byName[varName]; ok {
		if v, ok := r.params[param]; ok {
			return append([]string(nil), v...), nil
		}
		switch param {
		case "label":
			return []string{r.name}, nil
		case "visible":
			return []string{"true"}, nil
		case "readonly":
			return []string{strconv.FormatBool(r.spec.ReadOnly)}, nil
		case "help", "group", "min", "max", "step", "precision", "key":
			return nil, nil
		}
		return nil, fmt.Errorf("%q %s: %w", varName, param, tweakbar.ErrUnknownParam)
	}
	if g, ok := b.groups[varName]; ok {
		switch param {
		case "opened":
			return []string{strconv.FormatBool(g.item.Open)}, nil
		case "label":
			return []string{g.item.Title}, nil
		}
		return nil, fmt.Errorf("group %s: %w", param, tweakbar.ErrUnknownParam)
	}
	return nil, fmt.Errorf("%q: %w", varName, tweakbar.ErrUnknownVar)
}

type rowKind uint8

const (
	rowVar rowKind = iota
	rowButton
	rowSeparator
)

// row is one variable, button or separator and the widgets showing it.
type row struct {
	kind   rowKind
	id     tweakbar.ID
	name   string
	spec   tweakbar.VarSpec
	button tweakbar.ButtonSpec
	params map[string][]string
	log    *slog.Logger

	box     *fyne.Container
	caption *widget.Label
	control fyne.CanvasObject
	value   *widget.Label // shown instead of the control when read-only
	readout *widget.Label // slider value

	check  *widget.Check
	slider *widget.Slider
	entry  *widget.Entry
	sel    *widget.Select
	swatch *canvas.Rectangle
	btn    *widget.Button

	// syncing is set while sync writes into widgets, so their change
	// handlers do not store the value back.
	syncing bool
}

func (r *row) param(key string) string { return strings.Join(r.params[key], " ") }

func (r *row) float(key string) (float64, bool) {
	v, ok := r.params[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Join(v, " "), 64)
	return f, err == nil
}

func (r *row) flag(key string, def bool) bool {
	v, ok := r.params[key]
	if !ok {
		return def
	}
	b, err := tweakbar.ParseBool(strings.Join(v, " "))
	if err != nil {
		return def
	}
	return b
}

func (r *row) checkParam(key, value string) error {
	switch key {
	case "label", "help", "group":
	case "visible", "readonly":
		if _, err := tweakbar.ParseBool(value); err != nil {
			return err
		}
	case "min", "max", "step":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %s %q", tweakbar.ErrParse, key, value)
		}
	case "precision":
		if n, err := strconv.Atoi(value); err != nil || n < 0 || n > 12 {
			return fmt.Errorf("%w: precision %q", tweakbar.ErrParse, value)
		}
	case "key":
		if ui.KeyByName(value) == ui.KeyNone {
			return fmt.Errorf("%w: key %q", tweakbar.ErrParse, value)
		}
	default:
		return fmt.Errorf("%q %s: %w", r.name, key, tweakbar.ErrUnknownParam)
	}
	return nil
}

func (r *row) readOnly() bool { return r.spec.ReadOnly || r.flag("readonly", false) }

func (r *row) labelText() string {
	if l := r.param("label"); l != "" {
		return l
	}
	return r.name
}

func (r *row) build(b *Backend) {
	switch r.kind {
	case rowSeparator:
		r.box = container.NewVBox(widget.NewSeparator())
		return
	case rowButton:
		r.btn = widget.NewButton(r.labelText(), func() {
			if r.button.Func != nil {
				b.log.Debug("fynebar: button", "bar", b.name, "name", r.name)
				r.button.Func(r.button.ClientData)
			}
		})
		if r.button.Func == nil {
			r.btn.Disable()
		}
		r.control = r.btn
		r.box = container.NewVBox(r.btn)
		return
	}

	r.caption = widget.NewLabel(r.labelText())
	r.value = widget.NewLabel("")
	t := r.spec.Type
	switch {
	case t == tweakbar.TypeBoolCPP || t == tweakbar.TypeBool32:
		r.check = widget.NewCheck("", func(v bool) { r.store(v) })
		r.control = r.check
	case t.IsEnum():
		vals, _ := r.spec.Types.EnumValues(t)
		labels := make([]string, len(vals))
		for i, ev := range vals {
			labels[i] = ev.Label
		}
		r.sel = widget.NewSelect(labels, func(label string) {
			for _, ev := range vals {
				if ev.Label == label {
					r.store(ev.Value)
					return
				}
			}
		})
		r.control = r.sel
	case r.isScalar() && r.hasRange():
		r.slider = widget.NewSlider(0, 1)
		r.readout = widget.NewLabel("")
		r.slider.OnChanged = func(f float64) {
			r.readout.SetText(r.formatNumber(f))
			if t == tweakbar.TypeInt32 {
				r.store(int32(math.Round(f)))
			} else {
				r.store(f)
			}
		}
		r.control = container.NewBorder(nil, nil, nil, r.readout, r.slider)
	default:
		r.entry = widget.NewEntry()
		r.entry.OnSubmitted = func(text string) { r.submit(text) }
		r.control = r.entry
		if t == tweakbar.TypeColor3F || t == tweakbar.TypeColor4F {
			r.swatch = canvas.NewRectangle(color.Transparent)
			r.swatch.SetMinSize(fyne.NewSize(20, 20))
			r.control = container.NewBorder(nil, nil, r.swatch, nil, r.entry)
		}
	}
	r.box = container.NewBorder(nil, nil, r.caption, nil, container.NewStack(r.control, r.value))
}

func (r *row) isScalar() bool {
	t := r.spec.Type
	return t == tweakbar.TypeInt32 || t == tweakbar.TypeFloat || t == tweakbar.TypeDouble
}

func (r *row) hasRange() bool {
	_, hasMin := r.float("min")
	_, hasMax := r.float("max")
	return hasMin && hasMax
}

// applyParams pushes the current parameters into the widgets and re-reads
// the value.
func (r *row) applyParams() {
	if r.flag("visible", true) {
		r.box.Show()
	} else {
		r.box.Hide()
	}
	switch r.kind {
	case rowButton:
		r.btn.SetText(r.labelText())
		return
	case rowSeparator:
		return
	}
	r.caption.SetText(r.labelText())

	if r.slider != nil {
		lo, _ := r.float("min")
		hi, _ := r.float("max")
		r.slider.Min, r.slider.Max = lo, hi
		if step, ok := r.float("step"); ok && step > 0 {
			r.slider.Step = step
		} else if r.spec.Type == tweakbar.TypeInt32 {
			r.slider.Step = 1
		} else {
			r.slider.Step = (hi - lo) / 100
		}
	}

	if r.readOnly() {
		r.control.Hide()
		r.value.Show()
	} else {
		r.control.Show()
		r.value.Hide()
	}
	r.sync()
}

// sync reads the slot into the widgets.
func (r *row) sync() {
	if r.kind != rowVar {
		return
	}
	v, err := r.spec.Slot.Load()
	if err != nil {
		r.log.Debug("fynebar: load failed", "name", r.name, "error", err)
		r.value.SetText("?")
		return
	}
	r.syncing = true
	defer func() { r.syncing = false }()

	text := r.format(v)
	r.value.SetText(text)
	if r.readOnly() {
		return
	}
	switch {
	case r.check != nil:
		r.check.SetChecked(v.(bool))
	case r.sel != nil:
		if label, err := r.spec.Types.FormatValue(r.spec.Type, v); err == nil {
			r.sel.SetSelected(label)
		} else {
			r.sel.ClearSelected()
		}
	case r.slider != nil:
		r.slider.SetValue(toFloat(v))
		r.readout.SetText(text)
	case r.entry != nil:
		r.entry.SetText(text)
	}
	if r.swatch != nil {
		r.swatch.FillColor = swatchColor(v)
		r.swatch.Refresh()
	}
}

// format renders a value for display, honoring precision for scalars.
func (r *row) format(v any) string {
	if r.isScalar() && r.spec.Type != tweakbar.TypeInt32 {
		if _, ok := r.params["precision"]; ok {
			return r.formatNumber(toFloat(v))
		}
	}
	s, err := r.spec.Types.FormatValue(r.spec.Type, v)
	if err != nil {
		return "?"
	}
	return s
}

func (r *row) formatNumber(f float64) string {
	if r.spec.Type == tweakbar.TypeInt32 {
		return strconv.FormatInt(int64(math.Round(f)), 10)
	}
	if prec, err := strconv.Atoi(r.param("precision")); err == nil {
		return strconv.FormatFloat(f, 'f', prec, 64)
	}
	bits := 64
	if r.spec.Type == tweakbar.TypeFloat {
		bits = 32
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func (r *row) submit(text string) {
	v, err := r.spec.Types.ParseValue(r.spec.Type, strings.TrimSpace(text))
	if err != nil {
		r.log.Warn("fynebar: entry rejected", "name", r.name, "text", text, "error", err)
		r.sync()
		return
	}
	if r.isScalar() {
		v = r.clamp(v)
	}
	r.store(v)
	r.sync()
}

func (r *row) clamp(v any) any {
	f := toFloat(v)
	lo, hasMin := r.float("min")
	hi, hasMax := r.float("max")
	if hasMin && f < lo {
		f = lo
	}
	if hasMax && f > hi {
		f = hi
	}
	switch r.spec.Type {
	case tweakbar.TypeInt32:
		return int32(math.Round(f))
	case tweakbar.TypeFloat:
		return float32(f)
	}
	return f
}

func (r *row) store(v any) {
	if r.syncing || r.readOnly() {
		return
	}
	if err := r.spec.Slot.Store(v); err != nil {
		r.log.Warn("fynebar: store failed", "name", r.name, "error", err)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func swatchColor(v any) color.Color {
	channel := func(f float32) uint8 {
		return uint8(math.Round(float64(min(max(f, 0), 1)) * 255))
	}
	switch c := v.(type) {
	case tweakbar.Color3:
		return color.NRGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
	case tweakbar.Color4:
		return color.NRGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
	}
	return color.Transparent
}
