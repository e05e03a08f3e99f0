package tweakbar

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-theft-auto/tweakbar/ui"
)

// Bar is a tweak bar whose read-write variables can be saved to and loaded
// from a text file. Registration calls mirror the widget library's own and
// add a bookkeeping step.
//
// A Bar is not safe for concurrent use; keep it on the UI thread.
type Bar struct {
	name    string
	backend Backend
	types   *TypeTable
	stdout  io.Writer
	log     *slog.Logger

	// Recorded variables, each in registration order. Direct entries are
	// written before callback entries.
	direct    []entry
	callbacks []entry
}

type entry struct {
	name string
	tag  TypeTag
	slot Slot
}

// Option configures a Bar.
type Option func(*Bar)

// WithBackend sets the widget library. The default is a new Panel.
func WithBackend(b Backend) Option {
	return func(bar *Bar) { bar.backend = b }
}

// WithTypeTable shares a type table (and its enums) between bars.
func WithTypeTable(t *TypeTable) Option {
	return func(bar *Bar) { bar.types = t }
}

// WithStdout sets where Save("") writes. The default is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(bar *Bar) { bar.stdout = w }
}

// WithLogger replaces the package logger for this bar.
func WithLogger(l *slog.Logger) Option {
	return func(bar *Bar) { bar.log = l }
}

// New creates a bar named name on its backend.
func New(name string, opts ...Option) (*Bar, error) {
	b := &Bar{
		stdout: os.Stdout,
		log:    defaultLogger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.backend == nil {
		b.backend = NewPanel()
	}
	if b.types == nil {
		b.types = NewTypeTable()
	}
	if err := b.NewBar(name); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBar re-creates the underlying bar under a new name. Recorded variables
// are kept, so their storage is still saved and loaded.
func (b *Bar) NewBar(name string) error {
	if err := b.backend.NewBar(name); err != nil {
		return fmt.Errorf("new bar %q: %w", name, err)
	}
	b.name = name
	return nil
}

// Name returns the bar name.
func (b *Bar) Name() string { return b.name }

// Backend returns the widget library the bar drives.
func (b *Bar) Backend() Backend { return b.backend }

// Types returns the bar's type table.
func (b *Bar) Types() *TypeTable { return b.types }

// VarOption configures a read-write registration.
type VarOption func(*varOptions)

type varOptions struct {
	record bool
}

// NoRecord keeps a read-write variable out of Save and Load.
func NoRecord() VarOption {
	return func(o *varOptions) { o.record = false }
}

func applyVarOptions(opts []VarOption) varOptions {
	o := varOptions{record: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AddVarRW registers a variable stored at ptr, which must point to the Go
// storage listed for typ. The variable is recorded unless NoRecord is given.
// A recorded name must not contain whitespace or start with "#", which would
// make its settings line unreadable.
func (b *Bar) AddVarRW(name string, typ TypeTag, ptr any, def string, opts ...VarOption) (ID, error) {
	o := applyVarOptions(opts)
	slot, err := b.pointerSlot(name, typ, ptr)
	if err != nil {
		return 0, err
	}
	id, err := b.addVar(name, typ, slot, false, def, o.record)
	if err != nil {
		return 0, err
	}
	if o.record {
		b.forget(name)
		b.direct = append(b.direct, entry{name: name, tag: typ, slot: slot})
	}
	return id, nil
}

// AddVarCB registers a variable reached through callbacks. A nil set makes
// the variable read-only and unrecorded.
func (b *Bar) AddVarCB(name string, typ TypeTag, set SetVarFunc, get GetVarFunc, clientData any, def string, opts ...VarOption) (ID, error) {
	o := applyVarOptions(opts)
	if get == nil {
		return 0, fmt.Errorf("add %q: nil getter: %w", name, ErrTypeMismatch)
	}
	if !b.types.Known(typ) {
		return 0, fmt.Errorf("add %q: tag %d: %w", name, typ, ErrUnknownType)
	}
	record := o.record && set != nil
	slot := &callbackSlot{tag: typ, set: set, get: get, clientData: clientData}
	id, err := b.addVar(name, typ, slot, set == nil, def, record)
	if err != nil {
		return 0, err
	}
	if record {
		b.forget(name)
		b.callbacks = append(b.callbacks, entry{name: name, tag: typ, slot: slot})
	}
	return id, nil
}

// AddVarRO registers a display-only variable. It is never recorded.
func (b *Bar) AddVarRO(name string, typ TypeTag, ptr any, def string) (ID, error) {
	slot, err := b.pointerSlot(name, typ, ptr)
	if err != nil {
		return 0, err
	}
	return b.addVar(name, typ, slot, true, def, false)
}

// AddButton registers a button. It is never recorded.
func (b *Bar) AddButton(name string, fn ButtonFunc, clientData any, def string) (ID, error) {
	if name == "" {
		return 0, fmt.Errorf("add button: %w", ErrInvalidName)
	}
	d, err := ParseDefinition(def)
	if err != nil {
		return 0, fmt.Errorf("add button %q: %w", name, err)
	}
	id, err := b.backend.AddButton(ButtonSpec{Name: name, Func: fn, ClientData: clientData, Def: d})
	if err != nil {
		return 0, fmt.Errorf("add button %q: %w", name, err)
	}
	return id, nil
}

// AddSeparator adds a separator line. name may be empty.
func (b *Bar) AddSeparator(name, def string) (ID, error) {
	d, err := ParseDefinition(def)
	if err != nil {
		return 0, fmt.Errorf("add separator %q: %w", name, err)
	}
	id, err := b.backend.AddSeparator(name, d)
	if err != nil {
		return 0, fmt.Errorf("add separator %q: %w", name, err)
	}
	return id, nil
}

func (b *Bar) pointerSlot(name string, typ TypeTag, ptr any) (*pointerSlot, error) {
	if !b.types.Known(typ) {
		return nil, fmt.Errorf("add %q: tag %d: %w", name, typ, ErrUnknownType)
	}
	slot, err := newPointerSlot(typ, ptr)
	if err != nil {
		return nil, fmt.Errorf("add %q: %w", name, err)
	}
	return slot, nil
}

func (b *Bar) addVar(name string, typ TypeTag, slot Slot, readOnly bool, def string, record bool) (ID, error) {
	if name == "" || (record && !isRecordName(name)) {
		return 0, fmt.Errorf("add %q: %w", name, ErrInvalidName)
	}
	d, err := ParseDefinition(def)
	if err != nil {
		return 0, fmt.Errorf("add %q: %w", name, err)
	}
	id, err := b.backend.AddVar(VarSpec{
		Name:     name,
		Type:     typ,
		Types:    b.types,
		Slot:     slot,
		ReadOnly: readOnly,
		Def:      d,
	})
	if err != nil {
		return 0, fmt.Errorf("add %q: %w", name, err)
	}
	b.log.Debug("variable added", "bar", b.name, "name", name, "type", b.types.Name(typ),
		"readonly", readOnly, "record", record)
	return id, nil
}

// DefineEnum adds an enum type to the bar's type table. The returned tag is
// used for registration; the name is what settings files carry.
func (b *Bar) DefineEnum(name string, values []EnumVal) (TypeTag, error) {
	tag, err := b.types.DefineEnum(name, values)
	if err != nil {
		return TypeUndef, err
	}
	b.log.Debug("enum defined", "name", name, "values", len(values))
	return tag, nil
}

// TypeFromString resolves a type name through the bar's type table.
func (b *Bar) TypeFromString(text string) (TypeTag, bool) {
	return b.types.TypeFromString(text)
}

// SetParam sets a parameter of a variable, or of the bar when varName is ""
// or the bar name.
func (b *Bar) SetParam(varName, param string, values ...string) error {
	if err := b.backend.SetParam(varName, param, values); err != nil {
		return fmt.Errorf("set %s/%s: %w", varName, param, err)
	}
	return nil
}

// GetParam returns a parameter's current values.
func (b *Bar) GetParam(varName, param string) ([]string, error) {
	v, err := b.backend.GetParam(varName, param)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", varName, param, err)
	}
	return v, nil
}

// Refresh asks the backend to re-read every variable.
func (b *Bar) Refresh() error {
	return b.backend.Refresh()
}

// Draw draws the bar when its backend is immediate-mode. Retained backends
// ignore it.
func (b *Bar) Draw(ctx *ui.Context) {
	if d, ok := b.backend.(interface{ Draw(*ui.Context) }); ok {
		d.Draw(ctx)
	}
}

// forget drops a recorded name. Backends reject duplicates, so a recorded
// name only comes back after NewBar; the new registration replaces the old.
func (b *Bar) forget(name string) {
	drop := func(list []entry) []entry {
		out := list[:0]
		for _, e := range list {
			if e.name != name {
				out = append(out, e)
			}
		}
		return out
	}
	b.direct = drop(b.direct)
	b.callbacks = drop(b.callbacks)
}

// lookup finds a recorded variable by name.
func (b *Bar) lookup(name string) (entry, bool) {
	for _, e := range b.direct {
		if e.name == name {
			return e, true
		}
	}
	for _, e := range b.callbacks {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}

// ValueToString formats a recorded variable's current value as Save writes it.
func (b *Bar) ValueToString(name string) (string, error) {
	e, ok := b.lookup(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownVar)
	}
	return b.format(e)
}

func (b *Bar) format(e entry) (string, error) {
	v, err := e.slot.Load()
	if err != nil {
		return "", fmt.Errorf("%q: %w", e.name, err)
	}
	s, err := b.types.FormatValue(e.tag, v)
	if err != nil {
		return "", fmt.Errorf("%q: %w", e.name, err)
	}
	return s, nil
}

// SetValueFromString parses text as typ and stores it in the recorded
// variable name. typ must match the type the variable was registered with.
func (b *Bar) SetValueFromString(name string, typ TypeTag, text string) error {
	e, ok := b.lookup(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownVar)
	}
	if e.tag != typ {
		return fmt.Errorf("%q: file has %s, registered as %s: %w",
			name, b.types.Name(typ), b.types.Name(e.tag), ErrTypeMismatch)
	}
	v, err := b.types.ParseValue(typ, text)
	if err != nil {
		return err
	}
	return e.slot.Store(v)
}
