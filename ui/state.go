package ui

import "hash/fnv"

// ID names a widget across frames. Bar rows derive theirs from the bar and
// variable names, so edit state survives a re-registration.
type ID uint64

// StateStore keeps widget state, such as an open combo or a drag in
// progress, between frames.
type StateStore interface {
	Get(id ID) (any, bool)
	Set(id ID, value any)
	Delete(id ID)
}

// MapStateStore is the default StateStore.
type MapStateStore map[ID]any

func (m MapStateStore) Get(id ID) (any, bool) {
	v, ok := m[id]
	return v, ok
}

func (m MapStateStore) Set(id ID, value any) {
	m[id] = value
}

func (m MapStateStore) Delete(id ID) {
	delete(m, id)
}

// GetState retrieves typed state from the context.
// Returns defaultVal if the state doesn't exist or has wrong type.
func GetState[T any](ctx *Context, id ID, defaultVal T) T {
	if v, ok := ctx.stateStore.Get(id); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	return defaultVal
}

// SetState stores typed state in the context.
func SetState[T any](ctx *Context, id ID, value T) {
	ctx.stateStore.Set(id, value)
}

// GetID derives a widget ID from a label and the enclosing ID scope.
// The same label in the same scope yields the same ID regardless of call order.
func (ctx *Context) GetID(label string) ID {
	h := fnv.New64a()
	var parent [8]byte
	p := uint64(ctx.CurrentID())
	for i := range parent {
		parent[i] = byte(p >> (8 * i))
	}
	h.Write(parent[:])
	h.Write([]byte(label))
	return ID(h.Sum64())
}

// PushID opens a nested ID scope.
func (ctx *Context) PushID(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PopID closes the innermost ID scope.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the current parent ID (top of stack).
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}

// SliderState is kept while the mouse holds a slider grab.
type SliderState struct {
	Dragging bool
}

// DragState is kept while a number field is dragged. Values are derived
// from the start position so a drag never accumulates rounding.
type DragState struct {
	Dragging       bool
	DragStartX     float32
	DragStartValue float64
}

// ComboBoxState is an enum row's dropdown.
type ComboBoxState struct {
	Open bool
}

// CollapsingHeaderState backs a group header.
type CollapsingHeaderState struct {
	Open bool
}
