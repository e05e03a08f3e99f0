package tweakbar

import (
	"fmt"
	"reflect"
)

// Slot reads and writes a registered variable's current value in the
// canonical form for its tag (see coerce). Bars never own the storage behind
// a slot; the host keeps it alive while the bar exists.
type Slot interface {
	Load() (any, error)
	Store(v any) error
}

// SetVarFunc receives a new value in its canonical form.
type SetVarFunc func(value any, clientData any)

// GetVarFunc returns the current value. Any type coerce accepts for the
// variable's tag is fine.
type GetVarFunc func(clientData any) any

// ButtonFunc runs when a button is pressed.
type ButtonFunc func(clientData any)

// TypedCallbacks adapts a typed setter/getter pair to SetVarFunc/GetVarFunc.
// T must be the canonical type for the variable's tag; values of any other
// type are dropped by the setter.
//
//	set, get := tweakbar.TypedCallbacks(light.SetIntensity, light.Intensity)
//	bar.AddVarCB("intensity", tweakbar.TypeFloat, set, get, nil, "min=0 max=4")
func TypedCallbacks[T any](set func(T), get func() T) (SetVarFunc, GetVarFunc) {
	var s SetVarFunc
	if set != nil {
		s = func(v any, _ any) {
			if tv, ok := v.(T); ok {
				set(tv)
			}
		}
	}
	var g GetVarFunc
	if get != nil {
		g = func(any) any { return get() }
	}
	return s, g
}

// pointerSlot accesses host storage through a pointer whose element kind
// matches the tag. Named types (type Mode int32) are accepted.
type pointerSlot struct {
	tag  TypeTag
	elem reflect.Value
}

func newPointerSlot(tag TypeTag, ptr any) (*pointerSlot, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: need a non-nil pointer, got %T", ErrTypeMismatch, ptr)
	}
	elem := rv.Elem()
	if !storageMatches(tag, elem.Type()) {
		return nil, fmt.Errorf("%w: %T cannot hold tag %d", ErrTypeMismatch, ptr, tag)
	}
	return &pointerSlot{tag: tag, elem: elem}, nil
}

func storageMatches(tag TypeTag, t reflect.Type) bool {
	switch {
	case tag == TypeBoolCPP:
		return t.Kind() == reflect.Bool
	case tag == TypeBool32 || tag == TypeInt32 || tag.IsEnum():
		return t.Kind() == reflect.Int32
	case tag == TypeFloat:
		return t.Kind() == reflect.Float32
	case tag == TypeDouble:
		return t.Kind() == reflect.Float64
	case tag.components() > 0:
		return t.Kind() == reflect.Array && t.Len() == tag.components() &&
			t.Elem().Kind() == reflect.Float32
	}
	return false
}

func (s *pointerSlot) Load() (any, error) {
	e := s.elem
	switch {
	case s.tag == TypeBoolCPP:
		return e.Bool(), nil
	case s.tag == TypeBool32:
		return e.Int() != 0, nil
	case s.tag == TypeInt32 || s.tag.IsEnum():
		return int32(e.Int()), nil
	case s.tag == TypeFloat:
		return float32(e.Float()), nil
	case s.tag == TypeDouble:
		return e.Float(), nil
	}
	fs := make([]float32, e.Len())
	for i := range fs {
		fs[i] = float32(e.Index(i).Float())
	}
	return makeVector(s.tag, fs), nil
}

func (s *pointerSlot) Store(v any) error {
	cv, err := coerce(s.tag, v)
	if err != nil {
		return err
	}
	e := s.elem
	switch {
	case s.tag == TypeBoolCPP:
		e.SetBool(cv.(bool))
	case s.tag == TypeBool32:
		if cv.(bool) {
			e.SetInt(1)
		} else {
			e.SetInt(0)
		}
	case s.tag == TypeInt32 || s.tag.IsEnum():
		e.SetInt(int64(cv.(int32)))
	case s.tag == TypeFloat:
		e.SetFloat(float64(cv.(float32)))
	case s.tag == TypeDouble:
		e.SetFloat(cv.(float64))
	default:
		fs, _ := toFloats(cv)
		for i, f := range fs {
			e.Index(i).SetFloat(float64(f))
		}
	}
	return nil
}

// callbackSlot reaches the value through host callbacks. A nil setter makes
// the variable read-only.
type callbackSlot struct {
	tag        TypeTag
	set        SetVarFunc
	get        GetVarFunc
	clientData any
}

func (s *callbackSlot) Load() (any, error) {
	return coerce(s.tag, s.get(s.clientData))
}

func (s *callbackSlot) Store(v any) error {
	if s.set == nil {
		return ErrReadOnly
	}
	cv, err := coerce(s.tag, v)
	if err != nil {
		return err
	}
	s.set(cv, s.clientData)
	return nil
}
