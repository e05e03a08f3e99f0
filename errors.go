package tweakbar

import (
	"errors"
	"fmt"
)

// Errors returned by registration, parameter and persistence calls.
// Compare with errors.Is; returned errors wrap these with the offending name.
var (
	ErrDuplicateName    = errors.New("duplicate name")
	ErrInvalidName      = errors.New("invalid name")
	ErrUnknownType      = errors.New("unknown type")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnknownVar       = errors.New("unknown variable")
	ErrUnknownParam     = errors.New("unknown parameter")
	ErrParse            = errors.New("parse error")
	ErrUnknownEnumValue = errors.New("unknown enum value")
	ErrReadOnly         = errors.New("read-only variable")
	ErrBadDefinition    = errors.New("bad definition string")
)

// LineError describes one line of a settings file that could not be applied.
type LineError struct {
	Line int
	Name string
	Err  error
}

func (e *LineError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
