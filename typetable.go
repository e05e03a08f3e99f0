package tweakbar

import (
	"fmt"
	"strings"
	"unicode"
)

// twPrefix is accepted in front of any type name on load.
const twPrefix = "TW_TYPE_"

var builtinTypeNames = map[TypeTag]string{
	TypeBoolCPP: "BOOLCPP",
	TypeBool32:  "BOOL32",
	TypeInt32:   "INT32",
	TypeFloat:   "FLOAT",
	TypeDouble:  "DOUBLE",
	TypeDir3F:   "DIR3F",
	TypeColor3F: "COLOR3F",
	TypeColor4F: "COLOR4F",
	TypeQuat4F:  "QUAT4F",
}

type enumType struct {
	name   string
	values []EnumVal
}

// TypeTable maps type names to tags. Built-in types are always present;
// enums are added with DefineEnum. A table may be shared by several bars so
// their files agree on enum names.
type TypeTable struct {
	byName map[string]TypeTag
	enums  map[TypeTag]*enumType
	next   TypeTag
}

// NewTypeTable returns a table holding only the built-in types.
func NewTypeTable() *TypeTable {
	t := &TypeTable{
		byName: make(map[string]TypeTag, len(builtinTypeNames)),
		enums:  make(map[TypeTag]*enumType),
		next:   firstEnumTag,
	}
	for tag, name := range builtinTypeNames {
		t.byName[name] = tag
	}
	return t
}

// TypeFromString resolves a type name as written in a settings file.
// The TW_TYPE_ prefix is optional.
func (t *TypeTable) TypeFromString(text string) (TypeTag, bool) {
	if tag, ok := t.byName[text]; ok {
		return tag, true
	}
	if rest, ok := strings.CutPrefix(text, twPrefix); ok {
		tag, ok := t.byName[rest]
		return tag, ok
	}
	return TypeUndef, false
}

// Name returns the file name of a tag, or "" if the table does not know it.
func (t *TypeTable) Name(tag TypeTag) string {
	if name, ok := builtinTypeNames[tag]; ok {
		return name
	}
	if e, ok := t.enums[tag]; ok {
		return e.name
	}
	return ""
}

// Known reports whether tag is a built-in or an enum of this table.
func (t *TypeTable) Known(tag TypeTag) bool {
	return t.Name(tag) != ""
}

// EnumValues returns the literals of an enum tag in definition order.
func (t *TypeTable) EnumValues(tag TypeTag) ([]EnumVal, bool) {
	e, ok := t.enums[tag]
	if !ok {
		return nil, false
	}
	return e.values, true
}

// DefineEnum adds an enum type. Names and labels must be non-empty tokens
// without whitespace since both appear verbatim in settings files.
func (t *TypeTable) DefineEnum(name string, values []EnumVal) (TypeTag, error) {
	if !isToken(name) {
		return TypeUndef, fmt.Errorf("define enum %q: %w", name, ErrInvalidName)
	}
	if _, ok := t.TypeFromString(name); ok || strings.HasPrefix(name, twPrefix) {
		return TypeUndef, fmt.Errorf("define enum %q: %w", name, ErrDuplicateName)
	}
	if len(values) == 0 {
		return TypeUndef, fmt.Errorf("define enum %q: no values: %w", name, ErrInvalidName)
	}

	seenLabel := make(map[string]bool, len(values))
	seenValue := make(map[int32]bool, len(values))
	for _, v := range values {
		if !isToken(v.Label) {
			return TypeUndef, fmt.Errorf("define enum %q: label %q: %w", name, v.Label, ErrInvalidName)
		}
		if seenLabel[v.Label] || seenValue[v.Value] {
			return TypeUndef, fmt.Errorf("define enum %q: %s=%d: %w", name, v.Label, v.Value, ErrDuplicateName)
		}
		seenLabel[v.Label] = true
		seenValue[v.Value] = true
	}

	tag := t.next
	t.next++
	t.byName[name] = tag
	t.enums[tag] = &enumType{name: name, values: append([]EnumVal(nil), values...)}
	return tag, nil
}

func (t *TypeTable) enumLabel(tag TypeTag, v int32) (string, bool) {
	vals, _ := t.EnumValues(tag)
	for _, ev := range vals {
		if ev.Value == v {
			return ev.Label, true
		}
	}
	return "", false
}

func (t *TypeTable) enumValue(tag TypeTag, label string) (int32, bool) {
	vals, _ := t.EnumValues(tag)
	for _, ev := range vals {
		if ev.Label == label {
			return ev.Value, true
		}
	}
	return 0, false
}

// isToken reports whether s is non-empty and contains no whitespace.
func isToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

// isRecordName reports whether s can start a settings line: a token that
// Load would not read as a comment.
func isRecordName(s string) bool {
	return isToken(s) && !strings.HasPrefix(s, commentPrefix)
}
