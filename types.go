package tweakbar

// TypeTag identifies how a variable's value is stored, drawn and written to a
// settings file. Built-in tags are fixed; enum tags are handed out by a
// TypeTable at run time.
type TypeTag int32

// Built-in types. The comment names the Go storage a pointer must refer to.
const (
	TypeUndef   TypeTag = iota
	TypeBoolCPP         // bool
	TypeBool32          // int32 holding 0 or 1
	TypeInt32           // int32
	TypeFloat           // float32
	TypeDouble          // float64
	TypeDir3F           // Dir3 or [3]float32
	TypeColor3F         // Color3 or [3]float32
	TypeColor4F         // Color4 or [4]float32
	TypeQuat4F          // Quat4 or [4]float32

	firstEnumTag
)

// Vector and color storage for the multi-component types.
type (
	Dir3   [3]float32
	Color3 [3]float32 // r, g, b in [0, 1]
	Color4 [4]float32 // r, g, b, a in [0, 1]
	Quat4  [4]float32 // x, y, z, w
)

// EnumVal is one literal of a user-defined enum type.
type EnumVal struct {
	Value int32
	Label string
}

// ID identifies a registered variable, button or separator within a backend.
// Valid IDs are positive.
type ID int

// components returns the number of float components of a vector tag, or 0.
func (t TypeTag) components() int {
	switch t {
	case TypeDir3F, TypeColor3F:
		return 3
	case TypeColor4F, TypeQuat4F:
		return 4
	}
	return 0
}

// IsEnum reports whether the tag was allocated for a user-defined enum.
func (t TypeTag) IsEnum() bool { return t >= firstEnumTag }
