package tweakbar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values cross the Slot boundary in one canonical Go type per tag:
//
//	BOOLCPP, BOOL32  bool
//	INT32, enums     int32
//	FLOAT            float32
//	DOUBLE           float64
//	DIR3F            Dir3
//	COLOR3F          Color3
//	COLOR4F          Color4
//	QUAT4F           Quat4
//
// coerce converts the looser types a getter may return into that form.
func coerce(tag TypeTag, v any) (any, error) {
	switch {
	case tag == TypeBoolCPP || tag == TypeBool32:
		switch b := v.(type) {
		case bool:
			return b, nil
		}
		if n, ok := toInt64(v); ok {
			return n != 0, nil
		}
	case tag == TypeInt32 || tag.IsEnum():
		if n, ok := toInt64(v); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int32(n), nil
		}
	case tag == TypeFloat:
		if f, ok := toFloat64(v); ok {
			return float32(f), nil
		}
	case tag == TypeDouble:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case tag.components() > 0:
		if fs, ok := toFloats(v); ok && len(fs) == tag.components() {
			return makeVector(tag, fs), nil
		}
	}
	return nil, fmt.Errorf("%w: %T for tag %d", ErrTypeMismatch, v, tag)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}

func toFloats(v any) ([]float32, bool) {
	switch a := v.(type) {
	case Dir3:
		return a[:], true
	case Color3:
		return a[:], true
	case Color4:
		return a[:], true
	case Quat4:
		return a[:], true
	case [3]float32:
		return a[:], true
	case [4]float32:
		return a[:], true
	case []float32:
		return a, true
	case []float64:
		fs := make([]float32, len(a))
		for i, f := range a {
			fs[i] = float32(f)
		}
		return fs, true
	}
	return nil, false
}

func makeVector(tag TypeTag, fs []float32) any {
	switch tag {
	case TypeDir3F:
		return Dir3(fs)
	case TypeColor3F:
		return Color3(fs)
	case TypeColor4F:
		return Color4(fs)
	case TypeQuat4F:
		return Quat4(fs)
	}
	return nil
}

// FormatValue renders v as the value field of a settings line.
// Floats use the shortest text that parses back to the same bits.
func (t *TypeTable) FormatValue(tag TypeTag, v any) (string, error) {
	if !t.Known(tag) {
		return "", fmt.Errorf("format: tag %d: %w", tag, ErrUnknownType)
	}
	cv, err := coerce(tag, v)
	if err != nil {
		return "", err
	}

	switch tag {
	case TypeBoolCPP:
		return strconv.FormatBool(cv.(bool)), nil
	case TypeBool32:
		if cv.(bool) {
			return "1", nil
		}
		return "0", nil
	case TypeInt32:
		return strconv.FormatInt(int64(cv.(int32)), 10), nil
	case TypeFloat:
		return strconv.FormatFloat(float64(cv.(float32)), 'g', -1, 32), nil
	case TypeDouble:
		return strconv.FormatFloat(cv.(float64), 'g', -1, 64), nil
	}

	if tag.IsEnum() {
		n := cv.(int32)
		label, ok := t.enumLabel(tag, n)
		if !ok {
			return "", fmt.Errorf("%s %d: %w", t.Name(tag), n, ErrUnknownEnumValue)
		}
		return label, nil
	}

	fs, _ := toFloats(cv)
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

// ParseValue is the inverse of FormatValue. Booleans accept the
// strconv.ParseBool spellings (1/0, t/f, true/false in any case) for both
// BOOLCPP and BOOL32; the yes/no and on/off forms of ParseBool are for
// definition parameters only. Enums accept a defined integer value in place
// of a label.
func (t *TypeTable) ParseValue(tag TypeTag, text string) (any, error) {
	if !t.Known(tag) {
		return nil, fmt.Errorf("parse: tag %d: %w", tag, ErrUnknownType)
	}
	text = strings.TrimSpace(text)

	switch tag {
	case TypeBoolCPP, TypeBool32:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, parseErr(t.Name(tag), text, err)
		}
		return b, nil
	case TypeInt32:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, parseErr(t.Name(tag), text, err)
		}
		return int32(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, parseErr(t.Name(tag), text, err)
		}
		return float32(f), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, parseErr(t.Name(tag), text, err)
		}
		return f, nil
	}

	if tag.IsEnum() {
		if n, ok := t.enumValue(tag, text); ok {
			return n, nil
		}
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", t.Name(tag), text, ErrUnknownEnumValue)
		}
		if _, ok := t.enumLabel(tag, int32(n)); !ok {
			return nil, fmt.Errorf("%s %d: %w", t.Name(tag), n, ErrUnknownEnumValue)
		}
		return int32(n), nil
	}

	inner, ok := strings.CutPrefix(text, "(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	if !ok {
		return nil, parseErr(t.Name(tag), text, fmt.Errorf("want (v1,...,v%d)", tag.components()))
	}
	parts := strings.Split(inner, ",")
	if len(parts) != tag.components() {
		return nil, parseErr(t.Name(tag), text,
			fmt.Errorf("got %d components, want %d", len(parts), tag.components()))
	}
	fs := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, parseErr(t.Name(tag), text, err)
		}
		fs[i] = float32(f)
	}
	return makeVector(tag, fs), nil
}

func parseErr(typeName, text string, cause error) error {
	return fmt.Errorf("%w: %s %q: %v", ErrParse, typeName, text, cause)
}
