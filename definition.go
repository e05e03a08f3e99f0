package tweakbar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Param is one key=value pair of a definition string.
type Param struct {
	Key   string
	Value string
}

// Definition is a parsed definition string such as
//
//	min=0 max=10 step=0.1 group=Light label='Light intensity' readonly
//
// Values may be quoted with ', " or ` to include spaces. A bare key means
// key=true. Later duplicates override earlier ones on lookup.
type Definition []Param

// ParseDefinition parses a definition string. The empty string is valid.
func ParseDefinition(s string) (Definition, error) {
	var def Definition
	i := 0
	for {
		for i < len(s) && unicode.IsSpace(rune(s[i])) {
			i++
		}
		if i >= len(s) {
			return def, nil
		}

		start := i
		for i < len(s) && s[i] != '=' && !unicode.IsSpace(rune(s[i])) {
			i++
		}
		key := s[start:i]
		if key == "" {
			return nil, fmt.Errorf("%w: missing key at offset %d in %q", ErrBadDefinition, start, s)
		}
		if i >= len(s) || s[i] != '=' {
			def = append(def, Param{Key: key, Value: "true"})
			continue
		}
		i++ // '='

		if i < len(s) && (s[i] == '\'' || s[i] == '"' || s[i] == '`') {
			quote := s[i]
			end := strings.IndexByte(s[i+1:], quote)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated %c in %q", ErrBadDefinition, quote, s)
			}
			def = append(def, Param{Key: key, Value: s[i+1 : i+1+end]})
			i += end + 2
			continue
		}
		start = i
		for i < len(s) && !unicode.IsSpace(rune(s[i])) {
			i++
		}
		def = append(def, Param{Key: key, Value: s[start:i]})
	}
}

// Get returns the last value given for key.
func (d Definition) Get(key string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Key == key {
			return d[i].Value, true
		}
	}
	return "", false
}

// Float returns key parsed as a number.
func (d Definition) Float(key string) (float64, bool) {
	v, ok := d.Get(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// Bool returns key parsed as a boolean.
func (d Definition) Bool(key string) (bool, bool) {
	v, ok := d.Get(key)
	if !ok {
		return false, false
	}
	b, err := ParseBool(v)
	return b, err == nil
}

// String re-encodes the definition, quoting values that contain spaces.
func (d Definition) String() string {
	parts := make([]string, len(d))
	for i, p := range d {
		switch {
		case p.Value == "":
			parts[i] = p.Key + "=''"
		case strings.IndexFunc(p.Value, unicode.IsSpace) >= 0:
			parts[i] = p.Key + "='" + p.Value + "'"
		default:
			parts[i] = p.Key + "=" + p.Value
		}
	}
	return strings.Join(parts, " ")
}

// ParseBool parses a boolean parameter value: true/false, 1/0, yes/no or
// on/off. Errors wrap ErrParse.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrParse, v)
}
