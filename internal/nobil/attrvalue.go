package nobil

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AttrValue is the loosely-typed "attrval" field of a Nobil attribute. Its
// runtime type varies by attribute code: some codes deliver a string, some a
// number, and many an empty string standing in for "absent". Callers resolve
// the variant explicitly and supply their own default for unexpected shapes.
type AttrValue struct {
	kind attrKind
	str  string
	num  float64
}

type attrKind int

const (
	attrAbsent attrKind = iota
	attrString
	attrNumber
)

// String returns the value as a string when the provider delivered one.
func (v AttrValue) String() (string, bool) {
	return v.str, v.kind == attrString
}

// Float returns the value as a number: either a numeric attrval, or a string
// attrval that parses as a float.
func (v AttrValue) Float() (float64, bool) {
	switch v.kind {
	case attrNumber:
		return v.num, true
	case attrString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsAbsent reports whether the provider delivered no usable value.
func (v AttrValue) IsAbsent() bool {
	return v.kind == attrAbsent
}

func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse attrval: %w", err)
	}
	switch t := raw.(type) {
	case string:
		if t == "" {
			*v = AttrValue{}
			return nil
		}
		*v = AttrValue{kind: attrString, str: t}
	case float64:
		*v = AttrValue{kind: attrNumber, num: t}
	default:
		// Nulls, arrays, objects: treat as absent rather than failing the
		// whole station.
		*v = AttrValue{}
	}
	return nil
}

func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case attrString:
		return json.Marshal(v.str)
	case attrNumber:
		return json.Marshal(v.num)
	default:
		return json.Marshal("")
	}
}

// StringValue builds a string-typed AttrValue, for tests and fixtures.
func StringValue(s string) AttrValue {
	if s == "" {
		return AttrValue{}
	}
	return AttrValue{kind: attrString, str: s}
}

// NumberValue builds a number-typed AttrValue, for tests and fixtures.
func NumberValue(f float64) AttrValue {
	return AttrValue{kind: attrNumber, num: f}
}
