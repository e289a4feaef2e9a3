// Package field defines Field, the closed set of values that can be written to an lln line.
//
// Callers construct the variant they mean:
//
//	fields := []field.Field{
//	    field.Text("LOGIN"),
//	    field.Pair("user", "alice"),
//	    field.Int(42),
//	    field.Structured(map[string]any{"roles": []string{"admin"}}),
//	}
//
// Structured values are normalized through encoding/json when constructed. A value that
// cannot be represented as a JSON list or mapping degrades to an Opaque field holding its
// debug text, so building a Field never fails.
package field

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Field.
type Kind uint8

const (
	KindNull Kind = iota + 1
	KindBool
	KindNumber
	KindText
	KindPair
	KindStructured
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindText:
		return "Text"
	case KindPair:
		return "Pair"
	case KindStructured:
		return "Structured"
	case KindOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// Field is one value of an lln line. The zero Field is not valid; use the constructors.
type Field struct {
	kind Kind
	b    bool
	s    string // number literal, text, opaque debug text or pair text value
	key  string // pair key
	v    any    // normalized JSON list/mapping for Structured fields and structured pair values
}

// Null returns the null field, written as "None".
func Null() Field {
	return Field{kind: KindNull}
}

// Bool returns a boolean field, written as "True" or "False".
func Bool(b bool) Field {
	return Field{kind: KindBool, b: b}
}

// Int returns a number field for a signed integer.
func Int(i int64) Field {
	return Field{kind: KindNumber, s: strconv.FormatInt(i, 10)}
}

// Uint returns a number field for an unsigned integer.
func Uint(u uint64) Field {
	return Field{kind: KindNumber, s: strconv.FormatUint(u, 10)}
}

// Float returns a number field using the shortest representation that round-trips.
func Float(f float64) Field {
	return Field{kind: KindNumber, s: FormatFloat(f)}
}

// Number returns a number field from an already formatted decimal literal.
// The literal is not validated; the encoder frames anything that is not a decimal
// number, nan or inf as text.
func Number(literal string) Field {
	return Field{kind: KindNumber, s: literal}
}

// Text returns a text field.
func Text(s string) Field {
	return Field{kind: KindText, s: s}
}

// Opaque returns a field holding the debug text of v.
func Opaque(v any) Field {
	return Field{kind: KindOpaque, s: DebugText(v)}
}

// Pair returns a key/value field with a text value.
func Pair(key, value string) Field {
	return Field{kind: KindPair, key: key, s: value}
}

// PairJSON returns a key/value field whose value is a JSON list or mapping.
// Any other value is stored as its debug text.
func PairJSON(key string, v any) Field {
	normalized, ok := Normalize(v)
	if !ok {
		return Field{kind: KindPair, key: key, s: DebugText(v)}
	}

	return Field{kind: KindPair, key: key, v: normalized}
}

// Structured returns a field holding a JSON list or mapping. Values that cannot be
// marshalled to JSON, or whose JSON form is a scalar, become Opaque fields.
func Structured(v any) Field {
	normalized, ok := Normalize(v)
	if !ok {
		return Opaque(v)
	}

	return Field{kind: KindStructured, v: normalized}
}

// Kind returns the variant held by f.
func (f Field) Kind() Kind {
	return f.kind
}

// IsNull reports whether f is the null field.
func (f Field) IsNull() bool {
	return f.kind == KindNull
}

// Bool returns the boolean value of a Bool field.
func (f Field) Bool() (bool, bool) {
	return f.b, f.kind == KindBool
}

// Number returns the decimal literal of a Number field.
func (f Field) Number() (string, bool) {
	return f.s, f.kind == KindNumber
}

// Int parses the literal of a Number field as an int64.
func (f Field) Int() (int64, bool) {
	if f.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(f.s, 10, 64)

	return i, err == nil
}

// Float parses the literal of a Number field as a float64.
func (f Field) Float() (float64, bool) {
	if f.kind != KindNumber {
		return 0, false
	}
	v, err := strconv.ParseFloat(f.s, 64)

	return v, err == nil
}

// Text returns the text of a Text or Opaque field.
func (f Field) Text() (string, bool) {
	return f.s, f.kind == KindText || f.kind == KindOpaque
}

// Key returns the key of a Pair field.
func (f Field) Key() string {
	return f.key
}

// Value returns the value of a Pair field: a string for text values, or the normalized
// JSON list/mapping for structured values.
func (f Field) Value() any {
	if f.v != nil {
		return f.v
	}

	return f.s
}

// HasStructuredValue reports whether f is a Pair whose value is a JSON list or mapping.
func (f Field) HasStructuredValue() bool {
	return f.kind == KindPair && f.v != nil
}

// Structured returns the normalized JSON value of a Structured field:
// []any or map[string]any whose numbers are json.Number.
func (f Field) Structured() (any, bool) {
	return f.v, f.kind == KindStructured
}

// Literal returns the text a primitive field is written as: "None", "True", "False" or
// the number literal. Text and Opaque fields return their text.
func (f Field) Literal() string {
	switch f.kind {
	case KindNull:
		return "None"
	case KindBool:
		if f.b {
			return "True"
		}

		return "False"
	default:
		return f.s
	}
}

// String returns a short debug form of f.
func (f Field) String() string {
	switch f.kind {
	case KindPair:
		if f.v != nil {
			return fmt.Sprintf("Pair(%q, %v)", f.key, f.v)
		}

		return fmt.Sprintf("Pair(%q, %q)", f.key, f.s)
	case KindStructured:
		return fmt.Sprintf("Structured(%v)", f.v)
	case KindText, KindOpaque:
		return fmt.Sprintf("%s(%q)", f.kind, f.s)
	case KindNull, KindBool, KindNumber:
		return fmt.Sprintf("%s(%s)", f.kind, f.Literal())
	default:
		return "Invalid"
	}
}

// Normalize converts v to its JSON data model: []any, map[string]any, string, bool,
// json.Number or nil. It reports false if v cannot be marshalled or is not a list or a
// mapping.
func Normalize(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}

	switch out.(type) {
	case []any, map[string]any:
		return out, true
	default:
		return nil, false
	}
}

// DebugText returns the textual debug form used for values that are not otherwise
// representable.
func DebugText(v any) string {
	if v == nil {
		return "None"
	}

	return fmt.Sprint(v)
}

// FormatFloat formats f with the shortest digits that round-trip, switching to
// scientific notation when the decimal exponent is below -4 or at least 16. Integral
// values keep a ".0" suffix so they read as floats.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	_, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)

	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
