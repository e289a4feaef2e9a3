package codec

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/format"
	"github.com/arloliu/lln/internal/options"
)

var (
	errInvalidUTF8 = errors.New("payload is not valid UTF-8")
	errNotJSON     = errors.New("payload is not a JSON document")
)

// Decoder turns encoded lines back into fields. A Decoder holds only its options and is
// safe for concurrent use.
type Decoder struct {
	primitiveLiterals bool
}

var defaultDecoder = &Decoder{}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decode decodes line with the default options.
func Decode(line []byte) ([]field.Field, error) {
	return defaultDecoder.Decode(line)
}

// Decode parses line into fields. It fails with a *errs.FormatError on the first
// structural violation; no field is returned in that case.
//
// Decoded fields are:
//   - Text for bare and length-prefixed text frames (Null, Bool and Number literals
//     included, unless WithPrimitiveLiterals is set),
//   - Pair for pair frames. A bare pair whose right side is a JSON list or mapping keeps it
//     as a structured value and a JSON string is unquoted. JSON scalars are rewritten as
//     literals ("true" reads as "True", "null" as "None", "1.50" as "1.5"); any other
//     right side stays as text.
//   - Structured for JSON frames.
func (d *Decoder) Decode(line []byte) ([]field.Field, error) {
	sc := NewScanner(line)

	fields := make([]field.Field, 0, 8)
	for sc.Scan() {
		f, err := d.DecodeFrame(sc.Frame())
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return fields, nil
}

// DecodeString decodes line with the default options.
func DecodeString(line string) ([]field.Field, error) {
	return defaultDecoder.DecodeString(line)
}

// DecodeString is Decode for a string line.
func (d *Decoder) DecodeString(line string) ([]field.Field, error) {
	return d.Decode([]byte(line))
}

// DecodeFrame converts one scanned frame into a field.
func (d *Decoder) DecodeFrame(fr Frame) (field.Field, error) {
	switch fr.Kind {
	case format.FrameBareText:
		text, err := utf8Text(fr.Payload, fr.Start)
		if err != nil {
			return field.Field{}, err
		}
		if d.primitiveLiterals {
			if f, ok := primitiveLiteral(text); ok {
				return f, nil
			}
		}

		return field.Text(text), nil

	case format.FrameLenText:
		text, err := utf8Text(fr.Payload, fr.End-len(fr.Payload))
		if err != nil {
			return field.Field{}, err
		}

		return field.Text(text), nil

	case format.FrameBarePair:
		key, err := utf8Text(fr.Left, fr.Start)
		if err != nil {
			return field.Field{}, err
		}
		rightOff := fr.Start + len(fr.Left) + 1
		value, err := utf8Text(fr.Right, rightOff)
		if err != nil {
			return field.Field{}, err
		}

		return barePairValue(key, value, fr.Right), nil

	case format.FrameLenPair:
		bodyOff := fr.End - len(fr.Right) - 1 - len(fr.Left)
		key, err := utf8Text(fr.Left, bodyOff)
		if err != nil {
			return field.Field{}, err
		}
		value, err := utf8Text(fr.Right, fr.End-len(fr.Right))
		if err != nil {
			return field.Field{}, err
		}

		return field.Pair(key, value), nil

	case format.FrameBareJSON, format.FrameLenJSON:
		v, err := structuredPayload(fr.Payload, fr.End-len(fr.Payload))
		if err != nil {
			return field.Field{}, err
		}

		return field.Structured(v), nil

	default:
		return field.Field{}, errs.NewFormatError(errs.KindInvalidMetaHeader, fr.Start,
			"unknown frame kind %s", fr.Kind)
	}
}

func utf8Text(b []byte, off int) (string, error) {
	if !utf8.Valid(b) {
		return "", errs.NewFormatError(errs.KindInvalidUTF8, off+invalidUTF8Offset(b),
			"invalid UTF-8 sequence")
	}

	return string(b), nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}

	return 0
}

func structuredPayload(payload []byte, off int) (any, error) {
	v, err := decodeJSON(payload)
	if errors.Is(err, errInvalidUTF8) {
		return nil, errs.NewFormatError(errs.KindInvalidUTF8, off+invalidUTF8Offset(payload),
			"invalid UTF-8 in structured payload")
	}
	if err != nil {
		return nil, &errs.FormatError{
			Kind:   errs.KindInvalidJSON,
			Offset: off,
			Msg:    "structured payload",
			Err:    err,
		}
	}

	switch v.(type) {
	case []any, map[string]any:
		return v, nil
	default:
		return nil, errs.NewFormatError(errs.KindInvalidJSON, off,
			"structured payload must be a list or a mapping")
	}
}

// barePairValue attempts a JSON reading of the right side of a bare pair.
func barePairValue(key, value string, raw []byte) field.Field {
	v, err := decodeJSON(raw)
	if err != nil {
		return field.Pair(key, value)
	}

	switch x := v.(type) {
	case string:
		return field.Pair(key, x)
	case []any, map[string]any:
		return field.PairJSON(key, x)
	case nil:
		return field.Pair(key, field.Null().Literal())
	case bool:
		return field.Pair(key, field.Bool(x).Literal())
	case json.Number:
		return field.Pair(key, numberText(x))
	default:
		return field.Pair(key, value)
	}
}

// numberText renders a JSON number the way it reads back as a value: integers keep
// their digits, anything with a fraction or exponent is a float.
func numberText(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return "0"
		}

		return s
	}

	// Out-of-range literals parse to ±Inf or zero, which is the value wanted.
	f, _ := strconv.ParseFloat(s, 64)

	return field.FormatFloat(f)
}

func primitiveLiteral(text string) (field.Field, bool) {
	switch text {
	case "None":
		return field.Null(), true
	case "True":
		return field.Bool(true), true
	case "False":
		return field.Bool(false), true
	}

	if isNumberLiteral(text) || isSpecialFloat(text) {
		return field.Number(text), true
	}

	return field.Field{}, false
}

func isSpecialFloat(s string) bool {
	return s == "nan" || s == "inf" || s == "-inf"
}

// isNumberLiteral accepts -?digits(.digits)?([eE][+-]?digits)?
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}

		return i - start
	}

	if digits() == 0 {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}

	return i == len(s)
}
