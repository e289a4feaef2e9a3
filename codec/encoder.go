package codec

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/format"
	"github.com/arloliu/lln/internal/pool"
)

// Encode renders fields as a single line: one frame per field, frames joined by '|'.
//
// Encode never fails. The returned slice is newly allocated and owned by the caller.
// The output never contains a raw CR or LF byte.
func Encode(fields ...field.Field) []byte {
	if len(fields) == 0 {
		return []byte{}
	}

	buf := pool.GetLineBuffer()
	defer pool.PutLineBuffer(buf)

	buf.B = AppendEncode(buf.B, fields...)

	return bytes.Clone(buf.B)
}

// AppendEncode appends the encoded line for fields to dst and returns the extended slice.
func AppendEncode(dst []byte, fields ...field.Field) []byte {
	for i, f := range fields {
		if i > 0 {
			dst = append(dst, format.Separator)
		}
		dst = AppendFrame(dst, f)
	}

	return dst
}

// AppendFrame appends the frame of a single field to dst.
//
// Frame selection:
//   - Null, Bool and Number fields are written as their literal ("None", "True", "42").
//     A Number whose literal is not a decimal number, nan or inf is framed as text.
//   - Text and Opaque fields are written bare unless the payload is empty, contains '|'
//     or '=', or starts with '$'; those are written as "$N$ payload". Empty text is
//     therefore "$0$ " rather than an empty bare frame, which a line ending in '|'
//     could not carry.
//   - Pair fields are written as "left=right" unless either side contains '|' or '=',
//     or left starts with '$'; those are written as "$L,R$ left=right".
//   - Structured fields are written as "$" followed by the JSON text unless the JSON
//     contains '|'; those are written as "$$N$ json".
func AppendFrame(dst []byte, f field.Field) []byte {
	switch f.Kind() {
	case field.KindNull, field.KindBool:
		return append(dst, f.Literal()...)
	case field.KindNumber:
		lit := f.Literal()
		if isNumberLiteral(lit) || isSpecialFloat(lit) {
			return append(dst, lit...)
		}

		return appendText(dst, EscapeLineBreaks(lit))
	case field.KindText, field.KindOpaque:
		s, _ := f.Text()
		return appendText(dst, EscapeLineBreaks(s))
	case field.KindPair:
		return appendPair(dst, f)
	case field.KindStructured:
		v, _ := f.Structured()
		return appendStructured(dst, v)
	default:
		return append(dst, "None"...)
	}
}

func appendText(dst []byte, payload string) []byte {
	if needsTextHeader(payload) {
		dst = appendLengthHeader(dst, "", len(payload))
	}

	return append(dst, payload...)
}

func needsTextHeader(payload string) bool {
	return payload == "" ||
		strings.ContainsAny(payload, "|=") ||
		payload[0] == format.MetaMarker
}

func appendPair(dst []byte, f field.Field) []byte {
	left := SanitizeKey(f.Key())

	var right string
	if f.HasStructuredValue() {
		right = EscapeLineBreaks(string(AppendJSON(nil, f.Value())))
	} else {
		right = EscapeLineBreaks(f.Value().(string))
	}

	if strings.ContainsAny(left, "|=") || strings.ContainsAny(right, "|=") ||
		(left != "" && left[0] == format.MetaMarker) {
		dst = append(dst, format.MetaMarker)
		dst = strconv.AppendInt(dst, int64(len(left)), 10)
		dst = append(dst, format.LengthListSep)
		dst = strconv.AppendInt(dst, int64(len(right)), 10)
		dst = append(dst, format.MetaTerminator...)
	}

	dst = append(dst, left...)
	dst = append(dst, format.PairDelimiter)

	return append(dst, right...)
}

func appendStructured(dst []byte, v any) []byte {
	start := len(dst)
	dst = append(dst, format.MetaMarker)
	dst = AppendJSON(dst, v)

	payload := dst[start+1:]
	if bytes.IndexByte(payload, format.Separator) < 0 && payload[0] != format.MetaMarker {
		return dst
	}

	// Re-emit with an explicit length: "$$N$ " + json.
	js := bytes.Clone(payload)
	dst = appendLengthHeader(dst[:start], "$", len(js))

	return append(dst, js...)
}

// appendLengthHeader appends "$<prefix><n>$ ".
func appendLengthHeader(dst []byte, prefix string, n int) []byte {
	dst = append(dst, format.MetaMarker)
	dst = append(dst, prefix...)
	dst = strconv.AppendInt(dst, int64(n), 10)

	return append(dst, format.MetaTerminator...)
}
