package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// AppendJSON appends the JSON text of v using the layout stored lines have always used:
// ", " between items, ": " between a key and its value, mapping keys sorted, and every
// non-printable or non-ASCII character written as a \uXXXX escape.
//
// v is expected in the normalized form produced by field.Normalize. Values of other
// types are written as JSON strings holding their debug text.
func AppendJSON(dst []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(dst, "null"...)
	case bool:
		return strconv.AppendBool(dst, x)
	case json.Number:
		return append(dst, x...)
	case string:
		return appendJSONString(dst, x)
	case float64:
		return strconv.AppendFloat(dst, x, 'g', -1, 64)
	case []any:
		dst = append(dst, '[')
		for i, item := range x {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = AppendJSON(dst, item)
		}

		return append(dst, ']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		dst = append(dst, '{')
		for i, k := range keys {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = appendJSONString(dst, k)
			dst = append(dst, ": "...)
			dst = AppendJSON(dst, x[k])
		}

		return append(dst, '}')
	default:
		return appendJSONString(dst, fmt.Sprint(x))
	}
}

func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			switch {
			case r >= 0x20 && r <= 0x7f:
				dst = append(dst, byte(r))
			case r > 0xffff:
				r -= 0x10000
				dst = appendUnicodeEscape(dst, 0xd800|(r>>10)&0x3ff)
				dst = appendUnicodeEscape(dst, 0xdc00|r&0x3ff)
			default:
				dst = appendUnicodeEscape(dst, r)
			}
		}
	}

	return append(dst, '"')
}

func appendUnicodeEscape(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[r>>12&0xf], hexDigits[r>>8&0xf], hexDigits[r>>4&0xf], hexDigits[r&0xf])
}

// decodeJSON parses a complete JSON document, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	if !json.Valid(data) {
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, err
		}

		return nil, errNotJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
