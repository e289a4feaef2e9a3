package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arloliu/lln/field"
)

// document is the JSON and CBOR form of one field.
type document struct {
	Type  string `json:"type" cbor:"type"`
	Key   string `json:"key,omitempty" cbor:"key,omitempty"`
	Value any    `json:"value" cbor:"value"`
}

func toDocument(f field.Field) document {
	switch f.Kind() {
	case field.KindNull:
		return document{Type: "null"}
	case field.KindBool:
		b, _ := f.Bool()
		return document{Type: "bool", Value: b}
	case field.KindNumber:
		lit, _ := f.Number()
		if json.Valid([]byte(lit)) {
			return document{Type: "number", Value: json.Number(lit)}
		}
		// nan, inf and -inf have no JSON form.
		return document{Type: "number", Value: lit}
	case field.KindText:
		s, _ := f.Text()
		return document{Type: "text", Value: s}
	case field.KindOpaque:
		s, _ := f.Text()
		return document{Type: "opaque", Value: s}
	case field.KindPair:
		return document{Type: "pair", Key: f.Key(), Value: f.Value()}
	case field.KindStructured:
		v, _ := f.Structured()
		return document{Type: "structured", Value: v}
	default:
		return document{Type: "invalid"}
	}
}

func toDocuments(fields []field.Field) []document {
	docs := make([]document, len(fields))
	for i, f := range fields {
		docs[i] = toDocument(f)
	}

	return docs
}

// parseDocuments reads a JSON array whose items are documents or bare JSON values.
// Bare strings become text, numbers become numbers, lists become structured fields.
func parseDocuments(data []byte) ([]field.Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing fields: %w", err)
	}

	fields := make([]field.Field, 0, len(items))
	for i, item := range items {
		f, err := fromItem(item)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, f)
	}

	return fields, nil
}

func fromItem(item any) (field.Field, error) {
	switch v := item.(type) {
	case nil:
		return field.Null(), nil
	case bool:
		return field.Bool(v), nil
	case json.Number:
		return field.Number(v.String()), nil
	case string:
		return field.Text(v), nil
	case []any:
		return field.Structured(v), nil
	case map[string]any:
		return fromDocument(v)
	default:
		return field.Field{}, fmt.Errorf("unsupported item %T", item)
	}
}

func fromDocument(doc map[string]any) (field.Field, error) {
	typ, _ := doc["type"].(string)
	value := doc["value"]

	switch typ {
	case "null":
		return field.Null(), nil
	case "bool":
		b, ok := value.(bool)
		if !ok {
			return field.Field{}, fmt.Errorf("bool value is %T", value)
		}

		return field.Bool(b), nil
	case "number":
		return numberField(value)
	case "text":
		s, ok := value.(string)
		if !ok {
			return field.Field{}, fmt.Errorf("text value is %T", value)
		}

		return field.Text(s), nil
	case "opaque":
		return field.Opaque(value), nil
	case "pair":
		key, ok := doc["key"].(string)
		if !ok {
			return field.Field{}, fmt.Errorf("pair key is %T", doc["key"])
		}
		switch rv := value.(type) {
		case string:
			return field.Pair(key, rv), nil
		case []any, map[string]any:
			return field.PairJSON(key, rv), nil
		default:
			return field.Pair(key, field.DebugText(rv)), nil
		}
	case "structured":
		switch value.(type) {
		case []any, map[string]any:
			return field.Structured(value), nil
		default:
			return field.Field{}, fmt.Errorf("structured value is %T", value)
		}
	default:
		return field.Field{}, fmt.Errorf("unknown field type %q", typ)
	}
}

func numberField(value any) (field.Field, error) {
	switch v := value.(type) {
	case json.Number:
		return field.Number(v.String()), nil
	case string:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return field.Field{}, fmt.Errorf("invalid number %q", v)
		}

		return field.Number(v), nil
	default:
		return field.Field{}, fmt.Errorf("number value is %T", value)
	}
}

// plainValue replaces json.Number values with int64 or float64 so CBOR encodes them as
// numbers rather than text.
func plainValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}

		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plainValue(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plainValue(e)
		}

		return out
	default:
		return v
	}
}
