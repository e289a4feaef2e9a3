package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/lln/field"
)

// positional carries fields that are written in order, without a key.
type positional []field.Field

// rawMessage marks an entry whose message was already formatted with printf verbs and is
// written verbatim instead of being encoded.
type rawMessage struct{}

// Fields returns a zap field that writes fs as positional frames. It lets a plain
// *zap.Logger using the lln encoder emit text, pair and structured frames:
//
//	zl.Info("LOGIN", logger.Fields(field.Pair("user", "alice"), field.Int(3)))
//	// ...|INFO|app|LOGIN|user=alice|3
func Fields(fs ...field.Field) zap.Field {
	return zap.Reflect("", positional(fs))
}

// Values converts each argument with Value and returns them as one positional zap field.
func Values(args ...any) zap.Field {
	fs := make(positional, len(args))
	for i, arg := range args {
		fs[i] = Value(arg)
	}

	return zap.Reflect("", fs)
}

// Value classifies a Go value as a field.
//
// field.Field values are kept as they are. Lists, maps and structs become Structured
// fields (or Opaque when they cannot be represented as JSON). Errors and time values
// are written as text, and anything else falls back to its debug text.
func Value(v any) field.Field {
	switch x := v.(type) {
	case nil:
		return field.Null()
	case field.Field:
		return x
	case bool:
		return field.Bool(x)
	case int:
		return field.Int(int64(x))
	case int8:
		return field.Int(int64(x))
	case int16:
		return field.Int(int64(x))
	case int32:
		return field.Int(int64(x))
	case int64:
		return field.Int(x)
	case uint:
		return field.Uint(uint64(x))
	case uint8:
		return field.Uint(uint64(x))
	case uint16:
		return field.Uint(uint64(x))
	case uint32:
		return field.Uint(uint64(x))
	case uint64:
		return field.Uint(x)
	case float32:
		return field.Float(float64(x))
	case float64:
		return field.Float(x)
	case string:
		return field.Text(x)
	case []byte:
		return field.Text(string(x))
	case error:
		return field.Text(x.Error())
	case time.Duration:
		return field.Text(x.String())
	case time.Time:
		return field.Text(x.Format(time.RFC3339Nano))
	default:
		return field.Structured(v)
	}
}

// keyed turns a value added under a zap key into a pair. Primitive and text values are
// written as their literal, structured values stay structured.
func keyed(key string, f field.Field) field.Field {
	switch f.Kind() {
	case field.KindStructured:
		v, _ := f.Structured()
		return field.PairJSON(key, v)
	case field.KindPair:
		return field.Pair(key, f.Key()+"="+field.DebugText(f.Value()))
	default:
		return field.Pair(key, f.Literal())
	}
}
