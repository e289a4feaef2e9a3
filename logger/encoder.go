package logger

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/internal/pool"
)

// TimeLayout is the layout of the time column.
const TimeLayout = "2006-01-02T15:04:05.000"

const tracebackMessage = "traceback"

var (
	bufferPool = buffer.NewPool()
	fieldPool  = pool.NewSlicePool[field.Field]()
)

// Encoder is a zapcore.Encoder that writes each entry as
//
//	<time>|<host>|<LEVEL>|<logger name>|<message frame>|<field frames>...
//
// The message is the first text frame. Keyed zap fields become pairs; fields passed
// through Fields or Values keep their kind and carry no key. Context fields added with
// With come before the entry's own fields.
type Encoder struct {
	host   string
	ns     string
	fields []field.Field
	raw    bool
}

var _ zapcore.Encoder = (*Encoder)(nil)

// NewEncoder creates an encoder writing host in the host column. Only the first label of
// a dotted host name is kept.
func NewEncoder(host string) *Encoder {
	host, _, _ = strings.Cut(host, ".")

	return &Encoder{host: host}
}

// Clone implements zapcore.Encoder.
func (e *Encoder) Clone() zapcore.Encoder {
	return e.clone()
}

func (e *Encoder) clone() *Encoder {
	c := &Encoder{host: e.host, ns: e.ns, raw: e.raw}
	c.fields = append(c.fields, e.fields...)

	return c
}

// EncodeEntry implements zapcore.Encoder.
func (e *Encoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	fsp := fieldPool.Get(len(e.fields) + len(fields) + 1)
	defer fieldPool.Put(fsp)

	scratch := Encoder{ns: e.ns, raw: e.raw, fields: (*fsp)[:0]}
	scratch.fields = append(scratch.fields, field.Text(ent.Message))
	scratch.fields = append(scratch.fields, e.fields...)
	for i := range fields {
		fields[i].AddTo(&scratch)
	}
	*fsp = scratch.fields

	out := bufferPool.Get()
	out.AppendTime(ent.Time, TimeLayout)
	out.AppendByte('|')
	out.AppendString(e.host)
	out.AppendByte('|')
	out.AppendString(LevelName(ent.Level))
	out.AppendByte('|')
	out.AppendString(ent.LoggerName)
	out.AppendByte('|')

	switch {
	case scratch.raw:
		out.AppendString(ent.Message)
	case strings.EqualFold(ent.Message, tracebackMessage):
		appendTraceback(out, scratch.fields[1:])
	default:
		line := pool.GetLineBuffer()
		line.B = codec.AppendEncode(line.B, scratch.fields...)
		out.AppendBytes(line.B)
		pool.PutLineBuffer(line)
	}
	out.AppendByte('\n')

	return out, nil
}

// appendTraceback writes "TRACEBACK|" followed by one continuation row per field. Every
// row starts with "##" so multi-line stack text stays attributable to its entry.
func appendTraceback(out *buffer.Buffer, fields []field.Field) {
	var sb strings.Builder
	sb.WriteString("TRACEBACK|")
	for _, f := range fields {
		sb.WriteByte('\n')
		sb.WriteString(tracebackText(f))
	}
	out.AppendString(strings.ReplaceAll(sb.String(), "\n", "\n##"))
}

func tracebackText(f field.Field) string {
	switch f.Kind() {
	case field.KindText, field.KindOpaque, field.KindNull, field.KindBool, field.KindNumber:
		return f.Literal()
	default:
		return string(codec.AppendFrame(nil, f))
	}
}

func (e *Encoder) add(key string, f field.Field) {
	if key == "" {
		e.fields = append(e.fields, f)
		return
	}
	e.fields = append(e.fields, keyed(e.ns+key, f))
}

func (e *Encoder) AddArray(key string, arr zapcore.ArrayMarshaler) error {
	m := zapcore.NewMapObjectEncoder()
	if err := m.AddArray(key, arr); err != nil {
		return err
	}
	e.add(key, Value(m.Fields[key]))

	return nil
}

func (e *Encoder) AddObject(key string, obj zapcore.ObjectMarshaler) error {
	m := zapcore.NewMapObjectEncoder()
	if err := m.AddObject(key, obj); err != nil {
		return err
	}
	e.add(key, Value(m.Fields[key]))

	return nil
}

func (e *Encoder) AddBinary(key string, v []byte) {
	e.add(key, field.Text(base64.StdEncoding.EncodeToString(v)))
}

func (e *Encoder) AddByteString(key string, v []byte) {
	e.add(key, field.Text(string(v)))
}

func (e *Encoder) AddBool(key string, v bool)       { e.add(key, field.Bool(v)) }
func (e *Encoder) AddFloat64(key string, v float64) { e.add(key, field.Float(v)) }
func (e *Encoder) AddInt(key string, v int)         { e.add(key, field.Int(int64(v))) }
func (e *Encoder) AddInt64(key string, v int64)     { e.add(key, field.Int(v)) }
func (e *Encoder) AddInt32(key string, v int32)     { e.add(key, field.Int(int64(v))) }
func (e *Encoder) AddInt16(key string, v int16)     { e.add(key, field.Int(int64(v))) }
func (e *Encoder) AddInt8(key string, v int8)       { e.add(key, field.Int(int64(v))) }
func (e *Encoder) AddUint(key string, v uint)       { e.add(key, field.Uint(uint64(v))) }
func (e *Encoder) AddUint64(key string, v uint64)   { e.add(key, field.Uint(v)) }
func (e *Encoder) AddUint32(key string, v uint32)   { e.add(key, field.Uint(uint64(v))) }
func (e *Encoder) AddUint16(key string, v uint16)   { e.add(key, field.Uint(uint64(v))) }
func (e *Encoder) AddUint8(key string, v uint8)     { e.add(key, field.Uint(uint64(v))) }
func (e *Encoder) AddUintptr(key string, v uintptr) { e.add(key, field.Uint(uint64(v))) }
func (e *Encoder) AddString(key, v string)          { e.add(key, field.Text(v)) }

func (e *Encoder) AddFloat32(key string, v float32) {
	e.add(key, field.Number(strconv.FormatFloat(float64(v), 'g', -1, 32)))
}

func (e *Encoder) AddComplex128(key string, v complex128) {
	e.add(key, field.Text(strconv.FormatComplex(v, 'g', -1, 128)))
}

func (e *Encoder) AddComplex64(key string, v complex64) {
	e.add(key, field.Text(strconv.FormatComplex(complex128(v), 'g', -1, 64)))
}

func (e *Encoder) AddDuration(key string, v time.Duration) {
	e.add(key, field.Text(v.String()))
}

func (e *Encoder) AddTime(key string, v time.Time) {
	e.add(key, field.Text(v.Format(time.RFC3339Nano)))
}

// AddReflected adds v under key. An empty key with fields from Fields or Values appends
// them as positional frames.
func (e *Encoder) AddReflected(key string, v any) error {
	if key == "" {
		switch x := v.(type) {
		case positional:
			e.fields = append(e.fields, x...)
			return nil
		case rawMessage:
			e.raw = true
			return nil
		}
	}
	e.add(key, Value(v))

	return nil
}

// OpenNamespace prefixes the keys of every field added afterwards with key and a dot.
func (e *Encoder) OpenNamespace(key string) {
	e.ns += key + "."
}
