package lln

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
)

func TestEncodeDecode(t *testing.T) {
	fields := []field.Field{
		field.Text("LOGIN"),
		field.Pair("user", "alice"),
		field.Text("a|b"),
		field.Structured(map[string]any{"roles": []string{"admin"}}),
	}

	line := Encode(fields...)
	require.Equal(t, `LOGIN|user=alice|$3$ a|b|${"roles": ["admin"]}`, string(line))
	require.Equal(t, string(line), EncodeString(fields...))

	got, err := Decode(line)
	require.NoError(t, err)
	require.Equal(t, fields, got)

	got, err = DecodeString(string(line))
	require.NoError(t, err)
	require.Equal(t, fields, got)
}

func TestDecode_EmptyLine(t *testing.T) {
	got, err := Decode(Encode())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := DecodeString("$12$ short")
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
}

func TestAppendEncode(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = AppendEncode(buf, field.Int(1), field.Int(2))
	require.Equal(t, "1|2", string(buf))
}

func TestNewDecoder(t *testing.T) {
	dec, err := NewDecoder(codec.WithPrimitiveLiterals(true))
	require.NoError(t, err)

	got, err := dec.Decode(Encode(field.Null(), field.Bool(false), field.Float(1.5)))
	require.NoError(t, err)
	require.Equal(t, []field.Field{field.Null(), field.Bool(false), field.Number("1.5")}, got)
}

func TestFingerprint(t *testing.T) {
	a := FingerprintFields(field.Text("x"), field.Pair("k", "v"))
	b := Fingerprint([]byte("x|k=v"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, Fingerprint([]byte("x|k=w")))

	m1 := map[string]any{"a": 1, "b": 2, "c": 3}
	m2 := map[string]any{"c": 3, "b": 2, "a": 1}
	require.Equal(t, FingerprintFields(field.Structured(m1)), FingerprintFields(field.Structured(m2)))
}
