package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
)

func TestDecode_Fields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []field.Field
	}{
		{"empty line", "", []field.Field{}},
		{"text", "hello", []field.Field{field.Text("hello")}},
		{"pair", "key=value", []field.Field{field.Pair("key", "value")}},
		{"pair splits at first delimiter", "a=b=c", []field.Field{field.Pair("a", "b=c")}},
		{"pair empty value", "k=", []field.Field{field.Pair("k", "")}},
		{"pair json string is unquoted", `k="x y"`, []field.Field{field.Pair("k", "x y")}},
		{"pair json list", "ids=[1, 2]", []field.Field{field.PairJSON("ids", []int{1, 2})}},
		{"pair json integer", "n=42", []field.Field{field.Pair("n", "42")}},
		{"pair json negative zero", "n=-0", []field.Field{field.Pair("n", "0")}},
		{"pair json float", "n=1.50", []field.Field{field.Pair("n", "1.5")}},
		{"pair json exponent", "n=1e3", []field.Field{field.Pair("n", "1000.0")}},
		{"pair json overflow", "n=1e400", []field.Field{field.Pair("n", "inf")}},
		{"pair json true", "b=true", []field.Field{field.Pair("b", "True")}},
		{"pair json false", "b=false", []field.Field{field.Pair("b", "False")}},
		{"pair json null", "v=null", []field.Field{field.Pair("v", "None")}},
		{"pair invalid json stays text", "k={bad", []field.Field{field.Pair("k", "{bad")}},
		{"structured", "$[1, 2, 3]", []field.Field{field.Structured([]int{1, 2, 3})}},
		{"structured mapping", `${"a": {"b": null}}`, []field.Field{
			field.Structured(map[string]any{"a": map[string]any{"b": nil}}),
		}},
		{"length-prefixed text", "$3$ a|b", []field.Field{field.Text("a|b")}},
		{"length-prefixed empty text", "$0$ ", []field.Field{field.Text("")}},
		{"header spaces ignored", "$ 3 $ a|b", []field.Field{field.Text("a|b")}},
		{"length-prefixed pair", "$1,3$ k=a|b", []field.Field{field.Pair("k", "a|b")}},
		{"length-prefixed pair keeps json text", `$1,3$ k="x"`, []field.Field{field.Pair("k", `"x"`)}},
		{"length-prefixed structured", `$$7$ ["a|b"]`, []field.Field{field.Structured([]string{"a|b"})}},
		{"unicode escapes", `$["\u00e9\ud83d\ude00"]`, []field.Field{field.Structured([]string{"é😀"})}},
		{"empty bare frame", "a||b", []field.Field{field.Text("a"), field.Text(""), field.Text("b")}},
		{"length-prefixed pair value stays text", `$1,12$ m={"a": "x|y"}`, []field.Field{
			field.Pair("m", `{"a": "x|y"}`),
		}},
		{"inner marker", "a$b|c", []field.Field{field.Text("a$b"), field.Text("c")}},
		{"escaped line break stays escaped", `a\nb`, []field.Field{field.Text(`a\nb`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_PrimitivesReadBackAsText(t *testing.T) {
	line := Encode(field.Null(), field.Bool(true), field.Int(42), field.Text("hello"), field.Pair("k", "v"))

	got, err := Decode(line)
	require.NoError(t, err)

	// Null, Bool and Number are written as literals and come back as Text.
	require.Equal(t, []field.Field{
		field.Text("None"),
		field.Text("True"),
		field.Text("42"),
		field.Text("hello"),
		field.Pair("k", "v"),
	}, got)
	require.Equal(t, field.KindText, got[0].Kind())
	require.Equal(t, field.KindText, got[1].Kind())
	require.Equal(t, field.KindText, got[2].Kind())
}

func TestDecode_PrimitiveLiterals(t *testing.T) {
	dec, err := NewDecoder(WithPrimitiveLiterals(true))
	require.NoError(t, err)

	got, err := dec.DecodeString("None|True|False|42|-1.5e3|nan|-inf|abc|1.|$4$ None|x=True")
	require.NoError(t, err)
	require.Equal(t, []field.Field{
		field.Null(),
		field.Bool(true),
		field.Bool(false),
		field.Number("42"),
		field.Number("-1.5e3"),
		field.Number("nan"),
		field.Number("-inf"),
		field.Text("abc"),
		field.Text("1."),
		field.Text("None"), // only bare text frames are recognized
		field.Pair("x", "True"),
	}, got)

	dec, err = NewDecoder(WithPrimitiveLiterals(false))
	require.NoError(t, err)
	got, err = dec.DecodeString("None")
	require.NoError(t, err)
	require.Equal(t, []field.Field{field.Text("None")}, got)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		kind   errs.ErrorKind
		offset int
	}{
		{"truncated text", "$12$ short", errs.KindTruncatedPayload, 5},
		{"adjacent frames", "abc$5$ hello|", errs.KindMissingSeparator, 12},
		{"dangling separator", "a|", errs.KindMissingSeparator, 1},
		{"bytes after length-prefixed frame", "$3$ a|bc", errs.KindMissingSeparator, 7},
		{"bytes after pair frame", "$1,1$ a=bc", errs.KindMissingSeparator, 9},
		{"unterminated header", "$3 a|b", errs.KindUnterminatedMetaHeader, 0},
		{"unterminated header later", "ok|$12", errs.KindUnterminatedMetaHeader, 3},
		{"non-numeric length", "$x$ abc", errs.KindInvalidMetaHeader, 0},
		{"empty header", "$$ abc", errs.KindInvalidMetaHeader, 0},
		{"negative length", "$-1$ abc", errs.KindInvalidMetaHeader, 0},
		{"three lengths", "$1,2,3$ a=bc", errs.KindInvalidMetaHeader, 0},
		{"non-numeric pair length", "$1,x$ a=b", errs.KindInvalidMetaHeader, 0},
		{"non-numeric json length", "$$x$ []", errs.KindInvalidMetaHeader, 0},
		{"missing pair delimiter", "$1,1$ ab=c", errs.KindMissingPairDelimiter, 7},
		{"truncated left", "$2,1$ a", errs.KindTruncatedPayload, 6},
		{"left reaches end", "$1,1$ a", errs.KindTruncatedPayload, 7},
		{"truncated right", "$1,5$ a=b", errs.KindTruncatedPayload, 8},
		{"truncated json", "$$10$ []", errs.KindTruncatedPayload, 6},
		{"bare json invalid", "$[1, 2", errs.KindInvalidJSON, 1},
		{"length-prefixed json invalid", "$$3$ [1,", errs.KindInvalidJSON, 5},
		{"length-prefixed json scalar", "$$2$ 42", errs.KindInvalidJSON, 5},
		{"invalid utf8 text", "ok|a\xffb", errs.KindInvalidUTF8, 4},
		{"invalid utf8 length-prefixed", "$2$ \xff\xfe", errs.KindInvalidUTF8, 4},
		{"invalid utf8 pair key", "\xff=v", errs.KindInvalidUTF8, 0},
		{"invalid utf8 pair value", "k=\xff", errs.KindInvalidUTF8, 2},
		{"invalid utf8 json", "$[\"\xff\"]", errs.KindInvalidUTF8, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.line)
			require.Error(t, err)
			require.Nil(t, got)

			var fe *errs.FormatError
			require.True(t, errors.As(err, &fe), "error %v is not a FormatError", err)
			require.Equal(t, tt.kind, fe.Kind, "error: %v", err)
			require.Equal(t, tt.offset, fe.Offset, "error: %v", err)
		})
	}
}

func TestDecode_ErrorSentinels(t *testing.T) {
	_, err := DecodeString("$12$ short")
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)

	_, err = DecodeString("abc$5$ hello|")
	require.ErrorIs(t, err, errs.ErrMissingSeparator)

	_, err = DecodeString("$[1,")
	require.ErrorIs(t, err, errs.ErrInvalidJSON)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields []field.Field
	}{
		{"empty", []field.Field{}},
		{"plain text", []field.Field{field.Text("hello world")}},
		{"text with separator", []field.Field{field.Text("a|b")}},
		{"text with reserved bytes", []field.Field{field.Text("$x=|y"), field.Text("=")}},
		{"empty text", []field.Field{field.Text(""), field.Text("")}},
		{"unicode text", []field.Field{field.Text("héllo 世界")}},
		{"pair", []field.Field{field.Pair("key", "value")}},
		{"pair with reserved bytes", []field.Field{field.Pair("k", "x=y|z"), field.Pair("p", "$v")}},
		{"structured", []field.Field{field.Structured([]int{1, 2, 3})}},
		{"structured with separator", []field.Field{field.Structured([]string{"a|b", "$c"})}},
		{"structured nested", []field.Field{field.Structured(map[string]any{
			"user":  "alice",
			"roles": []string{"admin", "ops"},
			"meta":  map[string]any{"ok": true, "score": 1.5, "none": nil},
		})}},
		{"structured pair value", []field.Field{field.PairJSON("ids", []int{4, 5})}},
		{"mixed", []field.Field{
			field.Text("LOGIN"),
			field.Pair("user", "alice"),
			field.Text("a|b"),
			field.Structured(map[string]int{"n": 1}),
			field.Text("tail"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.fields...))
			require.NoError(t, err)
			require.Equal(t, tt.fields, got)
		})
	}
}

func TestNewDecoder_NilOption(t *testing.T) {
	dec, err := NewDecoder(nil)
	require.NoError(t, err)
	require.NotNil(t, dec)
}

func BenchmarkDecode(b *testing.B) {
	line := Encode(
		field.Text("LOGIN"),
		field.Pair("user", "alice"),
		field.Int(42),
		field.Text("a|b"),
		field.Structured(map[string]any{"roles": []string{"admin", "ops"}}),
	)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Decode(line)
	}
}
