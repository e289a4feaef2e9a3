// Package lln implements a line-oriented field notation: a sequence of heterogeneous
// values is written as a single text line that line-based transports (syslog, stdout,
// grep-able files) carry untouched, and that a reader can split back into fields without
// any schema.
//
// # Core Features
//
//   - Closed field model: Null, Bool, Number, Text, Pair, Structured, Opaque
//   - Bare frames when unambiguous, length-prefixed frames when a payload holds '|', '='
//     or a leading '$'
//   - Encoding never fails; decoding reports the exact violation and byte offset
//   - No raw CR or LF ever reaches the output line
//   - Segment archives of encoded lines with optional compression (see package archive)
//   - A zap-based logger writing encoded lines to stdout, syslog or rotating files
//     (see package logger)
//
// # Basic Usage
//
// Encoding fields:
//
//	import (
//	    "github.com/arloliu/lln"
//	    "github.com/arloliu/lln/field"
//	)
//
//	line := lln.Encode(
//	    field.Text("LOGIN"),
//	    field.Pair("user", "alice"),
//	    field.Int(42),
//	    field.Structured(map[string]any{"roles": []string{"admin"}}),
//	)
//	// LOGIN|user=alice|42|${"roles": ["admin"]}
//
// Decoding a line:
//
//	fields, err := lln.Decode(line)
//	if err != nil {
//	    var fe *errs.FormatError
//	    if errors.As(err, &fe) {
//	        fmt.Println(fe.Kind, fe.Offset)
//	    }
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the codec package for the common
// cases. Use codec directly for frame-level scanning, decoder options or appending into
// caller-owned buffers.
package lln

import (
	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/internal/hash"
)

// Encode renders fields as one line. It never fails.
//
// Example:
//
//	line := lln.Encode(field.Null(), field.Bool(true), field.Int(42), field.Text("hello"), field.Pair("k", "v"))
//	// None|True|42|hello|k=v
func Encode(fields ...field.Field) []byte {
	return codec.Encode(fields...)
}

// EncodeString is Encode returning a string.
func EncodeString(fields ...field.Field) string {
	return string(codec.Encode(fields...))
}

// AppendEncode appends the encoded line for fields to dst.
func AppendEncode(dst []byte, fields ...field.Field) []byte {
	return codec.AppendEncode(dst, fields...)
}

// Decode parses a line produced by Encode.
//
// Null, Bool and Number fields come back as Text holding their literal. Use
// NewDecoder(codec.WithPrimitiveLiterals(true)) to map them back to their kinds.
//
// Returns a *errs.FormatError when the line is malformed.
func Decode(line []byte) ([]field.Field, error) {
	return codec.Decode(line)
}

// DecodeString is Decode for a string line.
func DecodeString(line string) ([]field.Field, error) {
	return codec.DecodeString(line)
}

// NewDecoder creates a decoder with custom options.
//
// Available options:
//   - codec.WithPrimitiveLiterals(true|false)
func NewDecoder(opts ...codec.DecoderOption) (*codec.Decoder, error) {
	return codec.NewDecoder(opts...)
}

// Fingerprint returns the 64-bit xxHash of an encoded line. Encoding is deterministic,
// so equal field sequences always share a fingerprint; it is suitable for de-duplicating
// or bucketing stored lines.
func Fingerprint(line []byte) uint64 {
	return hash.Sum(line)
}

// FingerprintFields returns the fingerprint of the line fields encode to.
func FingerprintFields(fields ...field.Field) uint64 {
	return hash.Sum(codec.Encode(fields...))
}
