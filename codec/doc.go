// Package codec implements the lln field notation: a single-line, self-delimiting text
// form for a sequence of fields.
//
// # Line Layout
//
// A line is one frame per field, frames joined by a single '|'. A frame is written bare
// when its payload holds no reserved byte, and with a length-prefixed meta header
// otherwise:
//
//	line       := frame ("|" frame)*
//	frame      := bareText | barePair | bareJSON | lenText | lenPair | lenJSON
//	bareText   := bytes without "|" or "=", not starting with "$"
//	barePair   := left "=" right
//	bareJSON   := "$" ("{" | "[") json              ; runs to the next "|" or end
//	lenText    := "$" N "$ " bytes{N}
//	lenPair    := "$" L "," R "$ " bytes{L} "=" bytes{R}
//	lenJSON    := "$$" N "$ " bytes{N}
//
// Examples:
//
//	None|True|42|hello|k=v
//	$[1, 2, 3]
//	$3$ a|b
//	$4,3$ path=a|b
//	$$7$ ["a|b"]
//
// # Encoding
//
// Encode never fails. Carriage returns and line feeds are rewritten as the escapes `\r`
// and `\n`, so an encoded line never contains a raw line break. Pair keys are sanitized by
// removing a fixed set of punctuation and whitespace characters (see SanitizeKey); this is
// lossy and keys do not round-trip when they contain those characters.
//
// Structured values are written as JSON with ", " and ": " separators, sorted mapping
// keys and ASCII-only escapes.
//
// # Decoding
//
// Decode walks the line with a Scanner, alternating between reading a frame and
// consuming the separator that must follow it. Any violation is reported as a
// *errs.FormatError with the byte offset where it was found.
//
// Null, Bool and Number fields are written as "None", "True", "False" and decimal
// literals, but read back as Text:
//
//	fields, _ := codec.Decode([]byte("None|True|42"))
//	// [Text("None") Text("True") Text("42")]
//
// Stored lines depend on this, so it is the default. Decoders created with
// WithPrimitiveLiterals(true) map those literals back to their kinds.
//
// Encoder and Decoder hold no mutable state and are safe for concurrent use.
package codec
