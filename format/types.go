package format

type (
	FrameKind       uint8
	CompressionType uint8
)

// Reserved bytes of the field notation.
const (
	Separator     byte = '|' // Separator joins consecutive frames.
	PairDelimiter byte = '=' // PairDelimiter splits a pair frame into left and right.
	MetaMarker    byte = '$' // MetaMarker opens a meta header when it is the first byte of a frame.
	LengthListSep byte = ',' // LengthListSep separates left/right lengths inside a pair meta header.
)

// MetaTerminator closes an explicit-length meta header.
const MetaTerminator = "$ "

const (
	FrameBareText FrameKind = 0x1 // FrameBareText is unframed text.
	FrameBarePair FrameKind = 0x2 // FrameBarePair is an unframed left=right pair.
	FrameBareJSON FrameKind = 0x3 // FrameBareJSON is a "$" followed by a JSON list or mapping.
	FrameLenText  FrameKind = 0x4 // FrameLenText is "$N$ " followed by N bytes of text.
	FrameLenPair  FrameKind = 0x5 // FrameLenPair is "$L,R$ " followed by left=right.
	FrameLenJSON  FrameKind = 0x6 // FrameLenJSON is "$$N$ " followed by N bytes of JSON.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k FrameKind) String() string {
	switch k {
	case FrameBareText:
		return "BareText"
	case FrameBarePair:
		return "BarePair"
	case FrameBareJSON:
		return "BareJSON"
	case FrameLenText:
		return "LenText"
	case FrameLenPair:
		return "LenPair"
	case FrameLenJSON:
		return "LenJSON"
	default:
		return "Unknown"
	}
}

// LengthPrefixed reports whether the frame kind carries an explicit-length meta header.
func (k FrameKind) LengthPrefixed() bool {
	return k == FrameLenText || k == FrameLenPair || k == FrameLenJSON
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a configuration name ("none", "zstd", "s2", "lz4") to a
// CompressionType. The second return value is false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "", "none", "None":
		return CompressionNone, true
	case "zstd", "Zstd":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
