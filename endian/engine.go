// Package endian provides the byte order engines used by archive segment headers.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so header code can
// both put and append fixed-width integers through one value.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, lineCount)
//
// Archives are little-endian by default; a big-endian flag in the segment header selects
// the other engine for readers on such hosts.
//
// All engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine when bigEndian is set, the little-endian one
// otherwise.
func GetEngine(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers most significant byte first.
func IsNativeBigEndian() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x0100
}
