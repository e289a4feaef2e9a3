package archive

import (
	"fmt"
	"time"

	"github.com/arloliu/lln/endian"
	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/format"
)

const (
	// HeaderSize is the fixed size of a segment header in bytes.
	HeaderSize = 32

	// Magic occupies bits 4-15 of the options field.
	Magic     = 0x4C40
	MagicMask = 0xFFF0

	// FlagBigEndian selects big-endian byte order for the header fields after the
	// options field. The options field itself is always little-endian.
	FlagBigEndian = 0x0001

	// Version is the segment layout version written by this package.
	Version = 1

	// MaxSegmentSize bounds both the raw and the compressed payload of a segment.
	MaxSegmentSize = 1 << 30
)

// Header is the fixed-size header in front of every segment payload.
//
// Layout:
//
//	offset  size  field
//	0       2     options: magic (bits 4-15) | flags (bits 0-3), always little-endian
//	2       1     version
//	3       1     compression type
//	4       4     line count
//	8       4     raw payload size (lines joined by LF)
//	12      4     stored payload size (after compression)
//	16      8     xxHash64 of the raw payload
//	24      8     creation time, unix microseconds
type Header struct {
	Options     uint16
	Version     uint8
	Compression format.CompressionType
	LineCount   uint32
	RawSize     uint32
	PayloadSize uint32
	Checksum    uint64
	CreatedAt   int64
}

// NewHeader creates a header for a segment written at createdAt.
func NewHeader(compression format.CompressionType, bigEndian bool, createdAt time.Time) *Header {
	h := &Header{
		Options:     Magic,
		Version:     Version,
		Compression: compression,
		CreatedAt:   createdAt.UnixMicro(),
	}
	if bigEndian {
		h.Options |= FlagBigEndian
	}

	return h
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Options = uint16(data[0]) | uint16(data[1])<<8
	if h.Options&MagicMask != Magic {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagic, h.Options&MagicMask)
	}

	h.Version = data[2]
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	h.Compression = format.CompressionType(data[3])
	if !validCompression(h.Compression) {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, h.Compression)
	}

	engine := h.GetEndianEngine()
	h.LineCount = engine.Uint32(data[4:8])
	h.RawSize = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])
	h.CreatedAt = int64(engine.Uint64(data[24:32])) //nolint: gosec

	if h.RawSize > MaxSegmentSize || h.PayloadSize > MaxSegmentSize {
		return fmt.Errorf("%w: payload of %d/%d bytes exceeds limit",
			errs.ErrInvalidHeaderSize, h.RawSize, h.PayloadSize)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.GetEndianEngine()

	dst = append(dst, byte(h.Options), byte(h.Options>>8), h.Version, byte(h.Compression))
	dst = engine.AppendUint32(dst, h.LineCount)
	dst = engine.AppendUint32(dst, h.RawSize)
	dst = engine.AppendUint32(dst, h.PayloadSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return engine.AppendUint64(dst, uint64(h.CreatedAt)) //nolint: gosec
}

// IsBigEndian reports whether the header fields are big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Options&FlagBigEndian != 0
}

// GetEndianEngine returns the engine selected by the header flags.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return endian.GetEngine(h.IsBigEndian())
}

// CreatedTime returns the creation time of the segment.
func (h *Header) CreatedTime() time.Time {
	return time.UnixMicro(h.CreatedAt)
}

func validCompression(c format.CompressionType) bool {
	switch c {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return true
	default:
		return false
	}
}
