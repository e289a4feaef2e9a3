package compress

import (
	"fmt"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/format"
)

// Compressor compresses an archive segment payload: encoded lines joined by LF.
type Compressor interface {
	// Compress returns the compressed form of data. The input slice is not modified.
	// The returned slice may alias data for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores segment payloads.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of data. rawSize is the uncompressed size
	// recorded in the segment header; it sizes the output buffer and bounds it, and may
	// be zero when unknown.
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Codec combines both directions for one algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// Stats describes the compression of one segment.
type Stats struct {
	Algorithm      format.CompressionType
	RawSize        int64
	CompressedSize int64
}

// Ratio returns compressed size / raw size, or 0 for an empty segment.
func (s Stats) Ratio() float64 {
	if s.RawSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.RawSize)
}

// SpaceSavings returns the saved space as a percentage of the raw size.
func (s Stats) SpaceSavings() float64 {
	if s.RawSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec creates a new Codec for the compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// checkRawSize rejects output that exceeds the size recorded in the segment header.
func checkRawSize(out []byte, rawSize int) ([]byte, error) {
	if rawSize > 0 && len(out) != rawSize {
		return nil, fmt.Errorf("decompressed %d bytes, header declares %d", len(out), rawSize)
	}

	return out, nil
}
