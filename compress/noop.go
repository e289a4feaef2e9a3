package compress

import "github.com/arloliu/lln/format"

// NoOpCompressor stores segments uncompressed. Its output aliases its input.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor returns the pass-through codec.
func NewNoOpCompressor() NoOpCompressor { return NoOpCompressor{} }

func (NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

func (NoOpCompressor) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress only checks that data has the size recorded for the segment.
func (NoOpCompressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	return checkRawSize(data, rawSize)
}
