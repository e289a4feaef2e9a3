package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/lln/format"
)

type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 block data. The decoded length stored in the block must
// match rawSize when rawSize is known.
func (c S2Compressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if rawSize > 0 {
		n, err := s2.DecodedLen(data)
		if err != nil {
			return nil, fmt.Errorf("s2 decompression failed: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("s2 block decodes to %d bytes, header declares %d", n, rawSize)
		}
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
