//go:build !(cgo && zstd_cgo)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSegment bounds the memory one DecodeAll call may allocate.
const maxDecodedSegment = 1 << 30

// EncodeAll and DecodeAll are safe for concurrent use, so a single encoder and
// decoder serve every ZstdCompressor.
var zstdCoders = sync.OnceValues(func() (*zstd.Encoder, *zstd.Decoder) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(false),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd encoder: %v", err))
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(maxDecodedSegment),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd decoder: %v", err))
	}

	return enc, dec
})

// Compress returns data as one zstd frame. An empty segment compresses to nothing.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	enc, _ := zstdCoders()

	return enc.EncodeAll(data, make([]byte, 0, len(data)/3)), nil
}

// Decompress expands a zstd frame, preallocating rawSize bytes for the output.
func (c ZstdCompressor) Decompress(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	_, dec := zstdCoders()

	out, err := dec.DecodeAll(data, make([]byte, 0, max(rawSize, 0)))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return checkRawSize(out, rawSize)
}
