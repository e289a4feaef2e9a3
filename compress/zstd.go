package compress

import "github.com/arloliu/lln/format"

// ZstdCompressor provides Zstandard compression. It gives the best ratio of the
// built-in codecs and suits archives that are written once and rarely read.
//
// The default build uses github.com/klauspost/compress/zstd. Building with the
// zstd_cgo tag (and cgo enabled) switches to github.com/valyala/gozstd; both produce
// standard zstd frames and read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
//
// Example:
//
//	codec := compress.NewZstdCompressor()
//	compressed, err := codec.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
