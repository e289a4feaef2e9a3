// Package compress holds the codecs applied to archive segment payloads.
//
// A payload is a run of encoded lines joined by LF. Those lines repeat the same keys
// and structured shapes, so general-purpose compressors shrink them well.
//
// Every codec implements Codec. Decompress takes the uncompressed size recorded in the
// segment header; codecs preallocate from it and fail when the payload expands to a
// different length.
//
// Algorithms, by format.CompressionType:
//
//   - CompressionNone stores the payload verbatim, for archives read by other tools.
//   - CompressionZstd gives the best ratio and is the archive default. It uses
//     klauspost/compress/zstd, or libzstd through valyala/gozstd under the zstd_cgo
//     build tag.
//   - CompressionS2 suits writers that flush small segments often.
//   - CompressionLZ4 decodes fastest, for archives that are scanned repeatedly.
//
// Example:
//
//	c, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	stored, err := c.Compress(payload)
//	...
//	payload, err = c.Decompress(stored, rawSize)
//
// GetCodec hands out shared codecs and CreateCodec builds new ones; an unknown type
// yields errs.ErrUnsupportedCompression. Codecs are safe for concurrent use.
package compress
