package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/format"
	"github.com/arloliu/lln/internal/options"
)

const (
	DefaultMaxLines = 4096
	DefaultMaxBytes = 1024 * 1024
)

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression sets the compression applied to segment payloads. Default: Zstd.
func WithCompression(compression format.CompressionType) WriterOption {
	return options.New(func(w *Writer) error {
		if !validCompression(compression) {
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compression)
		}
		w.compression = compression

		return nil
	})
}

// WithMaxLines sets the number of lines after which a segment is flushed.
func WithMaxLines(n int) WriterOption {
	return options.NoError(func(w *Writer) {
		w.maxLines = n
	})
}

// WithMaxBytes sets the raw payload size after which a segment is flushed. A single
// line larger than the limit is written as a segment of its own.
func WithMaxBytes(n int) WriterOption {
	return options.NoError(func(w *Writer) {
		w.maxBytes = n
	})
}

// WithBigEndian writes segment headers in big-endian byte order.
func WithBigEndian() WriterOption {
	return options.NoError(func(w *Writer) {
		w.bigEndian = true
	})
}

// WithClock sets the clock used for segment creation times.
func WithClock(now func() time.Time) WriterOption {
	return options.New(func(w *Writer) error {
		if now == nil {
			return errors.New("archive: nil clock")
		}
		w.now = now

		return nil
	})
}

// Validate checks the writer limits once all options are applied.
func (w *Writer) Validate() error {
	if w.maxLines <= 0 || uint64(w.maxLines) > uint64(^uint32(0)) {
		return fmt.Errorf("archive: max lines must be in [1, %d], got %d", ^uint32(0), w.maxLines)
	}
	if w.maxBytes <= 0 || w.maxBytes > MaxSegmentSize {
		return fmt.Errorf("archive: max bytes must be in [1, %d], got %d", MaxSegmentSize, w.maxBytes)
	}

	return nil
}
