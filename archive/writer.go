package archive

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/compress"
	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/format"
	"github.com/arloliu/lln/internal/hash"
	"github.com/arloliu/lln/internal/options"
	"github.com/arloliu/lln/internal/pool"
)

// Writer groups encoded lines into segments and writes them to an io.Writer.
//
// Lines are buffered until the segment reaches its line or byte limit, or until Flush
// or Close is called. A Writer is not safe for concurrent use.
//
//	w, err := archive.NewWriter(f, archive.WithCompression(format.CompressionS2))
//	if err != nil {
//	    return err
//	}
//	_ = w.WriteFields(field.Text("LOGIN"), field.Pair("user", "alice"))
//	return w.Close()
type Writer struct {
	out         io.Writer
	compression format.CompressionType
	bigEndian   bool
	maxLines    int
	maxBytes    int
	now         func() time.Time

	codec  compress.Codec
	raw    *pool.ByteBuffer
	lines  int
	closed bool

	segments int
	stats    compress.Stats
}

// NewWriter creates a Writer that writes segments to out.
func NewWriter(out io.Writer, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		out:         out,
		compression: format.CompressionZstd,
		maxLines:    DefaultMaxLines,
		maxBytes:    DefaultMaxBytes,
		now:         time.Now,
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	c, err := compress.GetCodec(w.compression)
	if err != nil {
		return nil, err
	}
	w.codec = c
	w.raw = pool.GetSegmentBuffer()
	w.stats.Algorithm = w.compression

	return w, nil
}

// WriteLine appends one encoded line. The line must not contain CR or LF; lines
// produced by the codec never do.
func (w *Writer) WriteLine(line []byte) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if bytes.ContainsAny(line, "\r\n") {
		return errs.ErrLineContainsNewline
	}
	if len(line) > MaxSegmentSize {
		return fmt.Errorf("archive: line of %d bytes exceeds segment limit", len(line))
	}

	if w.lines > 0 && w.raw.Len()+1+len(line) > w.maxBytes {
		if err := w.Flush(); err != nil {
			return err
		}
	}

	w.raw.AppendLine(line, w.lines > 0)
	w.lines++

	if w.lines >= w.maxLines || w.raw.Len() >= w.maxBytes {
		return w.Flush()
	}

	return nil
}

// WriteFields encodes fields and appends the resulting line.
func (w *Writer) WriteFields(fields ...field.Field) error {
	buf := pool.GetLineBuffer()
	defer pool.PutLineBuffer(buf)

	buf.B = codec.AppendEncode(buf.B, fields...)

	return w.WriteLine(buf.B)
}

// Flush writes the buffered lines as one segment. It is a no-op when nothing is buffered.
func (w *Writer) Flush() error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if w.lines == 0 {
		return nil
	}

	raw := w.raw.Bytes()
	payload, err := w.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("archive: compress segment: %w", err)
	}
	if len(payload) > MaxSegmentSize {
		return fmt.Errorf("archive: compressed segment of %d bytes exceeds limit", len(payload))
	}

	h := NewHeader(w.compression, w.bigEndian, w.now())
	h.LineCount = uint32(w.lines)        //nolint: gosec
	h.RawSize = uint32(len(raw))         //nolint: gosec
	h.PayloadSize = uint32(len(payload)) //nolint: gosec
	h.Checksum = hash.Sum(raw)

	var hdr [HeaderSize]byte
	if _, err := w.out.Write(h.AppendTo(hdr[:0])); err != nil {
		return fmt.Errorf("archive: write segment header: %w", err)
	}
	if _, err := w.out.Write(payload); err != nil {
		return fmt.Errorf("archive: write segment payload: %w", err)
	}

	w.segments++
	w.stats.RawSize += int64(len(raw))
	w.stats.CompressedSize += int64(HeaderSize + len(payload))

	w.raw.Reset()
	w.lines = 0

	return nil
}

// Close flushes buffered lines and releases the writer's buffer. It does not close the
// underlying io.Writer. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	err := w.Flush()
	w.closed = true
	pool.PutSegmentBuffer(w.raw)
	w.raw = nil

	return err
}

// Buffered returns the number of lines waiting for the next flush.
func (w *Writer) Buffered() int {
	return w.lines
}

// Segments returns the number of segments written so far.
func (w *Writer) Segments() int {
	return w.segments
}

// Stats returns the raw and stored byte totals of the segments written so far. Stored
// sizes include segment headers.
func (w *Writer) Stats() compress.Stats {
	return w.stats
}
