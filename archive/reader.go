package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/compress"
	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/internal/hash"
)

// Reader reads segments written by Writer.
//
//	r := archive.NewReader(f)
//	for seg, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    for line := range seg.Lines() {
//	        ...
//	    }
//	}
type Reader struct {
	in     io.Reader
	hdr    [HeaderSize]byte
	offset int64
}

// NewReader creates a Reader over in.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: in}
}

// Next reads, decompresses and verifies the next segment. It returns io.EOF when the
// input ends cleanly at a segment boundary.
func (r *Reader) Next() (*Segment, error) {
	start := r.offset

	n, err := io.ReadFull(r.in, r.hdr[:])
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated header at offset %d", errs.ErrInvalidHeaderSize, start)
		}

		return nil, err
	}

	seg := &Segment{Offset: start}
	if err := seg.Header.Parse(r.hdr[:]); err != nil {
		return nil, fmt.Errorf("segment at offset %d: %w", start, err)
	}

	payload := make([]byte, seg.Header.PayloadSize)
	n, err = io.ReadFull(r.in, payload)
	r.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("segment at offset %d: payload truncated after %d of %d bytes: %w",
				start, n, seg.Header.PayloadSize, io.ErrUnexpectedEOF)
		}

		return nil, err
	}

	c, err := compress.GetCodec(seg.Header.Compression)
	if err != nil {
		return nil, fmt.Errorf("segment at offset %d: %w", start, err)
	}
	raw, err := c.Decompress(payload, int(seg.Header.RawSize))
	if err != nil {
		return nil, fmt.Errorf("segment at offset %d: %w", start, err)
	}
	if len(raw) != int(seg.Header.RawSize) {
		return nil, fmt.Errorf("segment at offset %d: raw size %d, header declares %d",
			start, len(raw), seg.Header.RawSize)
	}
	if sum := hash.Sum(raw); sum != seg.Header.Checksum {
		return nil, fmt.Errorf("segment at offset %d: %w: 0x%016x != 0x%016x",
			start, errs.ErrChecksumMismatch, sum, seg.Header.Checksum)
	}
	if got := countLines(raw, seg.Header.LineCount); got != seg.Header.LineCount {
		return nil, fmt.Errorf("segment at offset %d: %w: %d lines, header declares %d",
			start, errs.ErrLineCountMismatch, got, seg.Header.LineCount)
	}

	seg.raw = raw
	seg.storedSize = len(payload)

	return seg, nil
}

// All iterates over the remaining segments. Iteration stops after the first error;
// a clean end of input is not reported as an error.
func (r *Reader) All() iter.Seq2[*Segment, error] {
	return func(yield func(*Segment, error) bool) {
		for {
			seg, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(seg, err) || err != nil {
				return
			}
		}
	}
}

// countLines counts LF-separated lines. A segment of one empty line has an empty raw
// payload, so the declared count decides between zero and one line.
func countLines(raw []byte, declared uint32) uint32 {
	if len(raw) == 0 {
		if declared == 1 {
			return 1
		}

		return 0
	}

	return uint32(bytes.Count(raw, []byte{'\n'})) + 1 //nolint: gosec
}

// Segment is one verified segment.
type Segment struct {
	Header Header
	// Offset is the byte offset of the segment header in the archive.
	Offset int64

	raw        []byte
	storedSize int
}

// LineCount returns the number of lines in the segment.
func (s *Segment) LineCount() int {
	return int(s.Header.LineCount)
}

// CreatedAt returns the time the segment was written.
func (s *Segment) CreatedAt() time.Time {
	return s.Header.CreatedTime()
}

// Raw returns the uncompressed payload: the lines joined by LF.
func (s *Segment) Raw() []byte {
	return s.raw
}

// Lines iterates over the encoded lines of the segment. The yielded slices alias the
// segment payload.
func (s *Segment) Lines() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if s.Header.LineCount == 0 {
			return
		}

		rest := s.raw
		for {
			line, tail, found := bytes.Cut(rest, []byte{'\n'})
			if !yield(line) || !found {
				return
			}
			rest = tail
		}
	}
}

// Fields decodes every line of the segment with dec; a nil dec uses the default
// decoder. The index is the line number within the segment. Iteration continues past
// lines that fail to decode.
func (s *Segment) Fields(dec *codec.Decoder) iter.Seq2[int, LineResult] {
	if dec == nil {
		dec, _ = codec.NewDecoder()
	}

	return func(yield func(int, LineResult) bool) {
		i := 0
		for line := range s.Lines() {
			fields, err := dec.Decode(line)
			if !yield(i, LineResult{Line: line, Fields: fields, Err: err}) {
				return
			}
			i++
		}
	}
}

// LineResult is one decoded segment line.
type LineResult struct {
	Line   []byte
	Fields []field.Field
	Err    error
}

// Stats returns the compression figures of the segment. The stored size includes the
// header.
func (s *Segment) Stats() compress.Stats {
	return compress.Stats{
		Algorithm:      s.Header.Compression,
		RawSize:        int64(s.Header.RawSize),
		CompressedSize: int64(HeaderSize + s.storedSize),
	}
}
