package codec

import (
	"bytes"
	"iter"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/format"
)

// Frame is the span of one encoded field inside a line. Byte slices alias the scanned
// line and are only valid as long as the line is.
type Frame struct {
	Kind  format.FrameKind
	Start int // offset of the first byte, meta header included
	End   int // offset one past the last byte

	// Payload holds the text or JSON bytes of text and structured frames.
	Payload []byte
	// Left and Right hold the two sides of pair frames.
	Left  []byte
	Right []byte
}

// Len returns the number of bytes the frame occupies in the line.
func (f Frame) Len() int {
	return f.End - f.Start
}

// Scanner tokenizes a line into frames. It alternates between reading a frame and
// consuming the '|' separator that must follow it, and stops at the first violation.
//
// Scanner does not validate UTF-8 or JSON payloads; Decoder does.
//
//	sc := codec.NewScanner(line)
//	for sc.Scan() {
//	    fmt.Println(sc.Frame().Kind)
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
type Scanner struct {
	line       []byte
	pos        int
	afterFrame bool
	done       bool
	frame      Frame
	err        error
}

// NewScanner returns a Scanner reading from line. The line is not modified.
func NewScanner(line []byte) *Scanner {
	return &Scanner{line: line}
}

// Scan advances to the next frame. It returns false at the end of the line or on error.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}

	n := len(s.line)
	if s.afterFrame {
		if s.pos == n {
			s.done = true
			return false
		}
		if s.line[s.pos] != format.Separator {
			s.err = errs.NewFormatError(errs.KindMissingSeparator, s.pos,
				"separator '|' expected, found %q", s.line[s.pos])

			return false
		}
		s.pos++
		if s.pos == n {
			s.err = errs.NewFormatError(errs.KindMissingSeparator, s.pos-1,
				"dangling separator at end of line")

			return false
		}
	} else if s.pos == n {
		s.done = true
		return false
	}

	frame, err := s.readFrame(s.pos)
	if err != nil {
		s.err = err
		return false
	}

	s.frame = frame
	s.pos = frame.End
	s.afterFrame = true

	return true
}

// Frame returns the frame found by the last successful Scan.
func (s *Scanner) Frame() Frame {
	return s.frame
}

// Err returns the first error encountered, or nil if the line was well formed.
func (s *Scanner) Err() error {
	return s.err
}

// Frames returns an iterator over the frames of line. Iteration stops after yielding
// an error.
func Frames(line []byte) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		sc := NewScanner(line)
		for sc.Scan() {
			if !yield(sc.Frame(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Frame{}, err)
		}
	}
}

func (s *Scanner) readFrame(i int) (Frame, error) {
	line := s.line

	if line[i] != format.MetaMarker {
		end := s.nextSeparator(i)
		candidate := line[i:end]
		if k := bytes.IndexByte(candidate, format.PairDelimiter); k >= 0 {
			return Frame{
				Kind:  format.FrameBarePair,
				Start: i,
				End:   end,
				Left:  candidate[:k],
				Right: candidate[k+1:],
			}, nil
		}

		return Frame{Kind: format.FrameBareText, Start: i, End: end, Payload: candidate}, nil
	}

	if i+1 < len(line) && (line[i+1] == '{' || line[i+1] == '[') {
		end := s.nextSeparator(i + 1)
		return Frame{Kind: format.FrameBareJSON, Start: i, End: end, Payload: line[i+1 : end]}, nil
	}

	return s.readLengthPrefixed(i)
}

func (s *Scanner) readLengthPrefixed(i int) (Frame, error) {
	line := s.line

	j := bytes.Index(line[i+1:], []byte(format.MetaTerminator))
	if j < 0 {
		return Frame{}, errs.NewFormatError(errs.KindUnterminatedMetaHeader, i,
			"meta header %q has no \"$ \" terminator", clip(line[i:]))
	}
	j += i + 1 // absolute offset of the terminator
	body := j + len(format.MetaTerminator)

	hdr := bytes.ReplaceAll(line[i+1:j], []byte{' '}, nil)
	if len(hdr) == 0 {
		return Frame{}, errs.NewFormatError(errs.KindInvalidMetaHeader, i, "empty meta header")
	}

	switch {
	case bytes.IndexByte(hdr, format.LengthListSep) >= 0:
		parts := bytes.Split(hdr, []byte{format.LengthListSep})
		if len(parts) != 2 {
			return Frame{}, errs.NewFormatError(errs.KindInvalidMetaHeader, i,
				"pair meta header %q must hold exactly two lengths", line[i:body])
		}
		leftLen, ok1 := parseLength(parts[0])
		rightLen, ok2 := parseLength(parts[1])
		if !ok1 || !ok2 {
			return Frame{}, errs.NewFormatError(errs.KindInvalidMetaHeader, i,
				"pair meta header %q has a non-numeric length", line[i:body])
		}

		leftEnd, err := s.need(body, leftLen)
		if err != nil {
			return Frame{}, err
		}
		if leftEnd == len(line) {
			return Frame{}, errs.NewFormatError(errs.KindTruncatedPayload, leftEnd,
				"pair frame ends before '='")
		}
		if line[leftEnd] != format.PairDelimiter {
			return Frame{}, errs.NewFormatError(errs.KindMissingPairDelimiter, leftEnd,
				"'=' expected after %d-byte left side, found %q", leftLen, line[leftEnd])
		}
		rightEnd, err := s.need(leftEnd+1, rightLen)
		if err != nil {
			return Frame{}, err
		}

		return Frame{
			Kind:  format.FrameLenPair,
			Start: i,
			End:   rightEnd,
			Left:  line[body:leftEnd],
			Right: line[leftEnd+1 : rightEnd],
		}, nil

	case hdr[0] == format.MetaMarker:
		n, ok := parseLength(hdr[1:])
		if !ok {
			return Frame{}, errs.NewFormatError(errs.KindInvalidMetaHeader, i,
				"structured meta header %q has a non-numeric length", line[i:body])
		}
		end, err := s.need(body, n)
		if err != nil {
			return Frame{}, err
		}

		return Frame{Kind: format.FrameLenJSON, Start: i, End: end, Payload: line[body:end]}, nil

	default:
		n, ok := parseLength(hdr)
		if !ok {
			return Frame{}, errs.NewFormatError(errs.KindInvalidMetaHeader, i,
				"text meta header %q has a non-numeric length", line[i:body])
		}
		end, err := s.need(body, n)
		if err != nil {
			return Frame{}, err
		}

		return Frame{Kind: format.FrameLenText, Start: i, End: end, Payload: line[body:end]}, nil
	}
}

// need checks that n bytes are available at off and returns the offset past them.
func (s *Scanner) need(off, n int) (int, error) {
	if remaining := len(s.line) - off; n > remaining {
		return 0, errs.NewFormatError(errs.KindTruncatedPayload, off,
			"%d bytes declared, %d available", n, remaining)
	}

	return off + n, nil
}

func (s *Scanner) nextSeparator(from int) int {
	if k := bytes.IndexByte(s.line[from:], format.Separator); k >= 0 {
		return from + k
	}

	return len(s.line)
}

// maxLengthDigits keeps declared lengths well inside int range.
const maxLengthDigits = 15

func parseLength(b []byte) (int, bool) {
	if len(b) == 0 || len(b) > maxLengthDigits {
		return 0, false
	}

	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}

	return n, true
}

// clip shortens b for error messages.
func clip(b []byte) []byte {
	const limit = 32
	if len(b) > limit {
		return b[:limit]
	}

	return b
}
