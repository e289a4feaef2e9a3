// Package errs defines the error values shared by the lln packages.
//
// Decoding failures are reported as *FormatError values carrying an ErrorKind and the
// byte offset where the violation was detected. Each kind has a matching sentinel so
// callers can test with errors.Is:
//
//	fields, err := lln.Decode(line)
//	if errors.Is(err, errs.ErrTruncatedPayload) {
//	    // the line was cut short by the transport
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a structural violation found while decoding a line.
type ErrorKind uint8

const (
	KindMissingSeparator ErrorKind = iota + 1
	KindUnterminatedMetaHeader
	KindInvalidMetaHeader
	KindMissingPairDelimiter
	KindTruncatedPayload
	KindInvalidJSON
	KindInvalidUTF8
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingSeparator:
		return "MissingSeparator"
	case KindUnterminatedMetaHeader:
		return "UnterminatedMetaHeader"
	case KindInvalidMetaHeader:
		return "InvalidMetaHeader"
	case KindMissingPairDelimiter:
		return "MissingPairDelimiter"
	case KindTruncatedPayload:
		return "TruncatedPayload"
	case KindInvalidJSON:
		return "InvalidJson"
	case KindInvalidUTF8:
		return "InvalidUtf8"
	default:
		return "Unknown"
	}
}

// Sentinels matched by FormatError.Is.
var (
	ErrMissingSeparator       = errors.New("lln: missing separator")
	ErrUnterminatedMetaHeader = errors.New("lln: unterminated meta header")
	ErrInvalidMetaHeader      = errors.New("lln: invalid meta header")
	ErrMissingPairDelimiter   = errors.New("lln: missing pair delimiter")
	ErrTruncatedPayload       = errors.New("lln: truncated payload")
	ErrInvalidJSON            = errors.New("lln: invalid json payload")
	ErrInvalidUTF8            = errors.New("lln: invalid utf-8 payload")
)

// Archive errors.
var (
	ErrInvalidHeaderSize      = errors.New("archive: invalid segment header size")
	ErrInvalidMagic           = errors.New("archive: invalid segment magic number")
	ErrUnsupportedVersion     = errors.New("archive: unsupported segment version")
	ErrUnsupportedCompression = errors.New("archive: unsupported compression type")
	ErrChecksumMismatch       = errors.New("archive: segment checksum mismatch")
	ErrLineCountMismatch      = errors.New("archive: segment line count mismatch")
	ErrLineContainsNewline    = errors.New("archive: line contains CR or LF")
	ErrWriterClosed           = errors.New("archive: writer is closed")
)

var kindSentinels = map[ErrorKind]error{
	KindMissingSeparator:       ErrMissingSeparator,
	KindUnterminatedMetaHeader: ErrUnterminatedMetaHeader,
	KindInvalidMetaHeader:      ErrInvalidMetaHeader,
	KindMissingPairDelimiter:   ErrMissingPairDelimiter,
	KindTruncatedPayload:       ErrTruncatedPayload,
	KindInvalidJSON:            ErrInvalidJSON,
	KindInvalidUTF8:            ErrInvalidUTF8,
}

// FormatError reports a malformed line.
type FormatError struct {
	Kind   ErrorKind
	Offset int // byte offset into the decoded line
	Msg    string
	Err    error // optional underlying cause, e.g. a JSON syntax error
}

// NewFormatError creates a FormatError for the given kind at offset.
func NewFormatError(kind ErrorKind, offset int, format string, args ...any) *FormatError {
	return &FormatError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lln: %s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Err)
	}

	return fmt.Sprintf("lln: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same kind.
func (e *FormatError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]

	return ok && sentinel == target
}

// KindOf returns the ErrorKind of err when it is, or wraps, a *FormatError.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}

	return 0, false
}
