package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatError_Is(t *testing.T) {
	kinds := []struct {
		kind     ErrorKind
		sentinel error
		name     string
	}{
		{KindMissingSeparator, ErrMissingSeparator, "MissingSeparator"},
		{KindUnterminatedMetaHeader, ErrUnterminatedMetaHeader, "UnterminatedMetaHeader"},
		{KindInvalidMetaHeader, ErrInvalidMetaHeader, "InvalidMetaHeader"},
		{KindMissingPairDelimiter, ErrMissingPairDelimiter, "MissingPairDelimiter"},
		{KindTruncatedPayload, ErrTruncatedPayload, "TruncatedPayload"},
		{KindInvalidJSON, ErrInvalidJSON, "InvalidJson"},
		{KindInvalidUTF8, ErrInvalidUTF8, "InvalidUtf8"},
	}
	for _, tt := range kinds {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFormatError(tt.kind, 3, "bad byte %q", 'x')
			require.ErrorIs(t, err, tt.sentinel)
			require.Equal(t, tt.name, tt.kind.String())

			for _, other := range kinds {
				if other.kind != tt.kind {
					require.NotErrorIs(t, err, other.sentinel)
				}
			}
		})
	}
}

func TestFormatError_Message(t *testing.T) {
	err := NewFormatError(KindTruncatedPayload, 4, "need %d bytes, have %d", 12, 5)
	require.Equal(t, "lln: TruncatedPayload at offset 4: need 12 bytes, have 5", err.Error())

	cause := errors.New("unexpected end of JSON input")
	err = &FormatError{Kind: KindInvalidJSON, Offset: 1, Msg: "structured payload", Err: cause}
	require.Contains(t, err.Error(), "unexpected end of JSON input")
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrInvalidJSON)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("line 7: %w", NewFormatError(KindInvalidUTF8, 0, "text frame"))
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindInvalidUTF8, kind)

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok)
	require.Equal(t, "Unknown", ErrorKind(0).String())
}
