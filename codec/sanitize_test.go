package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user", "user"},
		{"user_id", "user_id"},
		{"user id", "userid"},
		{"a=b", "ab"},
		{"$key", "key"},
		{"k\r\n\t", "k"},
		{"!@#$:;,+-()[]~`", ""},
		{"path.to/key", "path.to/key"},
		{"ключ", "ключ"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeKey(tt.in))
		})
	}
}

func TestEscapeLineBreaks(t *testing.T) {
	require.Equal(t, "plain", EscapeLineBreaks("plain"))
	require.Equal(t, `a\nb\r\nc`, EscapeLineBreaks("a\nb\r\nc"))
	require.Equal(t, `already \n escaped`, EscapeLineBreaks(`already \n escaped`))
}
