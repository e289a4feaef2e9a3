package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	require.Equal(t, uint64(0xef46db3751d8e999), Sum(nil))
	require.Equal(t, uint64(0x4fdcca5ddb678139), Sum([]byte("test")))

	// A segment checksum equals the digest of its lines streamed with separators.
	d := xxhash.New()
	_, _ = d.WriteString("LOGIN|user=alice")
	_, _ = d.WriteString("\n")
	_, _ = d.WriteString("$3$ a|b")
	require.Equal(t, d.Sum64(), Sum([]byte("LOGIN|user=alice\n$3$ a|b")))

	require.NotEqual(t, Sum([]byte("a|b")), Sum([]byte("$3$ a|b")))
}

func BenchmarkSum(b *testing.B) {
	line := []byte("2026-10-16T10:00:00.123|web01|INFO|app.auth|LOGIN|user=alice|$3$ a|b")
	for b.Loop() {
		Sum(line)
	}
}
