package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_AppendLine(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.AppendLine([]byte("LOGIN|user=alice"), false)
	bb.AppendLine(nil, true)
	bb.AppendLine([]byte("$3$ a|b"), true)

	require.Equal(t, "LOGIN|user=alice\n\n$3$ a|b", string(bb.Bytes()))
	require.Equal(t, 25, bb.Len())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 25, "Reset keeps storage")
}

func TestByteBuffer_Reserve(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		fill    int
		need    int
		wantCap int
	}{
		{"fits", 64, 10, 10, 64},
		{"small buffer grows by line size", 8, 8, 1, 8 + LineBufferDefaultSize},
		{"large buffer grows by a quarter", 4096, 4096, 1, 4096 + 1024},
		{"oversized request", 0, 0, 3 * LineBufferDefaultSize, 3 * LineBufferDefaultSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(tt.initial)
			bb.B = append(bb.B, make([]byte, tt.fill)...)

			bb.reserve(tt.need)
			require.Equal(t, tt.wantCap, bb.Cap())
			require.Equal(t, tt.fill, bb.Len())
		})
	}
}

func TestByteBufferPool(t *testing.T) {
	bb := GetLineBuffer()
	bb.AppendLine([]byte("stale"), false)
	PutLineBuffer(bb)

	again := GetLineBuffer()
	require.Zero(t, again.Len(), "pooled buffers come back empty")
	PutLineBuffer(again)

	seg := GetSegmentBuffer()
	require.Zero(t, seg.Len())
	PutSegmentBuffer(seg)

	PutLineBuffer(nil)
	PutSegmentBuffer(nil)
}

func TestByteBufferPool_Limit(t *testing.T) {
	p := NewByteBufferPool(16, 32)
	p.Put(NewByteBuffer(64))

	for range 4 {
		require.LessOrEqual(t, p.Get().Cap(), 32)
	}
}

func TestByteBufferPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			for range 100 {
				bb := GetLineBuffer()
				bb.AppendLine([]byte{id}, false)
				if bb.Len() != 1 {
					t.Errorf("expected length 1, got %d", bb.Len())
				}
				PutLineBuffer(bb)
			}
		}(byte(i))
	}
	wg.Wait()
}
