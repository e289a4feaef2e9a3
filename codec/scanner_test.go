package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/format"
)

func TestScanner_Frames(t *testing.T) {
	line := []byte(`hello|k=v|$[1]|$3$ a|b|$1,3$ k=a|b|$$5$ ["|"]`)

	type span struct {
		kind       format.FrameKind
		start, end int
	}
	want := []span{
		{format.FrameBareText, 0, 5},
		{format.FrameBarePair, 6, 9},
		{format.FrameBareJSON, 10, 14},
		{format.FrameLenText, 15, 22},
		{format.FrameLenPair, 23, 34},
		{format.FrameLenJSON, 35, 45},
	}

	sc := NewScanner(line)
	var got []span
	var frames []Frame
	for sc.Scan() {
		fr := sc.Frame()
		got = append(got, span{fr.Kind, fr.Start, fr.End})
		frames = append(frames, fr)
	}
	require.NoError(t, sc.Err())
	require.Equal(t, want, got)

	require.Equal(t, "hello", string(frames[0].Payload))
	require.Equal(t, "k", string(frames[1].Left))
	require.Equal(t, "v", string(frames[1].Right))
	require.Equal(t, "[1]", string(frames[2].Payload))
	require.Equal(t, "a|b", string(frames[3].Payload))
	require.Equal(t, "k", string(frames[4].Left))
	require.Equal(t, "a|b", string(frames[4].Right))
	require.Equal(t, `["|"]`, string(frames[5].Payload))
	require.Equal(t, 10, frames[5].Len())

	// Exhausted scanners stay exhausted.
	require.False(t, sc.Scan())
}

func TestScanner_Empty(t *testing.T) {
	sc := NewScanner(nil)
	require.False(t, sc.Scan())
	require.NoError(t, sc.Err())
}

func TestScanner_StopsAtFirstError(t *testing.T) {
	sc := NewScanner([]byte("a|$3$ xyzb|c"))

	require.True(t, sc.Scan())
	require.Equal(t, "a", string(sc.Frame().Payload))
	require.True(t, sc.Scan())
	require.Equal(t, "xyz", string(sc.Frame().Payload))
	require.False(t, sc.Scan())

	kind, ok := errs.KindOf(sc.Err())
	require.True(t, ok)
	require.Equal(t, errs.KindMissingSeparator, kind)
	require.False(t, sc.Scan())
}

func TestFrames(t *testing.T) {
	var kinds []format.FrameKind
	for fr, err := range Frames([]byte("a|b=c|$[]")) {
		require.NoError(t, err)
		kinds = append(kinds, fr.Kind)
	}
	require.Equal(t, []format.FrameKind{format.FrameBareText, format.FrameBarePair, format.FrameBareJSON}, kinds)

	// Early break.
	count := 0
	for range Frames([]byte("a|b|c")) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)

	// The error is yielded last.
	var lastErr error
	n := 0
	for _, err := range Frames([]byte("a|$9$ b")) {
		n++
		lastErr = err
	}
	require.Equal(t, 2, n)
	require.ErrorIs(t, lastErr, errs.ErrTruncatedPayload)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"12", 12, true},
		{"007", 7, true},
		{"", 0, false},
		{"-1", 0, false},
		{"1a", 0, false},
		{"1234567890123456", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLength([]byte(tt.in))
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}
