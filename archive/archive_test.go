package archive

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lln/codec"
	"github.com/arloliu/lln/errs"
	"github.com/arloliu/lln/field"
	"github.com/arloliu/lln/format"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func readAll(t *testing.T, data []byte) []*Segment {
	t.Helper()

	var segs []*Segment
	for seg, err := range NewReader(bytes.NewReader(data)).All() {
		require.NoError(t, err)
		segs = append(segs, seg)
	}

	return segs
}

func collectLines(segs []*Segment) []string {
	var lines []string
	for _, seg := range segs {
		for line := range seg.Lines() {
			lines = append(lines, string(line))
		}
	}

	return lines
}

func TestWriterReader_RoundTrip(t *testing.T) {
	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, WithCompression(ct), WithMaxLines(3), WithClock(fixedClock))
			require.NoError(t, err)

			var want []string
			for i := range 10 {
				fields := []field.Field{
					field.Text("EVENT"),
					field.Pair("seq", fmt.Sprint(i)),
					field.Text("a|b"),
					field.Structured(map[string]any{"i": i}),
				}
				require.NoError(t, w.WriteFields(fields...))
				want = append(want, string(codec.Encode(fields...)))
			}
			require.NoError(t, w.Close())
			require.Equal(t, 4, w.Segments())

			segs := readAll(t, buf.Bytes())
			require.Len(t, segs, 4)
			require.Equal(t, []int{3, 3, 3, 1}, []int{
				segs[0].LineCount(), segs[1].LineCount(), segs[2].LineCount(), segs[3].LineCount(),
			})
			require.Equal(t, want, collectLines(segs))
			require.Equal(t, fixedClock(), segs[0].CreatedAt().UTC())
			require.Equal(t, ct, segs[0].Header.Compression)
			require.Equal(t, int64(0), segs[0].Offset)
		})
	}
}

func TestWriter_MaxBytes(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithCompression(format.CompressionNone), WithMaxBytes(10))
	require.NoError(t, err)

	require.NoError(t, w.WriteLine([]byte("aaaa")))
	require.NoError(t, w.WriteLine([]byte("bbbb")))
	// "aaaa\nbbbb\ncccc" would exceed 10 bytes: the first two lines are flushed.
	require.NoError(t, w.WriteLine([]byte("cccc")))
	require.Equal(t, 1, w.Segments())
	require.Equal(t, 1, w.Buffered())

	// An oversized line gets a segment of its own.
	require.NoError(t, w.WriteLine([]byte("0123456789abc")))
	require.NoError(t, w.Close())

	segs := readAll(t, buf.Bytes())
	require.Len(t, segs, 3)
	require.Equal(t, []string{"aaaa", "bbbb", "cccc", "0123456789abc"}, collectLines(segs))
	require.Equal(t, 1, segs[2].LineCount())
}

func TestWriter_EmptyLines(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteFields())
	require.NoError(t, w.Flush())
	require.NoError(t, w.WriteLine(nil))
	require.NoError(t, w.WriteLine([]byte("x")))
	require.NoError(t, w.Close())

	segs := readAll(t, buf.Bytes())
	require.Len(t, segs, 2)
	require.Equal(t, 1, segs[0].LineCount())
	require.Equal(t, []string{"", "", "x"}, collectLines(segs))
}

func TestWriter_RejectsLineBreaks(t *testing.T) {
	w, err := NewWriter(io.Discard)
	require.NoError(t, err)

	require.ErrorIs(t, w.WriteLine([]byte("a\nb")), errs.ErrLineContainsNewline)
	require.ErrorIs(t, w.WriteLine([]byte("a\rb")), errs.ErrLineContainsNewline)
	require.Zero(t, w.Buffered())
}

func TestWriter_Closed(t *testing.T) {
	w, err := NewWriter(io.Discard)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	require.ErrorIs(t, w.WriteLine([]byte("x")), errs.ErrWriterClosed)
	require.ErrorIs(t, w.Flush(), errs.ErrWriterClosed)
}

func TestWriter_Options(t *testing.T) {
	_, err := NewWriter(io.Discard, WithMaxLines(0))
	require.Error(t, err)

	_, err = NewWriter(io.Discard, WithMaxBytes(-1))
	require.Error(t, err)

	_, err = NewWriter(io.Discard, WithMaxBytes(MaxSegmentSize+1))
	require.Error(t, err)

	_, err = NewWriter(io.Discard, WithCompression(format.CompressionType(0x9)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = NewWriter(io.Discard, WithClock(nil))
	require.Error(t, err)
}

func TestWriter_BigEndian(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithBigEndian(), WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	require.NoError(t, w.WriteLine([]byte("hello|k=v")))
	require.NoError(t, w.Close())

	segs := readAll(t, buf.Bytes())
	require.Len(t, segs, 1)
	require.True(t, segs[0].Header.IsBigEndian())
	require.Equal(t, []string{"hello|k=v"}, collectLines(segs))
}

func TestWriter_Stats(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	for i := range 500 {
		require.NoError(t, w.WriteFields(field.Text("LOGIN"), field.Pair("user", "alice"), field.Int(int64(i))))
	}
	require.NoError(t, w.Close())

	stats := w.Stats()
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(buf.Len()), stats.CompressedSize)
	require.Greater(t, stats.SpaceSavings(), 50.0)

	segs := readAll(t, buf.Bytes())
	require.Len(t, segs, 1)
	require.Equal(t, stats.RawSize, segs[0].Stats().RawSize)
	require.Equal(t, stats.CompressedSize, segs[0].Stats().CompressedSize)
}

func TestReader_Errors(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithCompression(format.CompressionNone))
	require.NoError(t, err)
	require.NoError(t, w.WriteLine([]byte("hello|world")))
	require.NoError(t, w.Close())
	data := buf.Bytes()

	t.Run("empty input", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(nil)).Next()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(data[:HeaderSize-1])).Next()
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(data[:len(data)-2])).Next()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[HeaderSize] ^= 0x01
		_, err := NewReader(bytes.NewReader(bad)).Next()
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("wrong line count", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] = 2
		_, err := NewReader(bytes.NewReader(bad)).Next()
		require.ErrorIs(t, err, errs.ErrLineCountMismatch)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0], bad[1] = 'x', 'y'
		_, err := NewReader(bytes.NewReader(bad)).Next()
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("all stops at first error", func(t *testing.T) {
		bad := append(append([]byte(nil), data...), 0x01, 0x02)
		var n int
		var last error
		for _, err := range NewReader(bytes.NewReader(bad)).All() {
			n++
			last = err
		}
		require.Equal(t, 2, n)
		require.ErrorIs(t, last, errs.ErrInvalidHeaderSize)
	})
}

func TestSegment_Fields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteFields(field.Null(), field.Pair("k", "v")))
	require.NoError(t, w.WriteLine([]byte("$12$ short")))
	require.NoError(t, w.WriteFields(field.Bool(true)))
	require.NoError(t, w.Close())

	segs := readAll(t, buf.Bytes())
	require.Len(t, segs, 1)

	var results []LineResult
	for i, res := range segs[0].Fields(nil) {
		require.Equal(t, len(results), i)
		results = append(results, res)
	}
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Equal(t, []field.Field{field.Text("None"), field.Pair("k", "v")}, results[0].Fields)
	require.ErrorIs(t, results[1].Err, errs.ErrTruncatedPayload)
	require.Equal(t, "$12$ short", string(results[1].Line))

	dec, err := codec.NewDecoder(codec.WithPrimitiveLiterals(true))
	require.NoError(t, err)
	for i, res := range segs[0].Fields(dec) {
		if i == 2 {
			require.Equal(t, []field.Field{field.Bool(true)}, res.Fields)
		}
	}
}

func TestReader_ConcatenatedArchives(t *testing.T) {
	var a, b bytes.Buffer
	for i, out := range []*bytes.Buffer{&a, &b} {
		w, err := NewWriter(out, WithCompression(allCompressions[i+1]))
		require.NoError(t, err)
		require.NoError(t, w.WriteLine(fmt.Appendf(nil, "archive%d", i)))
		require.NoError(t, w.Close())
	}

	joined := append(a.Bytes(), b.Bytes()...)
	segs := readAll(t, joined)
	require.Len(t, segs, 2)
	require.Equal(t, int64(a.Len()), segs[1].Offset)
	require.Equal(t, []string{"archive0", "archive1"}, collectLines(segs))
}
