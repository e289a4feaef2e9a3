package pool

import "sync"

// Buffer sizing. A line buffer that grew past its limit (one huge structured
// frame, say) is dropped instead of pinning memory in the pool.
const (
	LineBufferDefaultSize     = 512
	LineBufferMaxThreshold    = 64 << 10
	SegmentBufferDefaultSize  = 256 << 10
	SegmentBufferMaxThreshold = 8 << 20
)

// ByteBuffer holds one encoded line or the joined lines of an archive segment.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered data. It aliases the buffer until the next Reset.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the buffer capacity.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// Reset truncates the buffer, keeping its storage.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// AppendLine appends line, preceded by an LF when sep is set. Segment
// payloads are built this way, so they never end with a separator.
func (bb *ByteBuffer) AppendLine(line []byte, sep bool) {
	need := len(line)
	if sep {
		need++
	}
	bb.reserve(need)

	if sep {
		bb.B = append(bb.B, '\n')
	}
	bb.B = append(bb.B, line...)
}

// reserve makes room for n more bytes. Segment buffers grow by a quarter of
// their capacity at a time rather than by the size of each appended line.
func (bb *ByteBuffer) reserve(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := max(cap(bb.B)/4, LineBufferDefaultSize, n)
	grown := make([]byte, len(bb.B), len(bb.B)+step)
	copy(grown, bb.B)
	bb.B = grown
}

// ByteBufferPool recycles ByteBuffers of one size class.
type ByteBufferPool struct {
	pool  sync.Pool
	limit int
}

// NewByteBufferPool creates a pool handing out buffers of size capacity.
// Buffers that grew beyond limit are not returned to the pool; a zero limit
// keeps all of them.
func NewByteBufferPool(size, limit int) *ByteBufferPool {
	p := &ByteBufferPool{limit: limit}
	p.pool.New = func() any { return NewByteBuffer(size) }

	return p
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and makes it available to Get.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.limit > 0 && cap(bb.B) > p.limit) {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	linePool    = NewByteBufferPool(LineBufferDefaultSize, LineBufferMaxThreshold)
	segmentPool = NewByteBufferPool(SegmentBufferDefaultSize, SegmentBufferMaxThreshold)
)

// GetLineBuffer returns a buffer for encoding a single line.
func GetLineBuffer() *ByteBuffer { return linePool.Get() }

// PutLineBuffer releases a buffer obtained from GetLineBuffer.
func PutLineBuffer(bb *ByteBuffer) { linePool.Put(bb) }

// GetSegmentBuffer returns a buffer for collecting the lines of a segment.
func GetSegmentBuffer() *ByteBuffer { return segmentPool.Get() }

// PutSegmentBuffer releases a buffer obtained from GetSegmentBuffer.
func PutSegmentBuffer(bb *ByteBuffer) { segmentPool.Put(bb) }
