package pool

import "sync"

// SlicePool recycles slices of T, such as the per-entry field slices of the log encoder.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty SlicePool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get returns a pointer to an empty slice with at least hint capacity.
//
// Example:
//
//	sp := framePool.Get(16)
//	frames := (*sp)[:0]
//	frames = append(frames, f)
//	*sp = frames
//	framePool.Put(sp)
func (p *SlicePool[T]) Get(hint int) *[]T {
	ptr, _ := p.pool.Get().(*[]T)
	if cap(*ptr) < hint {
		*ptr = make([]T, 0, hint)
	}
	*ptr = (*ptr)[:0]

	return ptr
}

// Put zeroes the slice contents and returns it to the pool.
func (p *SlicePool[T]) Put(ptr *[]T) {
	if ptr == nil {
		return
	}
	clear((*ptr)[:cap(*ptr)])
	*ptr = (*ptr)[:0]
	p.pool.Put(ptr)
}
