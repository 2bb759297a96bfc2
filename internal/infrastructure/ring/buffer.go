// ABOUTME: Fixed-size ring buffer holding the most recent entries
// ABOUTME: Drops the oldest entry on overflow to keep a bounded history
package ring

import "sync"

type Buffer[T any] struct {
	buf []T
	r   int // read position (oldest entry)
	n   int // entries stored
	mu  sync.Mutex
}

// New returns a buffer holding up to size entries. A size below one is
// treated as one.
func New[T any](size int) *Buffer[T] {
	if size < 1 {
		size = 1
	}
	return &Buffer[T]{buf: make([]T, size)}
}

// Push appends v, evicting the oldest entry when full.
func (b *Buffer[T]) Push(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.n == len(b.buf) {
		b.buf[b.r] = v
		b.r = (b.r + 1) % len(b.buf)
		return
	}

	b.buf[(b.r+b.n)%len(b.buf)] = v
	b.n++
}

// Last returns the newest entry.
func (b *Buffer[T]) Last() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if b.n == 0 {
		return zero, false
	}
	return b.buf[(b.r+b.n-1)%len(b.buf)], true
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

func (b *Buffer[T]) Cap() int {
	return len(b.buf)
}

// Snapshot copies the contents, oldest first.
func (b *Buffer[T]) Snapshot() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]T, b.n)
	if b.n == 0 {
		return out
	}

	tail := b.r + b.n
	if tail <= len(b.buf) {
		copy(out, b.buf[b.r:tail])
	} else {
		k := copy(out, b.buf[b.r:])
		copy(out[k:], b.buf[:tail-len(b.buf)])
	}

	return out
}
