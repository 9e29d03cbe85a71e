// Package ringbuf provides a byte FIFO over a fixed, power of two sized
// buffer. The read and write positions are free running counters that are
// only masked when indexing, so the full capacity is usable and the fill
// level is always the plain difference of the two. Writes and reads copy as
// much as fits and report the count, short transfers are the caller's to
// handle.
//
// A Buffer must not be used from multiple goroutines without external
// locking.
package ringbuf

import "math/bits"

type Buffer struct {
	buf  []byte
	mask uint64
	in   uint64
	out  uint64
}

// New returns an empty buffer holding at least capacity bytes, rounded up
// to the next power of two. It panics if capacity is not positive.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic("ringbuf: capacity must be positive")
	}
	n := 1 << bits.Len(uint(capacity-1))
	return &Buffer{buf: make([]byte, n), mask: uint64(n - 1)}
}

// Cap returns the usable capacity in bytes.
func (b *Buffer) Cap() int { return len(b.buf) }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return int(b.in - b.out) }

// Free returns how many bytes can be written without discarding data.
func (b *Buffer) Free() int { return b.Cap() - b.Len() }

// Reset discards all buffered data.
func (b *Buffer) Reset() {
	b.in, b.out = 0, 0
}

// Put appends as much of p as fits and returns the number of bytes copied
// in.
func (b *Buffer) Put(p []byte) int {
	n := min(len(p), b.Free())
	b.copyIn(p[:n])
	b.in += uint64(n)
	return n
}

// PutByte appends a single byte, reporting false when the buffer is full.
func (b *Buffer) PutByte(c byte) bool {
	if b.Free() == 0 {
		return false
	}
	b.buf[b.in&b.mask] = c
	b.in++
	return true
}

// Get copies up to len(p) buffered bytes into p, consuming them, and
// returns the count.
func (b *Buffer) Get(p []byte) int {
	n := b.peek(p)
	b.out += uint64(n)
	return n
}

// GetByte consumes and returns the oldest byte, reporting false when the
// buffer is empty.
func (b *Buffer) GetByte() (byte, bool) {
	if b.Len() == 0 {
		return 0, false
	}
	c := b.buf[b.out&b.mask]
	b.out++
	return c, true
}

// Peek is Get without consuming, the bytes remain readable.
func (b *Buffer) Peek(p []byte) int {
	return b.peek(p)
}

// Skip consumes up to n buffered bytes without copying them anywhere and
// returns how many were dropped.
func (b *Buffer) Skip(n int) int {
	if n < 0 {
		n = 0
	}
	n = min(n, b.Len())
	b.out += uint64(n)
	return n
}

// copyIn writes p starting at the in position, wrapping at the end of the
// backing array. The caller has already bounded p by Free.
func (b *Buffer) copyIn(p []byte) {
	off := int(b.in & b.mask)
	k := copy(b.buf[off:], p)
	copy(b.buf, p[k:])
}

func (b *Buffer) peek(p []byte) int {
	n := min(len(p), b.Len())
	off := int(b.out & b.mask)
	k := copy(p[:n], b.buf[off:])
	copy(p[k:n], b.buf)
	return n
}
