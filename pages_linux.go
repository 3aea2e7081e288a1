//go:build linux

package memres

import "golang.org/x/sys/unix"

// Grow remaps c, letting the kernel move it when it cannot grow in place.
func (p Pages) Grow(c Chunk, n int) (Chunk, error) {
	if c.IsNil() {
		return p.Create(n)
	}
	if n <= c.Len() {
		return c, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "grow", Size: n}
	}
	b, err := unix.Mremap(c.Bytes(), roundPages(n), unix.MREMAP_MAYMOVE)
	if err != nil {
		return Chunk{}, &AllocError{Op: "grow", Size: n, Err: err}
	}
	return NewChunk(b), nil
}
