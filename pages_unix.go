//go:build unix

package memres

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Pages maps anonymous memory straight from the operating system. Each
// chunk is its own mapping rounded up to the page size, and Destroy unmaps
// it immediately. Pages has no state; its zero value is ready to use.
type Pages struct{}

// AutoSize returns the system page size.
func (Pages) AutoSize() int {
	return unix.Getpagesize()
}

// Create maps n bytes rounded up to whole pages.
func (Pages) Create(n int) (Chunk, error) {
	if n <= 0 {
		return Chunk{}, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "create", Size: n}
	}
	b, err := unix.Mmap(-1, 0, roundPages(n), unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return Chunk{}, &AllocError{Op: "create", Size: n, Err: err}
	}
	return NewChunk(b), nil
}

// Destroy unmaps c. c must be a chunk returned by Create or Grow, unchanged.
func (Pages) Destroy(c Chunk) {
	if c.IsNil() {
		return
	}
	if err := unix.Munmap(c.Bytes()); err != nil {
		panic(fmt.Sprintf("memres: munmap %d bytes: %v", c.Len(), err))
	}
}

func roundPages(n int) int {
	mask := unix.Getpagesize() - 1
	return (n + mask) &^ mask
}

var _ Allocator = Pages{}
