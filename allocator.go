package memres

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultAutoSize is the first-allocation granularity of the built-in
// policies that have no configured value (4 KiB).
const DefaultAutoSize = 1 << 12

// ErrOutOfMemory is matched (errors.Is) by every allocation failure.
var ErrOutOfMemory = errors.New("memres: out of memory")

// Allocator is a byte-oriented allocation policy. Policies know nothing
// about element types; every resource shares this one code path.
//
// Create returns a zeroed Chunk of at least n bytes, or the empty Chunk when
// n <= 0. It never returns a Chunk shorter than requested: if the region
// cannot be obtained it fails with an error matching ErrOutOfMemory.
//
// Destroy releases c. Destroying the empty Chunk is a no-op. Destroying the
// same Chunk twice is a caller bug.
//
// Grow returns a Chunk of at least n bytes holding the bytes of old up to
// min(old.Len(), n); bytes past old.Len() are zero. On success old is
// consumed and must not be used again. On failure old is left untouched and
// still belongs to the caller. Growing the empty Chunk is a Create.
type Allocator interface {
	AutoSize() int
	Create(n int) (Chunk, error)
	Destroy(c Chunk)
	Grow(old Chunk, n int) (Chunk, error)
}

// AllocError describes a failed Create or Grow.
type AllocError struct {
	Op   string // "create" or "grow"
	Size int    // requested bytes
	Err  error  // underlying cause, may be nil
}

func (e *AllocError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("memres: %s %d bytes: out of memory", e.Op, e.Size)
	}
	return fmt.Sprintf("memres: %s %d bytes: %v", e.Op, e.Size, e.Err)
}

// Is makes every AllocError match ErrOutOfMemory.
func (e *AllocError) Is(target error) bool {
	return target == ErrOutOfMemory
}

func (e *AllocError) Unwrap() error {
	return e.Err
}

// Heap allocates from the Go heap. Memory is reclaimed by the garbage
// collector once the last Chunk referencing it is dropped, so Destroy does
// nothing. Heap has no state; its zero value is ready to use.
type Heap struct{}

// AutoSize returns DefaultAutoSize.
func (Heap) AutoSize() int {
	return DefaultAutoSize
}

// Create returns a zeroed, word-aligned chunk of at least n bytes.
func (Heap) Create(n int) (Chunk, error) {
	if n <= 0 {
		return Chunk{}, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "create", Size: n}
	}
	return NewChunk(makeWords(n)), nil
}

// Destroy does nothing; the garbage collector reclaims the chunk.
func (Heap) Destroy(Chunk) {}

// Grow allocates a larger chunk and copies old into it.
func (h Heap) Grow(old Chunk, n int) (Chunk, error) {
	if n <= old.Len() {
		return old, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "grow", Size: n}
	}
	c := NewChunk(makeWords(n))
	copy(c.Bytes(), old.Bytes())
	return c, nil
}

var _ Allocator = Heap{}
