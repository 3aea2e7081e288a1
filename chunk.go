package memres

import "unsafe"

// Chunk describes a raw memory region: a byte pointer and a length in bytes.
// It is the only value exchanged with an Allocator.
//
// A Chunk does not own its memory. Exactly one holder is the logical owner
// at a time; after passing a Chunk to Allocator.Destroy or Allocator.Grow the
// holder must drop its copy. Chunks compare with ==.
type Chunk struct {
	ptr *byte
	len int
}

// NewChunk returns a Chunk covering b. An empty b yields the empty Chunk.
func NewChunk(b []byte) Chunk {
	if len(b) == 0 {
		return Chunk{}
	}
	return Chunk{ptr: unsafe.SliceData(b), len: len(b)}
}

// Ptr returns the start of the region, or nil for the empty Chunk.
func (c Chunk) Ptr() unsafe.Pointer {
	return unsafe.Pointer(c.ptr)
}

// Addr returns the start address of the region as an integer.
func (c Chunk) Addr() uintptr {
	return uintptr(unsafe.Pointer(c.ptr))
}

// Len returns the length of the region in bytes.
func (c Chunk) Len() int {
	return c.len
}

// IsNil reports whether c is the empty Chunk.
func (c Chunk) IsNil() bool {
	return c.ptr == nil
}

// Bytes returns the region as a byte slice with len == cap == c.Len().
// The slice is valid only while the owner still holds c.
func (c Chunk) Bytes() []byte {
	if c.ptr == nil {
		return nil
	}
	return unsafe.Slice(c.ptr, c.len)
}

// end returns the address one past the last byte of the region.
func (c Chunk) end() uintptr {
	return c.Addr() + uintptr(c.len)
}
