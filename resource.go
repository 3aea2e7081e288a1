package memres

import "fmt"

// noCopy makes go vet's copylocks check reject by-value copies of the
// structs embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// resource is the state shared by Mutable and Immutable: a Core plus the
// number of live elements, backed by allocator A.
//
// A resource is always in one of three states: empty (no chunk), allocated
// (chunk held, no live elements) or populated. Free returns it to empty;
// Realloc and Expand leave it allocated.
type resource[T any, A Allocator] struct {
	alloc  A
	core   Core[T]
	length int
}

func (r *resource[T, A]) init(a A, n int) error {
	mustBePointerFree[T]()
	r.alloc = a
	size, err := r.sizeFor(n)
	if err != nil {
		return err
	}
	c, err := a.Create(size)
	if err != nil {
		return err
	}
	r.core.Accept(c)
	return nil
}

// sizeFor returns the bytes to request for n elements; n <= 0 selects the
// allocator's default size.
func (r *resource[T, A]) sizeFor(n int) (int, error) {
	if n <= 0 {
		return max(r.alloc.AutoSize(), sizeOf[T]()), nil
	}
	return bytesFor[T](n)
}

// Alive reports whether a chunk is held.
func (r *resource[T, A]) Alive() bool {
	return r.core.Alive()
}

// Len returns the number of live elements.
func (r *resource[T, A]) Len() int {
	return r.length
}

// Cap returns the element capacity.
func (r *resource[T, A]) Cap() int {
	return r.core.Cap()
}

// SetLen records n live elements. Containers call it after writing into
// Raw or after dropping elements. It panics if n is outside [0, Cap()].
func (r *resource[T, A]) SetLen(n int) {
	if n < 0 || n > r.core.Cap() {
		panic(fmt.Sprintf("memres: length %d out of range [0, %d]", n, r.core.Cap()))
	}
	r.length = n
}

// HasSpace reports whether n more elements fit without exceeding Cap().
func (r *resource[T, A]) HasSpace(n int) bool {
	return n >= 0 && n <= r.core.Cap()-r.length
}

// Elems returns the live elements. Appending to the result within its
// capacity writes into the resource but does not change Len.
func (r *resource[T, A]) Elems() []T {
	return r.core.Slice(r.core.Cap())[:r.length:r.core.Cap()]
}

// Raw returns every element slot up to Cap().
func (r *resource[T, A]) Raw() []T {
	return r.core.Slice(r.core.Cap())
}

// AsChunk returns the held chunk.
func (r *resource[T, A]) AsChunk() Chunk {
	return r.core.AsChunk()
}

// Allocator returns the allocator backing the resource.
func (r *resource[T, A]) Allocator() A {
	return r.alloc
}

// Free destroys the held chunk and empties the resource. Calling it on an
// empty resource does nothing.
func (r *resource[T, A]) Free() {
	if !r.core.Alive() {
		return
	}
	r.alloc.Destroy(r.core.Detach())
	r.length = 0
}

// Close frees the resource. It always returns nil.
func (r *resource[T, A]) Close() error {
	r.Free()
	return nil
}

// Realloc destroys the held chunk and installs a fresh one for n elements
// (n <= 0 selects the default size). The length becomes 0. Live elements
// are not released; use ReallocFunc when they own anything.
//
// If the new allocation fails the resource is left empty.
func (r *resource[T, A]) Realloc(n int) error {
	return r.ReallocFunc(n, nil)
}

// ReallocFunc is Realloc that first calls release on every live element.
func (r *resource[T, A]) ReallocFunc(n int, release func(*T)) error {
	size, err := r.sizeFor(n)
	if err != nil {
		return err
	}
	if release != nil {
		elems := r.Elems()
		for i := range elems {
			release(&elems[i])
		}
	}
	r.Free()
	c, err := r.alloc.Create(size)
	if err != nil {
		return err
	}
	r.core.Accept(c)
	return nil
}

// Expand grows the held chunk to at least n elements, creating one when
// empty. Allocators preserve the bytes of the old chunk (see Allocator.Grow),
// but the length is reset to 0: a container keeps its elements by calling
// SetLen with its previous length. On failure the resource is unchanged.
func (r *resource[T, A]) Expand(n int) error {
	size, err := r.sizeFor(n)
	if err != nil {
		return err
	}
	c, err := r.alloc.Grow(r.core.AsChunk(), size)
	if err != nil {
		return err
	}
	r.core.Accept(c)
	r.length = 0
	return nil
}

// take moves the state of r into dst and empties r. The allocator stays
// with r so it can be reused.
func (r *resource[T, A]) take(dst *resource[T, A]) {
	dst.alloc = r.alloc
	dst.core = r.core
	dst.length = r.length
	r.core = Core[T]{}
	r.length = 0
}

// cloneInto copies r into a fresh chunk of the same capacity held by dst.
func (r *resource[T, A]) cloneInto(dst *resource[T, A]) error {
	dst.alloc = r.alloc
	if !r.core.Alive() {
		return nil
	}
	c, err := r.alloc.Create(r.core.AsChunk().Len())
	if err != nil {
		return err
	}
	dst.core.Accept(c)
	copy(dst.Raw(), r.Elems())
	dst.length = r.length
	return nil
}
