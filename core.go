package memres

// Core binds a Chunk to the element type T. Its capacity is the number of
// whole T values that fit in the chunk; trailing bytes below one element are
// never used.
//
// Core owns the chunk it holds but never calls an allocator. Mutable and
// Immutable build on it.
type Core[T any] struct {
	chunk    Chunk
	memory   *T
	capacity int
}

// NewCore takes ownership of *c and leaves it empty.
func NewCore[T any](c *Chunk) Core[T] {
	var core Core[T]
	core.Accept(*c)
	*c = Chunk{}
	return core
}

// Alive reports whether a chunk is held.
func (c *Core[T]) Alive() bool {
	return c.memory != nil
}

// Cap returns the element capacity.
func (c *Core[T]) Cap() int {
	return c.capacity
}

// AsChunk returns the held chunk for handing back to the allocator.
// Its length is at least Cap() times the element size.
func (c *Core[T]) AsChunk() Chunk {
	return c.chunk
}

// Accept installs ch and recomputes the capacity. The previously held chunk
// is forgotten, not destroyed.
func (c *Core[T]) Accept(ch Chunk) {
	c.chunk = ch
	c.memory = (*T)(ch.Ptr())
	c.capacity = elemsIn[T](ch.Len())
}

// Detach empties c and returns the chunk it held.
func (c *Core[T]) Detach() Chunk {
	ch := c.chunk
	*c = Core[T]{}
	return ch
}

// Slice returns the first n elements. n must not exceed Cap().
func (c *Core[T]) Slice(n int) []T {
	return view(c.memory, c.capacity)[:n]
}
