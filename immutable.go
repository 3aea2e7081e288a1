package memres

// Immutable is an owning, typed memory resource that can only be moved.
// It offers no duplication operation, so aliasing its backing chunk is a
// compile error rather than a runtime bug; by-value copies are flagged by
// go vet.
//
// Apart from that it behaves exactly like Mutable.
type Immutable[T any, A Allocator] struct {
	_ noCopy
	resource[T, A]
}

// NewImmutable creates a resource holding max(a.AutoSize(), size of T) bytes.
func NewImmutable[T any, A Allocator](a A) (*Immutable[T, A], error) {
	return NewImmutableN[T](a, 0)
}

// NewImmutableN creates a resource with room for n elements. n <= 0 behaves
// like NewImmutable.
func NewImmutableN[T any, A Allocator](a A, n int) (*Immutable[T, A], error) {
	r := &Immutable[T, A]{}
	if err := r.init(a, n); err != nil {
		return nil, err
	}
	return r, nil
}

// Move transfers the chunk, capacity and length to a new owner and leaves r
// empty. r keeps its allocator and may be reallocated.
func (r *Immutable[T, A]) Move() *Immutable[T, A] {
	dst := &Immutable[T, A]{}
	r.take(&dst.resource)
	return dst
}
