package memres

// Mutable is an owning, typed memory resource that may be duplicated with
// Clone. It tracks how many of its Cap() slots hold live elements; element
// construction and destruction belong to the container built on top.
//
// Element types must not contain Go pointers: allocators hand out memory the
// garbage collector does not scan. A Mutable must not be copied by value;
// use Clone to duplicate it and Move to transfer it. It is not safe for
// concurrent use.
type Mutable[T any, A Allocator] struct {
	_ noCopy
	resource[T, A]
}

// NewMutable creates a resource holding max(a.AutoSize(), size of T) bytes.
func NewMutable[T any, A Allocator](a A) (*Mutable[T, A], error) {
	return NewMutableN[T](a, 0)
}

// NewMutableN creates a resource with room for n elements. n <= 0 behaves
// like NewMutable.
func NewMutableN[T any, A Allocator](a A, n int) (*Mutable[T, A], error) {
	r := &Mutable[T, A]{}
	if err := r.init(a, n); err != nil {
		return nil, err
	}
	return r, nil
}

// Clone returns an independent copy: a fresh chunk of the same capacity from
// the same allocator, holding the same live elements. Cloning an empty
// resource returns an empty resource.
func (r *Mutable[T, A]) Clone() (*Mutable[T, A], error) {
	dup := &Mutable[T, A]{}
	if err := r.cloneInto(&dup.resource); err != nil {
		return nil, err
	}
	return dup, nil
}

// Move transfers the chunk, capacity and length to a new owner and leaves r
// empty. r keeps its allocator and may be reallocated.
func (r *Mutable[T, A]) Move() *Mutable[T, A] {
	dst := &Mutable[T, A]{}
	r.take(&dst.resource)
	return dst
}
