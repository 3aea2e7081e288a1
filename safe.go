package memres

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for containers shared
// between goroutines. It satisfies Allocator; every call takes the lock.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified block size.
// If blockSize <= 0, DefaultBlockSize is used.
func NewSafeArena(blockSize int, opts ...ArenaOption) *SafeArena {
	return &SafeArena{a: NewArena(blockSize, opts...)}
}

// AutoSize does not lock: the value is fixed at construction.
func (s *SafeArena) AutoSize() int {
	return s.a.AutoSize()
}

// Create locks and calls Arena.Create.
func (s *SafeArena) Create(n int) (Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Create(n)
}

// Destroy locks and calls Arena.Destroy.
func (s *SafeArena) Destroy(c Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Destroy(c)
}

// Grow locks and calls Arena.Grow.
func (s *SafeArena) Grow(c Chunk, n int) (Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Grow(c, n)
}

// Reset thread-safely rewinds the arena for reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all blocks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

var _ Allocator = (*SafeArena)(nil)
