package memres

import (
	"testing"
)

// sentinel is written over every byte a canary allocator destroys.
const sentinel = 0xDE

// canary poisons destroyed chunks so reads through stale references show up.
type canary[A Allocator] struct {
	next      A
	destroyed []Chunk
}

func (c *canary[A]) AutoSize() int { return c.next.AutoSize() }

func (c *canary[A]) Create(n int) (Chunk, error) { return c.next.Create(n) }

func (c *canary[A]) Destroy(ch Chunk) {
	if ch.IsNil() {
		return
	}
	b := ch.Bytes()
	for i := range b {
		b[i] = sentinel
	}
	c.destroyed = append(c.destroyed, ch)
	c.next.Destroy(ch)
}

func (c *canary[A]) Grow(ch Chunk, n int) (Chunk, error) { return c.next.Grow(ch, n) }

// policies returns a constructor for every built-in allocator.
func policies(t *testing.T) map[string]func() Allocator {
	t.Helper()
	return map[string]func() Allocator{
		"heap":  func() Allocator { return Heap{} },
		"arena": func() Allocator { return NewArena(1024) },
		"safe":  func() Allocator { return NewSafeArena(1024) },
		"pool":  func() Allocator { return NewPool(64, 1<<16, 2) },
		"pages": func() Allocator { return Pages{} },
		"instrumented": func() Allocator {
			return NewInstrumented[Allocator](NewArena(1024), "test", nil, nil)
		},
	}
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func allEqual(b []byte, v byte) bool {
	for _, x := range b {
		if x != v {
			return false
		}
	}
	return true
}
