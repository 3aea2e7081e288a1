package memres

import (
	"github.com/prometheus/prometheus/util/pool"
)

// Pool recycles buffers through size buckets growing geometrically from
// minSize to maxSize by factor. Destroyed chunks go back to their bucket;
// requests above maxSize are served from the heap and left to the garbage
// collector. Pool is safe for concurrent use.
type Pool struct {
	pool    *pool.Pool
	minSize int
	maxSize int
}

// NewPool creates a Pool. minSize is raised to 16 bytes so every bucket is
// word aligned, and factor defaults to 2.
func NewPool(minSize, maxSize int, factor float64) *Pool {
	minSize = max(minSize, 2*int(wordSize))
	maxSize = max(maxSize, minSize)
	if factor <= 1 {
		factor = 2
	}
	return &Pool{
		pool: pool.New(minSize, maxSize, factor, func(size int) interface{} {
			return make([]byte, 0, max(size, 2*int(wordSize)))
		}),
		minSize: minSize,
		maxSize: maxSize,
	}
}

// AutoSize returns the smallest bucket size.
func (p *Pool) AutoSize() int {
	return p.minSize
}

// Create returns a zeroed buffer from the smallest bucket holding n bytes.
func (p *Pool) Create(n int) (Chunk, error) {
	if n <= 0 {
		return Chunk{}, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "create", Size: n}
	}
	b := p.pool.Get(n).([]byte)
	if cap(b) < n {
		b = makeWords(n)[:0]
	}
	b = b[:cap(b)]
	clear(b)
	return NewChunk(b), nil
}

// Destroy hands c back to its bucket.
func (p *Pool) Destroy(c Chunk) {
	if c.IsNil() || c.Len() > p.maxSize {
		return
	}
	p.pool.Put(c.Bytes())
}

// Grow takes a chunk from a larger bucket and returns c to its own.
func (p *Pool) Grow(c Chunk, n int) (Chunk, error) {
	if n <= c.Len() {
		return c, nil
	}
	nc, err := p.Create(n)
	if err != nil {
		return Chunk{}, err
	}
	copy(nc.Bytes(), c.Bytes())
	p.Destroy(c)
	return nc, nil
}

var _ Allocator = (*Pool)(nil)
