package memres

import (
	"fmt"
	"unsafe"
)

// DefaultBlockSize is the default block size for new arenas (64 KiB).
const DefaultBlockSize = 1 << 16

// block is a single retained region within an arena.
type block struct {
	buf    []byte  // backing memory
	offset uintptr // bump offset within buf
}

func (b *block) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
}

// Arena is a chunked bump allocator and the reference Allocator policy.
// Chunks are carved sequentially out of retained blocks with no per-chunk
// bookkeeping. Destroying the most recent chunk of the current block rewinds
// the bump offset; any other destroyed chunk stays unused until Reset.
//
// Not goroutine-safe. Use SafeArena for concurrent access.
type Arena struct {
	blocks    []block
	current   int
	blockSize int
	autoSize  int
	maxSize   int // 0 means unbounded
	total     int // bytes held in blocks
	wasted    int // destroyed bytes that could not be rewound
	peak      int
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithAutoSize sets the first-allocation size reported by AutoSize.
func WithAutoSize(n int) ArenaOption {
	return func(a *Arena) {
		if n > 0 {
			a.autoSize = n
		}
	}
}

// WithMaxSize caps the bytes the arena may hold in blocks. Requests that
// would exceed it fail with ErrOutOfMemory.
func WithMaxSize(n int) ArenaOption {
	return func(a *Arena) {
		if n > 0 {
			a.maxSize = n
		}
	}
}

// NewArena creates a new Arena with the specified block size.
// If blockSize <= 0, DefaultBlockSize is used.
func NewArena(blockSize int, opts ...ArenaOption) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	a := &Arena{
		blocks:    make([]block, 0, 4),
		blockSize: blockSize,
		autoSize:  min(DefaultAutoSize, blockSize),
	}
	for _, opt := range opts {
		opt(a)
	}
	first := blockSize
	if a.maxSize > 0 {
		// A cap below one block shrinks the first block to the cap.
		first = min(blockSize, a.maxSize)
	}
	a.blocks = append(a.blocks, block{buf: makeWords(first)})
	a.total = len(a.blocks[0].buf)
	return a
}

// AutoSize returns the default first allocation of a resource.
func (a *Arena) AutoSize() int {
	return a.autoSize
}

// Create returns a zeroed chunk of n bytes rounded up to the word size.
func (a *Arena) Create(n int) (Chunk, error) {
	if n <= 0 {
		return Chunk{}, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "create", Size: n}
	}
	buf, err := a.alloc(n, "create")
	if err != nil {
		return Chunk{}, err
	}
	clear(buf)
	return NewChunk(buf), nil
}

// Destroy rewinds the current block when c is its most recent allocation.
// After Release it does nothing.
func (a *Arena) Destroy(c Chunk) {
	if c.IsNil() || a.blocks == nil {
		return
	}
	if b := a.top(c); b != nil {
		b.offset = c.Addr() - b.base()
		return
	}
	a.wasted += c.Len()
}

// Grow extends c in place when it is the most recent allocation of the
// current block and the block has room. Otherwise it allocates, copies and
// destroys c.
func (a *Arena) Grow(c Chunk, n int) (Chunk, error) {
	if c.IsNil() {
		return a.Create(n)
	}
	if n <= c.Len() {
		return c, nil
	}
	if n > maxAllocSize {
		return Chunk{}, &AllocError{Op: "grow", Size: n}
	}
	a.panicIfReleased()

	size := alignUp(uintptr(n))
	if b := a.top(c); b != nil {
		start := c.Addr() - b.base()
		if start+size <= uintptr(len(b.buf)) {
			b.offset = start + size
			buf := b.buf[start : start+size : start+size]
			clear(buf[c.Len():])
			return NewChunk(buf), nil
		}
	}

	buf, err := a.alloc(n, "grow")
	if err != nil {
		return Chunk{}, err
	}
	clear(buf[copy(buf, c.Bytes()):])
	a.Destroy(c)
	return NewChunk(buf), nil
}

// alloc bumps n bytes, rounded up to the word size, out of the arena.
// The returned memory is not zeroed.
func (a *Arena) alloc(n int, op string) ([]byte, error) {
	a.panicIfReleased()
	size := alignUp(uintptr(n))

	// Fast path: current block
	if len(a.blocks) > 0 {
		b := &a.blocks[a.current]
		if b.offset+size <= uintptr(len(b.buf)) {
			start := b.offset
			b.offset += size
			return b.buf[start : start+size : start+size], nil
		}
	}
	return a.allocSlow(size, op)
}

// allocSlow moves to the next retained block that fits, or adds a new one.
func (a *Arena) allocSlow(size uintptr, op string) ([]byte, error) {
	// Blocks past current are untouched since the last Reset.
	for i := a.current + 1; i < len(a.blocks); i++ {
		if size <= uintptr(len(a.blocks[i].buf)) {
			a.current = i
			a.blocks[i].offset = size
			return a.blocks[i].buf[:size:size], nil
		}
	}
	if err := a.grow(int(size), op); err != nil {
		return nil, err
	}
	b := &a.blocks[a.current]
	b.offset = size
	return b.buf[:size:size], nil
}

// grow appends a new block of at least need bytes and makes it current.
func (a *Arena) grow(need int, op string) error {
	size := max(a.blockSize, need)
	if a.maxSize > 0 && a.total+size > a.maxSize {
		// Shrink the last block to what the cap still allows.
		size = max(need, a.maxSize-a.total)
	}
	if a.maxSize > 0 && a.total+size > a.maxSize {
		return &AllocError{
			Op:   op,
			Size: need,
			Err:  fmt.Errorf("arena holds %d of %d bytes", a.total, a.maxSize),
		}
	}
	a.blocks = append(a.blocks, block{buf: makeWords(size)})
	a.current = len(a.blocks) - 1
	a.total += len(a.blocks[a.current].buf)
	return nil
}

// top returns the current block when c is its most recent allocation.
func (a *Arena) top(c Chunk) *block {
	if len(a.blocks) == 0 {
		return nil
	}
	b := &a.blocks[a.current]
	base := b.base()
	if c.Addr() >= base && c.end() == base+b.offset {
		return b
	}
	return nil
}

// Reset rewinds every block but keeps them for reuse. Chunks handed out
// before Reset must no longer be used.
func (a *Arena) Reset() {
	a.panicIfReleased()
	if used := a.SizeInUse(); used > a.peak {
		a.peak = used
	}
	for i := range a.blocks {
		a.blocks[i].offset = 0
	}
	a.current = 0
	a.wasted = 0
}

// Release drops all blocks and makes the arena unusable.
// Create and Grow panic afterwards; Destroy does nothing.
func (a *Arena) Release() {
	a.blocks = nil
	a.current = 0
	a.total = 0
	a.wasted = 0
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.blocks == nil {
		panic("arena: use after Release()")
	}
}

var _ Allocator = (*Arena)(nil)
