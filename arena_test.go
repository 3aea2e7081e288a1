package memres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name      string
		blockSize int
		expected  int
		autoSize  int
	}{
		{"default block size", 0, DefaultBlockSize, DefaultAutoSize},
		{"negative block size", -1, DefaultBlockSize, DefaultAutoSize},
		{"custom block size", 8192, 8192, DefaultAutoSize},
		{"small block size", 512, 512, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.blockSize)
			if a.BlockSize() != tt.expected {
				t.Errorf("NewArena(%d) block size = %d, want %d", tt.blockSize, a.BlockSize(), tt.expected)
			}
			if a.NumBlocks() != 1 {
				t.Errorf("NewArena(%d) blocks = %d, want 1", tt.blockSize, a.NumBlocks())
			}
			if a.AutoSize() != tt.autoSize {
				t.Errorf("NewArena(%d) auto size = %d, want %d", tt.blockSize, a.AutoSize(), tt.autoSize)
			}
		})
	}
}

func TestArenaCreate(t *testing.T) {
	a := NewArena(1024)

	c1, err := a.Create(100)
	require.NoError(t, err)
	require.Equal(t, int(alignUp(100)), c1.Len())

	// Requests are carved sequentially.
	c2, err := a.Create(16)
	require.NoError(t, err)
	require.Equal(t, c1.end(), c2.Addr())

	// Larger than a block forces a new block.
	c3, err := a.Create(2000)
	require.NoError(t, err)
	require.Equal(t, 2000, c3.Len())
	require.Equal(t, 2, a.NumBlocks())
}

func TestArenaCreateZeroesReusedMemory(t *testing.T) {
	a := NewArena(1024)

	c, err := a.Create(64)
	require.NoError(t, err)
	fill(c.Bytes(), 0xFF)
	a.Destroy(c)

	again, err := a.Create(64)
	require.NoError(t, err)
	require.Equal(t, c.Addr(), again.Addr(), "top chunk should have been rewound")
	require.True(t, allEqual(again.Bytes(), 0))
}

func TestArenaDestroy(t *testing.T) {
	t.Run("top chunk rewinds", func(t *testing.T) {
		a := NewArena(1024)
		c1, _ := a.Create(64)
		c2, _ := a.Create(128)

		a.Destroy(c2)
		require.Equal(t, c1.Len(), a.SizeInUse())
		a.Destroy(c1)
		require.Zero(t, a.SizeInUse())
		require.Zero(t, a.Wasted())
	})

	t.Run("buried chunk is wasted", func(t *testing.T) {
		a := NewArena(1024)
		c1, _ := a.Create(64)
		c2, _ := a.Create(128)

		a.Destroy(c1)
		require.Equal(t, c1.Len()+c2.Len(), a.SizeInUse())
		require.Equal(t, 64, a.Wasted())

		a.Reset()
		require.Zero(t, a.Wasted())
	})
}

func TestArenaGrow(t *testing.T) {
	t.Run("in place", func(t *testing.T) {
		a := NewArena(1024)
		c, _ := a.Create(64)
		fill(c.Bytes(), 0xAB)

		g, err := a.Grow(c, 256)
		require.NoError(t, err)
		require.Equal(t, c.Addr(), g.Addr())
		require.Equal(t, 256, g.Len())
		require.True(t, allEqual(g.Bytes()[:64], 0xAB))
		require.True(t, allEqual(g.Bytes()[64:], 0))
		require.Equal(t, 256, a.SizeInUse())
	})

	t.Run("moves when buried", func(t *testing.T) {
		a := NewArena(1024)
		c, _ := a.Create(64)
		fill(c.Bytes(), 0xAB)
		_, _ = a.Create(64)

		g, err := a.Grow(c, 256)
		require.NoError(t, err)
		require.NotEqual(t, c.Addr(), g.Addr())
		require.True(t, allEqual(g.Bytes()[:64], 0xAB))
		require.Equal(t, 64, a.Wasted())
	})

	t.Run("moves to a new block", func(t *testing.T) {
		a := NewArena(128)
		c, _ := a.Create(96)
		fill(c.Bytes(), 0xAB)

		g, err := a.Grow(c, 500)
		require.NoError(t, err)
		require.Equal(t, 2, a.NumBlocks())
		require.True(t, allEqual(g.Bytes()[:96], 0xAB))
		require.True(t, allEqual(g.Bytes()[96:], 0))
	})

	t.Run("reclaims stale bytes", func(t *testing.T) {
		a := NewArena(1024)
		c, _ := a.Create(64)
		tail, _ := a.Create(64)
		fill(tail.Bytes(), 0xFF)
		a.Destroy(tail)

		g, err := a.Grow(c, 128)
		require.NoError(t, err)
		require.Equal(t, c.Addr(), g.Addr())
		require.True(t, allEqual(g.Bytes()[64:], 0), "rewound bytes must read as zero")
	})
}

func TestArenaMaxSize(t *testing.T) {
	a := NewArena(1024, WithMaxSize(2048))

	_, err := a.Create(1024)
	require.NoError(t, err)
	_, err = a.Create(1024)
	require.NoError(t, err)
	require.Equal(t, 2, a.NumBlocks())

	_, err = a.Create(8)
	require.ErrorIs(t, err, ErrOutOfMemory)

	var ae *AllocError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "create", ae.Op)
	require.Equal(t, 2048, a.Capacity(), "a failed request must not add a block")
}

func TestArenaMaxSizeBelowBlock(t *testing.T) {
	a := NewArena(1024, WithMaxSize(256))
	require.Equal(t, 1, a.NumBlocks())
	require.Equal(t, 256, a.Capacity(), "the first block shrinks to the cap")

	c, err := a.Create(200)
	require.NoError(t, err)
	require.Equal(t, 200, c.Len())
	require.Equal(t, 1, a.NumBlocks())

	_, err = a.Grow(c, 1024)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestArenaReset(t *testing.T) {
	a := NewArena(1024)

	// Allocate some data
	_, _ = a.Create(100)
	_, _ = a.Create(2000)

	initialSizeInUse := a.SizeInUse()
	if initialSizeInUse == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}

	// Reset and check
	a.Reset()
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", a.SizeInUse())
	}
	if a.NumBlocks() != 2 {
		t.Errorf("NumBlocks after Reset() = %d, want 2", a.NumBlocks())
	}

	// The large retained block is reused rather than a new one added.
	_, _ = a.Create(100)
	_, _ = a.Create(1500)
	if a.NumBlocks() != 2 {
		t.Errorf("NumBlocks after reuse = %d, want 2", a.NumBlocks())
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	c, _ := a.Create(100)

	a.Release()

	if a.blocks != nil {
		t.Error("Expected blocks to be nil after Release()")
	}

	// Destroy after release is a no-op.
	a.Destroy(c)

	require.PanicsWithValue(t, "arena: use after Release()", func() { _, _ = a.Create(100) })
	require.PanicsWithValue(t, "arena: use after Release()", func() { _, _ = a.Grow(c, 1000) })
	require.PanicsWithValue(t, "arena: use after Release()", a.Reset)
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		input    uintptr
		expected uintptr
	}{
		{0, 0},
		{1, wordSize},
		{wordSize, wordSize},
		{wordSize + 1, wordSize * 2},
	}

	for _, tt := range tests {
		result := alignUp(tt.input)
		if result != tt.expected {
			t.Errorf("alignUp(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func BenchmarkArenaCreate(b *testing.B) {
	a := NewArena(1024 * 1024) // 1MB blocks
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = a.Create(size)
				if i%1000 == 999 { // Reset periodically to avoid growing too much
					a.Reset()
				}
			}
		})
	}
}

func BenchmarkArenaVsHeap(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = a.Create(64)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	b.Run("heap", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Heap{}.Create(64)
		}
	})
}
