package memres

// SizeInUse returns the bytes bumped out of the arena's blocks, counting
// destroyed chunks that could not be rewound.
func (a *Arena) SizeInUse() (n int) {
	for i := range a.blocks {
		n += int(a.blocks[i].offset)
	}
	return n
}

// NumBlocks returns the number of blocks currently held by the arena.
func (a *Arena) NumBlocks() int {
	return len(a.blocks)
}

// Capacity returns the total capacity (in bytes) of all blocks in the arena.
func (a *Arena) Capacity() int {
	return a.total
}

// Wasted returns the bytes of destroyed chunks that stay unusable until Reset.
func (a *Arena) Wasted() int {
	return a.wasted
}

// Peak returns the high-water mark of SizeInUse across resets.
func (a *Arena) Peak() int {
	if used := a.SizeInUse(); used > a.peak {
		return used
	}
	return a.peak
}

// Utilization is SizeInUse over Capacity, or 0 for an empty arena.
func (a *Arena) Utilization() float64 {
	if a.total == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(a.total)
}

// BlockSize returns the default block size used by this arena.
func (a *Arena) BlockSize() int {
	return a.blockSize
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Wasted:      a.Wasted(),
		Peak:        a.Peak(),
		NumBlocks:   a.NumBlocks(),
		BlockSize:   a.BlockSize(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes currently bumped
	Capacity    int     // Total capacity in bytes
	Wasted      int     // Destroyed bytes awaiting Reset
	Peak        int     // High-water mark of SizeInUse
	NumBlocks   int     // Number of blocks
	BlockSize   int     // Default block size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// SizeInUse reports Arena.SizeInUse under the lock.
func (s *SafeArena) SizeInUse() int {
	return s.Metrics().SizeInUse
}

// NumBlocks reports Arena.NumBlocks under the lock.
func (s *SafeArena) NumBlocks() int {
	return s.Metrics().NumBlocks
}

// Capacity reports Arena.Capacity under the lock.
func (s *SafeArena) Capacity() int {
	return s.Metrics().Capacity
}

// Metrics takes a consistent snapshot; it is what ArenaCollector scrapes.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
