package memres

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)

	// Test initial state
	if a.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", a.SizeInUse())
	}
	if a.NumBlocks() != 1 {
		t.Errorf("Initial NumBlocks = %d, want 1", a.NumBlocks())
	}
	if a.Capacity() != 1024 {
		t.Errorf("Initial Capacity = %d, want 1024", a.Capacity())
	}
	if a.BlockSize() != 1024 {
		t.Errorf("BlockSize = %d, want 1024", a.BlockSize())
	}
	if a.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", a.Utilization())
	}

	// Allocate some data
	_, _ = a.Create(96)
	_, _ = a.Create(200)

	if a.SizeInUse() != 296 {
		t.Errorf("SizeInUse = %d, want 296", a.SizeInUse())
	}

	utilization := a.Utilization()
	if utilization <= 0 || utilization > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", utilization)
	}

	// Force block growth
	_, _ = a.Create(2000) // Larger than block size
	if a.NumBlocks() != 2 {
		t.Errorf("NumBlocks after growth = %d, want 2", a.NumBlocks())
	}
	if a.Capacity() != 3024 {
		t.Errorf("Capacity after growth = %d, want 3024", a.Capacity())
	}

	// Test metrics snapshot
	metrics := a.Metrics()
	require.Equal(t, ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Wasted:      0,
		Peak:        a.SizeInUse(),
		NumBlocks:   2,
		BlockSize:   1024,
		Utilization: a.Utilization(),
	}, metrics)
}

func TestArenaMetricsAfterReset(t *testing.T) {
	a := NewArena(1024)

	_, _ = a.Create(504)
	require.Equal(t, 504, a.SizeInUse())

	a.Reset()
	require.Zero(t, a.SizeInUse())
	require.Zero(t, a.Utilization())
	require.Equal(t, 504, a.Peak(), "peak survives Reset")

	_, _ = a.Create(800)
	require.Equal(t, 800, a.Peak())
}

func TestArenaMetricsAfterRelease(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.Create(100)
	a.Release()

	require.Zero(t, a.SizeInUse())
	require.Zero(t, a.Capacity())
	require.Zero(t, a.NumBlocks())
	require.Zero(t, a.Utilization())
}

func TestArenaCollector(t *testing.T) {
	a := NewSafeArena(1024)
	_, _ = a.Create(96)
	_, _ = a.Create(200)

	c := NewArenaCollector("test", a)
	require.Equal(t, 6, testutil.CollectAndCount(c))

	expected := `
# HELP memres_arena_blocks Number of arena blocks.
# TYPE memres_arena_blocks gauge
memres_arena_blocks{arena="test"} 1
# HELP memres_arena_bytes_in_use Bytes currently bumped out of arena blocks.
# TYPE memres_arena_bytes_in_use gauge
memres_arena_bytes_in_use{arena="test"} 296
# HELP memres_arena_capacity_bytes Total bytes held in arena blocks.
# TYPE memres_arena_capacity_bytes gauge
memres_arena_capacity_bytes{arena="test"} 1024
# HELP memres_arena_utilization_ratio Bytes in use divided by capacity.
# TYPE memres_arena_utilization_ratio gauge
memres_arena_utilization_ratio{arena="test"} 0.2890625
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"memres_arena_blocks",
		"memres_arena_bytes_in_use",
		"memres_arena_capacity_bytes",
		"memres_arena_utilization_ratio",
	))
}
