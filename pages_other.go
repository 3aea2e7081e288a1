//go:build !unix

package memres

// Pages falls back to the Go heap where anonymous mappings are unavailable.
type Pages struct {
	Heap
}

var _ Allocator = Pages{}
