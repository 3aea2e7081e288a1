// Package memres provides the memory layer that growable containers are
// built on: a byte-oriented allocator contract and typed, owning memory
// resources on top of it.
//
// # Overview
//
// Three layers, leaves first:
//
//   - Chunk: a raw {pointer, length} descriptor, the only value exchanged
//     with an allocator.
//   - Allocator: a policy with AutoSize, Create, Destroy and Grow. Policies
//     are interchangeable without touching anything above them.
//   - Mutable and Immutable: element-typed resources that track capacity and
//     the number of live elements. Mutable can be cloned; Immutable can only
//     be moved.
//
// Containers (vectors, strings, heaps, queues) decide when to call HasSpace,
// Expand and Realloc and own the lifecycle of their elements; this package
// only owns the bytes.
//
// # Basic Usage
//
//	a := memres.NewArena(0) // default block size
//	defer a.Release()
//
//	r, err := memres.NewMutable[int32](a)
//	if err != nil {
//		return err
//	}
//	defer r.Free()
//
//	if !r.HasSpace(1) {
//		n := r.Len()
//		if err := r.Expand(2 * r.Cap()); err != nil {
//			return err
//		}
//		r.SetLen(n) // Grow preserves bytes; re-adopt the survivors
//	}
//	r.Raw()[r.Len()] = 42
//	r.SetLen(r.Len() + 1)
//
// # Policies
//
//   - Heap: the Go heap. Destroy is a no-op.
//   - Arena: chunked bump allocation with O(1) Reset, the reference policy.
//   - SafeArena: Arena behind a mutex, for containers shared across
//     goroutines.
//   - Pages: anonymous memory mappings, returned to the OS on Destroy.
//   - Pool: size-bucketed buffer recycling.
//   - Instrumented: Prometheus metrics and logging around any policy.
//
// Every policy returns zeroed memory from Create, and Grow preserves the old
// contents up to the smaller of the two lengths.
//
// # Important Notes
//
//   - Element types must not contain Go pointers; the memory is not scanned
//     by the garbage collector. Constructors panic otherwise.
//   - Resources are not safe for concurrent use. Wrap them in a mutex at the
//     container level.
//   - Resources must not be copied by value (go vet reports it). Use Move to
//     transfer ownership and Mutable.Clone to duplicate.
//   - Call Free or Close when a resource is no longer needed.
//   - Realloc discards the live elements without running any cleanup unless
//     ReallocFunc is given a release callback.
package memres
