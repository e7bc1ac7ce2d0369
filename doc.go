// Package arena implements a fixed-capacity linear allocator with
// checkpoint-based rollback.
//
// An Arena hands out zeroed regions of a caller-owned buffer by advancing a
// single cursor. There is no per-allocation free: space is reclaimed either
// all at once with Reset, or in bulk by capturing a Checkpoint before a
// group of allocations and restoring it afterwards, which rewinds the cursor
// in O(1) regardless of how much was allocated in between.
//
//	a := arena.NewArena(arena.NewAlignedBuffer(1 << 20))
//
//	state, err := a.Allocate(512) // lives until the next Reset
//	...
//	c := a.Checkpoint()
//	scratch, err := a.Allocate(4096) // scratch for one query
//	...
//	c.Restore() // scratch space reclaimed
//
// Every operation completes in O(1) and never blocks. An arena must be owned
// by a single goroutine at a time; Checkpoint values may be copied freely,
// but Restore mutates the arena they reference, so restores need the same
// external serialization as any other arena operation.
//
// Precondition violations (allocating from an uninitialized arena, passing a
// non-power-of-two alignment, restoring a checkpoint after its arena was
// rebound or reset) are unchecked in normal builds. Building with the assert
// tag turns them into panics.
package arena
