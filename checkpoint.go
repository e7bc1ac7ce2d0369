package arena

import (
	"fmt"

	"github.com/memutil/arena/internal/debug"
)

// A Checkpoint is a snapshot of an arena's cursor state. Restoring it rolls
// back every allocation made against that arena after the snapshot was
// taken, without touching the bytes themselves.
//
// A checkpoint is a plain value: copying it is cheap and discarding it needs
// no cleanup. It is only meaningful while its arena keeps the binding it had
// at capture time; Init and Reset both invalidate earlier checkpoints.
// Checkpoints over one arena should be restored in reverse capture order.
// Restoring an older checkpoint while newer ones are outstanding is not
// detected here: it silently discards everything allocated since, including
// regions handed out under the newer checkpoints.
type Checkpoint struct {
	arena      *Arena
	prevOffset int
	curOffset  int
	gen        uint32
}

// Checkpoint captures the arena's current cursor state.
func (a *Arena) Checkpoint() Checkpoint {
	debug.Assert(a.gen != 0, "arena: not initialized")

	return Checkpoint{
		arena:      a,
		prevOffset: a.prevOffset,
		curOffset:  a.curOffset,
		gen:        a.gen,
	}
}

// Restore rewinds the checkpoint's arena to the captured cursor state,
// reclaiming every allocation made since the capture in O(1). Reclaimed
// bytes are not cleared; each future allocation zero-fills its own region.
// Restoring the same checkpoint twice is harmless.
func (c Checkpoint) Restore() {
	debug.Assert(c.arena != nil, "arena: checkpoint without an arena")
	debug.Assert(c.arena == nil || c.gen == c.arena.gen,
		"arena: stale checkpoint: arena was rebound or reset after capture")

	c.arena.prevOffset = c.prevOffset
	c.arena.curOffset = c.curOffset
}

// String provides a string snapshot of the checkpoint's saved cursor.
func (c Checkpoint) String() string {
	return fmt.Sprintf("checkpoint{prev: %d cur: %d}", c.prevOffset, c.curOffset)
}
