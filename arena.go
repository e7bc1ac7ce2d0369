package arena

import (
	"fmt"
	"unsafe"

	"github.com/memutil/arena/internal/debug"
)

// DefaultAlignment is the alignment used by Allocate. It is twice the
// machine pointer width, which satisfies every scalar type the compiler
// emits.
const DefaultAlignment = int(2 * unsafe.Sizeof(uintptr(0)))

// Arena is a fixed-capacity linear allocator over a caller-owned buffer.
//
// The arena never grows, reallocates or releases the buffer; the caller must
// keep it alive for the arena's entire lifetime. Allocation advances a
// single cursor, so individual regions cannot be freed. Space comes back in
// bulk, either through a Checkpoint restore or through Reset.
//
// The zero Arena is not usable until Init is called.
type Arena struct {
	buf        []byte
	prevOffset int // start of the most recent allocation
	curOffset  int // first unused byte

	// gen identifies the current binding of the arena. Init and Reset bump
	// it so that checkpoints captured before either call can be recognized
	// as stale in assert builds.
	gen uint32
}

// NewArena returns an arena serving allocations out of buf.
func NewArena(buf []byte) *Arena {
	a := &Arena{}
	a.Init(buf)
	return a
}

// Init binds the arena to buf and rewinds the cursor. It may be called again
// to rebind an existing arena to a different buffer; checkpoints captured
// before the call must not be restored afterwards.
func (a *Arena) Init(buf []byte) {
	a.buf = buf
	a.prevOffset = 0
	a.curOffset = 0
	a.gen++
}

// Allocate returns a zeroed region of size bytes aligned to
// DefaultAlignment. It returns ErrCapacityExceeded, leaving the arena
// unchanged, when the request does not fit in the remaining capacity.
func (a *Arena) Allocate(size int) ([]byte, error) {
	return a.AllocateAligned(size, DefaultAlignment)
}

// AllocateAligned returns a zeroed region of size bytes whose starting
// address is a multiple of alignment, which must be a power of two. It
// returns ErrCapacityExceeded, leaving the arena unchanged, when the aligned
// request does not fit in the remaining capacity.
//
// The region is a sub-slice of the arena's buffer with capacity clamped to
// size. It stays valid until the arena is reset, rebound, or rolled back
// past it by a checkpoint restore.
func (a *Arena) AllocateAligned(size, alignment int) ([]byte, error) {
	debug.Assert(a.gen != 0, "arena: not initialized")
	debug.Assert(size >= 0, "arena: negative allocation size")

	if len(a.buf) == 0 {
		return nil, ErrCapacityExceeded
	}

	// Align the absolute cursor address, not the offset, so the region
	// itself lands on an alignment boundary regardless of where the caller's
	// buffer starts.
	base := addressOf(a.buf)
	offset := int(alignUp(base+uintptr(a.curOffset), uintptr(alignment)) - base)

	if offset+size > len(a.buf) {
		return nil, ErrCapacityExceeded
	}
	a.prevOffset = offset
	a.curOffset = offset + size

	out := a.buf[offset : offset+size : offset+size]
	Zero(out)
	return out, nil
}

// Reset rewinds the cursor to the empty state. The buffer binding and the
// buffer's contents are left untouched; checkpoints captured before the call
// must not be restored afterwards.
func (a *Arena) Reset() {
	debug.Assert(a.gen != 0, "arena: not initialized")

	a.prevOffset = 0
	a.curOffset = 0
	a.gen++
}

// Cap returns the arena's fixed capacity in bytes.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// String provides a string snapshot of the arena's cursor state.
func (a *Arena) String() string {
	return fmt.Sprintf("arena{used: %d cap: %d}", a.curOffset, len(a.buf))
}
