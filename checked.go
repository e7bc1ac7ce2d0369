package arena

import (
	"fmt"
	"runtime"

	"golang.org/x/exp/slices"
)

// TestingT is the subset of testing.TB used by CheckedArena to report
// failures.
type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// CheckedArena wraps an Arena for use in tests. It mirrors the arena
// operations one to one while recording the call site of every allocation
// and the stack of outstanding checkpoints, so a test can assert that every
// scratch scope was unwound and pin down the exact line that leaked.
//
// Like the arena itself it is owned by a single goroutine.
type CheckedArena struct {
	arena *Arena

	allocs     map[int]*dalloc // live allocations keyed by region start offset
	marks      []Checkpoint    // outstanding checkpoints, oldest first
	violations []string
}

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

// the allocations come in through either Allocate or AllocateAligned, both
// one frame above the common path that records the caller.
const allocFrames = 2

// NewCheckedArena returns a checked wrapper around a.
func NewCheckedArena(a *Arena) *CheckedArena {
	return &CheckedArena{arena: a, allocs: make(map[int]*dalloc)}
}

// Allocate mirrors Arena.Allocate.
func (c *CheckedArena) Allocate(size int) ([]byte, error) {
	return c.allocate(size, DefaultAlignment)
}

// AllocateAligned mirrors Arena.AllocateAligned.
func (c *CheckedArena) AllocateAligned(size, alignment int) ([]byte, error) {
	return c.allocate(size, alignment)
}

func (c *CheckedArena) allocate(size, alignment int) ([]byte, error) {
	out, err := c.arena.AllocateAligned(size, alignment)
	if err != nil || size == 0 {
		return out, err
	}

	if pc, _, l, ok := runtime.Caller(allocFrames); ok {
		c.allocs[c.arena.prevOffset] = &dalloc{pc: pc, line: l, sz: size}
	}
	return out, nil
}

// Checkpoint captures the arena's cursor and pushes the checkpoint onto the
// outstanding stack.
func (c *CheckedArena) Checkpoint() Checkpoint {
	cp := c.arena.Checkpoint()
	c.marks = append(c.marks, cp)
	return cp
}

// Restore rolls the arena back to cp and forgets every allocation and
// checkpoint taken after it. Restoring out of stack order, or restoring a
// checkpoint that is no longer outstanding, is recorded as a discipline
// violation and reported by AssertEmpty. Restoring a checkpoint taken from a
// different arena panics.
func (c *CheckedArena) Restore(cp Checkpoint) {
	if cp.arena != c.arena {
		panic("arena: checkpoint was not taken from this arena")
	}

	// Checkpoints captured with no intervening allocation are equal values,
	// so match against the newest outstanding entry first: restoring such
	// twins in LIFO order must pop them newest-first.
	idx := len(c.marks) - 1
	for idx >= 0 && c.marks[idx] != cp {
		idx--
	}
	switch {
	case idx < 0:
		c.violations = append(c.violations,
			fmt.Sprintf("restore of %v: checkpoint is not outstanding (already restored past, or taken outside this wrapper)", cp))
	case idx != len(c.marks)-1:
		c.violations = append(c.violations,
			fmt.Sprintf("restore of %v out of order: %d newer checkpoint(s) discarded", cp, len(c.marks)-1-idx))
	}
	if idx >= 0 {
		c.marks = c.marks[:idx]
	}

	cp.Restore()
	// allocs is keyed by the aligned region start offset (what allocate
	// records), so every record at or past the restored cursor belongs to a
	// reclaimed region.
	for off := range c.allocs {
		if off >= cp.curOffset {
			delete(c.allocs, off)
		}
	}
}

// Reset mirrors Arena.Reset and forgets all recorded allocations and
// checkpoints.
func (c *CheckedArena) Reset() {
	c.arena.Reset()
	c.marks = c.marks[:0]
	clear(c.allocs)
}

// Metrics reports the wrapped arena's current usage.
func (c *CheckedArena) Metrics() Metrics {
	return c.arena.Metrics()
}

// AssertEmpty reports, through t, every discipline violation recorded so
// far, every allocation still outstanding with the call site that made it,
// and any checkpoint that was never restored.
func (c *CheckedArena) AssertEmpty(t TestingT) {
	t.Helper()

	for _, v := range c.violations {
		t.Errorf("%s", v)
	}

	offsets := make([]int, 0, len(c.allocs))
	for off := range c.allocs {
		offsets = append(offsets, off)
	}
	slices.Sort(offsets)
	for _, off := range offsets {
		info := c.allocs[off]
		f := runtime.FuncForPC(info.pc)
		t.Errorf("LEAK of %d bytes at offset %d FROM %s line %d", info.sz, off, f.Name(), info.line)
	}

	if used := c.arena.Metrics().UsedBytes; used != 0 {
		t.Errorf("arena not empty: %d bytes still allocated", used)
	}
	if n := len(c.marks); n != 0 {
		t.Errorf("%d checkpoint(s) never restored", n)
	}
}

// CheckedScope remembers the arena's usage at construction time so a test
// can verify that a block of code restored everything it allocated.
type CheckedScope struct {
	arena *CheckedArena
	used  int
}

// NewCheckedScope captures the arena's current usage.
func NewCheckedScope(c *CheckedArena) *CheckedScope {
	return &CheckedScope{arena: c, used: c.Metrics().UsedBytes}
}

// CheckUsed reports through t if the arena's usage differs from the value
// captured by NewCheckedScope.
func (s *CheckedScope) CheckUsed(t TestingT) {
	used := s.arena.Metrics().UsedBytes
	if s.used != used {
		t.Helper()
		t.Errorf("invalid used bytes exp=%d, got=%d", s.used, used)
	}
}
