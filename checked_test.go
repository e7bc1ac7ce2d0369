package arena

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockT struct {
	errs []string
}

func (m *mockT) Errorf(format string, args ...interface{}) {
	m.errs = append(m.errs, fmt.Sprintf(format, args...))
}

func (m *mockT) Helper() {}

func TestCheckedArenaCleanScope(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))
	defer chk.AssertEmpty(t)

	cp := chk.Checkpoint()
	buf, err := chk.Allocate(64)
	require.NoError(t, err)
	require.Len(t, buf, 64)
	chk.Restore(cp)
}

func TestCheckedArenaReportsLeak(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	_, err := chk.Allocate(48)
	require.NoError(t, err)

	var m mockT
	chk.AssertEmpty(&m)
	require.Len(t, m.errs, 2)
	assert.Contains(t, m.errs[0], "LEAK of 48 bytes at offset 0")
	assert.Contains(t, m.errs[0], "TestCheckedArenaReportsLeak")
	assert.Contains(t, m.errs[1], "arena not empty: 48 bytes")
}

func TestCheckedArenaUnrestoredCheckpoint(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	chk.Checkpoint()

	var m mockT
	chk.AssertEmpty(&m)
	require.Len(t, m.errs, 1)
	assert.Contains(t, m.errs[0], "1 checkpoint(s) never restored")
}

func TestCheckedArenaOutOfOrderRestore(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	cp1 := chk.Checkpoint()
	_, err := chk.Allocate(16)
	require.NoError(t, err)
	chk.Checkpoint()
	_, err = chk.Allocate(16)
	require.NoError(t, err)

	// skips past the inner checkpoint
	chk.Restore(cp1)
	assert.Zero(t, chk.Metrics().UsedBytes)

	var m mockT
	chk.AssertEmpty(&m)
	require.Len(t, m.errs, 1)
	assert.Contains(t, m.errs[0], "out of order")
	assert.Contains(t, m.errs[0], "1 newer checkpoint(s) discarded")
}

func TestCheckedArenaEqualCheckpointsLIFO(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	// back-to-back captures with no allocation in between are equal values;
	// restoring them newest-first is still correct stack order
	cp1 := chk.Checkpoint()
	cp2 := chk.Checkpoint()
	_, err := chk.Allocate(32)
	require.NoError(t, err)

	chk.Restore(cp2)
	chk.Restore(cp1)

	chk.AssertEmpty(t)
}

func TestCheckedArenaDoubleRestore(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	cp := chk.Checkpoint()
	_, err := chk.Allocate(16)
	require.NoError(t, err)
	chk.Restore(cp)
	chk.Restore(cp) // idempotent on the arena, flagged by the wrapper

	var m mockT
	chk.AssertEmpty(&m)
	require.Len(t, m.errs, 1)
	assert.Contains(t, m.errs[0], "not outstanding")
}

func TestCheckedArenaForeignCheckpointPanics(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))
	other := NewArena(NewAlignedBuffer(256))

	assert.Panics(t, func() {
		chk.Restore(other.Checkpoint())
	})
}

func TestCheckedArenaRestoreDropsAllocRecords(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	cp := chk.Checkpoint()
	_, err := chk.Allocate(32)
	require.NoError(t, err)
	_, err = chk.Allocate(32)
	require.NoError(t, err)
	chk.Restore(cp)

	chk.AssertEmpty(t)
}

func TestCheckedArenaReset(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	chk.Checkpoint()
	_, err := chk.Allocate(32)
	require.NoError(t, err)
	chk.Reset()

	chk.AssertEmpty(t)
}

func TestCheckedArenaAllocateError(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(32)))
	defer chk.AssertEmpty(t)

	_, err := chk.Allocate(64)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestCheckedScope(t *testing.T) {
	chk := NewCheckedArena(NewArena(NewAlignedBuffer(256)))

	scope := NewCheckedScope(chk)
	cp := chk.Checkpoint()
	_, err := chk.Allocate(64)
	require.NoError(t, err)

	var m mockT
	scope.CheckUsed(&m)
	require.Len(t, m.errs, 1)
	assert.Contains(t, m.errs[0], "invalid used bytes exp=0, got=64")

	chk.Restore(cp)
	scope.CheckUsed(t)
	chk.AssertEmpty(t)
}
