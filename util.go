package arena

import (
	"unsafe"

	"github.com/memutil/arena/internal/debug"
)

// alignUp rounds addr up to the smallest multiple of align that is >= addr.
// align must be a power of two.
func alignUp(addr, align uintptr) uintptr {
	debug.Assert(isPowerOfTwo(align), "arena: alignment is not a power of two")

	mask := align - 1
	return (addr + mask) &^ mask
}

func isPowerOfTwo(v uintptr) bool {
	return v != 0 && v&(v-1) == 0
}

func roundToPowerOf2(v, round int) int {
	forceCarry := round - 1
	truncateMask := ^forceCarry
	return (v + forceCarry) & truncateMask
}

func roundUpToMultipleOf64(v int) int {
	return roundToPowerOf2(v, 64)
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
