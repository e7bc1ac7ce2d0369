package arena

// Error is the type used by the package to declare error constants.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

// ErrCapacityExceeded is returned by Allocate and AllocateAligned when the
// aligned request does not fit in the arena's remaining capacity. The arena
// is left unchanged; the caller may retry with a smaller size or reclaim
// space through a checkpoint restore or Reset.
const ErrCapacityExceeded = Error("arena: capacity exceeded")
