package arena

const bufferAlignment = 64

// NewAlignedBuffer allocates a zeroed buffer of the given size on the Go
// heap whose first byte lies on a 64-byte boundary. It is a convenience for
// callers that do not manage backing storage themselves; an aligned base
// also keeps allocation offsets deterministic for every alignment up to 64.
func NewAlignedBuffer(size int) []byte {
	buf := make([]byte, size+bufferAlignment) // padding for 64-byte alignment
	addr := int(addressOf(buf))
	next := roundUpToMultipleOf64(addr)
	if addr != next {
		shift := next - addr
		return buf[shift : size+shift : size+shift]
	}
	return buf[:size:size]
}
