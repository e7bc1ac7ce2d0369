package arena

// memset fills a byte slice with a single value. The indirection leaves room
// for platform-specific implementations.
var memset func(b []byte, c byte) = memsetGo

// Set assigns the value c to every element of the slice buf.
func Set(buf []byte, c byte) {
	memset(buf, c)
}

// Zero assigns zero to every element of the slice buf.
func Zero(buf []byte) {
	memset(buf, 0)
}

// memsetGo reference implementation
func memsetGo(buf []byte, c byte) {
	for i := 0; i < len(buf); i++ {
		buf[i] = c
	}
}
