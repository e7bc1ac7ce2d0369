package arena

import "fmt"

// Metrics is a point-in-time snapshot of an arena's capacity usage, derived
// entirely from the cursor state.
type Metrics struct {
	UsedBytes      int // bytes between the buffer start and the cursor, padding included
	AvailableBytes int // bytes between the cursor and the end of the buffer
	Capacity       int // fixed size of the backing buffer
}

// Metrics reports the arena's current usage.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		UsedBytes:      a.curOffset,
		AvailableBytes: len(a.buf) - a.curOffset,
		Capacity:       len(a.buf),
	}
}

// String provides a string snapshot of the Metrics state.
func (m Metrics) String() string {
	return fmt.Sprintf(
		"{UsedBytes: %v AvailableBytes: %v Capacity: %v}",
		m.UsedBytes, m.AvailableBytes, m.Capacity,
	)
}
