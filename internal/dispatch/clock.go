package dispatch

import "sync/atomic"

// Clock stamps dispatch cycles with a strictly increasing sequence number.
//
// Thread-safety: Clock is safe for concurrent use, although the dispatcher
// only advances it from the single dispatching goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
