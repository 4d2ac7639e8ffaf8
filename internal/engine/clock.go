package engine

import "sync/atomic"

// Clock stamps engine Steps with a monotonic logical sequence number.
//
// Sequence numbers order the command stream for recorders and traces; wall
// time is never used. The counter is atomic so a Clock may be shared by a
// Guarded engine and a reader polling Current.
type Clock struct {
	seq atomic.Int64
}

// NewClock returns a clock whose first Next is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt returns a clock positioned at start, so the first Next is
// start+1. Used to continue numbering when a recorded session is resumed.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out by Next.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
