package bridge

import "sync/atomic"

// Flag is a one-bit event raised by one context and consumed by another.
type Flag struct {
	v atomic.Bool
}

// Raise sets the flag.
func (f *Flag) Raise() { f.v.Store(true) }

// Take clears the flag and reports whether it was set.
func (f *Flag) Take() bool { return f.v.Swap(false) }

// Peek reports the flag without clearing it.
func (f *Flag) Peek() bool { return f.v.Load() }

const timeValid = 1 << 16

// TimeCell carries an hours/minutes pair in one word, so a reader never sees the hours of
// one write with the minutes of another.
type TimeCell struct {
	v atomic.Uint32
}

func packTime(hours, minutes uint8) uint32 {
	return timeValid | uint32(hours)<<8 | uint32(minutes)
}

func unpackTime(w uint32) (hours, minutes uint8, ok bool) {
	return uint8(w >> 8), uint8(w), w&timeValid != 0
}

// Publish stores a time for readers that only Load.
func (c *TimeCell) Publish(hours, minutes uint8) { c.v.Store(packTime(hours, minutes)) }

// Load returns the stored time. ok is false if nothing was ever stored or the value was
// taken.
func (c *TimeCell) Load() (hours, minutes uint8, ok bool) { return unpackTime(c.v.Load()) }

// Request stores a time for a single consumer to Take.
func (c *TimeCell) Request(hours, minutes uint8) { c.v.Store(packTime(hours, minutes)) }

// Take returns the pending time and empties the cell.
func (c *TimeCell) Take() (hours, minutes uint8, ok bool) { return unpackTime(c.v.Swap(0)) }
