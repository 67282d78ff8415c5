// Package bridge moves singly owned hardware handles into the execution context that
// uses them, and carries small values between contexts without locking.
//
// A handle is staged once at boot into a Slot tagged with its owner. The owner claims
// it on its first run, inside a critical section, and keeps it in a Local from then on.
// Shared values are single words: Flag for events, TimeCell for an hours/minutes pair.
package bridge

// Context identifies an execution context. Lower values preempt higher ones.
type Context uint8

const (
	ContextBoot Context = iota
	ContextMotion
	ContextTimer
	ContextSerial
)

func (c Context) String() string {
	switch c {
	case ContextBoot:
		return "boot"
	case ContextMotion:
		return "motion"
	case ContextTimer:
		return "timer"
	case ContextSerial:
		return "serial"
	default:
		return "INVALID"
	}
}
