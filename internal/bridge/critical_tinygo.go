//go:build tinygo

package bridge

import "runtime/interrupt"

// Critical runs f with interrupts disabled.
func Critical(f func()) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	f()
}
