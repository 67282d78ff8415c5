//go:build !tinygo

package bridge

import "sync"

// criticalMu stands in for the interrupt mask on host builds, where contexts are
// goroutines.
var criticalMu sync.Mutex

// Critical runs f while holding the process-wide critical section.
func Critical(f func()) {
	criticalMu.Lock()
	defer criticalMu.Unlock()
	f()
}
