package types

import "sync/atomic"

// enforcement is the process-wide flag guarding whether applicative
// reduction runs CheckApplication before dispatching. It is an int32
// accessed atomically because the driver may flip it from a goroutine
// distinct from the CPU-bound reduction pool.
var enforcement int32

// SetEnforcement turns type-check enforcement on or off process-wide.
func SetEnforcement(on bool) {
	if on {
		atomic.StoreInt32(&enforcement, 1)
	} else {
		atomic.StoreInt32(&enforcement, 0)
	}
}

// EnforcementEnabled reports the current state of the process-wide flag.
func EnforcementEnabled() bool {
	return atomic.LoadInt32(&enforcement) != 0
}
