package scheduler

import "time"

// Scheduler owns named timers. Keys are unique: at most one timer exists per key.
type Scheduler interface {
	// Every runs fn every interval until the key is cancelled. It returns
	// false and leaves the existing timer alone if the key is already taken.
	Every(key string, interval time.Duration, fn func()) bool

	// After runs fn once after delay, replacing any timer under the same key
	After(key string, delay time.Duration, fn func())

	// Cancel removes the timer for key. Cancelling an unknown key is a no-op.
	Cancel(key string)

	// Active reports whether a timer is registered for key
	Active(key string) bool

	// Stop cancels every timer
	Stop()
}
