package clock

import "time"

// Clock abstracts the passage of time so polling loops can be driven by tests.
type Clock interface {
	Now() time.Time
	// After waits for the duration to elapse and then sends the current time
	// on the returned channel.
	After(d time.Duration) <-chan time.Time
}
