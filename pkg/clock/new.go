package clock

import "time"

type implClock struct{}

// New returns a Clock backed by the time package
func New() Clock {
	return implClock{}
}

func (implClock) Now() time.Time {
	return time.Now()
}

func (implClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
