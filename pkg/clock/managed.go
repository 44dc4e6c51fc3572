package clock

import (
	"sync"
	"time"
)

// Managed is a Clock whose time only moves when asked to. Intended for tests.
// After never blocks: it warps the clock forward and fires immediately.
type Managed struct {
	mu     sync.Mutex
	start  time.Time
	offset time.Duration
	waits  []time.Duration
}

// NewManaged returns a Managed clock starting at the given time
func NewManaged(start time.Time) *Managed {
	return &Managed{start: start}
}

func (c *Managed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start.Add(c.offset)
}

func (c *Managed) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.offset += d
	now := c.start.Add(c.offset)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// WarpForward moves time forward by the provided offset and returns the new time
func (c *Managed) WarpForward(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
	return c.start.Add(c.offset)
}

// Waits returns every duration passed to After, in call order.
func (c *Managed) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.waits))
	copy(out, c.waits)
	return out
}
