package clock

import (
	"testing"
	"time"
)

func TestManagedAfter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManaged(start)

	got := <-c.After(3 * time.Second)
	if want := start.Add(3 * time.Second); !got.Equal(want) {
		t.Errorf("After() fired at %v, want %v", got, want)
	}
	if now := c.Now(); !now.Equal(start.Add(3 * time.Second)) {
		t.Errorf("Now() = %v, want %v", now, start.Add(3*time.Second))
	}

	c.After(time.Second)
	waits := c.Waits()
	if len(waits) != 2 || waits[0] != 3*time.Second || waits[1] != time.Second {
		t.Errorf("Waits() = %v, want [3s 1s]", waits)
	}
}

func TestManagedWarpForward(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManaged(start)

	if got := c.WarpForward(time.Hour); !got.Equal(start.Add(time.Hour)) {
		t.Errorf("WarpForward() = %v, want %v", got, start.Add(time.Hour))
	}
	if len(c.Waits()) != 0 {
		t.Error("WarpForward should not record a wait")
	}
}

func TestRealClockAfter(t *testing.T) {
	c := New()
	before := c.Now()
	<-c.After(time.Millisecond)
	if !c.Now().After(before) {
		t.Error("real clock did not advance")
	}
}
