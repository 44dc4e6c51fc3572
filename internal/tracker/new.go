package tracker

import (
	"sync"

	"github.com/nguyentantai21042004/videosummary/pkg/clock"
)

const subscriberBuffer = 32

type implTracker struct {
	clock clock.Clock

	mu    sync.RWMutex
	jobs  map[string]*Job
	order []string
	subs  map[chan Event]struct{}
}

// New creates an empty Tracker. A nil clock uses wall time.
func New(clk clock.Clock) Tracker {
	if clk == nil {
		clk = clock.New()
	}
	return &implTracker{
		clock: clk,
		jobs:  make(map[string]*Job),
		subs:  make(map[chan Event]struct{}),
	}
}
