// Package watcher reloads the portfolio file while the viewer runs,
// coalescing editor save bursts into single reload events.
package watcher

import (
	"sync"
	"time"
)

// DefaultQuietWindow is how long the file must stay quiet before a
// coalesced callback fires.
const DefaultQuietWindow = 250 * time.Millisecond

// Coalescer collapses rapid triggers into one callback: each Trigger
// restarts the quiet window, and only the last scheduled callback runs.
type Coalescer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewCoalescer creates a Coalescer. A non-positive window uses the
// default.
func NewCoalescer(window time.Duration) *Coalescer {
	if window <= 0 {
		window = DefaultQuietWindow
	}
	return &Coalescer{window: window}
}

// Trigger schedules fn after the quiet window, replacing any pending
// schedule.
func (c *Coalescer) Trigger(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	seq := c.seq

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		// A timer can fire while a newer Trigger holds the lock; the
		// sequence check keeps only the newest callback alive.
		live := seq == c.seq
		if live {
			c.timer = nil
		}
		c.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Stop cancels any pending callback.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
