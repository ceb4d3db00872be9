// Package testutil provides fixtures shared by the screen and app tests.
package testutil

import (
	"sync"
	"time"
)

// FakeClock advances only when told to. After fires at once and moves the
// clock forward by the requested duration.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	waited []time.Duration
}

// NewFakeClock returns a clock stopped at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

// Now implements registration.Clock.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After implements registration.Clock.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waited = append(c.waited, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Waited returns every duration passed to After.
func (c *FakeClock) Waited() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waited...)
}
