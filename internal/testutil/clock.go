// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"

	"github.com/vkvia/vkvia/internal/clock"
)

// FakeClock is a clock.Clock that only moves when Advance is called.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

var _ clock.Clock = (*FakeClock)(nil)

// NewFakeClock returns a FakeClock reading initial. A zero initial time
// starts at 2020-01-01 00:00 UTC.
func NewFakeClock(initial time.Time) *FakeClock {
	if initial.IsZero() {
		initial = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &FakeClock{current: initial}
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the fake time elapsed since t.
func (c *FakeClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Sub(t)
}

// Advance moves the fake time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
