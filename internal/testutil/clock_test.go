// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.March, 4, 5, 6, 0, 0, time.UTC)
	c := NewFakeClock(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	c.Advance(90 * time.Second)
	if got := c.Since(start); got != 90*time.Second {
		t.Errorf("Since(start) = %v, want 1m30s", got)
	}
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() after Advance = %v", got)
	}
}

func TestFakeClockDefault(t *testing.T) {
	t.Parallel()

	want := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := NewFakeClock(time.Time{}).Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}
