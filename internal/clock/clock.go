// SPDX-License-Identifier: MPL-2.0

// Package clock provides the time source shared by the host inventory and
// the CLI, so report timestamps and layer expiration can be pinned in tests.
package clock

import "time"

type (
	// Clock reads the current time.
	Clock interface {
		Now() time.Time
		Since(t time.Time) time.Duration
	}

	// System reads the system clock.
	System struct{}
)

// Now returns time.Now.
func (System) Now() time.Time { return time.Now() }

// Since returns time.Since(t).
func (System) Since(t time.Time) time.Duration { return time.Since(t) }
