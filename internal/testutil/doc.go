// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers shared across packages: a fake clock
// and Must* wrappers for filesystem and environment changes that fail the
// test instead of returning errors.
package testutil
