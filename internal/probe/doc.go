// SPDX-License-Identifier: MPL-2.0

// Package probe exercises the Vulkan API just enough to show whether an
// application could use it: it queries the loader, creates instances and
// logical devices, then destroys everything again.
//
// The real binding is compiled only with the "vulkan" build tag. Without it
// Open returns ErrUnavailable and the analysis reports the probe as skipped.
package probe
