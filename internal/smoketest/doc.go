// SPDX-License-Identifier: MPL-2.0

// Package smoketest runs the SDK's cube sample as the external test stage of
// an analysis.
package smoketest
