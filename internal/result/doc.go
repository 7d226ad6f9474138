// SPDX-License-Identifier: MPL-2.0

// Package result defines the aggregate outcome codes of an analysis run, the
// rule for folding per-category outcomes into one code, and the one-line
// summary printed when the run ends.
//
// Code values are the process exit status, so they are stable and negative
// for failures.
package result
