// SPDX-License-Identifier: MPL-2.0

// Package report renders the analysis as a stream of sections, tables and
// rows. The HTML writer produces the standalone page written to disk, the
// Markdown writer produces a document that can be saved or rendered to the
// terminal with glamour, and Recorder captures the stream for tests.
package report
