// SPDX-License-Identifier: MPL-2.0

// Package analysis builds the installation report. An Analyzer walks a fixed
// pipeline (system summary, drivers, runtimes, SDKs, implicit layers,
// explicit layers, layer settings, the graphics probe and external tests),
// writes each stage to a report.Sink as it completes and folds every stage's
// outcome into one result.Code.
package analysis
