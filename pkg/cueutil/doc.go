// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE helpers shared by the config loader and the
// manifest parser.
//
// Two jobs live here: turning CUE errors into "<file>: <path>: <message>"
// diagnostics, and compiling JSON documents into order-preserving cue.Values
// so callers can inspect field kinds without declaring Go structs for
// loosely-shaped input.
package cueutil
