// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes GOOS names and the few path conventions that
// differ between them, so discovery tables can be selected for any target
// regardless of the host running the code.
package platform
