// SPDX-License-Identifier: MPL-2.0

// Package issue holds user-facing error types and the remediation guides
// shown by 'vkvia explain'.
//
// ActionableError carries an operation, a resource and suggestions for
// failures the user can fix (configuration, output files). Issue is the
// Markdown guide for one result code, rendered with glamour.
package issue
