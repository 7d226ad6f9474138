// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the vkvia command line.
//
// Running vkvia without a subcommand analyses the Vulkan installation,
// writes the report file and prints a one-line summary. The process exit
// status is the numeric result code.
package cmd
