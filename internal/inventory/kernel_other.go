// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package inventory

func kernelBuild() string { return "" }
