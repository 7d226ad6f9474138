// SPDX-License-Identifier: MPL-2.0

//go:build windows

package inventory

import (
	"strconv"

	"golang.org/x/sys/windows"
)

// kernelBuild returns the NT build number.
func kernelBuild() string {
	v := windows.RtlGetVersion()
	return strconv.FormatUint(uint64(v.BuildNumber), 10)
}
