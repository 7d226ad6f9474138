// SPDX-License-Identifier: MPL-2.0

package library

import "github.com/vkvia/vkvia/pkg/platform"

// SystemDirs returns the directories searched for bare library names, in
// search order. Windows entries may contain %VAR% references.
func SystemDirs(goos, goarch string) []string {
	switch goos {
	case platform.Windows:
		if goarch == "386" {
			return []string{`%SystemRoot%\SysWOW64`, `%SystemRoot%\System32`}
		}
		return []string{`%SystemRoot%\System32`}
	case platform.Darwin:
		return []string{"/usr/local/lib", "/opt/homebrew/lib", "/usr/lib"}
	}

	multiarch, lib64 := "/usr/lib/x86_64-linux-gnu", "/usr/lib64"
	switch goarch {
	case "386":
		multiarch, lib64 = "/usr/lib/i386-linux-gnu", "/usr/lib32"
	case "arm64":
		multiarch = "/usr/lib/aarch64-linux-gnu"
	case "arm":
		multiarch, lib64 = "/usr/lib/arm-linux-gnueabihf", "/usr/lib32"
	}
	local64 := "/usr/local/lib64"
	if lib64 == "/usr/lib32" {
		local64 = "/usr/local/lib32"
	}
	return []string{"/usr/lib", multiarch, lib64, "/usr/local/lib", local64}
}

// SearchPathVar names the environment variable the dynamic loader searches.
func SearchPathVar(goos string) string {
	switch goos {
	case platform.Windows:
		return "PATH"
	case platform.Darwin:
		return "DYLD_LIBRARY_PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}
