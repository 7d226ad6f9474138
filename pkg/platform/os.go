// SPDX-License-Identifier: MPL-2.0

package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ListSeparator returns the separator used by PATH-style environment
// variables on goos.
func ListSeparator(goos string) string {
	if goos == Windows {
		return ";"
	}
	return ":"
}

// PathSeparator returns the directory separator conventionally used on goos.
func PathSeparator(goos string) string {
	if goos == Windows {
		return `\`
	}
	return "/"
}
