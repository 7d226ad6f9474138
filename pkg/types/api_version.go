// SPDX-License-Identifier: MPL-2.0

package types

import "fmt"

// APIVersion is a Vulkan version split into its components.
type APIVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Version10 is the baseline every Vulkan loader supports.
var Version10 = APIVersion{Major: 1, Minor: 0}

// UnpackAPIVersion decodes the VK_MAKE_VERSION encoding (10 bits major,
// 10 bits minor, 12 bits patch).
func UnpackAPIVersion(packed uint32) APIVersion {
	return APIVersion{
		Major: packed >> 22,
		Minor: (packed >> 12) & 0x3FF,
		Patch: packed & 0xFFF,
	}
}

// Pack encodes v with VK_MAKE_VERSION.
func (v APIVersion) Pack() uint32 {
	return v.Major<<22 | v.Minor<<12 | v.Patch
}

// Short renders "major.minor".
func (v APIVersion) Short() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// String renders "major.minor.patch".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less orders versions by major, then minor, then patch.
func (v APIVersion) Less(other APIVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
