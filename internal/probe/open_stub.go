// SPDX-License-Identifier: MPL-2.0

//go:build !vulkan

package probe

// Available reports whether a Vulkan binding is compiled into this binary.
const Available = false

// Open always fails without the "vulkan" build tag.
func Open() (Runtime, error) {
	return nil, ErrUnavailable
}
