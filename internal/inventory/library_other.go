// SPDX-License-Identifier: MPL-2.0

//go:build !(darwin || linux || windows)

package inventory

// ProbeLibrary has no dynamic loader binding on this platform.
func (h *Host) ProbeLibrary(string) (bool, string) {
	return false, ErrUnsupported.Error()
}

// FileVersion is not available on this platform.
func (h *Host) FileVersion(string) (string, error) {
	return "", ErrUnsupported
}
