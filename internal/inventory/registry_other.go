// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package inventory

// RegistryEntries is only meaningful on Windows.
func (h *Host) RegistryEntries(Scope, string) ([]RegistryEntry, error) {
	return nil, ErrUnsupported
}

// DeviceRegistryEntries is only meaningful on Windows.
func (h *Host) DeviceRegistryEntries(string) ([]DeviceEntry, error) {
	return nil, ErrUnsupported
}

func uninstalledVersion(string) (string, error) {
	return "", ErrUnsupported
}
