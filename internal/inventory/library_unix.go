// SPDX-License-Identifier: MPL-2.0

//go:build darwin || linux

package inventory

import "github.com/ebitengine/purego"

// ProbeLibrary dlopens path with immediate binding and closes it again.
func (h *Host) ProbeLibrary(path string) (bool, string) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return false, err.Error()
	}
	if err := purego.Dlclose(handle); err != nil {
		h.logger.Debug("dlclose failed", "path", path, "error", err)
	}
	return true, ""
}

// FileVersion is not recorded in ELF or Mach-O objects.
func (h *Host) FileVersion(string) (string, error) {
	return "", ErrUnsupported
}
