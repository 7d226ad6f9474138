// SPDX-License-Identifier: MPL-2.0

//go:build windows

package inventory

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ProbeLibrary loads path with the altered search path so dependencies next
// to the DLL resolve, then frees it.
func (h *Host) ProbeLibrary(path string) (bool, string) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return false, err.Error()
	}
	if err := windows.FreeLibrary(handle); err != nil {
		h.logger.Debug("FreeLibrary failed", "path", path, "error", err)
	}
	return true, ""
}

// FileVersion reads the fixed file version from the version resource.
func (h *Host) FileVersion(path string) (string, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil || size == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrUnavailable)
	}
	buf := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&buf[0])); err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrUnavailable)
	}

	var (
		fixed *windows.VS_FIXEDFILEINFO
		n     uint32
	)
	if err := windows.VerQueryValue(unsafe.Pointer(&buf[0]), `\`, unsafe.Pointer(&fixed), &n); err != nil || n == 0 || fixed == nil {
		return "", fmt.Errorf("%s: %w", path, ErrUnavailable)
	}
	return fmt.Sprintf("%d.%d.%d.%d",
		fixed.FileVersionMS>>16, fixed.FileVersionMS&0xffff,
		fixed.FileVersionLS>>16, fixed.FileVersionLS&0xffff), nil
}
