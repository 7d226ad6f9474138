// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"strings"

	"github.com/vkvia/vkvia/internal/library"
	"github.com/vkvia/vkvia/pkg/platform"
)

// SettingsFileName is the layer settings file the loader reads.
const SettingsFileName = "vk_layer_settings.txt"

const khronosKey = `SOFTWARE\Khronos\Vulkan\`

type (
	// Layout is the table of locations enumerated on one platform.
	Layout struct {
		// DeviceValues are per-adapter registry value names.
		DeviceValues map[Category][]string
		// RegistryKeys are Khronos keys read under both hives.
		RegistryKeys map[Category]string
		// BaseDirs are the standard roots, joined with Leaves per category.
		BaseDirs []string
		Leaves   map[Category]string
		// PathVars name variables holding directory lists.
		PathVars map[Category][]string
		// FileVars name variables holding file lists (or roots for SDKs).
		FileVars map[Category][]string
		// LibraryDirs and LibraryPathVar locate runtime libraries.
		LibraryDirs    []string
		LibraryPathVar string
		// RuntimeMatch reports whether a file name is a Vulkan runtime.
		RuntimeMatch func(name string) bool
	}
)

var commonPathVars = map[Category][]string{
	CategoryDriver:        {"VK_DRIVERS_PATH"},
	CategoryExplicitLayer: {"VK_LAYER_PATH", "VK_ADD_LAYER_PATH"},
	CategoryImplicitLayer: {"VK_IMPLICIT_LAYER_PATH", "VK_ADD_IMPLICIT_LAYER_PATH"},
	CategorySettings:      {"VK_LAYER_SETTINGS_PATH"},
}

var commonFileVars = map[Category][]string{
	CategoryDriver: {"VK_ICD_FILENAMES", "VK_DRIVER_FILES", "VK_ADD_DRIVER_FILES"},
	CategorySDK:    {"VK_SDK_PATH", "VULKAN_SDK"},
}

var leaves = map[Category]string{
	CategoryDriver:        "icd.d",
	CategoryExplicitLayer: "explicit_layer.d",
	CategoryImplicitLayer: "implicit_layer.d",
	CategorySettings:      "settings.d",
}

// LayoutFor returns the location table for goos on goarch.
func LayoutFor(goos, goarch string) Layout {
	l := Layout{
		Leaves:         leaves,
		PathVars:       commonPathVars,
		FileVars:       commonFileVars,
		LibraryDirs:    library.SystemDirs(goos, goarch),
		LibraryPathVar: library.SearchPathVar(goos),
	}

	switch goos {
	case platform.Windows:
		l.DeviceValues = map[Category][]string{
			CategoryDriver:        {"VulkanDriverName", "VulkanDriverNameWow"},
			CategoryExplicitLayer: {"VulkanExplicitLayers"},
			CategoryImplicitLayer: {"VulkanImplicitLayers"},
		}
		l.RegistryKeys = map[Category]string{
			CategoryDriver:        khronosKey + "Drivers",
			CategoryExplicitLayer: khronosKey + "ExplicitLayers",
			CategoryImplicitLayer: khronosKey + "ImplicitLayers",
			CategorySettings:      khronosKey + "Settings",
		}
		l.RuntimeMatch = isWindowsRuntime
	case platform.Darwin:
		l.BaseDirs = []string{
			"/etc/vulkan",
			"/usr/share/vulkan",
			"/usr/local/etc/vulkan",
			"/usr/local/share/vulkan",
			"/opt/homebrew/etc/vulkan",
			"/opt/homebrew/share/vulkan",
			"~/.local/share/vulkan",
		}
		l.RuntimeMatch = isDarwinRuntime
	default:
		l.BaseDirs = []string{
			"/etc/vulkan",
			"/usr/share/vulkan",
			"/usr/local/etc/vulkan",
			"/usr/local/share/vulkan",
			"~/.local/share/vulkan",
		}
		l.RuntimeMatch = isLinuxRuntime
	}
	return l
}

// isLinuxRuntime matches libvulkan.so.<digits>.
func isLinuxRuntime(name string) bool {
	rest, ok := strings.CutPrefix(name, "libvulkan.so.")
	return ok && isDigits(rest)
}

// isDarwinRuntime matches libvulkan.<n>.dylib, including dotted versions.
func isDarwinRuntime(name string) bool {
	rest, ok := strings.CutPrefix(name, "libvulkan.")
	if !ok {
		return false
	}
	rest, ok = strings.CutSuffix(rest, ".dylib")
	return ok && isDigits(strings.ReplaceAll(rest, ".", ""))
}

// isWindowsRuntime matches vulkan-1*.dll, ignoring case.
func isWindowsRuntime(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "vulkan-1") && strings.HasSuffix(lower, ".dll")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
