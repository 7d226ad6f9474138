// SPDX-License-Identifier: MPL-2.0

package result

import (
	"fmt"

	"github.com/vkvia/vkvia/pkg/types"
)

const (
	Successful        Code = 0
	UnknownError      Code = -1
	SystemCallFailure Code = -2

	MissingDriverRegistry  Code = -20
	MissingDriverJSON      Code = -21
	DriverJSONParsingError Code = -22
	MissingDriverLib       Code = -23
	MissingLayerJSON       Code = -24
	LayerJSONParsingError  Code = -25
	MissingLayerLib        Code = -26

	VulkanCantFindRuntime      Code = -40
	VulkanCantFindDriver       Code = -41
	VulkanCantFindExtensions   Code = -42
	VulkanFailedCreateInstance Code = -43
	VulkanFailedCreateDevice   Code = -44
	VulkanFailedOutOfMem       Code = -45

	TestFailed Code = -60
)

type (
	// Code is the aggregate outcome of a run.
	Code int

	// Outcome is what the summary line needs besides the code.
	Outcome struct {
		SDKFound   bool
		TestsRan   bool
		MaxVersion types.APIVersion
	}
)

var (
	codeNames = map[Code]string{
		Successful:                 "Successful",
		UnknownError:               "UnknownError",
		SystemCallFailure:          "SystemCallFailure",
		MissingDriverRegistry:      "MissingDriverRegistry",
		MissingDriverJSON:          "MissingDriverJSON",
		DriverJSONParsingError:     "DriverJSONParsingError",
		MissingDriverLib:           "MissingDriverLib",
		MissingLayerJSON:           "MissingLayerJSON",
		LayerJSONParsingError:      "LayerJSONParsingError",
		MissingLayerLib:            "MissingLayerLib",
		VulkanCantFindRuntime:      "VulkanCantFindRuntime",
		VulkanCantFindDriver:       "VulkanCantFindDriver",
		VulkanCantFindExtensions:   "VulkanCantFindExtensions",
		VulkanFailedCreateInstance: "VulkanFailedCreateInstance",
		VulkanFailedCreateDevice:   "VulkanFailedCreateDevice",
		VulkanFailedOutOfMem:       "VulkanFailedOutOfMem",
		TestFailed:                 "TestFailed",
	}

	errorMessages = map[Code]string{
		SystemCallFailure:          "Failure occurred during system call.",
		MissingDriverRegistry:      "Failed to find Vulkan Driver JSON in registry.",
		MissingDriverJSON:          "Failed to find Vulkan Driver JSON.",
		DriverJSONParsingError:     "Failed to properly parse Vulkan Driver JSON.",
		MissingDriverLib:           "Failed to find Vulkan Driver Lib.",
		MissingLayerJSON:           "Failed to find Vulkan Layer JSON.",
		LayerJSONParsingError:      "Failed to properly parse Vulkan Layer JSON.",
		MissingLayerLib:            "Failed to find Vulkan Layer Lib.",
		VulkanCantFindRuntime:      "Vulkan failed to find a Vulkan Runtime to use.",
		VulkanCantFindDriver:       "Vulkan failed to find a compatible driver.",
		VulkanCantFindExtensions:   "Failed to find expected Vulkan Extensions.  This may indicate a bad driver install.",
		VulkanFailedCreateInstance: "Unknown error while attempting to create Vulkan Instance.",
		VulkanFailedCreateDevice:   "Unknown error while attempting to create Vulkan Device.",
		VulkanFailedOutOfMem:       "Vulkan Loader, Layer, or Driver ran out of memory.",
		TestFailed:                 "Unknown Test failure occurred.",
	}
)

// Codes returns every defined code, success first, then in descending value.
func Codes() []Code {
	return []Code{
		Successful, UnknownError, SystemCallFailure,
		MissingDriverRegistry, MissingDriverJSON, DriverJSONParsingError, MissingDriverLib,
		MissingLayerJSON, LayerJSONParsingError, MissingLayerLib,
		VulkanCantFindRuntime, VulkanCantFindDriver, VulkanCantFindExtensions,
		VulkanFailedCreateInstance, VulkanFailedCreateDevice, VulkanFailedOutOfMem,
		TestFailed,
	}
}

// String returns the code's identifier.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// IsValid reports whether c is a defined code.
func (c Code) IsValid() bool {
	_, ok := codeNames[c]
	return ok
}

// Failed reports whether c is anything other than Successful.
func (c Code) Failed() bool { return c != Successful }

// Message returns the human explanation of a failure code. Successful has no
// message.
func (c Code) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	if c == Successful {
		return ""
	}
	return "Unknown failure occurred.  Refer to HTML for more info"
}

// Fold merges next into the running code. Successful never replaces
// anything, anything replaces Successful or UnknownError, and otherwise the
// first genuine failure is kept.
func Fold(current, next Code) Code {
	if next == Successful {
		return current
	}
	if current == Successful || current == UnknownError {
		return next
	}
	return current
}

// FoldAll folds codes left to right starting from Successful.
func FoldAll(codes ...Code) Code {
	acc := Successful
	for _, c := range codes {
		acc = Fold(acc, c)
	}
	return acc
}

// Summary returns the single line printed to stdout when a run ends.
func Summary(c Code, o Outcome) string {
	if c != Successful {
		return "ERROR: " + c.Message()
	}
	version := "Vulkan " + o.MaxVersion.Short()
	switch {
	case !o.SDKFound:
		return "SUCCESS: Vulkan analysis able to create " + version + " instance/devices - However, No SDK Detected"
	case !o.TestsRan:
		return "SUCCESS: Vulkan analysis able to create " + version + " instance/devices, SDK was found, but failed to run external tests"
	default:
		return "SUCCESS: Vulkan analysis completed properly using " + version
	}
}
