// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vkvia/vkvia/pkg/types"
)

var (
	// ErrUnavailable is returned by Open when no Vulkan binding is compiled
	// in or the loader library cannot be opened.
	ErrUnavailable = errors.New("vulkan runtime unavailable")
	// ErrNotExposed is returned by InstanceVersion when the loader predates
	// vkEnumerateInstanceVersion.
	ErrNotExposed = errors.New("not exposed by loader")
	// ErrIncompatibleDriver mirrors VK_ERROR_INCOMPATIBLE_DRIVER.
	ErrIncompatibleDriver = errors.New("incompatible driver")
	// ErrOutOfHostMemory mirrors VK_ERROR_OUT_OF_HOST_MEMORY.
	ErrOutOfHostMemory = errors.New("out of host memory")
)

// Queue capability bits, matching VkQueueFlagBits.
const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
)

// Physical device kinds, matching VkPhysicalDeviceType.
const (
	DeviceOther DeviceType = iota
	DeviceIntegratedGPU
	DeviceDiscreteGPU
	DeviceVirtualGPU
	DeviceCPU
)

type (
	// QueueFlags is a VkQueueFlags bit set.
	QueueFlags uint32

	// DeviceType is a VkPhysicalDeviceType.
	DeviceType uint32

	// CallError is a failed Vulkan call with its raw VkResult.
	CallError struct {
		Call   string
		Result int32
		Err    error
	}

	// Extension is one entry of an extension enumeration.
	Extension struct {
		Name        string
		SpecVersion uint32
	}

	// Layer is one entry of vkEnumerateInstanceLayerProperties.
	Layer struct {
		Name                  string
		Description           string
		SpecVersion           types.APIVersion
		ImplementationVersion uint32
	}

	// DeviceProperties is the subset of VkPhysicalDeviceProperties shown in
	// the report.
	DeviceProperties struct {
		VendorID      uint32
		DeviceID      uint32
		Name          string
		Type          DeviceType
		DriverVersion types.APIVersion
		APIVersion    types.APIVersion
	}

	// QueueFamily is the subset of VkQueueFamilyProperties shown in the
	// report.
	QueueFamily struct {
		Flags              QueueFlags
		Count              uint32
		TimestampValidBits uint32
	}

	// Runtime is the loader entry point.
	Runtime interface {
		InstanceVersion() (types.APIVersion, error)
		InstanceExtensions() ([]Extension, error)
		InstanceLayers() ([]Layer, error)
		CreateInstance(version types.APIVersion) (Instance, error)
	}

	// Instance is a created VkInstance.
	Instance interface {
		PhysicalDevices() ([]PhysicalDevice, error)
		Destroy()
	}

	// PhysicalDevice is an enumerated VkPhysicalDevice.
	PhysicalDevice interface {
		Properties() DeviceProperties
		QueueFamilies() []QueueFamily
		Extensions() ([]Extension, error)
		CreateDevice(queueFamily uint32) (Device, error)
	}

	// Device is a created VkDevice.
	Device interface {
		Destroy()
	}
)

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Call, e.Err)
	}
	return fmt.Sprintf("%s failed: VkResult %d", e.Call, e.Result)
}

// Unwrap returns the classified cause.
func (e *CallError) Unwrap() error { return e.Err }

// Has reports whether every bit of f is set.
func (q QueueFlags) Has(f QueueFlags) bool { return q&f == f }

// String renders the set bits joined with " | ", or "--NONE--".
func (q QueueFlags) String() string {
	names := []struct {
		bit  QueueFlags
		name string
	}{
		{QueueGraphics, "GRAPHICS"},
		{QueueCompute, "COMPUTE"},
		{QueueTransfer, "TRANSFER"},
		{QueueSparseBinding, "SPARSE_BINDING"},
	}
	var parts []string
	for _, n := range names {
		if q.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "--NONE--"
	}
	return strings.Join(parts, " | ")
}

// String returns the report label for the device type.
func (t DeviceType) String() string {
	switch t {
	case DeviceIntegratedGPU:
		return "Integrated GPU"
	case DeviceDiscreteGPU:
		return "Discrete GPU"
	case DeviceVirtualGPU:
		return "Virtual GPU"
	case DeviceCPU:
		return "CPU"
	case DeviceOther:
		return "Other"
	default:
		return "INVALID!"
	}
}

var vendors = []struct {
	ids  []uint32
	name string
}{
	{[]uint32{0x8086, 0x8087}, "Intel"},
	{[]uint32{0x1002, 0x1022}, "AMD"},
	{[]uint32{0x10DE}, "Nvidia"},
	{[]uint32{0x1EB5}, "ARM"},
	{[]uint32{0x5143}, "Qualcomm"},
	{[]uint32{0x1099, 0x10C3, 0x1249, 0x4E8}, "Samsung"},
}

// VendorName renders a PCI vendor id, prefixed with the vendor when known.
func VendorName(id uint32) string {
	for _, v := range vendors {
		for _, known := range v.ids {
			if known == id {
				return fmt.Sprintf("%s [0x%04x]", v.name, id)
			}
		}
	}
	return fmt.Sprintf("0x%04x", id)
}

// ClassifyResult maps a raw VkResult and its symbolic name to a sentinel.
// Unknown failures return nil.
func ClassifyResult(code int32, text string) error {
	switch {
	case code == -9 || strings.Contains(text, "INCOMPATIBLE_DRIVER"):
		return ErrIncompatibleDriver
	case code == -1 || strings.Contains(text, "OUT_OF_HOST_MEMORY"):
		return ErrOutOfHostMemory
	default:
		return nil
	}
}
