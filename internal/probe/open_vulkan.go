// SPDX-License-Identifier: MPL-2.0

//go:build vulkan

package probe

import (
	"fmt"

	vk "github.com/darkace1998/golang-vulkan-api"

	"github.com/vkvia/vkvia/pkg/types"
)

// Available reports whether a Vulkan binding is compiled into this binary.
const Available = true

type (
	vkRuntime struct{}

	vkInstance struct {
		handle vk.Instance
	}

	vkPhysicalDevice struct {
		handle vk.PhysicalDevice
	}

	vkDevice struct {
		handle vk.Device
	}
)

var (
	_ Runtime        = vkRuntime{}
	_ Instance       = (*vkInstance)(nil)
	_ PhysicalDevice = (*vkPhysicalDevice)(nil)
	_ Device         = (*vkDevice)(nil)
)

// Open returns the runtime backed by the system Vulkan loader.
func Open() (Runtime, error) {
	return vkRuntime{}, nil
}

func (vkRuntime) InstanceVersion() (types.APIVersion, error) {
	v, err := vk.EnumerateInstanceVersion()
	if err != nil {
		return types.Version10, fmt.Errorf("%w: %w", ErrNotExposed, err)
	}
	return types.APIVersion{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}

func (vkRuntime) InstanceExtensions() ([]Extension, error) {
	props, err := vk.EnumerateInstanceExtensionProperties("")
	if err != nil {
		return nil, callError("vkEnumerateInstanceExtensionProperties", err)
	}
	out := make([]Extension, 0, len(props))
	for _, p := range props {
		out = append(out, Extension{Name: p.ExtensionName, SpecVersion: uint32(p.SpecVersion)})
	}
	return out, nil
}

func (vkRuntime) InstanceLayers() ([]Layer, error) {
	props, err := vk.EnumerateInstanceLayerProperties()
	if err != nil {
		return nil, callError("vkEnumerateInstanceLayerProperties", err)
	}
	out := make([]Layer, 0, len(props))
	for _, p := range props {
		out = append(out, Layer{
			Name:                  p.LayerName,
			Description:           p.Description,
			SpecVersion:           types.APIVersion{Major: p.SpecVersion.Major(), Minor: p.SpecVersion.Minor(), Patch: p.SpecVersion.Patch()},
			ImplementationVersion: uint32(p.ImplementationVersion),
		})
	}
	return out, nil
}

func (vkRuntime) CreateInstance(version types.APIVersion) (Instance, error) {
	appInfo := &vk.ApplicationInfo{
		ApplicationName:    "vkvia",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		EngineName:         "vkvia",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		APIVersion:         vk.MakeVersion(version.Major, version.Minor, 0),
	}
	inst, err := vk.CreateInstance(&vk.InstanceCreateInfo{ApplicationInfo: appInfo})
	if err != nil {
		return nil, callError("vkCreateInstance", err)
	}
	return &vkInstance{handle: inst}, nil
}

func (i *vkInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	handles, err := vk.EnumeratePhysicalDevices(i.handle)
	if err != nil {
		return nil, callError("vkEnumeratePhysicalDevices", err)
	}
	out := make([]PhysicalDevice, 0, len(handles))
	for _, h := range handles {
		out = append(out, &vkPhysicalDevice{handle: h})
	}
	return out, nil
}

func (i *vkInstance) Destroy() {
	vk.DestroyInstance(i.handle)
}

func (d *vkPhysicalDevice) Properties() DeviceProperties {
	props := vk.GetPhysicalDeviceProperties(d.handle)
	return DeviceProperties{
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		Name:          props.DeviceName,
		Type:          DeviceType(props.DeviceType),
		DriverVersion: types.UnpackAPIVersion(uint32(props.DriverVersion)),
		APIVersion: types.APIVersion{
			Major: props.APIVersion.Major(),
			Minor: props.APIVersion.Minor(),
			Patch: props.APIVersion.Patch(),
		},
	}
}

func (d *vkPhysicalDevice) QueueFamilies() []QueueFamily {
	families := vk.GetPhysicalDeviceQueueFamilyProperties(d.handle)
	out := make([]QueueFamily, 0, len(families))
	for _, qf := range families {
		out = append(out, QueueFamily{
			Flags:              QueueFlags(qf.QueueFlags),
			Count:              uint32(qf.QueueCount),
			TimestampValidBits: uint32(qf.TimestampValidBits),
		})
	}
	return out
}

func (d *vkPhysicalDevice) Extensions() ([]Extension, error) {
	props, err := vk.EnumerateDeviceExtensionProperties(d.handle, "")
	if err != nil {
		return nil, callError("vkEnumerateDeviceExtensionProperties", err)
	}
	out := make([]Extension, 0, len(props))
	for _, p := range props {
		out = append(out, Extension{Name: p.ExtensionName, SpecVersion: uint32(p.SpecVersion)})
	}
	return out, nil
}

func (d *vkPhysicalDevice) CreateDevice(queueFamily uint32) (Device, error) {
	info := &vk.DeviceCreateInfo{
		QueueCreateInfos: []vk.DeviceQueueCreateInfo{{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{0},
		}},
	}
	dev, err := vk.CreateDevice(d.handle, info)
	if err != nil {
		return nil, callError("vkCreateDevice", err)
	}
	return &vkDevice{handle: dev}, nil
}

func (d *vkDevice) Destroy() {
	vk.DestroyDevice(d.handle)
}

func callError(call string, err error) error {
	return &CallError{Call: call, Err: classify(err)}
}

// classify keeps the binding's error text but tags the failures the report
// distinguishes.
func classify(err error) error {
	if sentinel := ClassifyResult(0, err.Error()); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
