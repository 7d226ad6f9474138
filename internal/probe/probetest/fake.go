// SPDX-License-Identifier: MPL-2.0

// Package probetest provides an in-memory probe.Runtime for tests.
package probetest

import (
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/pkg/types"
)

type (
	// Runtime is a scripted probe.Runtime. It counts every object it hands
	// out so tests can assert that all of them were destroyed.
	Runtime struct {
		// Version is returned by InstanceVersion; nil means not exposed.
		Version       *types.APIVersion
		Extensions    []probe.Extension
		ExtensionsErr error
		Layers        []probe.Layer
		// CreateErr maps "major.minor" to the error CreateInstance returns.
		CreateErr  map[string]error
		Devices    []*Device
		DevicesErr error

		Created   []types.APIVersion
		live      int
		destroyed int
	}

	// Device is a scripted physical device.
	Device struct {
		Props     probe.DeviceProperties
		Families  []probe.QueueFamily
		Exts      []probe.Extension
		ExtsErr   error
		CreateErr error
		// Queues records the queue family passed to each CreateDevice call.
		Queues []uint32

		rt *Runtime
	}

	instance struct {
		rt *Runtime
	}

	device struct {
		rt *Runtime
	}
)

var (
	_ probe.Runtime        = (*Runtime)(nil)
	_ probe.PhysicalDevice = (*Device)(nil)
)

// New returns a runtime exposing version with the given devices.
func New(version types.APIVersion, devices ...*Device) *Runtime {
	rt := &Runtime{Version: &version, Devices: devices}
	return rt
}

// GPU returns a device with one graphics queue family at apiVersion.
func GPU(name string, apiVersion types.APIVersion) *Device {
	return &Device{
		Props: probe.DeviceProperties{
			VendorID:   0x10DE,
			DeviceID:   0x2204,
			Name:       name,
			Type:       probe.DeviceDiscreteGPU,
			APIVersion: apiVersion,
		},
		Families: []probe.QueueFamily{
			{Flags: probe.QueueGraphics | probe.QueueCompute | probe.QueueTransfer, Count: 16, TimestampValidBits: 64},
		},
		Exts: []probe.Extension{{Name: "VK_KHR_swapchain", SpecVersion: 70}},
	}
}

// Live returns the number of instances and devices not yet destroyed.
func (r *Runtime) Live() int { return r.live }

// Destroyed returns the number of Destroy calls received.
func (r *Runtime) Destroyed() int { return r.destroyed }

func (r *Runtime) InstanceVersion() (types.APIVersion, error) {
	if r.Version == nil {
		return types.Version10, probe.ErrNotExposed
	}
	return *r.Version, nil
}

func (r *Runtime) InstanceExtensions() ([]probe.Extension, error) {
	return r.Extensions, r.ExtensionsErr
}

func (r *Runtime) InstanceLayers() ([]probe.Layer, error) {
	return r.Layers, nil
}

func (r *Runtime) CreateInstance(v types.APIVersion) (probe.Instance, error) {
	if err := r.CreateErr[v.Short()]; err != nil {
		return nil, err
	}
	r.Created = append(r.Created, v)
	r.live++
	return &instance{rt: r}, nil
}

func (i *instance) PhysicalDevices() ([]probe.PhysicalDevice, error) {
	if i.rt.DevicesErr != nil {
		return nil, i.rt.DevicesErr
	}
	out := make([]probe.PhysicalDevice, 0, len(i.rt.Devices))
	for _, d := range i.rt.Devices {
		d.rt = i.rt
		out = append(out, d)
	}
	return out, nil
}

func (i *instance) Destroy() {
	i.rt.live--
	i.rt.destroyed++
}

func (d *Device) Properties() probe.DeviceProperties { return d.Props }

func (d *Device) QueueFamilies() []probe.QueueFamily { return d.Families }

func (d *Device) Extensions() ([]probe.Extension, error) { return d.Exts, d.ExtsErr }

func (d *Device) CreateDevice(queueFamily uint32) (probe.Device, error) {
	d.Queues = append(d.Queues, queueFamily)
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	d.rt.live++
	return &device{rt: d.rt}, nil
}

func (d *device) Destroy() {
	d.rt.live--
	d.rt.destroyed++
}
