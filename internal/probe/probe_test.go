// SPDX-License-Identifier: MPL-2.0

package probe_test

import (
	"errors"
	"testing"

	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/probe/probetest"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/types"
)

var (
	v12 = types.APIVersion{Major: 1, Minor: 2, Patch: 0}
	v13 = types.APIVersion{Major: 1, Minor: 3, Patch: 250}
)

func TestReportSuccess(t *testing.T) {
	t.Parallel()

	rt := probetest.New(v13, probetest.GPU("Test GPU", v12))
	rt.Extensions = []probe.Extension{{Name: "VK_KHR_surface", SpecVersion: 25}}

	var rec report.Recorder
	out := probe.Report(rt, &rec)

	if out.Code != result.Successful {
		t.Fatalf("Code = %v, want Successful", out.Code)
	}
	if out.MaxVersion != v12 {
		t.Errorf("MaxVersion = %v, want %v (device limits the instance)", out.MaxVersion, v12)
	}
	if rt.Live() != 0 {
		t.Errorf("%d objects left alive", rt.Live())
	}

	inst := rec.Table("Instance")
	if _, ok := inst.FindRow("vkEnumerateInstanceVersion", "1.3.250"); !ok {
		t.Errorf("instance version row missing: %v", inst.Texts())
	}
	if _, ok := inst.FindRow("[0]", "VK_KHR_surface", "Spec Vers 25"); !ok {
		t.Errorf("instance extension row missing: %v", inst.Texts())
	}
	for _, label := range []string{"vkCreateInstance [1.0]", "vkCreateInstance [1.3]"} {
		if _, ok := inst.FindRow(label, "SUCCESSFUL"); !ok {
			t.Errorf("%s row missing: %v", label, inst.Texts())
		}
	}

	phys := rec.Table("Physical Devices")
	for _, want := range [][]string{
		{"vkEnumeratePhysicalDevices [1.0]", "1"},
		{"Vendor", "Nvidia [0x10de]"},
		{"Device Type", "Discrete GPU"},
		{"Queue Flags", "GRAPHICS | COMPUTE | TRANSFER"},
		{"VK_KHR_swapchain", "Spec Vers 70"},
		{"vkEnumeratePhysicalDevices [1.3]", "1"},
	} {
		if _, ok := phys.FindRow(want...); !ok {
			t.Errorf("physical device row %v missing: %v", want, phys.Texts())
		}
	}

	logical := rec.Table("Logical Devices")
	if _, ok := logical.FindRow("vkCreateDevice [1.2]", "1"); !ok {
		t.Errorf("newest device row missing: %v", logical.Texts())
	}
	cleanup := rec.Table("Cleanup")
	if _, ok := cleanup.FindRow("vkDestroyInstance [1.3]", "SUCCESSFUL"); !ok {
		t.Errorf("cleanup row missing: %v", cleanup.Texts())
	}
}

func TestReportInstanceFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want result.Code
		text string
	}{
		{"incompatible driver", probe.ErrIncompatibleDriver, result.VulkanCantFindDriver, "ERROR: Incompatible Driver"},
		{"out of memory", probe.ErrOutOfHostMemory, result.VulkanFailedOutOfMem, "ERROR: Out of memory"},
		{"other", &probe.CallError{Call: "vkCreateInstance", Result: -3}, result.VulkanFailedCreateInstance, "ERROR: Failed to create - -3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rt := probetest.New(v13, probetest.GPU("gpu", v13))
			rt.CreateErr = map[string]error{"1.0": tt.err}

			var rec report.Recorder
			out := probe.Report(rt, &rec)
			if out.Code != tt.want {
				t.Errorf("Code = %v, want %v", out.Code, tt.want)
			}
			if _, ok := rec.Table("Instance").FindRow("vkCreateInstance [1.0]", tt.text); !ok {
				t.Errorf("failure row missing: %v", rec.Table("Instance").Texts())
			}
			if rec.Table("Physical Devices") != nil || rec.Table("Cleanup") != nil {
				t.Error("later probe steps ran after instance failure")
			}
			if rt.Live() != 0 {
				t.Errorf("%d objects left alive", rt.Live())
			}
		})
	}
}

func TestReportNotExposed(t *testing.T) {
	t.Parallel()

	rt := probetest.New(v13, probetest.GPU("gpu", v13))
	rt.Version = nil

	var rec report.Recorder
	out := probe.Report(rt, &rec)
	if out.Code != result.Successful {
		t.Fatalf("Code = %v", out.Code)
	}
	if out.MaxVersion != types.Version10 {
		t.Errorf("MaxVersion = %v, want 1.0.0", out.MaxVersion)
	}
	if len(rt.Created) != 1 {
		t.Errorf("instances created = %v, want only 1.0", rt.Created)
	}
	if _, ok := rec.Table("Instance").FindRow("Not exposed by loader"); !ok {
		t.Error("not exposed row missing")
	}
}

func TestReportVersionCap(t *testing.T) {
	t.Parallel()

	rt := probetest.New(v13, probetest.GPU("gpu", v13))
	out := probe.Report(rt, &report.Recorder{}, probe.WithVersionCap(v12))
	if out.MaxVersion != v12 {
		t.Errorf("MaxVersion = %v, want %v", out.MaxVersion, v12)
	}
	if len(rt.Created) != 2 || rt.Created[1] != v12 {
		t.Errorf("created = %v", rt.Created)
	}
}

func TestReportEnumerationFailure(t *testing.T) {
	t.Parallel()

	rt := probetest.New(v13)
	rt.DevicesErr = errors.New("boom")

	var rec report.Recorder
	out := probe.Report(rt, &rec)
	if out.Code != result.VulkanCantFindDriver {
		t.Errorf("Code = %v, want VulkanCantFindDriver", out.Code)
	}
	if rec.Table("Logical Devices") != nil {
		t.Error("logical devices ran after enumeration failure")
	}
	if rec.Table("Cleanup") == nil || rt.Live() != 0 {
		t.Errorf("cleanup missing or leaks (live=%d)", rt.Live())
	}
}

func TestReportDeviceFailures(t *testing.T) {
	t.Parallel()

	bad := probetest.GPU("bad", types.Version10)
	bad.CreateErr = probe.ErrOutOfHostMemory
	good := probetest.GPU("good", types.Version10)

	t.Run("one good device clears the failure", func(t *testing.T) {
		t.Parallel()
		rt := probetest.New(types.Version10, bad, good)
		out := probe.Report(rt, &report.Recorder{})
		if out.Code != result.Successful {
			t.Errorf("Code = %v, want Successful", out.Code)
		}
	})

	t.Run("all failing", func(t *testing.T) {
		t.Parallel()
		only := probetest.GPU("bad", types.Version10)
		only.CreateErr = probe.ErrIncompatibleDriver
		rt := probetest.New(types.Version10, only)
		var rec report.Recorder
		out := probe.Report(rt, &rec)
		if out.Code != result.VulkanCantFindDriver {
			t.Errorf("Code = %v, want VulkanCantFindDriver", out.Code)
		}
		if _, ok := rec.Table("Logical Devices").FindRow("[0]", "FAILED: Incompatible Driver"); !ok {
			t.Errorf("rows = %v", rec.Table("Logical Devices").Texts())
		}
	})
}

func TestGraphicsQueueSelection(t *testing.T) {
	t.Parallel()

	gpu := probetest.GPU("gpu", types.Version10)
	gpu.Families = []probe.QueueFamily{
		{Flags: probe.QueueTransfer, Count: 1},
		{Flags: probe.QueueCompute | probe.QueueGraphics, Count: 4},
	}
	rt := probetest.New(types.Version10, gpu)
	probe.Report(rt, &report.Recorder{})

	if len(gpu.Queues) != 1 || gpu.Queues[0] != 1 {
		t.Errorf("queue families used = %v, want [1]", gpu.Queues)
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	if got := probe.QueueFlags(0).String(); got != "--NONE--" {
		t.Errorf("QueueFlags(0) = %q", got)
	}
	if got := probe.VendorName(0x8086); got != "Intel [0x8086]" {
		t.Errorf("VendorName(0x8086) = %q", got)
	}
	if got := probe.VendorName(0x1234); got != "0x1234" {
		t.Errorf("VendorName(0x1234) = %q", got)
	}
	if got := probe.DeviceType(9).String(); got != "INVALID!" {
		t.Errorf("DeviceType(9) = %q", got)
	}
	if !errors.Is(probe.ClassifyResult(0, "VK_ERROR_INCOMPATIBLE_DRIVER"), probe.ErrIncompatibleDriver) {
		t.Error("ClassifyResult did not detect incompatible driver")
	}
}
