// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/types"
)

// Version11 is the lowest version for which a second, newer instance and
// its devices are exercised.
var Version11 = types.APIVersion{Major: 1, Minor: 1}

type (
	// Outcome is the result of one probe run.
	Outcome struct {
		Code result.Code
		// MaxVersion is the highest API version usable with both the loader
		// and at least one physical device. It stays at 1.0 when only the
		// baseline instance could be exercised.
		MaxVersion types.APIVersion
		Devices    int
	}

	// Option configures a probe run.
	Option func(*prober)

	target struct {
		version  types.APIVersion
		instance Instance
		devices  []PhysicalDevice
		logical  []Device
		// supported is the highest version shared by the instance and a device.
		supported types.APIVersion
	}

	prober struct {
		rt      Runtime
		sink    report.Sink
		cap     *types.APIVersion
		logger  *slog.Logger
		code    result.Code
		base    target
		newest  target
		exposed bool
	}
)

// WithVersionCap limits the newest instance version requested from the
// loader.
func WithVersionCap(v types.APIVersion) Option {
	return func(p *prober) { p.cap = &v }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *prober) { p.logger = l }
}

// Report runs the probe against rt and writes the Instance, Physical Devices,
// Logical Devices and Cleanup tables to sink. A failure in one step skips the
// later steps; objects already created are always destroyed.
func Report(rt Runtime, sink report.Sink, opts ...Option) Outcome {
	p := &prober{
		rt:     rt,
		sink:   sink,
		logger: slog.Default(),
		base:   target{version: types.Version10},
	}
	p.newest.supported = types.Version10
	for _, opt := range opts {
		opt(p)
	}

	p.instances()
	if p.base.instance == nil {
		p.release()
		return p.outcome()
	}
	if !p.code.Failed() {
		p.physicalDevices()
	}
	if !p.code.Failed() {
		p.logicalDevices()
	}
	p.cleanup()
	return p.outcome()
}

func (p *prober) outcome() Outcome {
	return Outcome{Code: p.code, MaxVersion: p.newest.supported, Devices: len(p.base.devices)}
}

func (p *prober) fail(c result.Code) {
	p.code = result.Fold(p.code, c)
}

func (p *prober) instances() {
	s := p.sink
	s.BeginTable("Instance", nil)
	defer s.EndTable()

	newest := types.Version10
	v, err := p.rt.InstanceVersion()
	if err != nil {
		p.logger.Debug("instance version unavailable", "error", err)
		report.Row(s, "vkEnumerateInstanceVersion", "Not exposed by loader", "")
	} else {
		p.exposed = true
		newest = v
		report.Row(s, "vkEnumerateInstanceVersion", "Max Instance Version", v.String())
	}
	if p.cap != nil && p.cap.Less(newest) {
		newest = *p.cap
	}

	if exts, err := p.rt.InstanceExtensions(); err != nil {
		report.Row(s, "vkEnumerateInstanceExtensionProperties", "ERROR: Failed to enumerate inst extensions - "+errText(err), "")
		p.fail(result.VulkanCantFindExtensions)
	} else {
		report.Row(s, "vkEnumerateInstanceExtensionProperties", fmt.Sprintf("%d extensions found", len(exts)), "")
		for i, e := range exts {
			s.BeginRow()
			s.Cell(index(i), report.AlignRight)
			s.Cell(e.Name, report.AlignLeft)
			s.Cell(fmt.Sprintf("Spec Vers %d", e.SpecVersion), report.AlignLeft)
			s.EndRow()
		}
	}

	if layers, err := p.rt.InstanceLayers(); err != nil {
		report.Row(s, "vkEnumerateInstanceLayerProperties", "ERROR: Failed to enumerate inst layers - "+errText(err), "")
	} else {
		report.Row(s, "vkEnumerateInstanceLayerProperties", fmt.Sprintf("%d layers found", len(layers)), "")
		for i, l := range layers {
			s.BeginRow()
			s.Cell(index(i), report.AlignRight)
			s.Cell(l.Name, report.AlignLeft)
			s.Cell("Spec Vers "+l.SpecVersion.String(), report.AlignLeft)
			s.EndRow()
		}
	}

	p.base.instance = p.createInstance(types.Version10)
	if p.exposed {
		p.newest.version = newest
		p.newest.instance = p.createInstance(newest)
	}
}

func (p *prober) createInstance(v types.APIVersion) Instance {
	inst, err := p.rt.CreateInstance(v)
	label := "vkCreateInstance [" + v.Short() + "]"
	switch {
	case err == nil:
		report.Row(p.sink, label, "SUCCESSFUL", "")
		return inst
	case errors.Is(err, ErrIncompatibleDriver):
		report.Row(p.sink, label, "ERROR: Incompatible Driver", "")
		p.fail(result.VulkanCantFindDriver)
	case errors.Is(err, ErrOutOfHostMemory):
		report.Row(p.sink, label, "ERROR: Out of memory", "")
		p.fail(result.VulkanFailedOutOfMem)
	default:
		report.Row(p.sink, label, "ERROR: Failed to create - "+errText(err), "")
		p.fail(result.VulkanFailedCreateInstance)
	}
	p.logger.Debug("instance creation failed", "version", v.String(), "error", err)
	return nil
}

func (p *prober) physicalDevices() {
	s := p.sink
	s.BeginTable("Physical Devices", nil)
	defer s.EndTable()

	devices, err := p.base.instance.PhysicalDevices()
	if err != nil {
		report.Row(s, "vkEnumeratePhysicalDevices [1.0]", "ERROR: Failed to query - "+errText(err), "", "")
		p.fail(result.VulkanCantFindDriver)
		return
	}
	p.base.devices = devices
	report.Row(s, "vkEnumeratePhysicalDevices [1.0]", strconv.Itoa(len(devices)), "", "")

	for i, dev := range devices {
		p.describeDevice(i, dev)
	}

	if p.newest.instance == nil || p.newest.version.Less(Version11) {
		return
	}
	label := "vkEnumeratePhysicalDevices [" + p.newest.version.Short() + "]"
	newer, err := p.newest.instance.PhysicalDevices()
	if err != nil {
		report.Row(s, label, "ERROR: Failed to query - "+errText(err), "", "")
		p.fail(result.VulkanCantFindDriver)
		return
	}

	highest := types.Version10
	for _, dev := range newer {
		if v := dev.Properties().APIVersion; highest.Less(v) {
			highest = v
		}
	}
	supported := p.newest.version
	if highest.Less(supported) {
		supported = highest
	}
	p.newest.supported = supported

	if !highest.Less(Version11) {
		for _, dev := range newer {
			if dev.Properties().APIVersion == supported {
				p.newest.devices = append(p.newest.devices, dev)
			}
		}
	}
	report.Row(s, label, strconv.Itoa(len(p.newest.devices)), "", "")
}

func (p *prober) describeDevice(i int, dev PhysicalDevice) {
	s := p.sink
	props := dev.Properties()

	s.BeginRow()
	s.Cell(index(i), report.AlignRight)
	s.Cell(props.Name, report.AlignLeft)
	s.Cell("", report.AlignLeft)
	s.Cell("", report.AlignLeft)
	s.EndRow()

	report.Row(s, "", "Vendor", VendorName(props.VendorID), "")
	report.Row(s, "", "Device Name", props.Name, "")
	report.Row(s, "", "Device ID", fmt.Sprintf("0x%x", props.DeviceID), "")
	report.Row(s, "", "Device Type", props.Type.String(), "")
	report.Row(s, "", "Driver Version", props.DriverVersion.String(), "")
	report.Row(s, "", "API Version", props.APIVersion.String(), "")

	families := dev.QueueFamilies()
	if len(families) == 0 {
		report.Row(s, "", "vkGetPhysicalDeviceQueueFamilyProperties", "FAILED: Returned 0!", "")
	} else {
		report.Row(s, "", "Queue Families", strconv.Itoa(len(families)), "")
		for j, qf := range families {
			s.BeginRow()
			s.Cell("", report.AlignLeft)
			s.Cell(index(j), report.AlignRight)
			s.Cell("Queue Count", report.AlignLeft)
			s.Cell(strconv.FormatUint(uint64(qf.Count), 10), report.AlignLeft)
			s.EndRow()
			report.Row(s, "", "", "Queue Flags", qf.Flags.String())
			report.Row(s, "", "", "Timestamp Valid Bits", fmt.Sprintf("0x%x", qf.TimestampValidBits))
		}
	}

	exts, err := dev.Extensions()
	if err != nil {
		report.Row(s, "", "Device Extensions", "FAILED querying number of extensions", "")
		p.fail(result.VulkanCantFindExtensions)
		return
	}
	report.Row(s, "", "Device Extensions", strconv.Itoa(len(exts)), "")
	for j, e := range exts {
		s.BeginRow()
		s.Cell("", report.AlignLeft)
		s.Cell(index(j), report.AlignRight)
		s.Cell(e.Name, report.AlignLeft)
		s.Cell(fmt.Sprintf("Spec Vers %d", e.SpecVersion), report.AlignLeft)
		s.EndRow()
	}
}

func (p *prober) logicalDevices() {
	s := p.sink
	s.BeginTable("Logical Devices", nil)
	defer s.EndTable()

	found := false
	code := result.Successful
	create := func(t *target, label string) {
		report.Row(s, label, strconv.Itoa(len(t.devices)), "")
		for i, dev := range t.devices {
			queue := graphicsQueue(dev.QueueFamilies())
			d, err := dev.CreateDevice(queue)
			var status string
			var failure result.Code
			switch {
			case err == nil:
				status = "SUCCESSFUL"
				found = true
				code = result.Successful
				t.logical = append(t.logical, d)
			case errors.Is(err, ErrIncompatibleDriver):
				status, failure = "FAILED: Incompatible Driver", result.VulkanCantFindDriver
			case errors.Is(err, ErrOutOfHostMemory):
				status, failure = "FAILED: Out of Host Memory", result.VulkanFailedOutOfMem
			default:
				status, failure = "FAILED : "+errText(err), result.VulkanFailedCreateDevice
			}
			if failure != result.Successful && !found {
				code = failure
			}
			report.Row(s, "", index(i), status)
		}
	}

	create(&p.base, "vkCreateDevice [1.0]")
	if p.newest.instance != nil && len(p.newest.devices) > 0 && !p.newest.supported.Less(Version11) {
		create(&p.newest, "vkCreateDevice ["+p.newest.supported.Short()+"]")
	}
	p.fail(code)
}

func (p *prober) cleanup() {
	s := p.sink
	s.BeginTable("Cleanup", nil)
	defer s.EndTable()

	destroy := func(t *target, v types.APIVersion) {
		if len(t.logical) > 0 {
			report.Row(s, "vkDestroyDevice ["+v.Short()+"]", strconv.Itoa(len(t.logical)), "")
			for i, d := range t.logical {
				d.Destroy()
				s.BeginRow()
				s.Cell("", report.AlignLeft)
				s.Cell(index(i), report.AlignRight)
				s.Cell("SUCCESSFUL", report.AlignLeft)
				s.EndRow()
			}
			t.logical = nil
		}
		if t.instance != nil {
			t.instance.Destroy()
			t.instance = nil
			report.Row(s, "vkDestroyInstance ["+t.version.Short()+"]", "SUCCESSFUL", "")
		}
	}

	destroy(&p.base, types.Version10)
	destroy(&p.newest, p.newest.supported)
}

// release destroys anything still alive without reporting it.
func (p *prober) release() {
	for _, t := range []*target{&p.base, &p.newest} {
		for _, d := range t.logical {
			d.Destroy()
		}
		t.logical = nil
		if t.instance != nil {
			t.instance.Destroy()
			t.instance = nil
		}
	}
}

func graphicsQueue(families []QueueFamily) uint32 {
	for i, qf := range families {
		if qf.Flags.Has(QueueGraphics) {
			return uint32(i)
		}
	}
	return 0
}

func index(i int) string { return "[" + strconv.Itoa(i) + "]" }

func errText(err error) string {
	var ce *CallError
	if errors.As(err, &ce) && ce.Err == nil {
		return strconv.Itoa(int(ce.Result))
	}
	return err.Error()
}
