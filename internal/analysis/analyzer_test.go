// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/inventory/inventorytest"
	"github.com/vkvia/vkvia/internal/library"
	"github.com/vkvia/vkvia/internal/manifest"
	"github.com/vkvia/vkvia/internal/probe"
	"github.com/vkvia/vkvia/internal/probe/probetest"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/platform"
	"github.com/vkvia/vkvia/pkg/types"
)

const (
	driverDir   = "/etc/vulkan/icd.d"
	implicitDir = "/usr/share/vulkan/implicit_layer.d"
	explicitDir = "/usr/share/vulkan/explicit_layer.d"
)

type recordingValidator struct {
	out   TestOutcome
	calls []SDK
}

func (v *recordingValidator) Validate(_ context.Context, sdk SDK, sink report.Sink) TestOutcome {
	v.calls = append(v.calls, sdk)
	sink.BeginTable("Cube", nil)
	report.Row(sink, "vkcube", "SUCCESSFUL")
	sink.EndTable()
	return v.out
}

func driverJSON(lib string) string {
	return `{"file_format_version": "1.0.0", "ICD": {"library_path": "` + lib + `", "api_version": "1.3.250"}}`
}

func layerJSON(name, lib string) string {
	return `{"file_format_version": "1.2.0", "layer": {"name": "` + name + `", "type": "GLOBAL",
		"library_path": "` + lib + `", "api_version": "1.3.250", "implementation_version": "1",
		"description": "test layer"}}`
}

// goodHost has one usable driver and a runtime library.
func goodHost(goos string, opts ...inventorytest.Option) *inventorytest.Fake {
	base := []inventorytest.Option{
		inventorytest.WithHome("/home/dev"),
		inventorytest.WithFile(driverDir+"/test_icd.json", driverJSON("./drv.so")),
		inventorytest.WithFile(driverDir+"/drv.so", ""),
		inventorytest.WithFile("/usr/lib/libvulkan.so.1", ""),
	}
	return inventorytest.New(goos, append(base, opts...)...)
}

func newAnalyzer(inv *inventorytest.Fake, opts ...Option) *Analyzer {
	base := []Option{
		WithLogger(slog.New(slog.DiscardHandler)),
		WithAggregator(discovery.NewAggregator(inv, discovery.WithLayout(discovery.LayoutFor(inv.OS, "amd64")))),
		WithLibraryValidator(library.New(inv, library.WithDirs("/usr/lib"))),
		WithProbe(func() (probe.Runtime, error) { return nil, probe.ErrUnavailable }),
		WithOptions(Options{SkipTests: true}),
	}
	return New(inv, append(base, opts...)...)
}

func runAnalyzer(t *testing.T, a *Analyzer) (*InstallationReport, *report.Recorder) {
	t.Helper()
	var rec report.Recorder
	rep, err := a.Run(t.Context(), &rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return rep, &rec
}

func table(t *testing.T, rec *report.Recorder, title string) *report.Table {
	t.Helper()
	tbl := rec.Table(title)
	if tbl == nil {
		t.Fatalf("no %q table in report", title)
	}
	return tbl
}

func TestRunNoDrivers(t *testing.T) {
	t.Parallel()

	rep, rec := runAnalyzer(t, newAnalyzer(inventorytest.New(platform.Linux)))

	if rep.Drivers.Code != result.MissingDriverJSON {
		t.Errorf("Drivers.Code = %v, want MissingDriverJSON", rep.Drivers.Code)
	}
	if rep.Code != result.MissingDriverJSON {
		t.Errorf("Code = %v, want MissingDriverJSON (first failure wins)", rep.Code)
	}
	if !table(t, rec, "Drivers").Contains("NONE FOUND") {
		t.Error("driver table lacks the NONE FOUND row")
	}
	if rep.Runtimes.Code != result.VulkanCantFindRuntime {
		t.Errorf("Runtimes.Code = %v, want VulkanCantFindRuntime", rep.Runtimes.Code)
	}
	if !strings.HasPrefix(rep.Summary(), "ERROR: ") {
		t.Errorf("Summary() = %q", rep.Summary())
	}
}

func TestRunNoDriversWindows(t *testing.T) {
	t.Parallel()

	rep, _ := runAnalyzer(t, newAnalyzer(inventorytest.New(platform.Windows)))
	if rep.Drivers.Code != result.MissingDriverRegistry {
		t.Errorf("Drivers.Code = %v, want MissingDriverRegistry", rep.Drivers.Code)
	}
}

func TestRunRelativeDriverLibrary(t *testing.T) {
	t.Parallel()

	rep, rec := runAnalyzer(t, newAnalyzer(goodHost(platform.Linux)))

	if rep.Code != result.Successful {
		t.Fatalf("Code = %v, want Successful", rep.Code)
	}
	entries := rep.Drivers.Parsed()
	if len(entries) != 1 {
		t.Fatalf("parsed drivers = %d, want 1", len(entries))
	}
	lib := entries[0].Library
	if lib == nil || !lib.Found || !lib.Loadable || lib.ResolvedPath != driverDir+"/drv.so" {
		t.Errorf("Library = %+v", lib)
	}
	drivers := table(t, rec, "Drivers")
	if !drivers.Contains("Found at " + driverDir + "/drv.so") {
		t.Errorf("driver rows = %v", drivers.Texts())
	}
	if _, ok := drivers.FindRow("[0]", driverDir+"/test_icd.json"); !ok {
		t.Error("manifest row missing")
	}
	if _, ok := drivers.FindRow(driverDir); !ok {
		t.Error("location header row missing")
	}
	if got := rep.Summary(); got != "SUCCESS: Vulkan analysis able to create Vulkan 1.0 instance/devices - However, No SDK Detected" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestDriverFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []inventorytest.Option
		want result.Code
	}{
		{
			name: "library not found",
			opts: []inventorytest.Option{
				inventorytest.WithFile(driverDir+"/a.json", driverJSON("libmissing.so")),
			},
			want: result.MissingDriverLib,
		},
		{
			name: "library does not load",
			opts: []inventorytest.Option{
				inventorytest.WithFile(driverDir+"/a.json", driverJSON("./broken.so")),
				inventorytest.WithFile(driverDir+"/broken.so", ""),
				inventorytest.WithLoadError(driverDir+"/broken.so", "wrong ELF class: ELFCLASS32"),
			},
			want: result.MissingDriverLib,
		},
		{
			name: "one usable driver is enough",
			opts: []inventorytest.Option{
				inventorytest.WithFile(driverDir+"/a.json", driverJSON("libmissing.so")),
				inventorytest.WithFile(driverDir+"/b.json", driverJSON("/opt/gpu/libgpu.so")),
				inventorytest.WithFile("/opt/gpu/libgpu.so", ""),
			},
			want: result.Successful,
		},
		{
			name: "nothing parses",
			opts: []inventorytest.Option{
				inventorytest.WithFile(driverDir+"/a.json", `{"file_format_version": "1.0.0"}`),
			},
			want: result.DriverJSONParsingError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := inventorytest.New(platform.Linux, tt.opts...)
			rep, _ := runAnalyzer(t, newAnalyzer(inv))
			if rep.Drivers.Code != tt.want {
				t.Errorf("Drivers.Code = %v, want %v", rep.Drivers.Code, tt.want)
			}
		})
	}
}

func TestRunMalformedDriverAmongOthers(t *testing.T) {
	t.Parallel()

	inv := inventorytest.New(platform.Linux,
		inventorytest.WithFile(driverDir+"/a.json", driverJSON("./a.so")),
		inventorytest.WithFile(driverDir+"/a.so", ""),
		inventorytest.WithFile(driverDir+"/b.json", `{"ICD": {"library_path": `),
		inventorytest.WithFile(driverDir+"/c.json", driverJSON("./c.so")),
		inventorytest.WithFile(driverDir+"/c.so", ""),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	if n := len(rep.Drivers.Entries); n != 3 {
		t.Fatalf("entries = %d, want 3", n)
	}
	if n := len(rep.Drivers.Parsed()); n != 2 {
		t.Errorf("parsed = %d, want 2", n)
	}
	bad := rep.Drivers.Entries[1]
	if bad.ParseErr == nil || bad.ParseErr.Kind != manifest.KindMalformed || bad.ParseErr.Detail == "" {
		t.Fatalf("entry for b.json = %+v", bad)
	}
	drivers := table(t, rec, "Drivers")
	if _, ok := drivers.FindRow("Malformed", bad.ParseErr.Detail); !ok {
		t.Errorf("no Malformed row carrying the decoder diagnostic in %v", drivers.Texts())
	}
	for _, lib := range []string{"a.so", "c.so"} {
		if !drivers.Contains("Found at " + driverDir + "/" + lib) {
			t.Errorf("%s not validated", lib)
		}
	}
	if rep.Drivers.Code != result.Successful {
		t.Errorf("Drivers.Code = %v, want Successful", rep.Drivers.Code)
	}
}

func TestRunDisabledRegistryDriver(t *testing.T) {
	t.Parallel()

	key := `SOFTWARE\Khronos\Vulkan\Drivers`
	inv := inventorytest.New(platform.Windows,
		inventorytest.WithRegistry(inventory.ScopeMachine, key,
			inventory.RegistryEntry{Name: `C:\Drivers\off.json`, Enabled: false}),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	if _, ok := table(t, rec, "Drivers").FindRow(`C:\Drivers\off.json`, "DISABLED"); !ok {
		t.Error("disabled driver not listed")
	}
	if rep.Drivers.Entries[0].Driver != nil || rep.Drivers.Entries[0].ParseErr != nil {
		t.Error("disabled driver was parsed")
	}
	if rep.Drivers.Code != result.MissingDriverRegistry {
		t.Errorf("Drivers.Code = %v, want MissingDriverRegistry", rep.Drivers.Code)
	}
}

const overrideLayer = `{
	"file_format_version": "1.1.2",
	"layer": {
		"name": "VK_LAYER_LUNARG_override",
		"type": "GLOBAL",
		"api_version": "1.3.250",
		"implementation_version": "1",
		"description": "LunarG Override Layer",
		"component_layers": ["VK_LAYER_KHRONOS_validation"],
		"override_paths": ["/opt/sdk/layers"],
		"disable_environment": {"DISABLE_OVERRIDE": "1"}
	}
}`

func TestRunOverridePaths(t *testing.T) {
	t.Parallel()

	hostOpts := func(extra ...inventorytest.Option) []inventorytest.Option {
		return append([]inventorytest.Option{
			inventorytest.WithFile(implicitDir+"/override.json", overrideLayer),
			inventorytest.WithFile("/opt/sdk/layers/validation.json",
				layerJSON("VK_LAYER_KHRONOS_validation", "./libVkLayer_khronos_validation.so")),
			inventorytest.WithFile("/opt/sdk/layers/libVkLayer_khronos_validation.so", ""),
		}, extra...)
	}

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()

		rep, rec := runAnalyzer(t, newAnalyzer(goodHost(platform.Linux, hostOpts()...)))

		implicit := rep.ImplicitLayers.Parsed()
		if len(implicit) != 1 || implicit[0].Policy == nil || !implicit[0].Policy.Enabled {
			t.Fatalf("implicit layers = %+v", implicit)
		}
		explicit := rep.ExplicitLayers.Parsed()
		if len(explicit) != 1 {
			t.Fatalf("explicit layers = %d, want 1", len(explicit))
		}
		if explicit[0].Source.Origin != discovery.OriginOverride || explicit[0].Source.Label != discovery.OverrideLabel {
			t.Errorf("explicit source = %+v", explicit[0].Source)
		}
		if !explicit[0].Usable() {
			t.Errorf("override layer library = %+v", explicit[0].Library)
		}
		if _, ok := table(t, rec, "Implicit Layers").FindRow("Override Paths", "1", "/opt/sdk/layers"); !ok {
			t.Error("override paths row missing")
		}
		if _, ok := table(t, rec, "Explicit Layers").FindRow(discovery.OverrideLabel, "/opt/sdk/layers"); !ok {
			t.Error("override location row missing")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		inv := goodHost(platform.Linux, hostOpts(inventorytest.WithEnv("DISABLE_OVERRIDE", "1"))...)
		rep, rec := runAnalyzer(t, newAnalyzer(inv))

		if p := rep.ImplicitLayers.Parsed(); len(p) != 1 || p[0].Policy == nil || p[0].Policy.Enabled {
			t.Fatalf("implicit layers = %+v, want one disabled layer", p)
		}
		// A disabled implicit layer still contributes its override paths.
		explicit := rep.ExplicitLayers.Parsed()
		if len(explicit) != 1 || explicit[0].Source.Origin != discovery.OriginOverride {
			t.Fatalf("explicit layers = %+v, want the override layer", explicit)
		}
		if explicit[0].Source.Path != "/opt/sdk/layers/validation.json" {
			t.Errorf("explicit source = %+v", explicit[0].Source)
		}
		implicit := table(t, rec, "Implicit Layers")
		if _, ok := implicit.FindRow("Enabled State", "DISABLED"); !ok {
			t.Error("enabled state row missing")
		}
		if _, ok := implicit.FindRow("Disable Env Var", "DISABLE_OVERRIDE", "1"); !ok {
			t.Errorf("disable gate row missing in %v", implicit.Texts())
		}
	})
}

func TestRunExpiredImplicitLayer(t *testing.T) {
	t.Parallel()

	layer := `{"file_format_version": "1.1.2", "layer": {"name": "VK_LAYER_old", "type": "GLOBAL",
		"library_path": "libold.so", "api_version": "1.1.0", "implementation_version": "1",
		"description": "old", "expiration": "2020-01-01-00-00"}}`
	inv := goodHost(platform.Linux,
		inventorytest.WithFile(implicitDir+"/old.json", layer),
		inventorytest.WithNow(types.Timestamp{Year: 2024, Month: 6, Day: 15, Hour: 12}),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	entries := rep.ImplicitLayers.Parsed()
	if len(entries) != 1 {
		t.Fatalf("implicit layers = %d, want 1", len(entries))
	}
	st := entries[0].Policy
	if !st.Expired || !st.Enabled {
		t.Errorf("policy = %+v, want expired and enabled", st)
	}
	implicit := table(t, rec, "Implicit Layers")
	for _, row := range [][]string{
		{"Expiration", "2020/1/1 0:0"},
		{"Enabled State", "EXPIRED"},
		{"Enable Env Var", "--NONE--"},
	} {
		if _, ok := implicit.FindRow(row...); !ok {
			t.Errorf("row %v missing from %v", row, implicit.Texts())
		}
	}
}

func TestStrictLayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []inventorytest.Option
		strict bool
		want   result.Code
	}{
		{
			name: "malformed tolerated",
			opts: []inventorytest.Option{inventorytest.WithFile(explicitDir+"/bad.json", `{"layer": `)},
			want: result.Successful,
		},
		{
			name:   "malformed strict",
			opts:   []inventorytest.Option{inventorytest.WithFile(explicitDir+"/bad.json", `{"layer": `)},
			strict: true,
			want:   result.LayerJSONParsingError,
		},
		{
			name:   "unreadable strict",
			opts:   []inventorytest.Option{inventorytest.WithUnreadable(explicitDir + "/locked.json")},
			strict: true,
			want:   result.MissingLayerJSON,
		},
		{
			name: "missing library strict",
			opts: []inventorytest.Option{
				inventorytest.WithFile(explicitDir+"/x.json", layerJSON("VK_LAYER_x", "libVkLayer_x.so")),
			},
			strict: true,
			want:   result.MissingLayerLib,
		},
		{
			name: "missing section strict",
			opts: []inventorytest.Option{
				inventorytest.WithFile(explicitDir+"/x.json", `{"file_format_version": "1.0.0"}`),
			},
			strict: true,
			want:   result.LayerJSONParsingError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newAnalyzer(goodHost(platform.Linux, tt.opts...),
				WithOptions(Options{SkipTests: true, StrictLayers: tt.strict}))
			rep, _ := runAnalyzer(t, a)
			if rep.Code != tt.want {
				t.Errorf("Code = %v, want %v", rep.Code, tt.want)
			}
			if tt.want != result.Successful && rep.ExplicitLayers.Code != tt.want {
				t.Errorf("ExplicitLayers.Code = %v, want %v", rep.ExplicitLayers.Code, tt.want)
			}
		})
	}
}

func TestRunMultiLayerManifest(t *testing.T) {
	t.Parallel()

	doc := `{"file_format_version": "1.0.1", "layers": [
		{"name": "VK_LAYER_a", "type": "GLOBAL", "library_path": "./liba.so", "api_version": "1.3.0",
		 "implementation_version": "1", "description": "a"},
		{"name": "VK_LAYER_b", "type": "GLOBAL", "component_layers": ["VK_LAYER_a"], "api_version": "1.3.0",
		 "implementation_version": "1", "description": "b"}
	]}`
	inv := goodHost(platform.Linux,
		inventorytest.WithFile(explicitDir+"/multi.json", doc),
		inventorytest.WithFile(explicitDir+"/liba.so", ""),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	layers := rep.ExplicitLayers.Parsed()
	if len(layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(layers))
	}
	if layers[1].Library != nil {
		t.Errorf("meta-layer has a library resolution: %+v", layers[1].Library)
	}
	explicit := table(t, rec, "Explicit Layers")
	for _, row := range [][]string{{"Layer [0]"}, {"Layer [1]"}, {"Component Layers", "1"}, {"[0]", "VK_LAYER_a"}} {
		if _, ok := explicit.FindRow(row...); !ok {
			t.Errorf("row %v missing", row)
		}
	}
}

func TestRunRuntimes(t *testing.T) {
	t.Parallel()

	inv := goodHost(platform.Linux,
		inventorytest.WithSymlink("/usr/lib/libvulkan.so.1", "libvulkan.so.1.3.250"),
		inventorytest.WithLoaderCache("libvulkan.so.1", "/usr/lib/x86_64-linux-gnu/libvulkan.so.1"),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	want := []RuntimeFile{{Path: "/usr/lib/libvulkan.so.1", Target: "libvulkan.so.1.3.250"}}
	if !slices.Equal(rep.Runtimes.Files, want) {
		t.Errorf("Files = %+v, want %+v", rep.Runtimes.Files, want)
	}
	runtimes := table(t, rec, "Runtimes")
	if _, ok := runtimes.FindRow("[0]", "libvulkan.so.1", "libvulkan.so.1.3.250"); !ok {
		t.Errorf("runtime file row missing in %v", runtimes.Texts())
	}
	if _, ok := runtimes.FindRow("Runtime Folder Used By vkvia", "/usr/lib/x86_64-linux-gnu"); !ok {
		t.Error("loader runtime row missing")
	}
	if rep.Runtimes.Code != result.Successful {
		t.Errorf("Runtimes.Code = %v", rep.Runtimes.Code)
	}
}

func TestRunSettingsFile(t *testing.T) {
	t.Parallel()

	inv := goodHost(platform.Linux,
		inventorytest.WithEnv("VK_LAYER_SETTINGS_PATH", "/home/dev/vk"),
		inventorytest.WithFile("/home/dev/vk/vk_layer_settings.txt",
			"lunarg_api_dump.output_format = html\nkhronos_validation.report_flags = error\n"),
	)
	rep, rec := runAnalyzer(t, newAnalyzer(inv))

	if len(rep.Settings.Files) != 1 {
		t.Fatalf("settings files = %d, want 1", len(rep.Settings.Files))
	}
	groups := rep.Settings.Files[0].Groups
	if len(groups) != 2 || groups[0].Layer != "khronos_validation" {
		t.Errorf("groups = %+v", groups)
	}
	tbl := table(t, rec, "Layer Settings")
	if _, ok := tbl.FindRow("report_flags", "error"); !ok {
		t.Errorf("setting row missing in %v", tbl.Texts())
	}
}

func TestRunSystemInfo(t *testing.T) {
	t.Parallel()

	inv := goodHost(platform.Linux,
		inventorytest.WithEnv("DISPLAY", ":0"),
		inventorytest.WithSystemInfo(inventory.SystemInfo{
			OSName:      "Fedora Linux 40 (Workstation Edition)",
			CPUCount:    8,
			MemoryTotal: 16 << 30,
			MemoryFree:  8 << 30,
		}),
	)
	a := newAnalyzer(inv, WithOptions(Options{
		SkipTests:  true,
		AppVersion: "1.2.3",
		Executable: "/opt/vkvia/bin/vkvia",
		WorkDir:    "/home/dev",
	}))
	rep, rec := runAnalyzer(t, a)

	if rep.OSName != "Fedora Linux 40 (Workstation Edition)" {
		t.Errorf("OSName = %q", rep.OSName)
	}
	for title, rows := range map[string][][]string{
		"Environment": {
			{"Operating System", "Fedora Linux 40 (Workstation Edition)"},
			{"DISPLAY", ":0"},
			{"WAYLAND_DISPLAY", "Not Defined"},
		},
		"Hardware": {
			{"CPUs", "8"},
			{"Memory Physical", "8.0 GiB free of 16 GiB"},
		},
		"Executable": {
			{"Exe Directory", "/opt/vkvia/bin"},
			{"App Version", "1.2.3"},
		},
	} {
		tbl := table(t, rec, title)
		for _, row := range rows {
			if _, ok := tbl.FindRow(row...); !ok {
				t.Errorf("%s: row %v missing from %v", title, row, tbl.Texts())
			}
		}
	}
}

func TestRunProbe(t *testing.T) {
	t.Parallel()

	v12 := types.APIVersion{Major: 1, Minor: 2}
	rt := probetest.New(types.APIVersion{Major: 1, Minor: 3, Patch: 250}, probetest.GPU("Test GPU", v12))
	a := newAnalyzer(goodHost(platform.Linux),
		WithProbe(func() (probe.Runtime, error) { return rt, nil }))
	rep, rec := runAnalyzer(t, a)

	if rep.Probe == nil || rep.Probe.Code != result.Successful {
		t.Fatalf("Probe = %+v", rep.Probe)
	}
	if rep.MaxVersion != v12 {
		t.Errorf("MaxVersion = %v, want %v", rep.MaxVersion, v12)
	}
	sec := rec.Section("Vulkan API Calls")
	if sec == nil || sec.Table("Instance") == nil || sec.Table("Cleanup") == nil {
		t.Fatalf("probe section = %+v", sec)
	}
	if rt.Live() != 0 {
		t.Errorf("%d Vulkan objects left alive", rt.Live())
	}
	if got := rep.Summary(); !strings.Contains(got, "Vulkan 1.2") {
		t.Errorf("Summary() = %q", got)
	}
}

func TestRunProbeUnavailable(t *testing.T) {
	t.Parallel()

	rep, rec := runAnalyzer(t, newAnalyzer(goodHost(platform.Linux)))
	if rep.Probe != nil {
		t.Errorf("Probe = %+v, want nil", rep.Probe)
	}
	if rep.Code != result.Successful {
		t.Errorf("Code = %v, want Successful", rep.Code)
	}
	sec := rec.Section("Vulkan API Calls")
	if sec == nil || len(sec.Texts) != 1 {
		t.Fatalf("probe section = %+v", sec)
	}
}

func TestRunExternalTests(t *testing.T) {
	t.Parallel()

	sdkOpts := []inventorytest.Option{
		inventorytest.WithEnv("VULKAN_SDK", "/opt/vulkan/1.3.250/x86_64"),
		inventorytest.WithFile("/opt/vulkan/1.3.250/x86_64/etc/vulkan/explicit_layer.d/VkLayer_khronos_validation.json", "{}"),
	}

	t.Run("sdk found", func(t *testing.T) {
		t.Parallel()

		v := &recordingValidator{out: TestOutcome{Ran: true, Code: result.TestFailed}}
		a := newAnalyzer(goodHost(platform.Linux, sdkOpts...), WithValidator(v), WithOptions(Options{}))
		rep, rec := runAnalyzer(t, a)

		if len(v.calls) != 1 || v.calls[0].Path != "/opt/vulkan/1.3.250/x86_64" {
			t.Fatalf("validator calls = %+v", v.calls)
		}
		if !slices.Equal(v.calls[0].Layers, []string{"VkLayer_khronos_validation.json"}) {
			t.Errorf("SDK layers = %v", v.calls[0].Layers)
		}
		if rep.Code != result.TestFailed {
			t.Errorf("Code = %v, want TestFailed", rep.Code)
		}
		if sec := rec.Section("External Tests"); sec == nil || sec.Table("Cube") == nil {
			t.Error("validator output not inside the External Tests section")
		}
	})

	t.Run("system sdk", func(t *testing.T) {
		t.Parallel()

		v := &recordingValidator{out: TestOutcome{Ran: true}}
		inv := goodHost(platform.Linux, inventorytest.WithPackage(SDKPackage, "1.3.250.1"))
		rep, rec := runAnalyzer(t, newAnalyzer(inv, WithValidator(v), WithOptions(Options{})))

		if len(v.calls) != 1 || !v.calls[0].SystemInstall {
			t.Fatalf("validator calls = %+v", v.calls)
		}
		if _, ok := table(t, rec, "SDKs").FindRow("System Installed SDK", "1.3.250.1"); !ok {
			t.Error("system SDK row missing")
		}
		if got := rep.Summary(); got != "SUCCESS: Vulkan analysis completed properly using Vulkan 1.0" {
			t.Errorf("Summary() = %q", got)
		}
	})

	t.Run("no sdk", func(t *testing.T) {
		t.Parallel()

		v := &recordingValidator{}
		rep, rec := runAnalyzer(t, newAnalyzer(goodHost(platform.Linux), WithValidator(v), WithOptions(Options{})))

		if len(v.calls) != 0 {
			t.Errorf("validator ran without an SDK")
		}
		if !rec.HasText(noSDKText) {
			t.Error("skip text missing")
		}
		if !table(t, rec, "SDKs").Contains("No installed SDKs found") {
			t.Error("no-SDK row missing")
		}
		if rep.Code != result.Successful {
			t.Errorf("Code = %v", rep.Code)
		}
	})
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var rec report.Recorder
	rep, err := newAnalyzer(goodHost(platform.Linux)).Run(ctx, &rec)
	if err == nil {
		t.Fatal("Run() succeeded on a cancelled context")
	}
	if rep == nil || len(rec.Sections) != 0 {
		t.Errorf("stages ran after cancellation: %d sections", len(rec.Sections))
	}
}
