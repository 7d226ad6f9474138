// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"

	"github.com/vkvia/vkvia/internal/result"
)

const (
	loaderArchitectureDoc HttpLink = "https://github.com/KhronosGroup/Vulkan-Loader/blob/main/docs/LoaderInterfaceArchitecture.md"
	loaderDriverDoc       HttpLink = "https://github.com/KhronosGroup/Vulkan-Loader/blob/main/docs/LoaderDriverInterface.md"
	loaderLayerDoc        HttpLink = "https://github.com/KhronosGroup/Vulkan-Loader/blob/main/docs/LoaderLayerInterface.md"
	loaderDebugDoc        HttpLink = "https://github.com/KhronosGroup/Vulkan-Loader/blob/main/docs/LoaderDebugging.md"
	sdkHome               HttpLink = "https://vulkan.lunarg.com/sdk/home"
	gpuInfo               HttpLink = "https://vulkan.gpuinfo.org"
)

// ErrUnknownCode is returned by Lookup for codes that have no guide.
var ErrUnknownCode = errors.New("unknown result code")

type (
	MarkdownMsg string

	HttpLink string

	// Issue is the remediation guide for one result code.
	Issue struct {
		code     result.Code
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Code() result.Code {
	return i.code
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the guide with its heading and link list.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%d)\n", i.code, int(i.code))
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			fmt.Fprintf(&sb, "- <%s>\n", link)
		}
		for _, link := range i.extLinks {
			fmt.Fprintf(&sb, "- <%s>\n", link)
		}
	}
	return sb.String()
}

// Render renders the guide for a terminal using a glamour style name or
// style file.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	successfulIssue = &Issue{
		code: result.Successful,
		mdMsg: `
Every check passed. The loader, at least one driver and the runtime were
found, and the Vulkan API calls completed.`,
	}

	unknownErrorIssue = &Issue{
		code: result.UnknownError,
		mdMsg: `
The analysis stopped before it could classify the failure.

## Things you can try:
- Run again with verbose logging and read the warnings:
~~~
$ vkvia --verbose
~~~
- Check the generated report for the last section that was written.`,
		docLinks: []HttpLink{loaderDebugDoc},
	}

	systemCallFailureIssue = &Issue{
		code: result.SystemCallFailure,
		mdMsg: `
Reading basic system information (OS name, kernel, memory) failed.

## Things you can try:
- Make sure /proc and /etc/os-release are readable (Linux).
- Run vkvia from a regular user session rather than a restricted sandbox.`,
	}

	missingDriverRegistryIssue = &Issue{
		code: result.MissingDriverRegistry,
		mdMsg: `
No driver manifest was registered under the Khronos drivers registry keys.

## Things you can try:
- Reinstall the graphics driver from your GPU vendor.
- Check the registry key:
~~~
HKEY_LOCAL_MACHINE\SOFTWARE\Khronos\Vulkan\Drivers
~~~
- Each value name must be the full path of a driver JSON file with data 0.`,
		docLinks: []HttpLink{loaderDriverDoc},
	}

	missingDriverJSONIssue = &Issue{
		code: result.MissingDriverJSON,
		mdMsg: `
No driver manifest (ICD JSON) was found in any of the searched locations.

## Search locations:
1. ` + "`VK_DRIVER_FILES` / `VK_ICD_FILENAMES`" + `
2. ` + "`$XDG_CONFIG_DIRS/vulkan/icd.d`, `/etc/vulkan/icd.d`" + `
3. ` + "`$XDG_DATA_DIRS/vulkan/icd.d`, `/usr/share/vulkan/icd.d`" + `

## Things you can try:
- Install the Vulkan driver package for your GPU (for example mesa-vulkan-drivers).
- Point the loader at a manifest explicitly:
~~~
$ VK_DRIVER_FILES=/path/to/icd.json vkvia
~~~`,
		docLinks: []HttpLink{loaderDriverDoc},
	}

	driverJSONParsingErrorIssue = &Issue{
		code: result.DriverJSONParsingError,
		mdMsg: `
Driver manifests were found but none of them could be parsed.

## Things you can try:
- Open the manifests listed in the report and check the JSON syntax.
- Make sure each manifest has an ` + "`ICD`" + ` object with ` + "`library_path`" + `.
- Reinstall the driver to restore the original manifest.`,
		docLinks: []HttpLink{loaderDriverDoc},
	}

	missingDriverLibIssue = &Issue{
		code: result.MissingDriverLib,
		mdMsg: `
Driver manifests were found, but no driver library they point to could be
found and loaded.

## Things you can try:
- Check the "Library Path" rows of the report for each driver.
- Relative paths are resolved against the manifest's directory.
- A 32-bit driver cannot be loaded by a 64-bit process, and the reverse.
- Reinstall the driver.`,
		docLinks: []HttpLink{loaderDriverDoc},
	}

	missingLayerJSONIssue = &Issue{
		code: result.MissingLayerJSON,
		mdMsg: `
A layer manifest listed by the loader's search paths could not be read.

## Things you can try:
- Check the permissions of the files listed in the layer sections.
- Remove stale entries from ` + "`VK_LAYER_PATH`" + ` or ` + "`VK_ADD_LAYER_PATH`" + `.`,
		docLinks: []HttpLink{loaderLayerDoc},
	}

	layerJSONParsingErrorIssue = &Issue{
		code: result.LayerJSONParsingError,
		mdMsg: `
A layer manifest is not valid JSON or has neither a ` + "`layer`" + ` nor a
` + "`layers`" + ` section.

## Things you can try:
- Reinstall the application or SDK that installed the layer.
- Delete manifests left behind by uninstalled software.`,
		docLinks: []HttpLink{loaderLayerDoc},
	}

	missingLayerLibIssue = &Issue{
		code: result.MissingLayerLib,
		mdMsg: `
A layer manifest points to a library that is missing or cannot be loaded.

## Things you can try:
- Check the "Library Path" rows in the layer sections of the report.
- Reinstall the software that owns the layer.
- Implicit layers can be disabled with their disable environment variable.`,
		docLinks: []HttpLink{loaderLayerDoc},
	}

	vulkanCantFindRuntimeIssue = &Issue{
		code: result.VulkanCantFindRuntime,
		mdMsg: `
The Vulkan loader library could not be found or loaded.

## Things you can try:
- Install the loader package (libvulkan1, vulkan-loader or vulkan-icd-loader).
- On Linux, refresh the linker cache:
~~~
$ sudo ldconfig
~~~
- On Windows, reinstall the graphics driver, which ships vulkan-1.dll.`,
		docLinks: []HttpLink{loaderArchitectureDoc},
		extLinks: []HttpLink{sdkHome},
	}

	vulkanCantFindDriverIssue = &Issue{
		code: result.VulkanCantFindDriver,
		mdMsg: `
The loader found no driver compatible with this system.

## Things you can try:
- Check that your GPU supports Vulkan.
- Update the graphics driver.
- Enable loader debugging to see why each driver was rejected:
~~~
$ VK_LOADER_DEBUG=driver vkvia
~~~`,
		docLinks: []HttpLink{loaderDebugDoc},
		extLinks: []HttpLink{gpuInfo},
	}

	vulkanCantFindExtensionsIssue = &Issue{
		code: result.VulkanCantFindExtensions,
		mdMsg: `
An instance or device extension that the analysis requires is not available.
This usually means the driver install is incomplete.

## Things you can try:
- Reinstall the graphics driver.
- Compare the reported extension lists with the database entry for your GPU.`,
		extLinks: []HttpLink{gpuInfo},
	}

	vulkanFailedCreateInstanceIssue = &Issue{
		code: result.VulkanFailedCreateInstance,
		mdMsg: `
Creating a Vulkan instance failed for an unexpected reason.

## Things you can try:
- Disable implicit layers one at a time using their disable environment variable.
- Run with loader debugging:
~~~
$ VK_LOADER_DEBUG=all vkvia
~~~`,
		docLinks: []HttpLink{loaderDebugDoc, loaderLayerDoc},
	}

	vulkanFailedCreateDeviceIssue = &Issue{
		code: result.VulkanFailedCreateDevice,
		mdMsg: `
Creating a logical device failed for an unexpected reason.

## Things you can try:
- Update the graphics driver.
- Check the "Physical Devices" table for the queue families the device offers.`,
		docLinks: []HttpLink{loaderDebugDoc},
	}

	vulkanFailedOutOfMemIssue = &Issue{
		code: result.VulkanFailedOutOfMem,
		mdMsg: `
The loader, a layer or a driver ran out of host or device memory.

## Things you can try:
- Close other GPU heavy applications and run again.
- Disable implicit layers that are not needed.`,
	}

	testFailedIssue = &Issue{
		code: result.TestFailed,
		mdMsg: `
The SDK was found but the cube demo did not run successfully.

## Things you can try:
- Check that the SDK examples were built (` + "`<sdk>/../examples/build`" + `).
- Run the demo by hand to see its output:
~~~
$ vkcube --c 50 --suppress_popups --validate
~~~
- Skip the external tests:
~~~
$ vkvia --skip-tests
~~~`,
		extLinks: []HttpLink{sdkHome},
	}

	issues = map[result.Code]*Issue{
		successfulIssue.Code():                 successfulIssue,
		unknownErrorIssue.Code():               unknownErrorIssue,
		systemCallFailureIssue.Code():          systemCallFailureIssue,
		missingDriverRegistryIssue.Code():      missingDriverRegistryIssue,
		missingDriverJSONIssue.Code():          missingDriverJSONIssue,
		driverJSONParsingErrorIssue.Code():     driverJSONParsingErrorIssue,
		missingDriverLibIssue.Code():           missingDriverLibIssue,
		missingLayerJSONIssue.Code():           missingLayerJSONIssue,
		layerJSONParsingErrorIssue.Code():      layerJSONParsingErrorIssue,
		missingLayerLibIssue.Code():            missingLayerLibIssue,
		vulkanCantFindRuntimeIssue.Code():      vulkanCantFindRuntimeIssue,
		vulkanCantFindDriverIssue.Code():       vulkanCantFindDriverIssue,
		vulkanCantFindExtensionsIssue.Code():   vulkanCantFindExtensionsIssue,
		vulkanFailedCreateInstanceIssue.Code(): vulkanFailedCreateInstanceIssue,
		vulkanFailedCreateDeviceIssue.Code():   vulkanFailedCreateDeviceIssue,
		vulkanFailedOutOfMemIssue.Code():       vulkanFailedOutOfMemIssue,
		testFailedIssue.Code():                 testFailedIssue,
	}
)

// Values returns every guide, most severe code last.
func Values() []*Issue {
	codes := make([]result.Code, 0, len(issues))
	for code := range issues {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	slices.Reverse(codes)

	out := make([]*Issue, 0, len(codes))
	for _, code := range codes {
		out = append(out, issues[code])
	}
	return out
}

func Get(code result.Code) *Issue {
	return issues[code]
}

// Lookup finds a guide by numeric exit status ("-21", "21" or the shell's
// "235") or code name ("MissingDriverJSON", case-insensitive).
func Lookup(name string) (*Issue, error) {
	name = strings.TrimSpace(name)
	if n, err := strconv.Atoi(name); err == nil {
		// Every failure code is negative. POSIX shells report the exit
		// status modulo 256, so 235 is -21.
		switch {
		case n >= 128 && n < 256:
			n -= 256
		case n > 0:
			n = -n
		}
		if i := Get(result.Code(n)); i != nil {
			return i, nil
		}
	}
	for _, i := range issues {
		if strings.EqualFold(i.code.String(), name) {
			return i, nil
		}
	}
	return nil, NewErrorContext().
		WithOperation("look up result code").
		WithResource(name).
		WithSuggestion("Pass a numeric exit status such as 21 or a name such as MissingDriverJSON").
		WithSuggestion("Run 'vkvia explain --list' to see every code").
		Wrap(ErrUnknownCode).
		BuildError()
}
