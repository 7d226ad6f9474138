// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"errors"
	"strings"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/report"
)

// SDKPackage is the system package name of the LunarG SDK.
const SDKPackage = "lunarg-vulkan-sdk"

// sdkLayerDirs are the folders, relative to an SDK root, that mark a
// directory as an SDK and hold its explicit layers.
var sdkLayerDirs = [][]string{
	{"etc", "vulkan", "explicit_layer.d"},
	{"etc", "explicit_layer.d"},
	{"Config"},
}

func (r *run) sdk() {
	res := r.agg.Enumerate(discovery.CategorySDK)
	rep := SDKReport{Discovery: res}

	r.beginCategory("LunarG Vulkan SDKs", discovery.CategorySDK)
	r.walk(res, func(i int, src discovery.ManifestSource) {
		layerDir, ok := r.sdkLayerDir(src.Path)
		if !ok {
			report.Row(r.sink, index(i), src.Path, "No SDK layer folder found")
			return
		}
		report.Row(r.sink, index(i), src.Path, "")
		layers := r.sdkLayers(layerDir)
		report.Row(r.sink, "", "Explicit Layers", layerDir)
		for j, name := range layers {
			indexRow(r.sink, j, name)
		}
		if !rep.SDK.Found {
			rep.SDK = SDK{Found: true, Path: src.Path, Layers: layers}
		}
	})

	version, err := r.inv.InstalledPackage(r.ctx, SDKPackage)
	switch {
	case err == nil:
		report.KeyRow(r.sink, "System Installed SDK", version, "")
		if !rep.SDK.Found {
			rep.SDK = SDK{Found: true, SystemInstall: true, Version: version}
		}
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, inventory.ErrUnsupported):
	default:
		r.logger.Debug("package query failed", "package", SDKPackage, "error", err)
	}

	if !rep.SDK.Found {
		report.Row(r.sink, "No installed SDKs found")
	}
	r.endCategory(res)

	r.logger.Debug("sdk analysed", "found", rep.SDK.Found, "path", rep.SDK.Path, "system", rep.SDK.SystemInstall)
	r.rep.SDK = rep
}

func (r *run) sdkLayerDir(root string) (string, bool) {
	for _, parts := range sdkLayerDirs {
		dir := inventory.Join(r.inv, root, parts...)
		if r.inv.IsDir(dir) {
			return dir, true
		}
	}
	return "", false
}

func (r *run) sdkLayers(dir string) []string {
	names, err := r.inv.ListDir(dir)
	if err != nil {
		r.logger.Debug("cannot list sdk layers", "dir", dir, "error", err)
		return nil
	}
	var out []string
	for _, name := range names {
		if strings.HasSuffix(strings.ToLower(name), ".json") {
			out = append(out, name)
		}
	}
	return out
}
