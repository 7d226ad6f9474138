// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"errors"
	"strings"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/platform"
)

// loaderName returns the runtime file name applications link against.
func loaderName(goos string) string {
	switch goos {
	case platform.Windows:
		return "vulkan-1.dll"
	case platform.Darwin:
		return "libvulkan.1.dylib"
	default:
		return "libvulkan.so.1"
	}
}

func (r *run) runtimes() {
	res := r.agg.Enumerate(discovery.CategoryRuntime)
	rt := RuntimeReport{Discovery: res}

	r.beginCategory("Vulkan Runtimes", discovery.CategoryRuntime)
	report.KeyRow(r.sink, "Possible Runtime Folders", "", "")
	r.walk(res, func(i int, src discovery.ManifestSource) {
		f := RuntimeFile{Path: src.Path}
		target, err := r.inv.ResolveSymlink(src.Path)
		switch {
		case err == nil:
			f.Target = target
		case !errors.Is(err, inventory.ErrNotFound):
			r.logger.Debug("cannot resolve runtime link", "path", src.Path, "error", err)
		}
		rt.Files = append(rt.Files, f)
		report.Row(r.sink, index(i), baseName(src.Path), f.Target)
	})

	rt.LoaderPath = r.loaderRuntime(rt.Files)
	if rt.LoaderPath != "" {
		report.KeyRow(r.sink, "Runtime Folder Used By vkvia", dirName(rt.LoaderPath), baseName(rt.LoaderPath))
	} else {
		report.Row(r.sink, "Failed to find Vulkan "+loaderName(r.inv.GOOS())+" used for vkvia")
		rt.Code = result.VulkanCantFindRuntime
	}
	r.endCategory(res)

	r.rep.Runtimes = rt
	r.fold(rt.Code)
}

// loaderRuntime asks the loader cache for the runtime; without one, the
// first loadable runtime file found on disk is the one applications get.
func (r *run) loaderRuntime(files []RuntimeFile) string {
	name := loaderName(r.inv.GOOS())
	path, err := r.inv.LoaderCacheLookup(r.ctx, name)
	if err == nil {
		return path
	}
	if !errors.Is(err, inventory.ErrNotFound) && !errors.Is(err, inventory.ErrUnsupported) {
		r.logger.Debug("loader cache lookup failed", "library", name, "error", err)
	}
	for _, f := range files {
		ok, diag := r.inv.ProbeLibrary(f.Path)
		if ok {
			return f.Path
		}
		r.logger.Debug("runtime does not load", "path", f.Path, "error", diag)
	}
	return ""
}

func baseName(path string) string {
	return path[strings.LastIndexAny(path, `/\`)+1:]
}

func dirName(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i <= 0 {
		return path[:max(i+1, 0)]
	}
	return path[:i]
}
