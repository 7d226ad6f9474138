// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"errors"

	"github.com/vkvia/vkvia/internal/discovery"
	"github.com/vkvia/vkvia/internal/library"
	"github.com/vkvia/vkvia/internal/manifest"
	"github.com/vkvia/vkvia/internal/report"
	"github.com/vkvia/vkvia/internal/result"
	"github.com/vkvia/vkvia/pkg/platform"
)

// noneFound is the row written for a driver category with no manifests.
const noneFound = "NONE FOUND"

func (r *run) drivers() {
	res := r.agg.Enumerate(discovery.CategoryDriver)
	cat := CategoryReport{Discovery: res}

	r.beginCategory("Vulkan Driver Info", discovery.CategoryDriver)
	r.walk(res, func(i int, src discovery.ManifestSource) {
		report.Row(r.sink, index(i), src.Path, enabledText(src))
		if !src.Enabled {
			cat.Entries = append(cat.Entries, Entry{Source: src})
			return
		}
		cat.Entries = append(cat.Entries, r.driver(src))
	})
	if len(res.Sources) == 0 {
		report.Row(r.sink, "", noneFound, "")
	}
	r.endCategory(res)

	cat.Code = driverCode(r.inv.GOOS(), cat)
	r.logger.Debug("drivers analysed", "manifests", len(res.Sources), "usable", countUsable(cat), "code", cat.Code)
	r.rep.Drivers = cat
	r.fold(cat.Code)
}

func (r *run) driver(src discovery.ManifestSource) Entry {
	e := Entry{Source: src}
	d, err := manifest.LoadDriver(r.inv, src.Path)
	if err != nil {
		e.ParseErr = parseError(err, src.Path)
		parseErrorRow(r.sink, e.ParseErr)
		return e
	}
	e.Driver = d

	s := r.sink
	report.Row(s, "", "JSON File Version", d.FileFormatVersion.Display())
	report.Row(s, "", "API Version", d.APIVersion.Display())
	report.Row(s, "", "Library Path", d.LibraryPath.Display())
	if d.LibraryArch.State != manifest.FieldMissing {
		report.Row(s, "", "Library Arch", d.LibraryArch.Display())
	}
	if d.LibraryPath.Present() {
		lib := r.libs.Validate(r.ctx, src.Path, d.LibraryPath.Value)
		e.Library = &lib
		libraryRows(s, lib)
	}
	extensionRows(s, "Device Extensions", d.DeviceExtensions)
	extensionRows(s, "Instance Extensions", d.InstanceExtensions)
	return e
}

// driverCode folds the driver category: nothing found, nothing parsed, or
// nothing usable. Any single usable driver makes the category succeed.
func driverCode(goos string, cat CategoryReport) result.Code {
	if len(cat.Discovery.Enabled()) == 0 {
		if goos == platform.Windows {
			return result.MissingDriverRegistry
		}
		return result.MissingDriverJSON
	}
	parsed := cat.Parsed()
	if len(parsed) == 0 {
		return result.DriverJSONParsingError
	}
	for _, e := range parsed {
		if e.Usable() {
			return result.Successful
		}
	}
	return result.MissingDriverLib
}

func countUsable(cat CategoryReport) int {
	n := 0
	for _, e := range cat.Entries {
		if e.Usable() {
			n++
		}
	}
	return n
}

func enabledText(src discovery.ManifestSource) string {
	if src.Enabled {
		return ""
	}
	return "DISABLED"
}

// parseError extracts the per-manifest failure from err.
func parseError(err error, path string) *manifest.ParseError {
	var pe *manifest.ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &manifest.ParseError{Kind: manifest.KindUnreadable, Path: path, Err: err}
}

func parseErrorRow(s report.Sink, pe *manifest.ParseError) {
	report.Row(s, "", pe.Kind.String(), pe.Summary())
}

// libraryRows writes where a library was found and whether it loads.
func libraryRows(s report.Sink, lib library.Resolution) {
	switch {
	case lib.Found && lib.Loadable:
		report.Row(s, "", "", "Found at "+lib.ResolvedPath)
	case lib.Found:
		report.Row(s, "", "", "FAILED TO LOAD! "+lib.Diagnostic)
	default:
		report.Row(s, "", "", lib.Diagnostic)
	}
	if lib.Version != "" {
		report.Row(s, "", "Library Version", lib.Version)
	}
}

func extensionRows(s report.Sink, title string, list manifest.ExtensionList) {
	report.Row(s, "", title, list.Display())
	for j, name := range list.Names() {
		indexRow(s, j, name)
	}
}
