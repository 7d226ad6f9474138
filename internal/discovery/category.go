// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	CategoryDriver Category = iota
	CategoryExplicitLayer
	CategoryImplicitLayer
	CategoryRuntime
	CategorySDK
	CategorySettings
)

const (
	// OriginDevice is a value published under a display adapter's registry key.
	OriginDevice Origin = iota
	// OriginRegistry is a value under a Khronos registry key.
	OriginRegistry
	// OriginStandard is a fixed system or user directory.
	OriginStandard
	// OriginPathList is a directory named by a path-list variable.
	OriginPathList
	// OriginFileList is a file (or directory) named by a file-list variable.
	OriginFileList
	// OriginOverride is a directory named by an implicit layer's override_paths.
	OriginOverride
)

const (
	// LocationFound means the place exists and held matching entries.
	LocationFound LocationStatus = iota
	// LocationMissing means the directory or registry key does not exist.
	LocationMissing
	// LocationEmpty means the directory exists but nothing in it matched.
	LocationEmpty
	// LocationNoFile means a named file does not exist or cannot be read.
	LocationNoFile
	// LocationUnset means the environment variable is not defined.
	LocationUnset
)

// OverrideLabel labels sources produced from implicit layer override paths.
const OverrideLabel = "Override"

type (
	// Category is a kind of installation artifact.
	Category int

	// Origin is the mechanism through which a source was found.
	Origin int

	// LocationStatus is the outcome of probing one location.
	LocationStatus int

	// ManifestSource is one manifest (or library, SDK root, settings file)
	// found by enumeration.
	ManifestSource struct {
		Origin Origin
		// Label names the mechanism: registry key, variable or directory.
		Label string
		// Enabled is false only when the source itself marks the entry
		// disabled (registry data other than 0).
		Enabled bool
		Path    string
	}

	// Location is one place that was probed, found or not.
	Location struct {
		Origin Origin
		Label  string
		Path   string
		Status LocationStatus
		// Matches counts the sources the location produced.
		Matches int
	}

	// Result is everything enumeration found for one category.
	Result struct {
		Category    Category
		Sources     []ManifestSource
		Locations   []Location
		Diagnostics []Diagnostic
	}
)

// Categories lists every category in report order.
func Categories() []Category {
	return []Category{
		CategoryDriver, CategoryRuntime, CategorySDK,
		CategoryImplicitLayer, CategoryExplicitLayer, CategorySettings,
	}
}

// String returns the report title of the category.
func (c Category) String() string {
	switch c {
	case CategoryDriver:
		return "Drivers"
	case CategoryExplicitLayer:
		return "Explicit Layers"
	case CategoryImplicitLayer:
		return "Implicit Layers"
	case CategoryRuntime:
		return "Runtimes"
	case CategorySDK:
		return "SDKs"
	case CategorySettings:
		return "Layer Settings"
	default:
		return "Unknown"
	}
}

// IsManifest reports whether the category's sources are JSON manifests.
func (c Category) IsManifest() bool {
	return c == CategoryDriver || c == CategoryExplicitLayer || c == CategoryImplicitLayer
}

// String returns a short name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginDevice:
		return "device"
	case OriginRegistry:
		return "registry"
	case OriginStandard:
		return "standard"
	case OriginPathList:
		return "path list"
	case OriginFileList:
		return "file list"
	case OriginOverride:
		return "override"
	default:
		return "unknown"
	}
}

// StatusText is the text shown for l in a report. Found locations show
// nothing.
func (l Location) StatusText(c Category) string {
	switch l.Status {
	case LocationMissing:
		if l.Origin == OriginRegistry || l.Origin == OriginDevice {
			return "No such key"
		}
		return "No such folder"
	case LocationEmpty:
		switch c {
		case CategoryRuntime:
			return "No Vulkan runtime files found"
		case CategorySettings:
			return "No settings file found"
		case CategoryDriver, CategoryExplicitLayer, CategoryImplicitLayer:
			return "No JSON files found"
		default:
			return "Nothing found"
		}
	case LocationNoFile:
		return "No such file"
	case LocationUnset:
		return "Not Defined"
	default:
		return ""
	}
}

// Enabled returns the sources not marked disabled.
func (r Result) Enabled() []ManifestSource {
	out := make([]ManifestSource, 0, len(r.Sources))
	for _, s := range r.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
