// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"runtime"
	"strings"

	"github.com/vkvia/vkvia/internal/inventory"
)

type (
	// Option configures an Aggregator.
	Option func(*Aggregator)

	// Aggregator enumerates sources for each category on one host.
	Aggregator struct {
		inv    inventory.Provider
		layout Layout
	}

	// enumeration accumulates one Enumerate call.
	enumeration struct {
		inv    inventory.Provider
		layout Layout
		res    Result
		seen   map[sourceKey]bool
	}

	sourceKey struct {
		label string
		path  string
	}
)

// NewAggregator returns an Aggregator using the layout for inv's platform.
func NewAggregator(inv inventory.Provider, opts ...Option) *Aggregator {
	a := &Aggregator{
		inv:    inv,
		layout: LayoutFor(inv.GOOS(), runtime.GOARCH),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithLayout replaces the platform layout.
func WithLayout(l Layout) Option {
	return func(a *Aggregator) { a.layout = l }
}

// Layout returns the location table in use.
func (a *Aggregator) Layout() Layout { return a.layout }

// Enumerate lists the sources of category c. overrides are extra directories
// searched after every other source, labelled Override; they come from the
// override_paths of implicit layers and matter for explicit layers.
func (a *Aggregator) Enumerate(c Category, overrides ...string) Result {
	e := &enumeration{
		inv:    a.inv,
		layout: a.layout,
		res:    Result{Category: c},
		seen:   make(map[sourceKey]bool),
	}

	switch c {
	case CategoryRuntime:
		e.runtimes()
	case CategorySDK:
		e.sdks()
	case CategorySettings:
		e.settings()
	default:
		e.device(c)
		e.registry(c)
		e.standard(c)
		e.pathVars(c, isJSON)
		e.fileVars(c)
		e.overrides(overrides)
	}
	return e.res
}

func isJSON(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}

// add records a source unless the same label and path were already seen.
func (e *enumeration) add(s ManifestSource) bool {
	key := sourceKey{label: s.Label, path: s.Path}
	if e.seen[key] {
		return false
	}
	e.seen[key] = true
	e.res.Sources = append(e.res.Sources, s)
	return true
}

func (e *enumeration) locate(l Location) {
	e.res.Locations = append(e.res.Locations, l)
}

func (e *enumeration) diagnose(code DiagnosticCode, msg, path string, err error) {
	e.res.Diagnostics = append(e.res.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  msg,
		Path:     path,
		Cause:    err,
	})
}

func (e *enumeration) device(c Category) {
	for _, value := range e.layout.DeviceValues[c] {
		entries, err := e.inv.DeviceRegistryEntries(value)
		switch {
		case errors.Is(err, inventory.ErrUnsupported):
			return
		case errors.Is(err, inventory.ErrNotFound):
			e.locate(Location{Origin: OriginDevice, Label: value, Status: LocationMissing})
			continue
		case err != nil:
			e.diagnose(CodeDeviceQueryFailed, "failed to query adapter registry values", value, err)
			continue
		}

		n := 0
		for _, entry := range entries {
			if e.add(ManifestSource{Origin: OriginDevice, Label: value, Enabled: true, Path: entry.Path}) {
				n++
			}
		}
		e.locate(Location{Origin: OriginDevice, Label: value, Status: foundOrEmpty(n), Matches: n})
	}
}

func (e *enumeration) registry(c Category) {
	key := e.layout.RegistryKeys[c]
	if key == "" {
		return
	}
	for _, scope := range []inventory.Scope{inventory.ScopeMachine, inventory.ScopeUser} {
		label := scope.String() + `\` + key
		entries, err := e.inv.RegistryEntries(scope, key)
		switch {
		case errors.Is(err, inventory.ErrUnsupported):
			return
		case errors.Is(err, inventory.ErrNotFound):
			e.locate(Location{Origin: OriginRegistry, Label: label, Path: key, Status: LocationMissing})
			continue
		case err != nil:
			e.diagnose(CodeRegistryReadFailed, "failed to read registry key", label, err)
			e.locate(Location{Origin: OriginRegistry, Label: label, Path: key, Status: LocationMissing})
			continue
		}

		n := 0
		for _, entry := range entries {
			if e.add(ManifestSource{Origin: OriginRegistry, Label: label, Enabled: entry.Enabled, Path: entry.Name}) {
				n++
			}
		}
		e.locate(Location{Origin: OriginRegistry, Label: label, Path: key, Status: foundOrEmpty(n), Matches: n})
	}
}

func (e *enumeration) standard(c Category) {
	leaf := e.layout.Leaves[c]
	if leaf == "" {
		return
	}
	for _, base := range e.layout.BaseDirs {
		dir := inventory.Join(e.inv, inventory.ExpandPath(e.inv, base), leaf)
		e.scanDir(OriginStandard, dir, dir, isJSON)
	}
}

func (e *enumeration) pathVars(c Category, match func(string) bool) {
	for _, name := range e.layout.PathVars[c] {
		value, ok := e.inv.Getenv(name)
		if !ok {
			e.locate(Location{Origin: OriginPathList, Label: name, Status: LocationUnset})
			continue
		}
		for _, dir := range inventory.SplitList(e.inv, value) {
			e.scanDir(OriginPathList, name, inventory.ExpandPath(e.inv, dir), match)
		}
	}
}

func (e *enumeration) fileVars(c Category) {
	for _, name := range e.layout.FileVars[c] {
		value, ok := e.inv.Getenv(name)
		if !ok {
			e.locate(Location{Origin: OriginFileList, Label: name, Status: LocationUnset})
			continue
		}
		for _, path := range inventory.SplitList(e.inv, value) {
			path = inventory.ExpandPath(e.inv, path)
			if e.inv.IsDir(path) {
				e.scanDir(OriginFileList, name, path, isJSON)
				continue
			}
			e.file(OriginFileList, name, path)
		}
	}
}

func (e *enumeration) overrides(paths []string) {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			e.diagnose(CodeOverrideInvalid, "empty override path ignored", "", nil)
			continue
		}
		e.scanDir(OriginOverride, OverrideLabel, inventory.ExpandPath(e.inv, p), isJSON)
	}
}

func (e *enumeration) runtimes() {
	for _, dir := range e.layout.LibraryDirs {
		dir = inventory.ExpandPath(e.inv, dir)
		e.scanDir(OriginStandard, dir, dir, e.layout.RuntimeMatch)
	}
	name := e.layout.LibraryPathVar
	value, ok := e.inv.Getenv(name)
	if !ok {
		e.locate(Location{Origin: OriginPathList, Label: name, Status: LocationUnset})
		return
	}
	for _, dir := range inventory.SplitList(e.inv, value) {
		e.scanDir(OriginPathList, name, inventory.ExpandPath(e.inv, dir), e.layout.RuntimeMatch)
	}
}

// sdks records every SDK root variable that names an existing directory.
func (e *enumeration) sdks() {
	for _, name := range e.layout.FileVars[CategorySDK] {
		value, ok := e.inv.Getenv(name)
		root := strings.TrimSpace(value)
		switch {
		case !ok:
			e.locate(Location{Origin: OriginFileList, Label: name, Status: LocationUnset})
		case root != "" && e.inv.IsDir(root):
			n := 0
			if e.add(ManifestSource{Origin: OriginFileList, Label: name, Enabled: true, Path: root}) {
				n = 1
			}
			e.locate(Location{Origin: OriginFileList, Label: name, Path: root, Status: LocationFound, Matches: n})
		default:
			e.locate(Location{Origin: OriginFileList, Label: name, Path: root, Status: LocationMissing})
		}
	}
}

// settings prefers the settings path variable; only when it is unset are
// the registry and the standard directories consulted.
func (e *enumeration) settings() {
	for _, name := range e.layout.PathVars[CategorySettings] {
		value, ok := e.inv.Getenv(name)
		if !ok {
			e.locate(Location{Origin: OriginPathList, Label: name, Status: LocationUnset})
			continue
		}
		for _, p := range inventory.SplitList(e.inv, value) {
			p = inventory.ExpandPath(e.inv, p)
			if e.inv.IsDir(p) {
				p = inventory.Join(e.inv, p, SettingsFileName)
			}
			e.file(OriginPathList, name, p)
		}
		return
	}

	e.registry(CategorySettings)
	leaf := e.layout.Leaves[CategorySettings]
	for _, base := range e.layout.BaseDirs {
		dir := inventory.Join(e.inv, inventory.ExpandPath(e.inv, base), leaf)
		e.file(OriginStandard, dir, inventory.Join(e.inv, dir, SettingsFileName))
	}
}

func (e *enumeration) file(origin Origin, label, path string) {
	if !e.inv.IsReadable(path) {
		e.locate(Location{Origin: origin, Label: label, Path: path, Status: LocationNoFile})
		return
	}
	n := 0
	if e.add(ManifestSource{Origin: origin, Label: label, Enabled: true, Path: path}) {
		n = 1
	}
	e.locate(Location{Origin: origin, Label: label, Path: path, Status: LocationFound, Matches: n})
}

func (e *enumeration) scanDir(origin Origin, label, dir string, match func(string) bool) {
	names, err := e.inv.ListDir(dir)
	if err != nil {
		if !errors.Is(err, inventory.ErrNotFound) {
			e.diagnose(CodeDirUnreadable, "failed to list directory", dir, err)
		}
		e.locate(Location{Origin: origin, Label: label, Path: dir, Status: LocationMissing})
		return
	}

	n := 0
	for _, name := range names {
		if !match(name) {
			continue
		}
		if e.add(ManifestSource{Origin: origin, Label: label, Enabled: true, Path: inventory.Join(e.inv, dir, name)}) {
			n++
		}
	}
	e.locate(Location{Origin: origin, Label: label, Path: dir, Status: foundOrEmpty(n), Matches: n})
}

func foundOrEmpty(n int) LocationStatus {
	if n > 0 {
		return LocationFound
	}
	return LocationEmpty
}
