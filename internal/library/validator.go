// SPDX-License-Identifier: MPL-2.0

package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/internal/manifest"
)

const (
	// MethodNone means the library was not located.
	MethodNone Method = iota
	// MethodDirect means the path resolved from the manifest was readable.
	MethodDirect
	// MethodSystemDir means a system library directory held the file.
	MethodSystemDir
	// MethodSearchPath means a search path variable entry held the file.
	MethodSearchPath
	// MethodLoaderCache means the dynamic loader cache resolved the name.
	MethodLoaderCache
)

type (
	// Method records how a library was located.
	Method int

	// Resolution is the outcome of validating one library reference.
	Resolution struct {
		Reference    string
		ResolvedPath string
		Found        bool
		Loadable     bool
		Method       Method
		// Version is the file version resource, where the platform has one.
		Version string
		// Tried lists every path checked, in order.
		Tried []string
		// Diagnostic is the loader error for an unloadable library, or a
		// description of the search for one that was not found.
		Diagnostic string
	}

	// Option configures a Validator.
	Option func(*Validator)

	// Validator resolves and probes library references.
	Validator struct {
		inv       inventory.Provider
		dirs      []string
		searchVar string
		logger    *slog.Logger
	}
)

// New returns a Validator for inv's platform and the running architecture.
func New(inv inventory.Provider, opts ...Option) *Validator {
	v := &Validator{
		inv:       inv,
		dirs:      SystemDirs(inv.GOOS(), runtime.GOARCH),
		searchVar: SearchPathVar(inv.GOOS()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithDirs replaces the system library directories.
func WithDirs(dirs ...string) Option {
	return func(v *Validator) { v.dirs = dirs }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// String names the method for report rows.
func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodSystemDir:
		return "system directory"
	case MethodSearchPath:
		return "search path"
	case MethodLoaderCache:
		return "loader cache"
	default:
		return "not found"
	}
}

// Validate locates the library ref declared by the manifest at manifestPath
// and checks that it loads.
func (v *Validator) Validate(ctx context.Context, manifestPath, ref string) Resolution {
	res := Resolution{Reference: ref}
	if ref == "" {
		res.Diagnostic = "no library path declared"
		return res
	}

	resolved := manifest.ResolveLibraryPath(manifestPath, ref)
	if v.check(&res, resolved, MethodDirect) {
		return v.finish(res)
	}

	if isBareName(ref) {
		for _, dir := range v.dirs {
			candidate := inventory.Join(v.inv, inventory.ExpandPath(v.inv, dir), ref)
			if v.check(&res, candidate, MethodSystemDir) {
				return v.finish(res)
			}
		}
		if value, ok := v.inv.Getenv(v.searchVar); ok {
			for _, dir := range inventory.SplitList(v.inv, value) {
				if v.check(&res, inventory.Join(v.inv, dir, ref), MethodSearchPath) {
					return v.finish(res)
				}
			}
		}
		if path, err := v.inv.LoaderCacheLookup(ctx, ref); err == nil {
			res.Tried = append(res.Tried, path)
			res.ResolvedPath, res.Found, res.Method = path, true, MethodLoaderCache
			return v.finish(res)
		} else if !errors.Is(err, inventory.ErrNotFound) && !errors.Is(err, inventory.ErrUnsupported) {
			v.logger.Debug("loader cache lookup failed", "library", ref, "error", err)
		}
	}

	res.ResolvedPath = resolved
	res.Diagnostic = fmt.Sprintf("Failed to find %s referenced by JSON %s (tried %s)",
		ref, manifestPath, strings.Join(res.Tried, ", "))
	return res
}

func (v *Validator) check(res *Resolution, path string, method Method) bool {
	res.Tried = append(res.Tried, path)
	if !v.inv.IsReadable(path) {
		return false
	}
	res.ResolvedPath, res.Found, res.Method = path, true, method
	return true
}

func (v *Validator) finish(res Resolution) Resolution {
	if version, err := v.inv.FileVersion(res.ResolvedPath); err == nil {
		res.Version = version
	}
	res.Loadable, res.Diagnostic = v.inv.ProbeLibrary(res.ResolvedPath)
	return res
}

func isBareName(ref string) bool {
	return !strings.ContainsAny(ref, `/\`)
}
