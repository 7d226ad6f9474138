// SPDX-License-Identifier: MPL-2.0

package inventorytest

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/pkg/platform"
	"github.com/vkvia/vkvia/pkg/types"
)

type (
	// Option configures a Fake.
	Option func(*Fake)

	// Fake is an in-memory host. Directories are implied by the files and
	// directories added to it.
	Fake struct {
		OS          string
		Env         map[string]string
		Files       map[string][]byte
		Dirs        map[string]bool
		Unreadable  map[string]bool
		Symlinks    map[string]string
		Registry    map[inventory.Scope]map[string][]inventory.RegistryEntry
		Devices     map[string][]inventory.DeviceEntry
		LoadErrors  map[string]string
		Versions    map[string]string
		Packages    map[string]string
		LoaderCache map[string]string
		Home        string
		Time        types.Timestamp
		Info        inventory.SystemInfo
	}
)

// Compile-time check.
var _ inventory.Provider = (*Fake)(nil)

// New returns an empty host for goos.
//
// Usage:
//
//	host := inventorytest.New(platform.Linux,
//	    inventorytest.WithFile("/etc/vulkan/icd.d/a.json", `{"ICD":{}}`),
//	    inventorytest.WithEnv("VK_LAYER_PATH", "/opt/layers"),
//	)
func New(goos string, opts ...Option) *Fake {
	f := &Fake{
		OS:          goos,
		Env:         map[string]string{},
		Files:       map[string][]byte{},
		Dirs:        map[string]bool{},
		Unreadable:  map[string]bool{},
		Symlinks:    map[string]string{},
		Registry:    map[inventory.Scope]map[string][]inventory.RegistryEntry{},
		Devices:     map[string][]inventory.DeviceEntry{},
		LoadErrors:  map[string]string{},
		Versions:    map[string]string{},
		Packages:    map[string]string{},
		LoaderCache: map[string]string{},
		Time:        types.Timestamp{Year: 2024, Month: 6, Day: 15, Hour: 12, Minute: 0},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithEnv sets an environment variable.
func WithEnv(name, value string) Option {
	return func(f *Fake) { f.Env[name] = value }
}

// WithFile adds a readable file and its parent directories.
func WithFile(path, content string) Option {
	return func(f *Fake) { f.AddFile(path, content) }
}

// WithDir adds an empty directory and its parents.
func WithDir(path string) Option {
	return func(f *Fake) { f.addDir(path) }
}

// WithUnreadable adds a file that exists but cannot be read.
func WithUnreadable(path string) Option {
	return func(f *Fake) {
		f.AddFile(path, "")
		f.Unreadable[path] = true
	}
}

// WithSymlink records path as a link to target.
func WithSymlink(path, target string) Option {
	return func(f *Fake) { f.Symlinks[path] = target }
}

// WithRegistry adds entries under key in the given hive.
func WithRegistry(scope inventory.Scope, key string, entries ...inventory.RegistryEntry) Option {
	return func(f *Fake) {
		if f.Registry[scope] == nil {
			f.Registry[scope] = map[string][]inventory.RegistryEntry{}
		}
		f.Registry[scope][key] = append(f.Registry[scope][key], entries...)
	}
}

// WithDevice adds per-adapter entries for valueName.
func WithDevice(valueName string, entries ...inventory.DeviceEntry) Option {
	return func(f *Fake) { f.Devices[valueName] = append(f.Devices[valueName], entries...) }
}

// WithLoadError makes ProbeLibrary fail for path with msg.
func WithLoadError(path, msg string) Option {
	return func(f *Fake) { f.LoadErrors[path] = msg }
}

// WithFileVersion sets the version resource reported for path.
func WithFileVersion(path, version string) Option {
	return func(f *Fake) { f.Versions[path] = version }
}

// WithPackage marks a system package as installed.
func WithPackage(name, version string) Option {
	return func(f *Fake) { f.Packages[name] = version }
}

// WithLoaderCache adds a loader cache entry.
func WithLoaderCache(name, path string) Option {
	return func(f *Fake) { f.LoaderCache[name] = path }
}

// WithHome sets the home directory.
func WithHome(dir string) Option {
	return func(f *Fake) { f.Home = dir }
}

// WithNow pins the current time.
func WithNow(ts types.Timestamp) Option {
	return func(f *Fake) { f.Time = ts }
}

// WithSystemInfo sets the host summary.
func WithSystemInfo(info inventory.SystemInfo) Option {
	return func(f *Fake) { f.Info = info }
}

// AddFile adds a readable file and its parent directories.
func (f *Fake) AddFile(path, content string) {
	f.Files[path] = []byte(content)
	f.addDir(f.parent(path))
}

func (f *Fake) addDir(dir string) {
	for dir != "" && !f.Dirs[dir] {
		f.Dirs[dir] = true
		next := f.parent(dir)
		if next == dir {
			break
		}
		dir = next
	}
}

func (f *Fake) sep() string { return platform.PathSeparator(f.OS) }

func (f *Fake) clean(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, f.sep())
	}
	return path
}

func (f *Fake) parent(path string) string {
	i := strings.LastIndex(path, f.sep())
	switch {
	case i < 0:
		return ""
	case i == 0:
		return f.sep()
	default:
		return path[:i]
	}
}

func (f *Fake) base(path string) string {
	return path[strings.LastIndex(path, f.sep())+1:]
}

// GOOS returns the simulated platform.
func (f *Fake) GOOS() string { return f.OS }

// RegistryEntries returns the entries added for key.
func (f *Fake) RegistryEntries(scope inventory.Scope, key string) ([]inventory.RegistryEntry, error) {
	if f.OS != platform.Windows {
		return nil, inventory.ErrUnsupported
	}
	entries, ok := f.Registry[scope][key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, inventory.ErrNotFound)
	}
	return slices.Clone(entries), nil
}

// DeviceRegistryEntries returns the adapter entries added for valueName.
func (f *Fake) DeviceRegistryEntries(valueName string) ([]inventory.DeviceEntry, error) {
	if f.OS != platform.Windows {
		return nil, inventory.ErrUnsupported
	}
	entries, ok := f.Devices[valueName]
	if !ok {
		return nil, fmt.Errorf("%s: %w", valueName, inventory.ErrNotFound)
	}
	return slices.Clone(entries), nil
}

// ListDir returns the sorted children of dir.
func (f *Fake) ListDir(dir string) ([]string, error) {
	dir = f.clean(dir)
	if !f.Dirs[dir] {
		return nil, fmt.Errorf("%s: %w", dir, inventory.ErrNotFound)
	}
	var names []string
	for path := range f.Files {
		if f.parent(path) == dir {
			names = append(names, f.base(path))
		}
	}
	for path := range f.Dirs {
		if path != dir && f.parent(path) == dir {
			names = append(names, f.base(path))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Getenv reports a variable added with WithEnv.
func (f *Fake) Getenv(name string) (string, bool) {
	v, ok := f.Env[name]
	return v, ok
}

// ReadFile returns the content of a file added with WithFile.
func (f *Fake) ReadFile(path string) ([]byte, error) {
	if f.Unreadable[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}
	data, ok := f.Files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

// IsReadable reports whether path is a readable file.
func (f *Fake) IsReadable(path string) bool {
	_, ok := f.Files[path]
	return ok && !f.Unreadable[path]
}

// IsDir reports whether path is a known directory.
func (f *Fake) IsDir(path string) bool { return f.Dirs[f.clean(path)] }

// ResolveSymlink returns the target added with WithSymlink.
func (f *Fake) ResolveSymlink(path string) (string, error) {
	target, ok := f.Symlinks[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, inventory.ErrNotFound)
	}
	return target, nil
}

// HomeDir returns the configured home directory.
func (f *Fake) HomeDir() string { return f.Home }

// FileVersion returns the version added with WithFileVersion.
func (f *Fake) FileVersion(path string) (string, error) {
	if v, ok := f.Versions[path]; ok {
		return v, nil
	}
	if f.OS != platform.Windows {
		return "", inventory.ErrUnsupported
	}
	return "", fmt.Errorf("%s: %w", path, inventory.ErrUnavailable)
}

// ProbeLibrary succeeds for existing files unless a load error was added.
// Bare names resolve through the loader cache.
func (f *Fake) ProbeLibrary(path string) (bool, string) {
	if msg, ok := f.LoadErrors[path]; ok {
		return false, msg
	}
	if _, ok := f.Files[path]; ok {
		return true, ""
	}
	if _, ok := f.LoaderCache[path]; ok {
		return true, ""
	}
	return false, path + ": cannot open shared object file: No such file or directory"
}

// InstalledPackage returns the version added with WithPackage.
func (f *Fake) InstalledPackage(_ context.Context, name string) (string, error) {
	if v, ok := f.Packages[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("package %s: %w", name, inventory.ErrNotFound)
}

// LoaderCacheLookup returns the path added with WithLoaderCache.
func (f *Fake) LoaderCacheLookup(_ context.Context, name string) (string, error) {
	if f.OS != platform.Linux {
		return "", inventory.ErrUnsupported
	}
	if p, ok := f.LoaderCache[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", name, inventory.ErrNotFound)
}

// Now returns the pinned time.
func (f *Fake) Now() types.Timestamp { return f.Time }

// SystemInfo returns the summary added with WithSystemInfo.
func (f *Fake) SystemInfo(context.Context) (inventory.SystemInfo, error) {
	return f.Info, nil
}
