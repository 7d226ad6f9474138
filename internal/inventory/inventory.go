// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"errors"

	"github.com/vkvia/vkvia/pkg/types"
)

const (
	// ScopeMachine is the machine-wide registry hive (HKEY_LOCAL_MACHINE).
	ScopeMachine Scope = iota
	// ScopeUser is the per-user registry hive (HKEY_CURRENT_USER).
	ScopeUser
)

var (
	// ErrNotFound reports a directory, key, package or library that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnsupported reports a query the platform cannot answer at all
	// (e.g. registry access outside Windows).
	ErrUnsupported = errors.New("not supported on this platform")
	// ErrUnavailable reports metadata that exists in principle but could not
	// be obtained for this file (e.g. no version resource).
	ErrUnavailable = errors.New("unavailable")
)

type (
	// Scope selects the registry hive.
	Scope int

	// RegistryEntry is one value under a manifest registry key. For the
	// Khronos keys the value name is the manifest path and Enabled comes from
	// the DWORD data (0 means enabled).
	RegistryEntry struct {
		Name    string
		Enabled bool
		Value   string
	}

	// DeviceEntry is a manifest path published by one display adapter.
	DeviceEntry struct {
		// Device identifies the adapter key the value was read from.
		Device string
		Path   string
	}

	// SystemInfo is the host summary printed at the top of a report.
	SystemInfo struct {
		OSName        string
		OSVersion     string
		KernelVersion string
		KernelBuild   string
		Architecture  string
		Hostname      string
		CPUCount      int
		MemoryTotal   uint64
		MemoryFree    uint64
		SystemDisk    DiskUsage
		WorkDirDisk   DiskUsage
	}

	// DiskUsage describes the filesystem holding Path.
	DiskUsage struct {
		Path  string
		Total uint64
		Free  uint64
	}

	// Provider is everything the discovery engine needs from the host.
	Provider interface {
		// GOOS names the platform whose conventions apply.
		GOOS() string

		// RegistryEntries lists the values under key in the given hive.
		RegistryEntries(scope Scope, key string) ([]RegistryEntry, error)
		// DeviceRegistryEntries lists valueName across every display adapter key.
		DeviceRegistryEntries(valueName string) ([]DeviceEntry, error)

		// ListDir returns the names in dir, sorted. ErrNotFound when dir is absent.
		ListDir(dir string) ([]string, error)
		// Getenv reports the variable and whether it is set.
		Getenv(name string) (string, bool)
		ReadFile(path string) ([]byte, error)
		IsReadable(path string) bool
		IsDir(path string) bool
		// ResolveSymlink returns the link target, or ErrNotFound if path is not a link.
		ResolveSymlink(path string) (string, error)
		// HomeDir returns the user's home directory, or "" when unknown.
		HomeDir() string

		// FileVersion reads the version resource of a binary.
		FileVersion(path string) (string, error)
		// ProbeLibrary loads and immediately releases a dynamic library. The
		// string is the loader's diagnostic on failure.
		ProbeLibrary(path string) (bool, string)

		// InstalledPackage returns the installed version of a system package.
		InstalledPackage(ctx context.Context, name string) (string, error)
		// LoaderCacheLookup resolves a bare library file name through the
		// dynamic loader's cache.
		LoaderCacheLookup(ctx context.Context, name string) (string, error)

		// Now returns the current local time.
		Now() types.Timestamp
		// SystemInfo gathers the host summary.
		SystemInfo(ctx context.Context) (SystemInfo, error)
	}
)

// String returns the hive name.
func (s Scope) String() string {
	if s == ScopeUser {
		return "HKEY_CURRENT_USER"
	}
	return "HKEY_LOCAL_MACHINE"
}
