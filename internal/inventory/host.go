// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/vkvia/vkvia/internal/clock"
	"github.com/vkvia/vkvia/internal/shell"
	"github.com/vkvia/vkvia/pkg/platform"
	"github.com/vkvia/vkvia/pkg/types"
)

type (
	// ScriptRunner runs a shell snippet and captures its output.
	ScriptRunner func(ctx context.Context, script string) (*shell.Result, error)

	// HostOption configures a Host.
	HostOption func(*Host)

	// Host answers Provider queries against the running machine.
	Host struct {
		goos   string
		clock  clock.Clock
		run    ScriptRunner
		logger *slog.Logger

		osNameOnce sync.Once
		osName     string
	}
)

// Compile-time check.
var _ Provider = (*Host)(nil)

// NewHost returns a Provider for the current machine.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		goos:   runtime.GOOS,
		clock:  clock.System{},
		logger: slog.Default(),
		run: func(ctx context.Context, script string) (*shell.Result, error) {
			return shell.Run(ctx, script)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithClock overrides the time source used by Now.
func WithClock(c clock.Clock) HostOption {
	return func(h *Host) { h.clock = c }
}

// WithScriptRunner overrides how package and loader-cache queries are run.
func WithScriptRunner(run ScriptRunner) HostOption {
	return func(h *Host) { h.run = run }
}

// WithOSName pins the distribution name used to pick a package manager.
func WithOSName(name string) HostOption {
	return func(h *Host) {
		h.osNameOnce.Do(func() {})
		h.osName = name
	}
}

// WithLogger sets the logger for diagnostic messages.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) { h.logger = l }
}

// GOOS returns the running platform.
func (h *Host) GOOS() string { return h.goos }

// ListDir returns the entry names of dir in lexical order.
func (h *Host) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Getenv reports the value of name and whether it is set.
func (h *Host) Getenv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ReadFile reads path.
func (h *Host) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// IsReadable reports whether path is a regular file the process can open.
func (h *Host) IsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

// IsDir reports whether path is an existing directory.
func (h *Host) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ResolveSymlink returns the target of the link at path.
func (h *Host) ResolveSymlink(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return os.Readlink(path)
}

// HomeDir returns the current user's home directory.
func (h *Host) HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Now returns the current local time.
func (h *Host) Now() types.Timestamp {
	return types.TimestampOf(h.clock.Now())
}

// InstalledPackage returns the installed version of a system package. On
// Windows the uninstall registry is consulted; elsewhere the distribution's
// package manager is queried.
func (h *Host) InstalledPackage(ctx context.Context, name string) (string, error) {
	if h.goos == platform.Windows {
		return uninstalledVersion(name)
	}
	q := selectPackageQuery(h.distribution())
	res, err := h.run(ctx, fmt.Sprintf(q.script, shell.Quote(name)))
	if err != nil {
		return "", err
	}
	if !res.Success() {
		if res.ExitCode == shell.ExitNotFound {
			h.logger.Debug("package manager not available", "manager", q.manager)
		}
		return "", fmt.Errorf("package %s: %w", name, ErrNotFound)
	}
	version, ok := q.parse(res.Output, name)
	if !ok {
		return "", fmt.Errorf("package %s: %w", name, ErrNotFound)
	}
	return version, nil
}

// LoaderCacheLookup resolves name through the ldconfig cache.
func (h *Host) LoaderCacheLookup(ctx context.Context, name string) (string, error) {
	if h.goos != platform.Linux {
		return "", ErrUnsupported
	}
	res, err := h.run(ctx, "ldconfig -p 2>/dev/null || /sbin/ldconfig -p")
	if err != nil {
		return "", err
	}
	if path, ok := parseLoaderCache(res.Output, name); ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (h *Host) distribution() string {
	h.osNameOnce.Do(func() {
		name, err := readOSRelease(osReleaseFiles...)
		if err != nil {
			h.logger.Debug("os-release not readable", "error", err)
		}
		h.osName = name
	})
	return h.osName
}

// parseLoaderCache scans `ldconfig -p` output for an entry named name.
func parseLoaderCache(output, name string) (string, bool) {
	for line := range strings.SplitSeq(output, "\n") {
		lib, target, ok := strings.Cut(strings.TrimSpace(line), " => ")
		if !ok {
			continue
		}
		if fields := strings.Fields(lib); len(fields) > 0 && fields[0] == name {
			return strings.TrimSpace(target), true
		}
	}
	return "", false
}
