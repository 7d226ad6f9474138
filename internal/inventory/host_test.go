// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/vkvia/vkvia/internal/shell"
	"github.com/vkvia/vkvia/internal/testutil"
	"github.com/vkvia/vkvia/pkg/platform"
	"github.com/vkvia/vkvia/pkg/types"
)

func TestHostListDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	h := NewHost()
	names, err := h.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	want := []string{"a.json", "b.json", "c.txt"}
	if !slices.Equal(names, want) {
		t.Errorf("ListDir() = %v, want %v", names, want)
	}

	_, err = h.ListDir(filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ListDir(missing) error = %v, want ErrNotFound", err)
	}
}

func TestHostFilePredicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "lib.so")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewHost()
	if !h.IsReadable(file) {
		t.Error("IsReadable(file) = false")
	}
	if h.IsReadable(dir) {
		t.Error("IsReadable(dir) = true")
	}
	if !h.IsDir(dir) || h.IsDir(file) {
		t.Error("IsDir() misclassified file or directory")
	}
	if _, err := h.ResolveSymlink(file); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveSymlink(regular file) error = %v, want ErrNotFound", err)
	}
}

func TestHostResolveSymlink(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == platform.Windows {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	dir := t.TempDir()
	link := filepath.Join(dir, "libvulkan.so.1")
	if err := os.Symlink("libvulkan.so.1.3.250", link); err != nil {
		t.Fatal(err)
	}
	got, err := NewHost().ResolveSymlink(link)
	if err != nil {
		t.Fatalf("ResolveSymlink() error = %v", err)
	}
	if got != "libvulkan.so.1.3.250" {
		t.Errorf("ResolveSymlink() = %q", got)
	}
}

func TestHostHomeDir(t *testing.T) {
	// Not parallel: changes the home directory variable.
	home := t.TempDir()
	testutil.SetHomeDir(t, home)

	if got := NewHost().HomeDir(); got != home {
		t.Errorf("HomeDir() = %q, want %q", got, home)
	}
}

func TestHostNow(t *testing.T) {
	t.Parallel()

	clock := testutil.NewFakeClock(time.Date(2025, 3, 4, 5, 6, 59, 0, time.UTC))
	got := NewHost(WithClock(clock)).Now()
	want := types.Timestamp{Year: 2025, Month: 3, Day: 4, Hour: 5, Minute: 6}
	if got != want {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestHostInstalledPackage(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == platform.Windows {
		t.Skip("Windows reads the uninstall registry")
	}

	tests := []struct {
		name     string
		distro   string
		output   string
		exitCode int
		want     string
		wantErr  bool
	}{
		{
			name:   "dpkg",
			distro: "Ubuntu 22.04.4 LTS",
			output: "||/ Name  Version  Architecture  Description\n" +
				"ii  lunarg-vulkan-sdk  1.3.280.0~rc1-1lunarg22.04-1  amd64  LunarG Vulkan SDK\n",
			want: "1.3.280.0~rc1-1lunarg22.04-1",
		},
		{
			name:   "dnf",
			distro: "Fedora Linux 40 (Workstation Edition)",
			output: "Installed Packages\nlunarg-vulkan-sdk.x86_64  1.3.280-1.fc40  @lunarg\n",
			want:   "1.3.280-1.fc40",
		},
		{
			name:   "pacman",
			distro: "Arch Linux",
			output: "Name            : lunarg-vulkan-sdk\nVersion         : 1.3.280-1\n",
			want:   "1.3.280-1",
		},
		{
			name:     "not installed",
			distro:   "Debian GNU/Linux 12 (bookworm)",
			exitCode: 1,
			wantErr:  true,
		},
		{
			name:     "manager missing",
			distro:   "Fedora Linux 40",
			exitCode: shell.ExitNotFound,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotScript string
			run := func(_ context.Context, script string) (*shell.Result, error) {
				gotScript = script
				return &shell.Result{ExitCode: tt.exitCode, Output: tt.output}, nil
			}
			h := NewHost(WithOSName(tt.distro), WithScriptRunner(run))

			got, err := h.InstalledPackage(t.Context(), "lunarg-vulkan-sdk")
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("InstalledPackage() error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("InstalledPackage() error = %v (script %q)", err, gotScript)
			}
			if got != tt.want {
				t.Errorf("InstalledPackage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectPackageQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		distro string
		want   string
	}{
		{"Fedora Linux 40", "dnf"},
		{"Red Hat Enterprise Linux 9.4 (Plow)", "yum"},
		{"Arch Linux", "pacman"},
		{"Ubuntu 24.04 LTS", "dpkg"},
		{"", "dpkg"},
	}
	for _, tt := range tests {
		if got := selectPackageQuery(tt.distro).manager; got != tt.want {
			t.Errorf("selectPackageQuery(%q) = %q, want %q", tt.distro, got, tt.want)
		}
	}
}

func TestParseLoaderCache(t *testing.T) {
	t.Parallel()

	output := "1234 libs found in cache `/etc/ld.so.cache'\n" +
		"\tlibvulkan.so.1 (libc6,x86-64) => /lib/x86_64-linux-gnu/libvulkan.so.1\n" +
		"\tlibvulkan.so (libc6,x86-64) => /lib/x86_64-linux-gnu/libvulkan.so\n"

	got, ok := parseLoaderCache(output, "libvulkan.so.1")
	if !ok || got != "/lib/x86_64-linux-gnu/libvulkan.so.1" {
		t.Errorf("parseLoaderCache() = %q, %v", got, ok)
	}
	if _, ok := parseLoaderCache(output, "libVkLayer_khronos_validation.so"); ok {
		t.Error("parseLoaderCache() found a library that is not cached")
	}
}

func TestReadOSRelease(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	content := "NAME=\"Ubuntu\"\nVERSION_ID=\"22.04\"\nPRETTY_NAME=\"Ubuntu 22.04.4 LTS\"\nID=ubuntu\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readOSRelease(filepath.Join(dir, "absent"), path)
	if err != nil {
		t.Fatalf("readOSRelease() error = %v", err)
	}
	if got != "Ubuntu 22.04.4 LTS" {
		t.Errorf("readOSRelease() = %q", got)
	}

	if _, err := readOSRelease(filepath.Join(dir, "absent")); err == nil {
		t.Error("readOSRelease() with no readable file returned nil error")
	}
}

func TestLabelOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		facts osFacts
		want  string
	}{
		{"linux pretty name", osFacts{GOOS: platform.Linux, PrettyName: "Fedora Linux 40", Platform: "fedora", Version: "40"}, "Fedora Linux 40"},
		{"linux fallback", osFacts{GOOS: platform.Linux, Platform: "ubuntu", Version: "22.04"}, "ubuntu 22.04"},
		{"windows 11", osFacts{GOOS: platform.Windows, Version: "10.0.22631", Build: 22631}, "Windows 11"},
		{"windows 10", osFacts{GOOS: platform.Windows, Version: "10.0.19045", Build: 19045}, "Windows 10"},
		{"windows 8.1", osFacts{GOOS: platform.Windows, Version: "6.3.9600"}, "Windows 8.1"},
		{"windows 7", osFacts{GOOS: platform.Windows, Version: "6.1.7601"}, "Windows 7"},
		{"macos", osFacts{GOOS: platform.Darwin, Version: "14.5"}, "macOS 14.5"},
		{"unknown", osFacts{GOOS: "plan9"}, "plan9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := labelOS(tt.facts); got != tt.want {
				t.Errorf("labelOS() = %q, want %q", got, tt.want)
			}
		})
	}
}
