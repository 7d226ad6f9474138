// SPDX-License-Identifier: MPL-2.0

package inventorytest

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	"github.com/vkvia/vkvia/internal/inventory"
	"github.com/vkvia/vkvia/pkg/platform"
)

func TestFakeListDir(t *testing.T) {
	t.Parallel()

	f := New(platform.Linux,
		WithFile("/etc/vulkan/icd.d/b.json", "{}"),
		WithFile("/etc/vulkan/icd.d/a.json", "{}"),
		WithDir("/etc/vulkan/explicit_layer.d"),
	)

	got, err := f.ListDir("/etc/vulkan/icd.d/")
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if want := []string{"a.json", "b.json"}; !slices.Equal(got, want) {
		t.Errorf("ListDir() = %v, want %v", got, want)
	}

	got, err = f.ListDir("/etc/vulkan")
	if err != nil {
		t.Fatalf("ListDir(parent) error = %v", err)
	}
	if want := []string{"explicit_layer.d", "icd.d"}; !slices.Equal(got, want) {
		t.Errorf("ListDir(parent) = %v, want %v", got, want)
	}

	if _, err := f.ListDir("/usr/share/vulkan"); !errors.Is(err, inventory.ErrNotFound) {
		t.Errorf("ListDir(absent) error = %v, want ErrNotFound", err)
	}
}

func TestFakeWindowsPaths(t *testing.T) {
	t.Parallel()

	f := New(platform.Windows, WithFile(`C:\Windows\System32\vulkan-1.dll`, ""))
	got, err := f.ListDir(`C:\Windows\System32`)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if !slices.Equal(got, []string{"vulkan-1.dll"}) {
		t.Errorf("ListDir() = %v", got)
	}
	if !f.IsDir(`C:\Windows`) {
		t.Error(`IsDir(C:\Windows) = false`)
	}
}

func TestFakeUnreadable(t *testing.T) {
	t.Parallel()

	f := New(platform.Linux, WithUnreadable("/etc/vulkan/icd.d/secret.json"))
	if f.IsReadable("/etc/vulkan/icd.d/secret.json") {
		t.Error("IsReadable() = true for unreadable file")
	}
	if _, err := f.ReadFile("/etc/vulkan/icd.d/secret.json"); !errors.Is(err, fs.ErrPermission) {
		t.Errorf("ReadFile() error = %v, want ErrPermission", err)
	}
}

func TestFakeRegistryIsWindowsOnly(t *testing.T) {
	t.Parallel()

	f := New(platform.Linux)
	if _, err := f.RegistryEntries(inventory.ScopeMachine, `SOFTWARE\Khronos\Vulkan\Drivers`); !errors.Is(err, inventory.ErrUnsupported) {
		t.Errorf("RegistryEntries() error = %v, want ErrUnsupported", err)
	}
}
