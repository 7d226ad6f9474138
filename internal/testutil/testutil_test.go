// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	MustWriteFile(t, path, "content")

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "content" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestMustChdir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("subtest", func(t *testing.T) {
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if wd, err = filepath.EvalSymlinks(wd); err != nil || wd != dir {
			t.Errorf("Getwd() = %q, %v; want %q", wd, err, dir)
		}
	})

	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("working directory = %q after the test, want %q", wd, original)
	}
}

func TestMustSetenv(t *testing.T) {
	const key = "VKVIA_TESTUTIL_VAR"

	t.Run("subtest", func(t *testing.T) {
		MustSetenv(t, key, "value")
		if got := os.Getenv(key); got != "value" {
			t.Errorf("%s = %q", key, got)
		}
	})

	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after the test", key)
	}
}
