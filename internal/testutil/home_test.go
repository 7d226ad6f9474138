// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func homeVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	tmpDir := t.TempDir()
	original, hadOriginal := os.LookupEnv(homeVar())

	t.Run("subtest", func(t *testing.T) {
		SetHomeDir(t, tmpDir)
		if got := os.Getenv(homeVar()); got != tmpDir {
			t.Errorf("%s = %q, want %q", homeVar(), got, tmpDir)
		}
		if got, err := os.UserHomeDir(); err != nil || got != tmpDir {
			t.Errorf("os.UserHomeDir() = %q, %v", got, err)
		}
	})

	got, has := os.LookupEnv(homeVar())
	if got != original || has != hadOriginal {
		t.Errorf("after subtest %s = %q (set %v), want %q (set %v)", homeVar(), got, has, original, hadOriginal)
	}
}
