// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestSeparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos     string
		wantList string
		wantPath string
	}{
		{Linux, ":", "/"},
		{Darwin, ":", "/"},
		{Windows, ";", `\`},
		{"freebsd", ":", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			if got := ListSeparator(tt.goos); got != tt.wantList {
				t.Errorf("ListSeparator(%q) = %q, want %q", tt.goos, got, tt.wantList)
			}
			if got := PathSeparator(tt.goos); got != tt.wantPath {
				t.Errorf("PathSeparator(%q) = %q, want %q", tt.goos, got, tt.wantPath)
			}
		})
	}
}

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"CON", true},
		{"nul", true},
		{"com1.html", true},
		{"Lpt9.report.md", true},
		{"vkvia", false},
		{"console", false},
		{"COM10", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWindowsReservedName(tt.name); got != tt.want {
			t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
