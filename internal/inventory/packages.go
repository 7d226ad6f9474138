// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"strings"

	"gopkg.in/ini.v1"
)

// osReleaseFiles are tried in order for the distribution name.
var osReleaseFiles = []string{"/etc/os-release", "/usr/lib/os-release"}

type packageQuery struct {
	manager string
	// distros are upper-case substrings of the distribution name; empty
	// matches anything.
	distros []string
	// script is a format string taking the quoted package name.
	script string
	parse  func(output, name string) (string, bool)
}

// packageQueries is ordered; the first entry whose distros match wins.
var packageQueries = []packageQuery{
	{manager: "dnf", distros: []string{"FEDORA"}, script: "dnf list installed %s", parse: parseColumns},
	{manager: "yum", distros: []string{"RED HAT", "REDHAT", "CENTOS", "ROCKY", "ALMA"}, script: "yum list installed %s", parse: parseColumns},
	{manager: "pacman", distros: []string{"ARCH", "MANJARO", "ENDEAVOUR"}, script: "pacman -Qi %s", parse: parsePacman},
	{manager: "brew", distros: []string{"MACOS", "DARWIN"}, script: "brew list --versions %s", parse: parseColumns},
	{manager: "dpkg", script: "dpkg -l %s", parse: parseDpkg},
}

func selectPackageQuery(distribution string) packageQuery {
	upper := strings.ToUpper(distribution)
	for _, q := range packageQueries {
		if len(q.distros) == 0 {
			return q
		}
		for _, d := range q.distros {
			if strings.Contains(upper, d) {
				return q
			}
		}
	}
	return packageQueries[len(packageQueries)-1]
}

// parseColumns handles "name[.arch] version ..." listings (dnf, yum, brew).
func parseColumns(output, name string) (string, bool) {
	for line := range strings.SplitSeq(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pkg, _, _ := strings.Cut(fields[0], ".")
		if pkg == name || fields[0] == name {
			return fields[1], true
		}
	}
	return "", false
}

// parsePacman reads the Version line of `pacman -Qi`.
func parsePacman(output, _ string) (string, bool) {
	for line := range strings.SplitSeq(output, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(key) == "Version" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// parseDpkg reads the installed ("ii") row of `dpkg -l`.
func parseDpkg(output, name string) (string, bool) {
	for line := range strings.SplitSeq(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "ii" {
			continue
		}
		pkg, _, _ := strings.Cut(fields[1], ":")
		if pkg == name {
			return fields[2], true
		}
	}
	return "", false
}

// readOSRelease returns PRETTY_NAME (or NAME) from the first readable file.
func readOSRelease(paths ...string) (string, error) {
	var lastErr error = ErrNotFound
	for _, p := range paths {
		cfg, err := ini.Load(p)
		if err != nil {
			lastErr = err
			continue
		}
		sect := cfg.Section("")
		for _, key := range []string{"PRETTY_NAME", "NAME"} {
			if sect.HasKey(key) {
				return sect.Key(key).String(), nil
			}
		}
	}
	return "", lastErr
}
