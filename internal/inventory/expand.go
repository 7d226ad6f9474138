// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"strings"

	"github.com/vkvia/vkvia/pkg/platform"
)

// ExpandPath replaces a leading "~" with the home directory and, on Windows,
// %VAR% references with their values. Unknown variables are left in place.
func ExpandPath(p Provider, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home := p.HomeDir(); home != "" {
			path = home + path[1:]
		}
	}
	if p.GOOS() != platform.Windows || !strings.Contains(path, "%") {
		return path
	}

	var b strings.Builder
	rest := path
	for {
		start := strings.IndexByte(rest, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := rest[start+1 : end]
		b.WriteString(rest[:start])
		if value, ok := p.Getenv(name); ok && name != "" {
			b.WriteString(value)
		} else {
			b.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

// SplitList splits a PATH-style value using the separator of p's platform and
// drops empty elements.
func SplitList(p Provider, value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, platform.ListSeparator(p.GOOS())) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Join joins elem with the directory separator of p's platform.
func Join(p Provider, dir string, elem ...string) string {
	sep := platform.PathSeparator(p.GOOS())
	var b strings.Builder
	b.WriteString(dir)
	for _, e := range elem {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), sep) && !strings.HasSuffix(b.String(), "/") {
			b.WriteString(sep)
		}
		b.WriteString(e)
	}
	return b.String()
}
