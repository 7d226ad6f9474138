// SPDX-License-Identifier: MPL-2.0

package manifest

import "strings"

const separators = `/\`

// IsAbsoluteRef reports whether ref starts with a path-root marker: a leading
// slash or backslash, or a drive letter followed by a colon.
func IsAbsoluteRef(ref string) bool {
	if ref == "" {
		return false
	}
	if ref[0] == '/' || ref[0] == '\\' {
		return true
	}
	return len(ref) >= 2 && ref[1] == ':'
}

// ResolveLibraryPath resolves a library reference taken from a manifest into
// a path, relative to the directory holding the manifest.
//
// Absolute references are returned unchanged. Leading "../" segments walk the
// base directory up one level each, stopping quietly at the root; leading
// "./" segments are dropped. The result uses the separator found in
// manifestPath. Nothing is checked on disk.
func ResolveLibraryPath(manifestPath, libraryRef string) string {
	if IsAbsoluteRef(libraryRef) {
		return libraryRef
	}

	sepIdx := strings.LastIndexAny(manifestPath, separators)
	if sepIdx < 0 {
		return libraryRef
	}

	sep := manifestPath[sepIdx : sepIdx+1]
	rooted := strings.ContainsRune(separators, rune(manifestPath[0]))
	base := manifestPath[:sepIdx]
	ref := libraryRef

	for hasSegmentPrefix(ref, "..") {
		ref = ref[3:]
		base = parentDir(base)
	}
	for hasSegmentPrefix(ref, ".") {
		ref = ref[2:]
	}

	if base == "" {
		if rooted {
			return sep + ref
		}
		return ref
	}
	return base + sep + ref
}

// hasSegmentPrefix reports whether s starts with segment followed by a separator.
func hasSegmentPrefix(s, segment string) bool {
	if len(s) <= len(segment) || !strings.HasPrefix(s, segment) {
		return false
	}
	return strings.ContainsRune(separators, rune(s[len(segment)]))
}

// parentDir drops the last element of dir. A bare drive ("C:") has no parent
// and is kept.
func parentDir(dir string) string {
	idx := strings.LastIndexAny(dir, separators)
	if idx < 0 {
		if len(dir) == 2 && dir[1] == ':' {
			return dir
		}
		return ""
	}
	return dir[:idx]
}
