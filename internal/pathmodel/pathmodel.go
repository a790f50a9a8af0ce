// Package pathmodel normalizes scanned paths into portable
// forward-slash strings and derives the module key used to bucket
// files into architectural modules.
package pathmodel

import "strings"

// RootModule is the module key assigned to files with no directory
// component.
const RootModule = "(root)"

// NormalizePath converts raw (possibly OS-separated, possibly
// relative-with-dot-segment) path into the canonical forward-slash,
// no-leading-slash form used throughout the engine. When stripPrefix
// is non-empty, it is normalized the same way and stripped from the
// start of raw if it matches as a literal path-segment prefix.
func NormalizePath(raw string, stripPrefix string) string {
	p := strings.ReplaceAll(raw, "\\", "/")
	p = strings.TrimPrefix(p, "./")

	if stripPrefix != "" {
		sp := strings.ReplaceAll(stripPrefix, "\\", "/")
		sp = strings.TrimPrefix(sp, "./")
		if !strings.HasSuffix(sp, "/") {
			sp += "/"
		}
		if strings.HasPrefix(p, sp) {
			p = strings.TrimPrefix(p, sp)
		}
	}

	return strings.TrimLeft(p, "/")
}

// ModuleKey derives a stable module bucket for a normalized path.
//
//  1. Split on "/", dropping empty segments.
//  2. <= 1 segment total -> RootModule.
//  3. Directory segments are all segments but the filename; none ->
//     RootModule.
//  4. If the first directory segment is an exact match in
//     moduleRoots, join the first clamp(moduleDepth, 1, len(dirs))
//     directory segments with "/". Otherwise return just the first
//     directory segment.
func ModuleKey(path string, moduleRoots []string, moduleDepth int) string {
	normalized := NormalizePath(path, "")
	segments := splitNonEmpty(normalized)

	if len(segments) <= 1 {
		return RootModule
	}

	dirs := segments[:len(segments)-1]
	if len(dirs) == 0 {
		return RootModule
	}

	if contains(moduleRoots, dirs[0]) {
		depth := clamp(moduleDepth, 1, len(dirs))
		return strings.Join(dirs[:depth], "/")
	}

	return dirs[0]
}

func splitNonEmpty(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
