package domain

import "strings"

// SplitPath converts a slash-delimited folder path into its segment
// list. Empty segments are discarded, so leading, trailing and repeated
// slashes are all tolerated: "tech//js/" and "/tech/js" both yield
// ["tech", "js"]. An empty or root-only path yields an empty list.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// NormalizePath renders the canonical form of a folder path: "/" for
// the root, otherwise "/" + segments joined by "/".
func NormalizePath(path string) string {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// JoinPath appends a segment to a parent path, treating "" and "/" as
// the root.
func JoinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
