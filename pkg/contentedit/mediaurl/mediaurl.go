// Package mediaurl resolves stored media locations to absolute URLs.
//
// Media items store whatever the picker delivered: an absolute URL, or a
// storage path relative to some backend. A strategy decides how a storage
// path becomes fetchable: routed through the application API, served by a
// CDN, or presigned against an S3 bucket. Every strategy returns "" for empty
// input and passes absolute URLs through unchanged.
package mediaurl

import (
	"net/url"
	"strings"
)

// IsAbsolute reports whether s already is a URL a browser can fetch as is.
func IsAbsolute(s string) bool {
	if strings.HasPrefix(s, "//") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "data", "blob":
		return true
	}
	return false
}

// CleanPath trims whitespace and leading slashes from a storage path.
func CleanPath(p string) string {
	return strings.TrimLeft(strings.TrimSpace(p), "/")
}

// joinPath appends an escaped storage path to base.
func joinPath(base, p string) string {
	segments := strings.Split(CleanPath(p), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/")
}
