package mediaurl

import (
	"strings"
)

// CDNStrategy serves media directly from a CDN in front of the storage
// bucket. Storage paths map one to one onto CDN paths.
type CDNStrategy struct {
	CDNBaseURL string // e.g., "https://cdn.example.com"
}

// NewCDNStrategy creates a CDN strategy.
func NewCDNStrategy(cdnBaseURL string) *CDNStrategy {
	// Ensure cdnBaseURL doesn't have trailing slash
	return &CDNStrategy{CDNBaseURL: strings.TrimSuffix(cdnBaseURL, "/")}
}

// Resolve returns the CDN URL for a storage path.
func (s *CDNStrategy) Resolve(pathOrURL string) string {
	if CleanPath(pathOrURL) == "" {
		return ""
	}
	if IsAbsolute(pathOrURL) {
		return pathOrURL
	}
	return joinPath(s.CDNBaseURL, pathOrURL)
}
