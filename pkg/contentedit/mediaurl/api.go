package mediaurl

import (
	"strings"
)

// DefaultAPIBaseURL is used when no API base URL is configured.
const DefaultAPIBaseURL = "/api/v1/media"

// APIStrategy routes media through the application server, which can apply
// access control before serving the file.
type APIStrategy struct {
	APIBaseURL string // e.g., "https://api.example.com/media" or "/api/v1/media"
}

// NewAPIStrategy creates an application-routed strategy.
func NewAPIStrategy(apiBaseURL string) *APIStrategy {
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}
	return &APIStrategy{APIBaseURL: strings.TrimSuffix(apiBaseURL, "/")}
}

// Resolve returns the API URL for a storage path.
func (s *APIStrategy) Resolve(pathOrURL string) string {
	if CleanPath(pathOrURL) == "" {
		return ""
	}
	if IsAbsolute(pathOrURL) {
		return pathOrURL
	}
	return joinPath(s.APIBaseURL, pathOrURL)
}
