package contentedit

// Resolver maps a stored media path or URL to an absolute URL a browser can
// fetch. Implementations return "" for empty input and must pass absolute
// URLs through unchanged.
type Resolver interface {
	Resolve(pathOrURL string) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(pathOrURL string) string

// Resolve calls f(pathOrURL).
func (f ResolverFunc) Resolve(pathOrURL string) string {
	return f(pathOrURL)
}
