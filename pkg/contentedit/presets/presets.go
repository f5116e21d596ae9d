package presets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/api"
	"github.com/tendant/content-editor/pkg/contentedit/fields/memory"
	"github.com/tendant/content-editor/pkg/contentedit/mediaurl"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
)

// Configuration Presets
//
// This package provides ready-made editor setups for local development and
// tests. Presets use in-memory field definitions and application-routed
// media URLs, so they need no database or bucket.

// FieldWriter is a field definition store that accepts writes.
type FieldWriter interface {
	Put(ctx context.Context, contentType string, defs []contentedit.FieldDefinition) error
}

// SampleFields returns the field definitions of the sample content types.
func SampleFields() map[string][]contentedit.FieldDefinition {
	return map[string][]contentedit.FieldDefinition{
		"page": {
			{Name: "title", Type: "text", Label: "Title", Required: true},
			{Name: "menu", Type: "navigation", Label: "Menu", HelpText: "Links shown in the page header"},
			{Name: "hero_images", Type: "gallery", Label: "Hero Images"},
			{Name: "meta", Type: "json"},
		},
		"article": {
			{Name: "headline", Type: "text", Required: true},
			{Name: "tags", Type: "json", HelpText: "Free-form tags"},
			{Name: "photos", Type: "media_gallery"},
			{Name: "authors", Type: "json", HelpText: "One object per author"},
		},
	}
}

// Seed writes the sample content types into store.
func Seed(ctx context.Context, store FieldWriter) error {
	fields := SampleFields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := store.Put(ctx, name, fields[name]); err != nil {
			return fmt.Errorf("failed to seed content type %s: %w", name, err)
		}
	}
	return nil
}

// NewDevelopment creates an editor handler for local development.
//
// Features:
//   - In-memory field definitions seeded with the sample content types
//   - Application-routed media URLs (/api/v1/media)
//   - Default navigation bounds
//
// Example:
//
//	h, err := presets.NewDevelopment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", h.Routes())
func NewDevelopment(opts ...DevelopmentOption) (*api.EditorHandler, error) {
	cfg := &devConfig{
		mediaBaseURL: mediaurl.DefaultAPIBaseURL,
		navigation:   navigation.DefaultOptions(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	store := memory.New()
	if err := Seed(context.Background(), store); err != nil {
		return nil, err
	}

	return api.NewEditorHandler(
		mediaurl.NewAPIStrategy(cfg.mediaBaseURL),
		store,
		api.WithNavigationOptions(cfg.navigation),
	), nil
}

// NewTesting starts an httptest server with the editor API mounted at
// /api/v1. The server is closed when the test ends.
func NewTesting(t testing.TB, opts ...TestingOption) *httptest.Server {
	t.Helper()
	cfg := &testConfig{}

	for _, opt := range opts {
		opt(cfg)
	}

	store := memory.New()
	if cfg.fixtures {
		if err := Seed(context.Background(), store); err != nil {
			t.Fatalf("failed to seed test fields: %v", err)
		}
	}

	h := api.NewEditorHandler(mediaurl.NewAPIStrategy(""), store)

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(api.RequestIDMiddleware)
		r.Mount("/", h.Routes())
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

type devConfig struct {
	mediaBaseURL string
	navigation   navigation.Options
}

type testConfig struct {
	fixtures bool
}

// DevelopmentOption configures NewDevelopment.
type DevelopmentOption func(*devConfig)

// WithDevMediaBaseURL sets the base URL media paths resolve against.
func WithDevMediaBaseURL(baseURL string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.mediaBaseURL = baseURL
	}
}

// WithDevNavigation sets the navigation tree bounds.
func WithDevNavigation(maxDepth int, allowChildren bool) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.navigation = navigation.Options{MaxDepth: maxDepth, AllowChildren: allowChildren}
	}
}

// TestingOption configures NewTesting.
type TestingOption func(*testConfig)

// WithTestFixtures seeds the sample content types.
func WithTestFixtures() TestingOption {
	return func(cfg *testConfig) {
		cfg.fixtures = true
	}
}
