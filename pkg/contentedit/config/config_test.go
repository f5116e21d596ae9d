package config

import (
	"context"
	"testing"

	"github.com/tendant/content-editor/pkg/contentedit/fields/memory"
	"github.com/tendant/content-editor/pkg/contentedit/mediaurl"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Addr() != "localhost:8080" {
		t.Errorf("expected addr localhost:8080, got: %s", cfg.Addr())
	}
	if got := cfg.NavigationOptions(); got != navigation.DefaultOptions() {
		t.Errorf("expected default navigation options, got: %+v", got)
	}
	if cfg.UsesPostgres() {
		t.Error("expected memory field source by default")
	}
	if len(cfg.StructuredOptions()) != 0 {
		t.Error("expected no structured options by default")
	}
}

func TestWithPort(t *testing.T) {
	cfg, err := Load(WithPort("9090"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got: %s", cfg.Port)
	}

	if _, err := Load(WithPort("")); err == nil {
		t.Error("expected error for empty port, got nil")
	}
}

func TestWithNavigation(t *testing.T) {
	cfg, err := Load(WithNavigation(3, false))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := navigation.Options{MaxDepth: 3, AllowChildren: false}
	if got := cfg.NavigationOptions(); got != want {
		t.Errorf("expected %+v, got: %+v", want, got)
	}

	if _, err := Load(WithNavigation(0, true)); err == nil {
		t.Error("expected error for zero depth, got nil")
	}
}

func TestMediaOptions(t *testing.T) {
	tests := []struct {
		name      string
		opt       Option
		wantType  string
		wantError bool
	}{
		{"api", WithMediaAPI("https://api.example.com/media"), "api", false},
		{"cdn", WithMediaCDN("https://cdn.example.com"), "cdn", false},
		{"cdn missing url", WithMediaCDN(""), "", true},
		{"s3", WithMediaS3(S3Config{Bucket: "media"}), "s3", false},
		{"s3 missing bucket", WithMediaS3(S3Config{}), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.opt)
			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if cfg.Media.Strategy != tt.wantType {
				t.Errorf("expected strategy %s, got: %s", tt.wantType, cfg.Media.Strategy)
			}
		})
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("MEDIA_URL_STRATEGY", "cdn")
	t.Setenv("MEDIA_CDN_BASE_URL", "https://cdn.example.com")
	t.Setenv("NAV_MAX_DEPTH", "3")
	t.Setenv("NAV_ALLOW_CHILDREN", "false")
	t.Setenv("UNIFIED_COERCION", "true")

	cfg, err := Load(WithEnv())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9191" {
		t.Errorf("expected port 9191, got: %s", cfg.Port)
	}
	if cfg.Host != "localhost" {
		t.Errorf("expected default host, got: %s", cfg.Host)
	}
	if cfg.Media.Strategy != "cdn" || cfg.Media.CDNBaseURL != "https://cdn.example.com" {
		t.Errorf("unexpected media config: %+v", cfg.Media)
	}
	if cfg.Navigation.MaxDepth != 3 || cfg.Navigation.AllowChildren {
		t.Errorf("unexpected navigation config: %+v", cfg.Navigation)
	}
	if len(cfg.StructuredOptions()) != 1 {
		t.Error("expected unified coercion option")
	}

	// Options after WithEnv override the environment.
	cfg, err = Load(WithEnv(), WithPort("7070"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("expected port 7070, got: %s", cfg.Port)
	}
}

func TestWithEnvInvalidStrategy(t *testing.T) {
	t.Setenv("MEDIA_URL_STRATEGY", "ftp")
	if _, err := Load(WithEnv()); err == nil {
		t.Error("expected error for unknown strategy, got nil")
	}
}

func TestBuilders(t *testing.T) {
	ctx := context.Background()

	cfg, err := Load(WithMediaCDN("https://cdn.example.com/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := cfg.BuildResolver(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.(*mediaurl.CDNStrategy); !ok {
		t.Errorf("expected CDN strategy, got %T", r)
	}
	if got := r.Resolve("a.png"); got != "https://cdn.example.com/a.png" {
		t.Errorf("unexpected resolved url: %s", got)
	}

	src, closeFn, err := cfg.BuildFieldSource(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()
	if _, ok := src.(*memory.Store); !ok {
		t.Errorf("expected memory store, got %T", src)
	}
}
