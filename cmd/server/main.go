package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/content-editor/pkg/contentedit/api"
	"github.com/tendant/content-editor/pkg/contentedit/config"
	"github.com/tendant/content-editor/pkg/contentedit/presets"
)

const maxRequestBytes = 4 << 20

func main() {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Environment))

	ctx := context.Background()
	resolver, err := cfg.BuildResolver(ctx)
	if err != nil {
		slog.Error("Failed to build media resolver", "err", err)
		os.Exit(1)
	}

	fields, closeFields, err := cfg.BuildFieldSource(ctx)
	if err != nil {
		slog.Error("Failed to build field definition source", "err", err)
		os.Exit(1)
	}
	defer closeFields()

	if cfg.Environment == "development" && !cfg.UsesPostgres() {
		if err := presets.Seed(ctx, fields); err != nil {
			slog.Error("Failed to seed sample content types", "err", err)
			os.Exit(1)
		}
		slog.Debug("Seeded sample content types")
	}

	editorHandler := api.NewEditorHandler(resolver, fields,
		api.WithNavigationOptions(cfg.NavigationOptions()),
		api.WithStructuredOptions(cfg.StructuredOptions()...),
	)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Route("/api/v1", func(r chi.Router) {
		mountEditor(r, editorHandler)
	})

	slog.Info("Content editor server starting",
		"environment", cfg.Environment,
		"media_url_strategy", cfg.Media.Strategy,
		"fields_postgres", cfg.UsesPostgres(),
		"nav_max_depth", cfg.Navigation.MaxDepth,
	)
	server.Run()
}

// mountEditor installs the API middleware and editor routes on r.
func mountEditor(r chi.Router, h *api.EditorHandler) {
	r.Use(api.RequestIDMiddleware)
	r.Use(api.LoggingMiddleware(slog.Default()))
	r.Use(api.RecoveryMiddleware)
	r.Use(middleware.RequestSize(maxRequestBytes))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Mount("/", h.Routes())
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
