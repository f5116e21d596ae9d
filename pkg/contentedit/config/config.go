package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/fields/memory"
	fieldspg "github.com/tendant/content-editor/pkg/contentedit/fields/postgres"
	"github.com/tendant/content-editor/pkg/contentedit/mediaurl"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
	"github.com/tendant/content-editor/pkg/contentedit/structured"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Host:        "localhost",
		Port:        "8080",
		Environment: "development",
		DBSchema:    "content",
		Media: MediaConfig{
			Strategy:   string(mediaurl.StrategyTypeAPI),
			APIBaseURL: mediaurl.DefaultAPIBaseURL,
			S3: S3Config{
				Region:          "us-east-1",
				PresignDuration: 3600,
			},
		},
		Navigation: NavigationConfig{
			MaxDepth:      navigation.DefaultMaxDepth,
			AllowChildren: true,
		},
	}
}

// ServerConfig represents configuration for the content editor server. The
// env tags are read by WithEnv; the env-default values match defaults().
type ServerConfig struct {
	Host        string `env:"HOST" env-default:"localhost"`
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing

	// Field definition source. Empty or "memory" uses an in-memory store.
	FieldsDatabaseURL string `env:"FIELDS_DATABASE_URL"`
	DBSchema          string `env:"CONTENT_DB_SCHEMA" env-default:"content"`
	AutoMigrate       bool   `env:"FIELDS_AUTO_MIGRATE" env-default:"false"`

	Media      MediaConfig      `env-prefix:"MEDIA_"`
	Navigation NavigationConfig `env-prefix:"NAV_"`

	// UnifiedCoercion keeps primitive types for every structured text edit,
	// not only inside object arrays.
	UnifiedCoercion bool `env:"UNIFIED_COERCION" env-default:"false"`
}

// MediaConfig selects how stored media paths become URLs.
type MediaConfig struct {
	Strategy   string   `env:"URL_STRATEGY" env-default:"api"` // api, cdn, s3
	APIBaseURL string   `env:"API_BASE_URL" env-default:"/api/v1/media"`
	CDNBaseURL string   `env:"CDN_BASE_URL"`
	S3         S3Config `env-prefix:"S3_"`
}

// S3Config configures presigned media URLs.
type S3Config struct {
	Region          string `env:"REGION" env-default:"us-east-1"`
	Bucket          string `env:"BUCKET"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Endpoint        string `env:"ENDPOINT"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE" env-default:"false"`
	PresignDuration int    `env:"PRESIGN_DURATION" env-default:"3600"`
	KeyPrefix       string `env:"KEY_PREFIX"`
}

// NavigationConfig bounds navigation trees.
type NavigationConfig struct {
	MaxDepth      int  `env:"MAX_DEPTH" env-default:"2"`
	AllowChildren bool `env:"ALLOW_CHILDREN" env-default:"true"`
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// UsesPostgres reports whether field definitions come from Postgres.
func (c *ServerConfig) UsesPostgres() bool {
	return c.FieldsDatabaseURL != "" && c.FieldsDatabaseURL != "memory"
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch mediaurl.StrategyType(c.Media.Strategy) {
	case mediaurl.StrategyTypeAPI:
	case mediaurl.StrategyTypeCDN:
		if c.Media.CDNBaseURL == "" {
			return errors.New("media cdn_base_url is required for the cdn strategy")
		}
	case mediaurl.StrategyTypeS3:
		if c.Media.S3.Bucket == "" {
			return errors.New("media s3 bucket is required for the s3 strategy")
		}
	default:
		return fmt.Errorf("media url_strategy must be 'api', 'cdn' or 's3', got: %s", c.Media.Strategy)
	}

	if c.Navigation.MaxDepth < 1 {
		return fmt.Errorf("navigation max_depth must be at least 1, got: %d", c.Navigation.MaxDepth)
	}

	return nil
}

// NavigationOptions returns the tree bounds for navigation editors.
func (c *ServerConfig) NavigationOptions() navigation.Options {
	return navigation.Options{
		MaxDepth:      c.Navigation.MaxDepth,
		AllowChildren: c.Navigation.AllowChildren,
	}
}

// StructuredOptions returns the options for structured editors.
func (c *ServerConfig) StructuredOptions() []structured.Option {
	if c.UnifiedCoercion {
		return []structured.Option{structured.WithUnifiedCoercion()}
	}
	return nil
}

// BuildResolver creates the media URL resolver.
func (c *ServerConfig) BuildResolver(ctx context.Context) (contentedit.Resolver, error) {
	return mediaurl.New(ctx, mediaurl.Config{
		Type:       mediaurl.StrategyType(c.Media.Strategy),
		APIBaseURL: c.Media.APIBaseURL,
		CDNBaseURL: c.Media.CDNBaseURL,
		S3: mediaurl.S3Config{
			Region:          c.Media.S3.Region,
			Bucket:          c.Media.S3.Bucket,
			AccessKeyID:     c.Media.S3.AccessKeyID,
			SecretAccessKey: c.Media.S3.SecretAccessKey,
			Endpoint:        c.Media.S3.Endpoint,
			UsePathStyle:    c.Media.S3.UsePathStyle,
			PresignDuration: c.Media.S3.PresignDuration,
			KeyPrefix:       c.Media.S3.KeyPrefix,
		},
	})
}

// FieldStore is a field definition source that can also be written.
type FieldStore interface {
	contentedit.FieldSource
	Put(ctx context.Context, contentType string, defs []contentedit.FieldDefinition) error
	Delete(ctx context.Context, contentType string) error
	ContentTypes(ctx context.Context) ([]string, error)
}

// BuildFieldSource creates the field definition store. The returned close
// function releases the database pool, if any.
func (c *ServerConfig) BuildFieldSource(ctx context.Context) (FieldStore, func(), error) {
	if !c.UsesPostgres() {
		return memory.New(), func() {}, nil
	}

	cfg, err := pgxpool.ParseConfig(c.FieldsDatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse FIELDS_DATABASE_URL: %w", err)
	}
	// Optionally set search_path for the connection
	schema := c.DBSchema
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		if schema == "" {
			return nil
		}
		_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
		return err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	store := fieldspg.NewWithPool(pool)
	if c.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return store, pool.Close, nil
}
