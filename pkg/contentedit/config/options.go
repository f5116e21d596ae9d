package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/content-editor/pkg/contentedit/mediaurl"
)

// WithEnv reads the whole configuration from environment variables. Unset
// variables take their env-default values, so WithEnv should come before
// any option meant to override the environment.
//
// Variables:
//
//	HOST, PORT, ENVIRONMENT
//	FIELDS_DATABASE_URL, CONTENT_DB_SCHEMA, FIELDS_AUTO_MIGRATE
//	MEDIA_URL_STRATEGY (api, cdn, s3), MEDIA_API_BASE_URL, MEDIA_CDN_BASE_URL
//	MEDIA_S3_REGION, MEDIA_S3_BUCKET, MEDIA_S3_ACCESS_KEY_ID,
//	MEDIA_S3_SECRET_ACCESS_KEY, MEDIA_S3_ENDPOINT, MEDIA_S3_USE_PATH_STYLE,
//	MEDIA_S3_PRESIGN_DURATION, MEDIA_S3_KEY_PREFIX
//	NAV_MAX_DEPTH, NAV_ALLOW_CHILDREN
//	UNIFIED_COERCION
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env ServerConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		*c = env
		return nil
	}
}

// WithHost sets the listen host
func WithHost(host string) Option {
	return func(c *ServerConfig) error {
		c.Host = host
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithFieldsDatabase reads field definitions from Postgres. An empty url or
// "memory" selects the in-memory store.
func WithFieldsDatabase(url, schema string) Option {
	return func(c *ServerConfig) error {
		c.FieldsDatabaseURL = url
		c.DBSchema = schema
		return nil
	}
}

// WithAutoMigrate creates the field tables on startup.
func WithAutoMigrate(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.AutoMigrate = enabled
		return nil
	}
}

// WithMediaAPI routes media through the application API at baseURL.
func WithMediaAPI(baseURL string) Option {
	return func(c *ServerConfig) error {
		c.Media.Strategy = string(mediaurl.StrategyTypeAPI)
		if baseURL != "" {
			c.Media.APIBaseURL = baseURL
		}
		return nil
	}
}

// WithMediaCDN serves media from a CDN.
func WithMediaCDN(baseURL string) Option {
	return func(c *ServerConfig) error {
		if baseURL == "" {
			return fmt.Errorf("CDN base URL cannot be empty")
		}
		c.Media.Strategy = string(mediaurl.StrategyTypeCDN)
		c.Media.CDNBaseURL = baseURL
		return nil
	}
}

// WithMediaS3 presigns media URLs against an S3 bucket.
func WithMediaS3(s3 S3Config) Option {
	return func(c *ServerConfig) error {
		if s3.Bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if s3.Region == "" {
			s3.Region = "us-east-1" // Default region
		}
		if s3.PresignDuration < 0 {
			return fmt.Errorf("presign duration must be positive, got: %d", s3.PresignDuration)
		}
		if s3.PresignDuration == 0 {
			s3.PresignDuration = 3600
		}
		c.Media.Strategy = string(mediaurl.StrategyTypeS3)
		c.Media.S3 = s3
		return nil
	}
}

// WithNavigation sets the navigation tree bounds.
func WithNavigation(maxDepth int, allowChildren bool) Option {
	return func(c *ServerConfig) error {
		if maxDepth < 1 {
			return fmt.Errorf("max depth must be at least 1, got: %d", maxDepth)
		}
		c.Navigation.MaxDepth = maxDepth
		c.Navigation.AllowChildren = allowChildren
		return nil
	}
}

// WithUnifiedCoercion enables type-preserving edits for every container.
func WithUnifiedCoercion(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.UnifiedCoercion = enabled
		return nil
	}
}
