package mediaurl

import (
	"context"
	"fmt"

	"github.com/tendant/content-editor/pkg/contentedit"
)

// StrategyType represents the type of media URL strategy
type StrategyType string

const (
	// Application-routed URLs
	StrategyTypeAPI StrategyType = "api"

	// Direct CDN URLs
	StrategyTypeCDN StrategyType = "cdn"

	// Presigned S3 URLs
	StrategyTypeS3 StrategyType = "s3"
)

// Config holds configuration for strategy creation
type Config struct {
	Type       StrategyType
	APIBaseURL string   // For API strategy
	CDNBaseURL string   // For CDN strategy
	S3         S3Config // For S3 strategy
}

// New creates a resolver based on the configuration
func New(ctx context.Context, config Config) (contentedit.Resolver, error) {
	switch config.Type {
	case StrategyTypeAPI, "":
		return NewAPIStrategy(config.APIBaseURL), nil

	case StrategyTypeCDN:
		if config.CDNBaseURL == "" {
			return nil, fmt.Errorf("CDN base URL is required for CDN strategy")
		}
		return NewCDNStrategy(config.CDNBaseURL), nil

	case StrategyTypeS3:
		s, err := NewS3Strategy(ctx, config.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 strategy: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown media URL strategy type: %s", config.Type)
	}
}

// NewRecommended picks a strategy for an environment: the CDN in production
// when one is configured, application-routed URLs otherwise.
func NewRecommended(environment, cdnURL, apiURL string) contentedit.Resolver {
	if environment == "production" && cdnURL != "" {
		return NewCDNStrategy(cdnURL)
	}
	return NewAPIStrategy(apiURL)
}
