package mediaurl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config options for the S3 presigning strategy
type S3Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	PresignDuration int    // Duration in seconds for presigned URLs (default: 3600)
	KeyPrefix       string // Optional prefix prepended to every storage path
}

// S3Strategy presigns GET requests for objects in one bucket. Presigning is
// computed locally from the configured credentials.
type S3Strategy struct {
	presignClient   *s3.PresignClient
	bucket          string
	keyPrefix       string
	presignDuration time.Duration
}

// NewS3Strategy creates an S3 presigning strategy.
func NewS3Strategy(ctx context.Context, config S3Config) (*S3Strategy, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.PresignDuration == 0 {
		config.PresignDuration = 3600 // 1 hour default
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region)}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	// Custom endpoint for S3-compatible services (MinIO, etc.)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}
	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &S3Strategy{
		presignClient:   s3.NewPresignClient(client),
		bucket:          config.Bucket,
		keyPrefix:       strings.Trim(config.KeyPrefix, "/"),
		presignDuration: time.Duration(config.PresignDuration) * time.Second,
	}, nil
}

// ObjectKey returns the bucket key for a storage path.
func (s *S3Strategy) ObjectKey(p string) string {
	key := CleanPath(p)
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + "/" + key
}

// ResolveContext presigns an inline GET for a storage path.
func (s *S3Strategy) ResolveContext(ctx context.Context, pathOrURL string) (string, error) {
	if CleanPath(pathOrURL) == "" {
		return "", nil
	}
	if IsAbsolute(pathOrURL) {
		return pathOrURL, nil
	}
	input := &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(s.ObjectKey(pathOrURL)),
		ResponseContentDisposition: aws.String("inline"),
	}
	result, err := s.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignDuration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned preview URL: %w", err)
	}
	return result.URL, nil
}

// Resolve presigns pathOrURL. A presign failure yields "", which galleries
// show as a placeholder.
func (s *S3Strategy) Resolve(pathOrURL string) string {
	u, err := s.ResolveContext(context.Background(), pathOrURL)
	if err != nil {
		slog.Warn("Failed to presign media URL", "path", pathOrURL, "err", err)
		return ""
	}
	return u
}
