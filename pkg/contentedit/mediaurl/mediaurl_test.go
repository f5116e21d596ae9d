package mediaurl_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/mediaurl"
)

func TestIsAbsolute(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://cdn.example.com/a.png", true},
		{"HTTP://example.com/a.png", true},
		{"//cdn.example.com/a.png", true},
		{"data:image/png;base64,AAAA", true},
		{"media/a.png", false},
		{"/media/a.png", false},
		{"https:///nohost", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, mediaurl.IsAbsolute(tt.in))
		})
	}
}

func TestResolverContract(t *testing.T) {
	s3, err := mediaurl.NewS3Strategy(context.Background(), mediaurl.S3Config{
		Bucket:          "media",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	})
	require.NoError(t, err)

	resolvers := map[string]contentedit.Resolver{
		"api": mediaurl.NewAPIStrategy("https://api.example.com/media/"),
		"cdn": mediaurl.NewCDNStrategy("https://cdn.example.com"),
		"s3":  s3,
	}
	for name, r := range resolvers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "", r.Resolve(""))
			assert.Equal(t, "", r.Resolve("  "))
			assert.Equal(t, "https://elsewhere.example.com/x.jpg", r.Resolve("https://elsewhere.example.com/x.jpg"))
		})
	}
}

func TestAPIStrategy(t *testing.T) {
	s := mediaurl.NewAPIStrategy("https://api.example.com/media/")
	assert.Equal(t, "https://api.example.com/media/uploads/a%20b.png", s.Resolve("/uploads/a b.png"))

	def := mediaurl.NewAPIStrategy("")
	assert.Equal(t, "/api/v1/media/x.png", def.Resolve("x.png"))
}

func TestCDNStrategy(t *testing.T) {
	s := mediaurl.NewCDNStrategy("https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/2024/hero.jpg", s.Resolve("2024/hero.jpg"))
}

func TestS3Strategy_Presign(t *testing.T) {
	s, err := mediaurl.NewS3Strategy(context.Background(), mediaurl.S3Config{
		Region:          "us-west-2",
		Bucket:          "media",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
		PresignDuration: 600,
		KeyPrefix:       "/tenant-a/",
	})
	require.NoError(t, err)
	assert.Equal(t, "tenant-a/img/a.png", s.ObjectKey("/img/a.png"))

	raw, err := s.ResolveContext(context.Background(), "img/a.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/media/tenant-a/img/a.png"), u.Path)
	q := u.Query()
	assert.Equal(t, "600", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.Equal(t, "inline", q.Get("response-content-disposition"))
}

func TestS3Strategy_RequiresBucket(t *testing.T) {
	_, err := mediaurl.NewS3Strategy(context.Background(), mediaurl.S3Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name is required")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	r, err := mediaurl.New(ctx, mediaurl.Config{Type: mediaurl.StrategyTypeCDN, CDNBaseURL: "https://cdn.example.com"})
	require.NoError(t, err)
	assert.IsType(t, &mediaurl.CDNStrategy{}, r)

	r, err = mediaurl.New(ctx, mediaurl.Config{})
	require.NoError(t, err)
	assert.IsType(t, &mediaurl.APIStrategy{}, r)

	_, err = mediaurl.New(ctx, mediaurl.Config{Type: mediaurl.StrategyTypeCDN})
	assert.Error(t, err)

	_, err = mediaurl.New(ctx, mediaurl.Config{Type: mediaurl.StrategyTypeS3})
	assert.Error(t, err)

	_, err = mediaurl.New(ctx, mediaurl.Config{Type: "ftp"})
	assert.Error(t, err)
}

func TestNewRecommended(t *testing.T) {
	assert.IsType(t, &mediaurl.CDNStrategy{}, mediaurl.NewRecommended("production", "https://cdn.example.com", ""))
	assert.IsType(t, &mediaurl.APIStrategy{}, mediaurl.NewRecommended("production", "", ""))
	assert.IsType(t, &mediaurl.APIStrategy{}, mediaurl.NewRecommended("development", "https://cdn.example.com", ""))
}
