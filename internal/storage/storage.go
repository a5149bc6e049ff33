package storage

import (
	"context"
	"fmt"
	"io"
)

// ObjectStore is the surface the media pipeline needs: write a rendition,
// remove it again, and answer with the URL the directory will serve.
type ObjectStore interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string) (string, error)
}

// Config selects and parameterizes a backend.
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // local: directory renditions are written under
	BaseURL   string // public URL prefix; local falls back to /files
	Bucket    string
	Region    string // s3 only; R2 ignores it and uses "auto"
	AccessKey string
	SecretKey string
	Endpoint  string // R2 account endpoint, or a custom S3 endpoint
}

// NewStore builds the backend named by cfg.Type.
func NewStore(cfg Config) (ObjectStore, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStore(cfg)
	case "s3", "cloudflare_r2":
		// R2 speaks the S3 API; a plain S3 bucket works through the same
		// client with its own endpoint and region.
		return NewR2Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
