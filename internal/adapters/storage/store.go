package storage

import (
	"fmt"

	"boothly/internal/domain"
)

// New creates an ObjectStore for provider: "s3" or "memory".
func New(provider string, cfg S3Config) (domain.ObjectStore, error) {
	switch provider {
	case "s3":
		if cfg.PublicBaseURL == "" {
			return nil, fmt.Errorf("s3 storage requires a public base URL")
		}
		return NewS3Store(cfg), nil
	case "memory", "":
		return NewMemoryStore(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", provider)
	}
}
