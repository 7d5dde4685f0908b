// Package storage puts reservation photos into an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prebook/pkg/utils"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage is the photo bucket. Keys are slash separated paths inside the bucket.
type ObjectStorage interface {
	// Upload writes body under key and returns the stored path.
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	// Promote moves an object to a new key.
	Promote(ctx context.Context, from, to string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New picks the driver named in the config.
func New(ctx context.Context, cfg utils.StorageConfig) (ObjectStorage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg.LocalRoot, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
