// Package storage contains object storage abstractions for S3-compatible backends.
// Clients never stream file bytes through this API: uploads and downloads go
// directly to the object store through presigned targets.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"platformapi/internal/config"
)

// ErrObjectNotFound is returned by Stat when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// UploadPolicy constrains a presigned upload.
// Size is the exact byte count the client declared, or 0 when unknown.
// MaxSizeBytes bounds what the store accepts where the backend can enforce it.
type UploadPolicy struct {
	ContentType  string
	MaxSizeBytes int64
	Size         int64
	Expiry       time.Duration
}

// UploadTarget describes how the client must send the object.
// For POST targets Fields are form fields sent before the file part;
// for PUT targets Headers must be sent verbatim.
type UploadTarget struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Fields    map[string]string `json:"fields,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// PresignUpload returns a time-limited target the client can upload key to.
	PresignUpload(ctx context.Context, key string, p UploadPolicy) (UploadTarget, error)
	// Stat returns object metadata or ErrObjectNotFound.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// New builds the driver selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinIO(ctx, cfg.MinIO)
	case "s3":
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func validatePolicy(p UploadPolicy) error {
	if p.ContentType == "" {
		return errors.New("upload content type is required")
	}
	if p.MaxSizeBytes <= 0 {
		return errors.New("upload max size must be positive")
	}
	if p.Size < 0 || p.Size > p.MaxSizeBytes {
		return fmt.Errorf("upload size %d outside 0..%d", p.Size, p.MaxSizeBytes)
	}
	if p.Expiry <= 0 {
		return errors.New("upload expiry must be positive")
	}
	return nil
}
