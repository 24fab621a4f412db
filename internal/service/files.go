package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"platformapi/internal/logging"
	"platformapi/internal/repository"
	"platformapi/internal/storage"
)

// PublicPrefix marks objects any authenticated user may read.
const PublicPrefix = "public/"

// FileAccessService authorises object keys and turns them into short-lived read URLs.
type FileAccessService interface {
	// ResolveDownloadURL returns a presigned GET URL for key. Every refusal,
	// including storage failures, is reported as ErrNotFound.
	ResolveDownloadURL(ctx context.Context, userID, key string) (string, error)
}

type fileAccessService struct {
	docs   repository.DocumentRepository
	store  storage.Storage
	expiry time.Duration
}

// NewFileAccessService constructs a FileAccessService.
func NewFileAccessService(docs repository.DocumentRepository, store storage.Storage, expiry time.Duration) FileAccessService {
	return &fileAccessService{docs: docs, store: store, expiry: expiry}
}

func (s *fileAccessService) ResolveDownloadURL(ctx context.Context, userID, key string) (string, error) {
	notFound := fmt.Errorf("%w: file", ErrNotFound)
	if userID == "" || !validFolder(key) {
		return "", notFound
	}

	if !strings.HasPrefix(key, PublicPrefix) {
		doc, err := s.docs.FindByStorageKey(ctx, key)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				logging.FromContext(ctx).Error("file lookup failed", "key", key, "error", err.Error())
			}
			return "", notFound
		}
		if doc.UserID != userID {
			return "", notFound
		}
	}

	u, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		logging.FromContext(ctx).Error("presign file url failed", "key", key, "error", err.Error())
		return "", notFound
	}
	return u, nil
}
