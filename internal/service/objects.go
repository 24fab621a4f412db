package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"platformapi/internal/storage"
)

// newObjectKey returns "<folder>/<uuid>.<subtype>", e.g. "documents/u1/3f...c2.pdf".
func newObjectKey(folder, contentType string) string {
	ext := contentType
	if i := strings.IndexByte(contentType, '/'); i >= 0 {
		ext = contentType[i+1:]
	}
	return folder + "/" + uuid.New().String() + "." + ext
}

// validFolder accepts relative slash-separated paths without empty, "." or ".." segments.
func validFolder(folder string) bool {
	if folder == "" {
		return false
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// verifyObject checks that key exists in the store and is at most maxSize bytes.
func verifyObject(ctx context.Context, store storage.Storage, key string, maxSize int64, notFoundMsg string) (storage.ObjectInfo, error) {
	info, err := store.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return storage.ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, notFoundMsg)
		}
		return storage.ObjectInfo{}, fmt.Errorf("verify object: %w", err)
	}
	if info.Size > maxSize {
		return storage.ObjectInfo{}, fmt.Errorf("%w: file is %d bytes, limit is %d bytes", ErrObjectTooLarge, info.Size, maxSize)
	}
	return info, nil
}
