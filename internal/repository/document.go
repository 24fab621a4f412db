package repository

import (
	"context"

	"platformapi/internal/model"
)

// DocumentFilter narrows an owner's document listing. Nil fields do not filter.
// When Status is nil, documents still uploading are excluded.
type DocumentFilter struct {
	DocumentType *string
	Status       *model.UploadStatus
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations. Every lookup is
// scoped by owner so a foreign document is indistinguishable from a missing one.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindForOwner returns the document with the given ID owned by userID.
	FindForOwner(ctx context.Context, id, userID string) (*model.Document, error)

	// FindByStorageKey returns the document referencing the given storage key.
	FindByStorageKey(ctx context.Context, key string) (*model.Document, error)

	// ListForOwner returns the owner's documents, newest first.
	ListForOwner(ctx context.Context, userID string, f DocumentFilter) ([]model.Document, error)

	// MarkUploaded moves an uploading document to uploaded in a single
	// conditional statement. It returns sql.ErrNoRows when no row was in the
	// uploading state for that owner.
	MarkUploaded(ctx context.Context, id, userID string) (*model.Document, error)

	// DeleteForOwner removes the row and reports whether one was deleted.
	DeleteForOwner(ctx context.Context, id, userID string) (bool, error)
}
