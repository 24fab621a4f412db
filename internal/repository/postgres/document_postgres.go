package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, user_id, document_type, file_name, file_size, content_type, storage_key, upload_status, metadata, created_at, updated_at`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, user_id, document_type, file_name, file_size, content_type, storage_key, upload_status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.UserID,
		doc.DocumentType,
		doc.FileName,
		doc.FileSize,
		doc.ContentType,
		doc.StorageKey,
		string(doc.UploadStatus),
		nullableJSON(doc.Metadata),
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindForOwner fetches a single document by ID, scoped to its owner.
func (r *DocumentPostgres) FindForOwner(ctx context.Context, id, userID string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND user_id = $2
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id, userID))
}

// FindByStorageKey fetches the document that references the given object key.
func (r *DocumentPostgres) FindByStorageKey(ctx context.Context, key string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE storage_key = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, key))
}

// ListForOwner returns the owner's documents ordered by creation time, newest first.
func (r *DocumentPostgres) ListForOwner(ctx context.Context, userID string, f repository.DocumentFilter) ([]model.Document, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1`)
	args := []any{userID}

	if f.DocumentType != nil {
		args = append(args, *f.DocumentType)
		sb.WriteString(` AND document_type = $` + strconv.Itoa(len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		sb.WriteString(` AND upload_status = $` + strconv.Itoa(len(args)))
	} else {
		sb.WriteString(` AND upload_status <> 'uploading'`)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkUploaded flips uploading -> uploaded only if the row is still uploading.
func (r *DocumentPostgres) MarkUploaded(ctx context.Context, id, userID string) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET upload_status = 'uploaded', updated_at = now()
		WHERE id = $1 AND user_id = $2 AND upload_status = 'uploading'
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, id, userID))
}

// DeleteForOwner removes the document row. The stored object is not touched.
func (r *DocumentPostgres) DeleteForOwner(ctx context.Context, id, userID string) (bool, error) {
	const q = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanDocument(s scanner) (*model.Document, error) {
	var (
		d        model.Document
		status   string
		metadata []byte
	)
	if err := s.Scan(
		&d.ID,
		&d.UserID,
		&d.DocumentType,
		&d.FileName,
		&d.FileSize,
		&d.ContentType,
		&d.StorageKey,
		&status,
		&metadata,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.UploadStatus = model.UploadStatus(status)
	if len(metadata) > 0 {
		d.Metadata = metadata
	}
	return &d, nil
}
