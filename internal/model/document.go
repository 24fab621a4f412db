package model

import (
	"encoding/json"
	"time"
)

// UploadStatus tracks a document's upload lifecycle.
type UploadStatus string

const (
	// UploadStatusUploading is set when a write target has been issued.
	UploadStatusUploading UploadStatus = "uploading"
	// UploadStatusUploaded is set once the object was verified in storage.
	UploadStatusUploaded UploadStatus = "uploaded"
	// UploadStatusFailed exists in the schema but no code path sets it.
	UploadStatusFailed UploadStatus = "failed"
)

// Valid reports whether s is a known upload status.
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadStatusUploading, UploadStatusUploaded, UploadStatusFailed:
		return true
	}
	return false
}

// Document represents a user file stored in object storage.
// This is a pure domain model with no database-specific dependencies or tags.
// The download URL is never stored; it is derived from StorageKey on demand.
type Document struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	DocumentType string          `json:"document_type"`
	FileName     string          `json:"file_name"`
	FileSize     int64           `json:"file_size"`
	ContentType  string          `json:"content_type"`
	StorageKey   string          `json:"storage_key"`
	UploadStatus UploadStatus    `json:"upload_status"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DocumentWithURL is a document plus a freshly presigned download URL.
// FileURL is nil unless the document is uploaded.
type DocumentWithURL struct {
	Document
	FileURL *string `json:"file_url"`
}
