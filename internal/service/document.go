package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"platformapi/internal/logging"
	"platformapi/internal/model"
	"platformapi/internal/repository"
	"platformapi/internal/storage"
)

// DocumentMaxSizeSetting is the platform setting that overrides the configured document size cap.
const DocumentMaxSizeSetting = "document_max_size_bytes"

var allowedDocumentContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
}

// UploadDescriptor describes a file the client is about to upload.
// MaxSizeBytes of 0 selects the platform cap; larger values than the cap are rejected.
type UploadDescriptor struct {
	DocumentType string          `json:"document_type"`
	ContentType  string          `json:"content_type"`
	FileName     string          `json:"file_name"`
	FileSize     int64           `json:"file_size"`
	Folder       string          `json:"-"`
	MaxSizeBytes int64           `json:"max_size_bytes"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

// UploadTicket is returned from BeginUpload.
type UploadTicket struct {
	DocumentID string               `json:"document_id"`
	StorageKey string               `json:"storage_key"`
	Upload     storage.UploadTarget `json:"upload"`
}

// DocumentFilter narrows ListUploads. Empty fields do not filter.
type DocumentFilter struct {
	DocumentType string
	Status       string
}

// DocumentServiceConfig holds URL lifetimes and the fallback size cap.
type DocumentServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxSizeBytes      int64
}

// DocumentService tracks direct-to-storage document uploads.
type DocumentService interface {
	// BeginUpload issues a presigned write target and records the document as uploading.
	// No row is created when presigning fails.
	BeginUpload(ctx context.Context, ownerID string, d UploadDescriptor) (*UploadTicket, error)

	// ConfirmUpload verifies the object in storage and marks the document uploaded.
	ConfirmUpload(ctx context.Context, ownerID, id string) (*model.Document, error)

	// GetUpload returns an owned document with a fresh download URL when uploaded.
	GetUpload(ctx context.Context, ownerID, id string) (*model.DocumentWithURL, error)

	// ListUploads returns the owner's documents, newest first. Pending uploads are
	// hidden unless filter.Status asks for them.
	ListUploads(ctx context.Context, ownerID string, filter DocumentFilter) ([]model.DocumentWithURL, error)

	// DeleteUpload removes the document record. The stored object is retained.
	DeleteUpload(ctx context.Context, ownerID, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	settings SettingsService
	audit    AuditLogger
	cfg      DocumentServiceConfig
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, settings SettingsService, audit AuditLogger, cfg DocumentServiceConfig) DocumentService {
	return &documentService{
		store:    store,
		repo:     repo,
		settings: settings,
		audit:    audit,
		cfg:      cfg,
		now:      time.Now,
	}
}

// sizeCap is the platform setting when it is a positive integer that fits in int64,
// else the configured cap.
func (s *documentService) sizeCap(ctx context.Context) int64 {
	v, err := s.settings.ReadNumber(ctx, DocumentMaxSizeSetting, float64(s.cfg.MaxSizeBytes))
	if err != nil {
		logging.FromContext(ctx).Warn("document size cap setting unusable, using default",
			"key", DocumentMaxSizeSetting,
			"error", err.Error(),
		)
		return s.cfg.MaxSizeBytes
	}
	if v < 1 || v >= math.MaxInt64 || v != math.Trunc(v) {
		logging.FromContext(ctx).Warn("document size cap setting out of range, using default",
			"key", DocumentMaxSizeSetting,
			"value", v,
		)
		return s.cfg.MaxSizeBytes
	}
	return int64(v)
}

func (s *documentService) validateDescriptor(ctx context.Context, ownerID string, d UploadDescriptor) (int64, error) {
	if ownerID == "" {
		return 0, validationError("owner is required")
	}
	if strings.TrimSpace(d.DocumentType) == "" {
		return 0, validationError("document_type is required")
	}
	if _, ok := allowedDocumentContentTypes[d.ContentType]; !ok {
		return 0, validationError("content_type %q is not allowed; only PDF, JPEG, PNG and WebP files are accepted", d.ContentType)
	}
	if strings.TrimSpace(d.FileName) == "" {
		return 0, validationError("file_name is required")
	}
	if d.FileSize <= 0 {
		return 0, validationError("file_size must be positive")
	}
	if !validFolder(d.Folder) {
		return 0, validationError("folder %q is not a valid storage path", d.Folder)
	}
	if len(d.Metadata) > 0 {
		trimmed := bytes.TrimSpace(d.Metadata)
		if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
			return 0, validationError("metadata must be a JSON object")
		}
	}

	limit := s.sizeCap(ctx)
	maxSize := d.MaxSizeBytes
	if maxSize == 0 {
		maxSize = limit
	}
	if maxSize < 0 || maxSize > limit {
		return 0, validationError("max_size_bytes must be between 1 and %d", limit)
	}
	if d.FileSize > maxSize {
		return 0, fmt.Errorf("%w: file is %d bytes, limit is %d bytes", ErrObjectTooLarge, d.FileSize, maxSize)
	}
	return maxSize, nil
}

func (s *documentService) BeginUpload(ctx context.Context, ownerID string, d UploadDescriptor) (ticket *UploadTicket, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.BeginUpload")
	defer func() { finishSpan(span, err) }()

	maxSize, err := s.validateDescriptor(ctx, ownerID, d)
	if err != nil {
		return nil, err
	}

	key := newObjectKey(d.Folder, d.ContentType)
	target, err := s.store.PresignUpload(ctx, key, storage.UploadPolicy{
		ContentType:  d.ContentType,
		MaxSizeBytes: maxSize,
		Size:         d.FileSize,
		Expiry:       s.cfg.UploadURLExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	now := s.now().UTC()
	var metadata json.RawMessage
	if len(d.Metadata) > 0 {
		metadata = d.Metadata
	}
	doc, err := s.repo.Create(ctx, &model.Document{
		ID:           uuid.New().String(),
		UserID:       ownerID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		FileSize:     d.FileSize,
		ContentType:  d.ContentType,
		StorageKey:   key,
		UploadStatus: model.UploadStatusUploading,
		Metadata:     metadata,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:    ownerID,
		EventType: model.AuditDocumentUploadInitiated,
		EventData: map[string]any{
			"documentId":   doc.ID,
			"documentType": doc.DocumentType,
			"fileId":       key,
		},
	})

	return &UploadTicket{DocumentID: doc.ID, StorageKey: key, Upload: target}, nil
}

func (s *documentService) ConfirmUpload(ctx context.Context, ownerID, id string) (doc *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.ConfirmUpload")
	defer func() { finishSpan(span, err) }()

	current, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if current.UploadStatus != model.UploadStatusUploading {
		return nil, notUploadingError(current.UploadStatus)
	}

	if _, err := verifyObject(ctx, s.store, current.StorageKey, s.sizeCap(ctx),
		"document not found in storage; the upload may have failed"); err != nil {
		return nil, err
	}

	updated, err := s.repo.MarkUploaded(ctx, id, ownerID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mark document uploaded: %w", err)
		}
		// Lost a race with a concurrent confirm or delete.
		latest, findErr := s.findOwned(ctx, ownerID, id)
		if findErr != nil {
			return nil, findErr
		}
		return nil, notUploadingError(latest.UploadStatus)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:    ownerID,
		EventType: model.AuditDocumentUploadCompleted,
		EventData: map[string]any{
			"documentId":   updated.ID,
			"documentType": updated.DocumentType,
			"fileId":       updated.StorageKey,
		},
	})
	return updated, nil
}

func notUploadingError(status model.UploadStatus) error {
	return fmt.Errorf("%w: upload status is %q; only %q documents can be confirmed",
		ErrPrecondition, status, model.UploadStatusUploading)
}

func (s *documentService) GetUpload(ctx context.Context, ownerID, id string) (*model.DocumentWithURL, error) {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.withURL(ctx, *doc)
}

func (s *documentService) ListUploads(ctx context.Context, ownerID string, filter DocumentFilter) (out []model.DocumentWithURL, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.ListUploads")
	defer func() { finishSpan(span, err) }()

	if ownerID == "" {
		return nil, validationError("owner is required")
	}
	var f repository.DocumentFilter
	if filter.DocumentType != "" {
		t := filter.DocumentType
		f.DocumentType = &t
	}
	if filter.Status != "" {
		st := model.UploadStatus(filter.Status)
		if !st.Valid() {
			return nil, validationError("status %q is not a valid upload status", filter.Status)
		}
		f.Status = &st
	}

	docs, err := s.repo.ListForOwner(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	out = make([]model.DocumentWithURL, 0, len(docs))
	for _, d := range docs {
		item, err := s.withURL(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *documentService) DeleteUpload(ctx context.Context, ownerID, id string) error {
	doc, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteForOwner(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: document %s", ErrNotFound, id)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:    ownerID,
		EventType: model.AuditDocumentDeleted,
		EventData: map[string]any{
			"documentId":   doc.ID,
			"documentType": doc.DocumentType,
			"fileId":       doc.StorageKey,
			"fileName":     doc.FileName,
		},
	})
	return nil
}

// findOwned collapses "missing" and "owned by someone else" into ErrNotFound.
func (s *documentService) findOwned(ctx context.Context, ownerID, id string) (*model.Document, error) {
	if ownerID == "" || id == "" {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	doc, err := s.repo.FindForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) withURL(ctx context.Context, d model.Document) (*model.DocumentWithURL, error) {
	out := &model.DocumentWithURL{Document: d}
	if d.UploadStatus != model.UploadStatusUploaded || d.StorageKey == "" {
		return out, nil
	}
	u, err := s.store.PresignGet(ctx, d.StorageKey, s.cfg.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	out.FileURL = &u
	return out, nil
}
