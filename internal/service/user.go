package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"platformapi/internal/model"
	"platformapi/internal/repository"
	"platformapi/internal/storage"
)

var allowedPhotoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// UserListFilter narrows ListUsers. Limit 0 selects the default page size.
type UserListFilter struct {
	Search        string
	Role          string
	EmailVerified *bool
	Limit         int
	Offset        int
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items  []model.User `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// PhotoUploadTicket is returned from BeginPhotoUpload.
type PhotoUploadTicket struct {
	StorageKey string               `json:"storage_key"`
	Upload     storage.UploadTarget `json:"upload"`
}

// UserServiceConfig holds the public API base URL and photo upload limits.
type UserServiceConfig struct {
	APIURL          string
	UploadURLExpiry time.Duration
	PhotoMaxSize    int64
}

// UserService exposes the caller's profile, the admin user listing and
// profile photo uploads.
type UserService interface {
	GetMe(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context, f UserListFilter) (*UserListResult, error)
	BeginPhotoUpload(ctx context.Context, userID, contentType string) (*PhotoUploadTicket, error)
	// ConfirmPhotoUpload verifies the uploaded photo and points the user's image at it.
	ConfirmPhotoUpload(ctx context.Context, userID, storageKey string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	store storage.Storage
	cfg   UserServiceConfig
}

// NewUserService constructs a UserService.
func NewUserService(repo repository.UserRepository, store storage.Storage, cfg UserServiceConfig) UserService {
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &userService{repo: repo, store: store, cfg: cfg}
}

// PhotoFolder is where a user's profile photos live. It sits under public/ so
// any authenticated user may read them.
func PhotoFolder(userID string) string {
	return "public/users/" + userID + "/profile-photo"
}

func (s *userService) GetMe(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, f UserListFilter) (*UserListResult, error) {
	limit := f.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 1 || limit > 100 {
		return nil, validationError("limit must be between 1 and 100")
	}
	if f.Offset < 0 {
		return nil, validationError("offset must be zero or greater")
	}

	rf := repository.UserFilter{
		Search:        strings.TrimSpace(f.Search),
		EmailVerified: f.EmailVerified,
		Page:          repository.PageQuery{Limit: limit, Offset: f.Offset},
	}
	if f.Role != "" {
		role := model.Role(f.Role)
		if !role.Valid() {
			return nil, validationError("role %q is not valid", f.Role)
		}
		rf.Role = &role
	}

	res, err := s.repo.List(ctx, rf)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: res.Items, Total: res.Total, Limit: limit, Offset: f.Offset}, nil
}

func (s *userService) BeginPhotoUpload(ctx context.Context, userID, contentType string) (*PhotoUploadTicket, error) {
	if userID == "" {
		return nil, validationError("user is required")
	}
	if _, ok := allowedPhotoContentTypes[contentType]; !ok {
		return nil, validationError("content_type %q is not allowed; only JPEG, PNG and WebP images are accepted", contentType)
	}

	key := newObjectKey(PhotoFolder(userID), contentType)
	target, err := s.store.PresignUpload(ctx, key, storage.UploadPolicy{
		ContentType:  contentType,
		MaxSizeBytes: s.cfg.PhotoMaxSize,
		Expiry:       s.cfg.UploadURLExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}
	return &PhotoUploadTicket{StorageKey: key, Upload: target}, nil
}

func (s *userService) ConfirmPhotoUpload(ctx context.Context, userID, storageKey string) (*model.User, error) {
	if userID == "" || !strings.HasPrefix(storageKey, PhotoFolder(userID)+"/") || !validFolder(storageKey) {
		return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
	}

	if _, err := verifyObject(ctx, s.store, storageKey, s.cfg.PhotoMaxSize,
		"photo not found in storage; upload it before confirming"); err != nil {
		return nil, err
	}

	imageURL := s.cfg.APIURL + "/api/files/" + storageKey
	if err := s.repo.UpdateImage(ctx, userID, imageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("update user image: %w", err)
	}
	return s.GetMe(ctx, userID)
}
