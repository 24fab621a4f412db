package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"platformapi/internal/cache"
	"platformapi/internal/logging"
	"platformapi/internal/model"
	"platformapi/internal/repository"
)

const (
	settingsNamespace = "platform_setting"
	// DefaultSettingsTTL is how long a decoded setting stays cached.
	DefaultSettingsTTL = 300000 * time.Millisecond

	maxSettingKeyLen = 255
)

// SettingListResult is the service-level DTO for paginated settings.
type SettingListResult struct {
	Items  []model.Setting `json:"data"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// SettingsService reads and administers typed platform settings.
//
// Reads go through a process-local cache. A missing row or an unparseable value
// yields the caller's fallback; a row stored under a different type is an
// error (ErrTypeMismatch).
type SettingsService interface {
	ReadNumber(ctx context.Context, key string, fallback float64) (float64, error)
	ReadString(ctx context.Context, key string, fallback string) (string, error)
	ReadBool(ctx context.Context, key string, fallback bool) (bool, error)
	ReadJSON(ctx context.Context, key string, fallback json.RawMessage) (json.RawMessage, error)

	// Write upserts the setting and evicts its cached value.
	Write(ctx context.Context, key string, value model.SettingValue) (*model.Setting, error)

	// Delete removes the setting. A missing key is ErrNotFound.
	Delete(ctx context.Context, key string) error

	// List returns settings ordered by most recent update.
	List(ctx context.Context, limit, offset int) (*SettingListResult, error)
}

type settingsService struct {
	repo  repository.SettingRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewSettingsService constructs a SettingsService. A non-positive ttl selects DefaultSettingsTTL.
func NewSettingsService(repo repository.SettingRepository, c *cache.Cache, ttl time.Duration) SettingsService {
	if ttl <= 0 {
		ttl = DefaultSettingsTTL
	}
	return &settingsService{repo: repo, cache: c, ttl: ttl}
}

func settingCacheKey(key string) string {
	return cache.BuildKey(settingsNamespace, key)
}

func read[T any](ctx context.Context, s *settingsService, key string, expected model.SettingType, fallback T, parse func(string) (T, error)) (T, error) {
	ck := settingCacheKey(key)
	if v, ok := s.cache.Get(ck); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	row, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load setting %q: %w", key, err)
	}

	if row.Type != expected {
		return fallback, &TypeMismatchError{Key: key, Expected: expected, Actual: row.Type}
	}

	v, err := parse(row.Value)
	if err != nil {
		logging.FromContext(ctx).Warn("setting value unreadable, using fallback",
			"key", key,
			"type", string(expected),
			"error", err.Error(),
		)
		return fallback, nil
	}

	s.cache.Set(ck, v, s.ttl)
	return v, nil
}

func parseNumber(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}

func parseString(raw string) (string, error) { return raw, nil }

// parseBool treats only the exact text "true" as true.
func parseBool(raw string) (bool, error) { return raw == "true", nil }

func parseJSON(raw string) (json.RawMessage, error) {
	if !json.Valid([]byte(raw)) {
		return nil, errors.New("invalid json")
	}
	return json.RawMessage(raw), nil
}

func (s *settingsService) ReadNumber(ctx context.Context, key string, fallback float64) (float64, error) {
	return read(ctx, s, key, model.SettingTypeNumber, fallback, parseNumber)
}

func (s *settingsService) ReadString(ctx context.Context, key string, fallback string) (string, error) {
	return read(ctx, s, key, model.SettingTypeString, fallback, parseString)
}

func (s *settingsService) ReadBool(ctx context.Context, key string, fallback bool) (bool, error) {
	return read(ctx, s, key, model.SettingTypeBoolean, fallback, parseBool)
}

// ReadJSON returns a copy of the cached bytes so callers cannot alter the cache.
func (s *settingsService) ReadJSON(ctx context.Context, key string, fallback json.RawMessage) (json.RawMessage, error) {
	v, err := read(ctx, s, key, model.SettingTypeJSON, fallback, parseJSON)
	if v == nil {
		return v, err
	}
	return append(json.RawMessage(nil), v...), err
}

func validateSettingKey(key string) error {
	if n := utf8.RuneCountInString(key); n < 1 || n > maxSettingKeyLen {
		return validationError("key must be between 1 and %d characters", maxSettingKeyLen)
	}
	return nil
}

func (s *settingsService) Write(ctx context.Context, key string, value model.SettingValue) (*model.Setting, error) {
	if err := validateSettingKey(key); err != nil {
		return nil, err
	}
	encoded, err := model.EncodeSettingValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	stored, err := s.repo.Upsert(ctx, &model.Setting{
		ID:    uuid.New().String(),
		Key:   key,
		Value: encoded,
		Type:  value.SettingType(),
	})
	if err != nil {
		return nil, fmt.Errorf("save setting %q: %w", key, err)
	}

	s.cache.Delete(settingCacheKey(key))
	logging.FromContext(ctx).Info("setting updated", "key", key, "type", string(stored.Type))
	return stored, nil
}

func (s *settingsService) Delete(ctx context.Context, key string) error {
	if err := validateSettingKey(key); err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	s.cache.Delete(settingCacheKey(key))
	if n == 0 {
		return fmt.Errorf("%w: setting %q does not exist", ErrNotFound, key)
	}
	logging.FromContext(ctx).Info("setting deleted", "key", key)
	return nil
}

func (s *settingsService) List(ctx context.Context, limit, offset int) (*SettingListResult, error) {
	if limit < 1 || limit > 100 {
		return nil, validationError("limit must be between 1 and 100")
	}
	if offset < 0 {
		return nil, validationError("offset must be zero or greater")
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SettingListResult{Items: res.Items, Total: res.Total, Limit: limit, Offset: offset}, nil
}
