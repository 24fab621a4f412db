package repository

import (
	"context"

	"platformapi/internal/model"
)

// SettingRepository persists platform settings.
type SettingRepository interface {
	// FindByKey returns the setting stored under key.
	FindByKey(ctx context.Context, key string) (*model.Setting, error)

	// Upsert inserts the setting or, on key conflict, replaces its value and type
	// and refreshes updated_at.
	Upsert(ctx context.Context, s *model.Setting) (*model.Setting, error)

	// Delete removes the setting and returns the number of rows deleted.
	Delete(ctx context.Context, key string) (int64, error)

	// List returns settings by most recently updated first, with the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Setting], error)
}
