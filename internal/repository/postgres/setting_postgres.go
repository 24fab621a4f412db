package postgres

import (
	"context"
	"database/sql"

	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// SettingPostgres is a PostgreSQL implementation of repository.SettingRepository.
type SettingPostgres struct {
	db *sql.DB
}

// NewSettingPostgres creates a new SettingPostgres repository.
func NewSettingPostgres(db *sql.DB) *SettingPostgres {
	return &SettingPostgres{db: db}
}

var _ repository.SettingRepository = (*SettingPostgres)(nil)

const settingColumns = `id, setting_key, setting_value, setting_type, updated_at`

// FindByKey fetches a single setting by key.
func (r *SettingPostgres) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	const q = `
		SELECT ` + settingColumns + `
		FROM platform_settings
		WHERE setting_key = $1
	`
	return scanSetting(r.db.QueryRowContext(ctx, q, key))
}

// Upsert inserts a new setting or overwrites value and type of an existing key.
// The original row ID is preserved on conflict.
func (r *SettingPostgres) Upsert(ctx context.Context, s *model.Setting) (*model.Setting, error) {
	const q = `
		INSERT INTO platform_settings (id, setting_key, setting_value, setting_type, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value,
		    setting_type = EXCLUDED.setting_type,
		    updated_at = now()
		RETURNING ` + settingColumns
	return scanSetting(r.db.QueryRowContext(ctx, q, s.ID, s.Key, s.Value, string(s.Type)))
}

// Delete removes a setting by key and reports how many rows went away.
func (r *SettingPostgres) Delete(ctx context.Context, key string) (int64, error) {
	const q = `DELETE FROM platform_settings WHERE setting_key = $1`
	res, err := r.db.ExecContext(ctx, q, key)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns a page of settings, most recently updated first, with total count.
func (r *SettingPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Setting], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM platform_settings`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT ` + settingColumns + `
		FROM platform_settings
		ORDER BY updated_at DESC, setting_key ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Setting, 0, pq.Limit)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Setting]{
		Items: items,
		Total: total,
	}, nil
}

func scanSetting(s scanner) (*model.Setting, error) {
	var (
		out model.Setting
		typ string
	)
	if err := s.Scan(&out.ID, &out.Key, &out.Value, &typ, &out.UpdatedAt); err != nil {
		return nil, err
	}
	out.Type = model.SettingType(typ)
	return &out, nil
}
