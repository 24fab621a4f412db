package repository

import (
	"context"

	"platformapi/internal/model"
)

// AuditRepository appends audit log rows.
type AuditRepository interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
}

// ConsentRepository stores consent records.
type ConsentRepository interface {
	Create(ctx context.Context, rec *model.ConsentRecord) (*model.ConsentRecord, error)
}
