package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// AuditPostgres appends rows to audit_logs.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

func (r *AuditPostgres) Insert(ctx context.Context, e *model.AuditLog) error {
	var data any
	if e.EventData != nil {
		b, err := json.Marshal(e.EventData)
		if err != nil {
			return err
		}
		data = string(b)
	}

	const q = `
		INSERT INTO audit_logs (id, user_id, event_type, event_data, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		nullableString(e.UserID),
		string(e.EventType),
		data,
		nullableString(e.IPAddress),
		nullableString(e.UserAgent),
		e.CreatedAt,
	)
	return err
}

// ConsentPostgres stores consent records.
type ConsentPostgres struct {
	db *sql.DB
}

// NewConsentPostgres creates a new ConsentPostgres repository.
func NewConsentPostgres(db *sql.DB) *ConsentPostgres {
	return &ConsentPostgres{db: db}
}

var _ repository.ConsentRepository = (*ConsentPostgres)(nil)

func (r *ConsentPostgres) Create(ctx context.Context, rec *model.ConsentRecord) (*model.ConsentRecord, error) {
	const q = `
		INSERT INTO consent_records (id, user_id, consent_version, consent_text, consent_type, accepted, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, consent_version, consent_text, consent_type, accepted, ip_address, user_agent, created_at
	`
	var (
		out       model.ConsentRecord
		ip, agent sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.UserID,
		rec.ConsentVersion,
		rec.ConsentText,
		rec.ConsentType,
		rec.Accepted,
		nullableString(rec.IPAddress),
		nullableString(rec.UserAgent),
		rec.CreatedAt,
	).Scan(
		&out.ID,
		&out.UserID,
		&out.ConsentVersion,
		&out.ConsentText,
		&out.ConsentType,
		&out.Accepted,
		&ip,
		&agent,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ip.Valid {
		out.IPAddress = &ip.String
	}
	if agent.Valid {
		out.UserAgent = &agent.String
	}
	return &out, nil
}
