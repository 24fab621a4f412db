package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"platformapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAuditPostgres_Insert(t *testing.T) {
	now := time.Now().UTC()

	t.Run("user event with data", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO audit_logs").
			WithArgs("audit-1", "user-1", "document.deleted", `{"documentId":"doc-1"}`, "10.0.0.1", nil, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewAuditPostgres(db).Insert(context.Background(), &model.AuditLog{
			ID:        "audit-1",
			UserID:    strPtr("user-1"),
			EventType: model.AuditDocumentDeleted,
			EventData: map[string]any{"documentId": "doc-1"},
			IPAddress: strPtr("10.0.0.1"),
			CreatedAt: now,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("system event without data", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO audit_logs").
			WithArgs("audit-2", nil, "email.failed", nil, nil, nil, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = NewAuditPostgres(db).Insert(context.Background(), &model.AuditLog{
			ID:        "audit-2",
			EventType: model.AuditEmailFailed,
			CreatedAt: now,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("disk full"))

		err = NewAuditPostgres(db).Insert(context.Background(), &model.AuditLog{ID: "a", EventType: model.AuditUserLogin, CreatedAt: now})

		assert.EqualError(t, err, "disk full")
	})
}

func TestConsentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rec := &model.ConsentRecord{
		ID:             "consent-1",
		UserID:         "user-1",
		ConsentVersion: "2024-01",
		ConsentText:    "I agree to the processing of my health data.",
		ConsentType:    "lgpd_health_data",
		Accepted:       true,
		UserAgent:      strPtr("Mozilla/5.0"),
		CreatedAt:      now,
	}

	mock.ExpectQuery("INSERT INTO consent_records (.+) RETURNING").
		WithArgs(rec.ID, rec.UserID, rec.ConsentVersion, rec.ConsentText, rec.ConsentType, true, nil, "Mozilla/5.0", now).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "consent_version", "consent_text", "consent_type", "accepted", "ip_address", "user_agent", "created_at",
		}).AddRow(rec.ID, rec.UserID, rec.ConsentVersion, rec.ConsentText, rec.ConsentType, true, nil, "Mozilla/5.0", now))

	out, err := NewConsentPostgres(db).Create(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, "consent-1", out.ID)
	assert.Nil(t, out.IPAddress)
	require.NotNil(t, out.UserAgent)
	assert.Equal(t, "Mozilla/5.0", *out.UserAgent)
	assert.NoError(t, mock.ExpectationsWereMet())
}
