// Package migration creates the platform schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"platformapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step; its presence means the schema is complete.
const sentinelTable = "public.consent_records"

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id             TEXT        PRIMARY KEY,
  name           TEXT        NOT NULL,
  email          TEXT        NOT NULL UNIQUE,
  email_verified BOOLEAN     NOT NULL DEFAULT false,
  role           TEXT        NOT NULL DEFAULT 'patient' CHECK (role IN ('patient', 'doctor', 'admin')),
  image          TEXT,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC);`,
	},
	{
		Name: "create_table_platform_settings",
		SQL: `CREATE TABLE IF NOT EXISTS platform_settings (
  id            UUID         PRIMARY KEY,
  setting_key   VARCHAR(255) NOT NULL UNIQUE,
  setting_value TEXT         NOT NULL,
  setting_type  TEXT         NOT NULL CHECK (setting_type IN ('number', 'string', 'boolean', 'json')),
  updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_type_upload_status",
		SQL: `DO $$ BEGIN
  CREATE TYPE upload_status AS ENUM ('uploading', 'uploaded', 'failed');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            UUID          PRIMARY KEY,
  user_id       TEXT          NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  document_type TEXT          NOT NULL,
  file_name     TEXT          NOT NULL,
  file_size     BIGINT        NOT NULL CHECK (file_size > 0),
  content_type  TEXT          NOT NULL,
  storage_key   TEXT          NOT NULL UNIQUE,
  upload_status upload_status NOT NULL DEFAULT 'uploading',
  metadata      JSONB,
  created_at    TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_user_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_user_created_at ON documents (user_id, created_at DESC);`,
	},
	{
		Name: "create_table_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS audit_logs (
  id         UUID        PRIMARY KEY,
  user_id    TEXT,
  event_type TEXT        NOT NULL,
  event_data JSONB,
  ip_address TEXT,
  user_agent TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_audit_logs_user_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_user_created_at ON audit_logs (user_id, created_at DESC);`,
	},
	{
		Name: "create_table_consent_records",
		SQL: `CREATE TABLE IF NOT EXISTS consent_records (
  id              UUID        PRIMARY KEY,
  user_id         TEXT        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  consent_version TEXT        NOT NULL,
  consent_text    TEXT        NOT NULL,
  consent_type    TEXT        NOT NULL,
  accepted        BOOLEAN     NOT NULL,
  ip_address      TEXT,
  user_agent      TEXT,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks for the sentinel table and runs the migration steps if it is missing.
// Every step is idempotent, so an interrupted run is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logging.FromContext(ctx).With("component", "database", "db_host", dbHost)

	log.Info("checking schema", "event", "db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('" + sentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("failed to check sentinel table",
			"event", "db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			"event", "db_migration_skip",
			"status", "success",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("migrating schema", "event", "db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				"event", "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("migration step applied",
			"event", "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("schema migrated",
		"event", "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
