// Package postgres implements the repository interfaces on PostgreSQL through
// database/sql. Missing rows surface as sql.ErrNoRows.
package postgres

import "encoding/json"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullableJSON turns an empty document into SQL NULL so jsonb columns stay null.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
