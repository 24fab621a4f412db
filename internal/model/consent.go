package model

import "time"

// ConsentRecord stores the exact consent text a user accepted.
type ConsentRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ConsentVersion string    `json:"consent_version"`
	ConsentText    string    `json:"consent_text"`
	ConsentType    string    `json:"consent_type"`
	Accepted       bool      `json:"accepted"`
	IPAddress      *string   `json:"ip_address"`
	UserAgent      *string   `json:"user_agent"`
	CreatedAt      time.Time `json:"created_at"`
}
