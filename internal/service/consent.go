package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// ConsentInput is what a user accepted. IP and user agent are optional.
type ConsentInput struct {
	UserID    string
	Version   string
	Text      string
	Type      string
	IPAddress string
	UserAgent string
}

// ConsentService records user consent to data processing terms.
type ConsentService interface {
	RecordConsent(ctx context.Context, in ConsentInput) (*model.ConsentRecord, error)
}

type consentService struct {
	repo  repository.ConsentRepository
	audit AuditLogger
	now   func() time.Time
}

// NewConsentService constructs a ConsentService.
func NewConsentService(repo repository.ConsentRepository, audit AuditLogger) ConsentService {
	return &consentService{repo: repo, audit: audit, now: time.Now}
}

func (s *consentService) RecordConsent(ctx context.Context, in ConsentInput) (*model.ConsentRecord, error) {
	required := []struct{ field, value string }{
		{"user_id", in.UserID},
		{"consent_version", in.Version},
		{"consent_text", in.Text},
		{"consent_type", in.Type},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, validationError("%s is required", r.field)
		}
	}

	rec, err := s.repo.Create(ctx, &model.ConsentRecord{
		ID:             uuid.New().String(),
		UserID:         in.UserID,
		ConsentVersion: in.Version,
		ConsentText:    in.Text,
		ConsentType:    in.Type,
		Accepted:       true,
		IPAddress:      optional(in.IPAddress),
		UserAgent:      optional(in.UserAgent),
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("save consent: %w", err)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:    in.UserID,
		EventType: model.AuditConsentAccepted,
		EventData: map[string]any{
			"consentVersion": in.Version,
			"consentType":    in.Type,
		},
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
	return rec, nil
}
