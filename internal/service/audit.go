package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"platformapi/internal/logging"
	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// AuditEntry is a single event to record. Empty IP and user agent fall back to
// the client recorded on the context by WithClient.
type AuditEntry struct {
	UserID    string
	EventType model.AuditEventType
	EventData map[string]any
	IPAddress string
	UserAgent string
}

// AuditLogger appends compliance events. Record never fails the caller's
// operation: persistence errors are logged and dropped.
type AuditLogger interface {
	Record(ctx context.Context, e AuditEntry)
}

type auditLogger struct {
	repo repository.AuditRepository
	now  func() time.Time
}

// NewAuditLogger constructs an AuditLogger.
func NewAuditLogger(repo repository.AuditRepository) AuditLogger {
	return &auditLogger{repo: repo, now: time.Now}
}

func (a *auditLogger) Record(ctx context.Context, e AuditEntry) {
	log := logging.FromContext(ctx)
	if !e.EventType.Valid() {
		log.Error("audit event rejected", "event_type", string(e.EventType), "error", "unknown event type")
		return
	}

	client := ClientFromContext(ctx)
	if e.IPAddress == "" {
		e.IPAddress = client.IPAddress
	}
	if e.UserAgent == "" {
		e.UserAgent = client.UserAgent
	}

	entry := &model.AuditLog{
		ID:        uuid.New().String(),
		UserID:    optional(e.UserID),
		EventType: e.EventType,
		EventData: e.EventData,
		IPAddress: optional(e.IPAddress),
		UserAgent: optional(e.UserAgent),
		CreatedAt: a.now().UTC(),
	}
	if err := a.repo.Insert(ctx, entry); err != nil {
		log.Error("failed to write audit log", "event_type", string(e.EventType), "error", err.Error())
	}
}

// ClientInfo identifies the caller of the current request.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type clientKey struct{}

// WithClient stores request client details for audit records.
func WithClient(ctx context.Context, c ClientInfo) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFromContext returns the client details stored by WithClient.
func ClientFromContext(ctx context.Context) ClientInfo {
	c, _ := ctx.Value(clientKey{}).(ClientInfo)
	return c
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
