package model

import "time"

// AuditEventType names a compliance-relevant event.
type AuditEventType string

const (
	AuditUserRegistered                AuditEventType = "user.registered"
	AuditUserLogin                     AuditEventType = "user.login"
	AuditProfileCreated                AuditEventType = "profile.created"
	AuditProfileUpdated                AuditEventType = "profile.updated"
	AuditConsentAccepted               AuditEventType = "consent.accepted"
	AuditEmailSent                     AuditEventType = "email.sent"
	AuditEmailFailed                   AuditEventType = "email.failed"
	AuditDoctorProfileCreated          AuditEventType = "doctor.profile_created"
	AuditDoctorProfileUpdated          AuditEventType = "doctor.profile_updated"
	AuditDoctorVerificationSubmitted   AuditEventType = "doctor.verification_submitted"
	AuditDoctorVerificationResubmitted AuditEventType = "doctor.verification_resubmitted"
	AuditDoctorApproved                AuditEventType = "doctor.approved"
	AuditDoctorRejected                AuditEventType = "doctor.rejected"
	AuditDoctorMoreInfoRequested       AuditEventType = "doctor.more_info_requested"
	AuditDocumentUploadInitiated       AuditEventType = "document.upload_initiated"
	AuditDocumentUploadCompleted       AuditEventType = "document.upload_completed"
	AuditDocumentVerified              AuditEventType = "document.verified"
	AuditDocumentRejected              AuditEventType = "document.rejected"
	AuditDocumentDeleted               AuditEventType = "document.deleted"
)

var auditEventTypes = map[AuditEventType]struct{}{
	AuditUserRegistered: {}, AuditUserLogin: {}, AuditProfileCreated: {}, AuditProfileUpdated: {},
	AuditConsentAccepted: {}, AuditEmailSent: {}, AuditEmailFailed: {},
	AuditDoctorProfileCreated: {}, AuditDoctorProfileUpdated: {},
	AuditDoctorVerificationSubmitted: {}, AuditDoctorVerificationResubmitted: {},
	AuditDoctorApproved: {}, AuditDoctorRejected: {}, AuditDoctorMoreInfoRequested: {},
	AuditDocumentUploadInitiated: {}, AuditDocumentUploadCompleted: {},
	AuditDocumentVerified: {}, AuditDocumentRejected: {}, AuditDocumentDeleted: {},
}

// Valid reports whether t is a known audit event type.
func (t AuditEventType) Valid() bool {
	_, ok := auditEventTypes[t]
	return ok
}

// AuditLog is an append-only compliance record. UserID is nil for system events.
type AuditLog struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	EventType AuditEventType `json:"event_type"`
	EventData map[string]any `json:"event_data"`
	IPAddress *string        `json:"ip_address"`
	UserAgent *string        `json:"user_agent"`
	CreatedAt time.Time      `json:"created_at"`
}
