package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned when the acting principal is neither permitted
// by role nor the owner of the record it is mutating.
var ErrForbidden = errors.New("forbidden: insufficient permissions")

// AuditEntry is the service-facing shape of one audit event.
type AuditEntry struct {
	UserID       uuid.UUID
	UserRole     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
	Changes      string
}
