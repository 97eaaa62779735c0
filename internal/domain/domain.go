package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Principal is the acting identity passed explicitly into every service
// operation. Business logic never reads the current user from ambient
// request state.
type Principal struct {
	UserID    uuid.UUID
	Role      Role
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

func (p Principal) IsPatient(patientID uuid.UUID) bool {
	return p.Role == RolePatient && p.PatientID != nil && *p.PatientID == patientID
}

func (p Principal) IsDoctor(doctorID uuid.UUID) bool {
	return p.Role == RoleDoctor && p.DoctorID != nil && *p.DoctorID == doctorID
}

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Name         string `gorm:"column:name;type:varchar(120);not null"`
	Role         Role   `gorm:"column:role;type:varchar(20);not null;index"`

	// For the patient role, links to the patient record
	PatientID *uuid.UUID `gorm:"column:patient_id;type:uuid;index"`
	// For the doctor role, links to the doctor record
	DoctorID *uuid.UUID `gorm:"column:doctor_id;type:uuid;index"`

	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	// Doctor accounts are provisioned by an administrator with a default
	// password; the flag is cleared on first password change.
	MustChangePassword bool `gorm:"column:must_change_password;default:false"`
}

func (User) TableName() string {
	return "accounts.users"
}

type AuditAction string

const (
	ActionCreate    AuditAction = "create"
	ActionRead      AuditAction = "read"
	ActionUpdate    AuditAction = "update"
	ActionDelete    AuditAction = "delete"
	ActionLogin     AuditAction = "login"
	ActionBlacklist AuditAction = "blacklist"
	ActionWhitelist AuditAction = "whitelist"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	UserRole  Role      `gorm:"column:user_role;type:varchar(20);not null"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID    uuid.UUID  `json:"sub"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
}

// Principal converts token claims into the explicit acting identity.
func (c *Claims) Principal() Principal {
	return Principal{
		UserID:    c.UserID,
		Role:      c.Role,
		PatientID: c.PatientID,
		DoctorID:  c.DoctorID,
	}
}
