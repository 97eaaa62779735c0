package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor. Returns ErrEmailInUse on duplicate email.
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key. Returns ErrDoctorNotFound if missing.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	GetByEmail(ctx context.Context, email string) (*Doctor, error)

	// Update applies partial updates. Returns ErrEmailInUse if the new
	// email belongs to another doctor.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateDoctorCommand) (*Doctor, error)

	// SetBlacklisted flips the blacklist flag.
	SetBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool) error

	// Delete removes the doctor row. Appointments are deleted separately
	// by the caller before this.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByDepartment returns doctors in a department, optionally
	// filtering out blacklisted ones.
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, includeBlacklisted bool) ([]*Doctor, error)

	List(ctx context.Context) ([]*Doctor, error)

	CreateDepartment(ctx context.Context, d *Department) error
	GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error)
	ListDepartments(ctx context.Context) ([]*Department, error)
}
