package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrEmailInUse on duplicate email.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if missing.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	GetByEmail(ctx context.Context, email string) (*Patient, error)

	SetBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool) error

	// Delete removes the patient row. Appointments are deleted separately
	// by the caller before this.
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context) ([]*Patient, error)
}
