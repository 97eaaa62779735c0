package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

type Repository interface {
	// CreateBooked inserts a new appointment with status booked. The
	// storage layer enforces at most one booked row per (doctor, day,
	// time); a violating insert returns ErrSlotTaken. This constraint,
	// not the FindBooked pre-check, is the source of truth under
	// concurrent bookings.
	CreateBooked(ctx context.Context, a *Appointment) error

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// FindBooked returns the booked appointment occupying the slot, or
	// nil if the slot is free. Used for the friendly conflict rejection
	// ahead of the constrained insert.
	FindBooked(ctx context.Context, doctorID uuid.UUID, day time.Time, shift schedule.Shift) (*Appointment, error)

	// ListBookedRange returns all booked appointments for the doctor
	// with from <= day <= to, in one query.
	ListBookedRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*Appointment, error)

	List(ctx context.Context, q *ListQuery) ([]*Appointment, error)

	// UpdateStatus persists a status transition already applied to a.
	UpdateStatus(ctx context.Context, a *Appointment) error

	// UpsertTreatment creates or overwrites the singleton treatment
	// dependent of an appointment.
	UpsertTreatment(ctx context.Context, t *Treatment) error

	// DeleteForPatient and DeleteForDoctor remove all of a principal's
	// appointments (treatments cascade). Only account deletion calls
	// these.
	DeleteForPatient(ctx context.Context, patientID uuid.UUID) error
	DeleteForDoctor(ctx context.Context, doctorID uuid.UUID) error
}
