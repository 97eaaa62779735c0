package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert creates or overwrites the availability record for the
	// record's (doctor, day) pair.
	Upsert(ctx context.Context, rec *AvailabilityRecord) error

	// Get returns the record for one (doctor, day), or nil if the doctor
	// has not declared that day. A missing record is not an error.
	Get(ctx context.Context, doctorID uuid.UUID, day time.Time) (*AvailabilityRecord, error)

	// ListRange returns all records for the doctor with from <= day <= to,
	// in one query.
	ListRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*AvailabilityRecord, error)
}
