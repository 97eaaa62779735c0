package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

var _ schedule.Repository = (*ScheduleRepository)(nil)

func (r *ScheduleRepository) Upsert(ctx context.Context, rec *schedule.AvailabilityRecord) error {
	rec.Day = schedule.DateOnly(rec.Day)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"morning_open", "evening_open", "updated_at"}),
		}).
		Create(rec).Error
}

// Get returns nil without error when no record exists for the day; callers
// treat a missing record as the doctor not working.
func (r *ScheduleRepository) Get(ctx context.Context, doctorID uuid.UUID, day time.Time) (*schedule.AvailabilityRecord, error) {
	var rec schedule.AvailabilityRecord
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day = ?", doctorID, schedule.DateOnly(day)).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ScheduleRepository) ListRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*schedule.AvailabilityRecord, error) {
	var recs []*schedule.AvailabilityRecord
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day BETWEEN ? AND ?",
			doctorID, schedule.DateOnly(from), schedule.DateOnly(to)).
		Order("day ASC").
		Find(&recs).Error
	return recs, err
}
