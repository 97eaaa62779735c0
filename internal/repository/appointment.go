package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

// CreateBooked inserts the appointment. The partial unique index on
// booked (doctor_id, visit_date, visit_time) rows rejects a second booked
// row for the same slot at commit time; that violation is returned as
// ErrSlotTaken.
func (r *AppointmentRepository) CreateBooked(ctx context.Context, a *appointment.Appointment) error {
	a.Status = appointment.StatusBooked
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appointment.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).
		Preload("Treatment").
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) FindBooked(ctx context.Context, doctorID uuid.UUID, day time.Time, shift schedule.Shift) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND visit_date = ? AND shift = ? AND status = ?",
			doctorID, schedule.DateOnly(day), shift, appointment.StatusBooked).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ListBookedRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND visit_date BETWEEN ? AND ? AND status = ?",
			doctorID, schedule.DateOnly(from), schedule.DateOnly(to), appointment.StatusBooked).
		Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Preload("Treatment")

	if q.PatientID != nil {
		tx = tx.Where("patient_id = ?", *q.PatientID)
	}
	if q.DoctorID != nil {
		tx = tx.Where("doctor_id = ?", *q.DoctorID)
	}
	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", q.Statuses)
	}
	if q.FromDay != nil {
		tx = tx.Where("visit_date >= ?", schedule.DateOnly(*q.FromDay))
	}

	switch q.Order {
	case appointment.OrderHistory:
		tx = tx.Order("visit_date DESC").Order("visit_time DESC")
	default:
		tx = tx.Order("visit_date ASC").Order("visit_time ASC")
	}

	var appts []*appointment.Appointment
	err := tx.Find(&appts).Error
	return appts, err
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"status":       a.Status,
			"cancelled_at": a.CancelledAt,
			"cancelled_by": a.CancelledBy,
			"completed_at": a.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) UpsertTreatment(ctx context.Context, t *appointment.Treatment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "appointment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"diagnosis", "prescription", "tests_ordered", "medicines", "notes", "updated_at",
			}),
		}).
		Create(t).Error
}

func (r *AppointmentRepository) DeleteForPatient(ctx context.Context, patientID uuid.UUID) error {
	return r.deleteWhere(ctx, "patient_id = ?", patientID)
}

func (r *AppointmentRepository) DeleteForDoctor(ctx context.Context, doctorID uuid.UUID) error {
	return r.deleteWhere(ctx, "doctor_id = ?", doctorID)
}

func (r *AppointmentRepository) deleteWhere(ctx context.Context, cond string, arg any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&appointment.Appointment{}).Select("id").Where(cond, arg)
		if err := tx.Where("appointment_id IN (?)", sub).
			Delete(&appointment.Treatment{}).Error; err != nil {
			return err
		}
		return tx.Where(cond, arg).Delete(&appointment.Appointment{}).Error
	})
}
