package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
	"github.com/clinicbook/clinicbook/pkg/metrics"
)

// BookingService validates and commits one patient's claim on a specific
// (doctor, date, shift) slot.
type BookingService struct {
	apptRepo   appointment.Repository
	schedRepo  schedule.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	metrics    *metrics.Collector
	log        *zap.Logger
}

func NewBookingService(
	apptRepo appointment.Repository,
	schedRepo schedule.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		apptRepo:   apptRepo,
		schedRepo:  schedRepo,
		doctorRepo: doctorRepo,
		auditSvc:   auditSvc,
		metrics:    m,
		log:        log,
	}
}

// BookSlot books the slot identified by slotID for the patient. Outcomes
// are distinguishable and all recoverable: ErrMalformedSlot for an
// off-grid time, ErrDoctorUnavailable for a blacklisted or non-working
// doctor, ErrSlotTaken when another booked appointment holds the slot.
//
// The FindBooked pre-check only produces a friendly rejection; the
// storage-level unique constraint on booked (doctor, day, time) rows is
// what guarantees that of N concurrent requests for one open slot exactly
// one succeeds.
func (s *BookingService) BookSlot(
	ctx context.Context,
	patientID uuid.UUID,
	doctorID uuid.UUID,
	slotID schedule.SlotID,
	caller domain.Principal,
	ip string,
) (*appointment.Appointment, error) {
	if caller.Role != domain.RoleAdmin && !caller.IsPatient(patientID) {
		return nil, ErrForbidden
	}

	day, shift, err := slotID.Parse()
	if err != nil {
		s.metrics.BookingsTotal.WithLabelValues("malformed_slot").Inc()
		return nil, err
	}

	doc, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if doc.IsBlacklisted {
		s.metrics.BookingsTotal.WithLabelValues("doctor_unavailable").Inc()
		return nil, appointment.ErrDoctorUnavailable
	}

	rec, err := s.schedRepo.Get(ctx, doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("loading shift calendar: %w", err)
	}
	if !rec.IsWorking(shift) {
		s.metrics.BookingsTotal.WithLabelValues("doctor_unavailable").Inc()
		return nil, appointment.ErrDoctorUnavailable
	}

	existing, err := s.apptRepo.FindBooked(ctx, doctorID, day, shift)
	if err != nil {
		return nil, fmt.Errorf("checking slot: %w", err)
	}
	if existing != nil {
		s.metrics.BookingsTotal.WithLabelValues("slot_taken").Inc()
		return nil, appointment.ErrSlotTaken
	}

	a := &appointment.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Day:       day,
		StartTime: shift.StartTime(day),
		Shift:     shift,
		Status:    appointment.StatusBooked,
	}

	if err := s.apptRepo.CreateBooked(ctx, a); err != nil {
		// Losing the race between the pre-check and the constrained
		// insert surfaces here.
		if errors.Is(err, appointment.ErrSlotTaken) {
			s.metrics.BookingsTotal.WithLabelValues("slot_taken").Inc()
			return nil, appointment.ErrSlotTaken
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.metrics.BookingsTotal.WithLabelValues("booked").Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     string(caller.Role),
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	s.log.Info("slot booked",
		zap.String("appointment_id", a.ID.String()),
		zap.String("doctor_id", doctorID.String()),
		zap.String("slot", string(slotID)),
	)

	return a, nil
}
