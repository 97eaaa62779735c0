package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
	"github.com/clinicbook/clinicbook/pkg/metrics"
)

// AppointmentService owns appointment lifecycle transitions and the
// read views over the booking ledger.
type AppointmentService struct {
	repo     appointment.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

// Get returns one appointment; the owning patient, the owning doctor, and
// admins may read it.
func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID, caller domain.Principal) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayView(a, caller) {
		return nil, ErrForbidden
	}
	return a, nil
}

// Cancel moves a booked appointment to cancelled. The owning patient and
// the owning doctor may cancel; nobody else.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, caller domain.Principal, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsPatient(a.PatientID) && !caller.IsDoctor(a.DoctorID) {
		return nil, ErrForbidden
	}

	if err := a.Cancel(caller.UserID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusCancelled)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     string(caller.Role),
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      `{"status":"cancelled"}`,
	})

	return a, nil
}

// Complete moves a booked appointment to completed, optionally recording
// the treatment outcome in the same operation. Only the owning doctor may
// complete.
//
// When a treatment payload is supplied, it is upserted as the singleton
// dependent and a still-booked appointment advances to completed as a
// side effect: a doctor cannot record a diagnosis without the visit being
// considered done. Re-recording a treatment on an already completed
// appointment overwrites the payload without touching the status.
func (s *AppointmentService) Complete(
	ctx context.Context,
	id uuid.UUID,
	caller domain.Principal,
	input *appointment.TreatmentInput,
	ip string,
) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsDoctor(a.DoctorID) {
		return nil, ErrForbidden
	}

	advanced := false
	if a.Status == appointment.StatusBooked {
		if err := a.Complete(); err != nil {
			return nil, err
		}
		advanced = true
	} else if input == nil || a.Status == appointment.StatusCancelled {
		// Without a treatment payload there is nothing to do on a
		// non-booked appointment; a cancelled visit never gains one.
		return nil, appointment.ErrInvalidStatusTransition
	}

	if advanced {
		if err := s.repo.UpdateStatus(ctx, a); err != nil {
			return nil, fmt.Errorf("updating appointment status: %w", err)
		}
		s.metrics.AppointmentsTotal.WithLabelValues(string(appointment.StatusCompleted)).Inc()
	}

	if input != nil {
		t := &appointment.Treatment{
			AppointmentID: a.ID,
			Diagnosis:     input.Diagnosis,
			Prescription:  input.Prescription,
			TestsOrdered:  input.TestsOrdered,
			Medicines:     input.Medicines,
			Notes:         input.Notes,
		}
		if err := s.repo.UpsertTreatment(ctx, t); err != nil {
			return nil, fmt.Errorf("recording treatment: %w", err)
		}
		a.Treatment = t
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     string(caller.Role),
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      `{"status":"completed"}`,
	})

	return a, nil
}

// UpcomingForPatient lists the patient's booked appointments from today
// on, soonest first.
func (s *AppointmentService) UpcomingForPatient(ctx context.Context, patientID uuid.UUID, caller domain.Principal) ([]*appointment.Appointment, error) {
	if caller.Role != domain.RoleAdmin && !caller.IsPatient(patientID) {
		return nil, ErrForbidden
	}
	today := schedule.DateOnly(time.Now())
	return s.repo.List(ctx, &appointment.ListQuery{
		PatientID: &patientID,
		Statuses:  []appointment.Status{appointment.StatusBooked},
		FromDay:   &today,
		Order:     appointment.OrderUpcoming,
	})
}

// HistoryForPatient lists the patient's completed and cancelled
// appointments, most recent first.
func (s *AppointmentService) HistoryForPatient(ctx context.Context, patientID uuid.UUID, caller domain.Principal) ([]*appointment.Appointment, error) {
	if caller.Role != domain.RoleAdmin && !caller.IsPatient(patientID) {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, &appointment.ListQuery{
		PatientID: &patientID,
		Statuses:  []appointment.Status{appointment.StatusCompleted, appointment.StatusCancelled},
		Order:     appointment.OrderHistory,
	})
}

// UpcomingForDoctor lists the doctor's booked appointments from today on.
func (s *AppointmentService) UpcomingForDoctor(ctx context.Context, doctorID uuid.UUID, caller domain.Principal) ([]*appointment.Appointment, error) {
	if caller.Role != domain.RoleAdmin && !caller.IsDoctor(doctorID) {
		return nil, ErrForbidden
	}
	today := schedule.DateOnly(time.Now())
	return s.repo.List(ctx, &appointment.ListQuery{
		DoctorID: &doctorID,
		Statuses: []appointment.Status{appointment.StatusBooked},
		FromDay:  &today,
		Order:    appointment.OrderUpcoming,
	})
}

func (s *AppointmentService) mayView(a *appointment.Appointment, caller domain.Principal) bool {
	if caller.Role == domain.RoleAdmin {
		return true
	}
	return caller.IsPatient(a.PatientID) || caller.IsDoctor(a.DoctorID)
}
