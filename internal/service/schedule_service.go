package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

// ScheduleService maintains the per-doctor shift calendar.
type ScheduleService struct {
	repo     schedule.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewScheduleService(repo schedule.Repository, auditSvc *AuditService, log *zap.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, auditSvc: auditSvc, log: log}
}

// SetAvailability upserts the availability record for (doctor, day). Only
// the owning doctor or an admin may declare a doctor's shifts. The date is
// unconstrained here; callers expose a rolling 7-day window.
func (s *ScheduleService) SetAvailability(
	ctx context.Context,
	cmd *schedule.SetAvailabilityCommand,
	caller domain.Principal,
	ip string,
) (*schedule.AvailabilityRecord, error) {
	if caller.Role != domain.RoleAdmin && !caller.IsDoctor(cmd.DoctorID) {
		return nil, ErrForbidden
	}

	rec := &schedule.AvailabilityRecord{
		DoctorID:    cmd.DoctorID,
		Day:         schedule.DateOnly(cmd.Day),
		MorningOpen: cmd.MorningOpen,
		EveningOpen: cmd.EveningOpen,
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Error("failed to upsert availability", zap.Error(err))
		return nil, fmt.Errorf("upserting availability: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     string(caller.Role),
		Action:       "update",
		ResourceType: "availability",
		ResourceID:   rec.DoctorID.String() + "/" + rec.Day.Format("2006-01-02"),
		IPAddress:    ip,
		Changes: fmt.Sprintf(`{"morning_open":%t,"evening_open":%t}`,
			rec.MorningOpen, rec.EveningOpen),
	})

	return rec, nil
}

// WeekCalendar returns the doctor's declared records for the rolling
// horizon starting at from. Days without a record are simply absent; the
// editing view renders those as both shifts closed.
func (s *ScheduleService) WeekCalendar(
	ctx context.Context,
	caller domain.Principal,
	from time.Time,
	days int,
) ([]*schedule.AvailabilityRecord, error) {
	if caller.Role != domain.RoleDoctor || caller.DoctorID == nil {
		return nil, ErrForbidden
	}
	horizon := schedule.Horizon(from, days)
	return s.repo.ListRange(ctx, *caller.DoctorID, horizon[0], horizon[len(horizon)-1])
}
