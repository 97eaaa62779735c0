package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

// DirectoryService is the patient-facing view of departments and doctors.
// Blacklisted doctors are filtered out here, before any availability
// resolution happens; the resolver itself never sees blacklist state.
type DirectoryService struct {
	doctorRepo doctor.Repository
	log        *zap.Logger
}

func NewDirectoryService(doctorRepo doctor.Repository, log *zap.Logger) *DirectoryService {
	return &DirectoryService{doctorRepo: doctorRepo, log: log}
}

func (s *DirectoryService) ListDepartments(ctx context.Context) ([]*doctor.Department, error) {
	return s.doctorRepo.ListDepartments(ctx)
}

// DepartmentDoctors returns the bookable doctors of a department.
func (s *DirectoryService) DepartmentDoctors(ctx context.Context, departmentID uuid.UUID) ([]*doctor.Doctor, error) {
	if _, err := s.doctorRepo.GetDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.doctorRepo.ListByDepartment(ctx, departmentID, false)
}

// VisibleDoctor returns the doctor if patients may see them. A
// blacklisted doctor is reported as not found rather than revealed.
func (s *DirectoryService) VisibleDoctor(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsBlacklisted {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}
