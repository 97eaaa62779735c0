package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/domain/patient"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

// AdminService covers the administrative surface: directory management,
// blacklist toggles, and account deletion with appointment cascade.
type AdminService struct {
	doctorRepo  doctor.Repository
	patientRepo patient.Repository
	apptRepo    appointment.Repository
	userRepo    UserRepository
	auditSvc    *AuditService
	// Initial password for admin-provisioned doctor accounts; the
	// account is flagged to change it on first login.
	doctorDefaultPassword string
	log                   *zap.Logger
}

func NewAdminService(
	doctorRepo doctor.Repository,
	patientRepo patient.Repository,
	apptRepo appointment.Repository,
	userRepo UserRepository,
	auditSvc *AuditService,
	doctorDefaultPassword string,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		doctorRepo:            doctorRepo,
		patientRepo:           patientRepo,
		apptRepo:              apptRepo,
		userRepo:              userRepo,
		auditSvc:              auditSvc,
		doctorDefaultPassword: doctorDefaultPassword,
		log:                   log,
	}
}

func (s *AdminService) requireAdmin(caller domain.Principal) error {
	if caller.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// AddDepartment creates a department for the doctor directory.
func (s *AdminService) AddDepartment(ctx context.Context, name, description string, caller domain.Principal, ip string) (*doctor.Department, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	dep := &doctor.Department{Name: name, Description: description}
	if err := s.doctorRepo.CreateDepartment(ctx, dep); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "create", ResourceType: "department", ResourceID: dep.ID.String(), IPAddress: ip,
	})
	return dep, nil
}

// AddDoctor creates the doctor record plus a login account with the
// configured default password.
func (s *AdminService) AddDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand, caller domain.Principal, ip string) (*doctor.Doctor, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	d := &doctor.Doctor{
		Name:           cmd.Name,
		Email:          cmd.Email,
		Specialization: cmd.Specialization,
		DepartmentID:   cmd.DepartmentID,
		ExperienceYrs:  cmd.ExperienceYrs,
	}
	if err := s.doctorRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.doctorDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing default password: %w", err)
	}
	u := &domain.User{
		Email:              cmd.Email,
		PasswordHash:       string(hash),
		Name:               cmd.Name,
		Role:               domain.RoleDoctor,
		DoctorID:           &d.ID,
		MustChangePassword: true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating doctor account: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "create", ResourceType: "doctor", ResourceID: d.ID.String(), IPAddress: ip,
	})
	s.log.Info("doctor added", zap.String("doctor_id", d.ID.String()))

	return d, nil
}

func (s *AdminService) UpdateDoctor(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand, caller domain.Principal, ip string) (*doctor.Doctor, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	d, err := s.doctorRepo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "update", ResourceType: "doctor", ResourceID: id.String(), IPAddress: ip,
	})
	return d, nil
}

// SetDoctorBlacklisted hides the doctor from patients and blocks new
// bookings; existing appointments are left untouched.
func (s *AdminService) SetDoctorBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool, caller domain.Principal, ip string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if err := s.doctorRepo.SetBlacklisted(ctx, id, blacklisted); err != nil {
		return err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: blacklistAction(blacklisted), ResourceType: "doctor", ResourceID: id.String(), IPAddress: ip,
	})
	return nil
}

func (s *AdminService) SetPatientBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool, caller domain.Principal, ip string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if err := s.patientRepo.SetBlacklisted(ctx, id, blacklisted); err != nil {
		return err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: blacklistAction(blacklisted), ResourceType: "patient", ResourceID: id.String(), IPAddress: ip,
	})
	return nil
}

// DeleteDoctor removes the doctor, their appointments (treatments
// cascade with them), and their login account.
func (s *AdminService) DeleteDoctor(ctx context.Context, id uuid.UUID, caller domain.Principal, ip string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.doctorRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.apptRepo.DeleteForDoctor(ctx, id); err != nil {
		return fmt.Errorf("deleting doctor appointments: %w", err)
	}
	if err := s.userRepo.DeleteByDoctorID(ctx, id); err != nil {
		return fmt.Errorf("deleting doctor account: %w", err)
	}
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "delete", ResourceType: "doctor", ResourceID: id.String(), IPAddress: ip,
	})
	return nil
}

// DeletePatient removes the patient, their appointment history, and their
// login account.
func (s *AdminService) DeletePatient(ctx context.Context, id uuid.UUID, caller domain.Principal, ip string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.patientRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.apptRepo.DeleteForPatient(ctx, id); err != nil {
		return fmt.Errorf("deleting patient appointments: %w", err)
	}
	if err := s.userRepo.DeleteByPatientID(ctx, id); err != nil {
		return fmt.Errorf("deleting patient account: %w", err)
	}
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID: caller.UserID, UserRole: string(caller.Role),
		Action: "delete", ResourceType: "patient", ResourceID: id.String(), IPAddress: ip,
	})
	return nil
}

// Dashboard aggregates the admin landing view: every doctor and patient
// plus all upcoming booked appointments.
type Dashboard struct {
	Doctors      []*doctor.Doctor           `json:"doctors"`
	Patients     []*patient.Patient         `json:"patients"`
	Appointments []*appointment.Appointment `json:"appointments"`
}

func (s *AdminService) Dashboard(ctx context.Context, caller domain.Principal) (*Dashboard, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	today := schedule.DateOnly(time.Now())
	appts, err := s.apptRepo.List(ctx, &appointment.ListQuery{
		Statuses: []appointment.Status{appointment.StatusBooked},
		FromDay:  &today,
		Order:    appointment.OrderUpcoming,
	})
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return &Dashboard{Doctors: doctors, Patients: patients, Appointments: appts}, nil
}

func blacklistAction(blacklisted bool) string {
	if blacklisted {
		return string(domain.ActionBlacklist)
	}
	return string(domain.ActionWhitelist)
}
