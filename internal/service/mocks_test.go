package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/domain/patient"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
	"github.com/clinicbook/clinicbook/pkg/metrics"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) CreateBooked(ctx context.Context, a *appointment.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*appointment.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) FindBooked(ctx context.Context, doctorID uuid.UUID, day time.Time, shift schedule.Shift) (*appointment.Appointment, error) {
	args := m.Called(ctx, doctorID, day, shift)
	if a := args.Get(0); a != nil {
		return a.(*appointment.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) ListBookedRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	args := m.Called(ctx, doctorID, from, to)
	if a := args.Get(0); a != nil {
		return a.([]*appointment.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, q *appointment.ListQuery) ([]*appointment.Appointment, error) {
	args := m.Called(ctx, q)
	if a := args.Get(0); a != nil {
		return a.([]*appointment.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAppointmentRepo) UpsertTreatment(ctx context.Context, t *appointment.Treatment) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockAppointmentRepo) DeleteForPatient(ctx context.Context, patientID uuid.UUID) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *mockAppointmentRepo) DeleteForDoctor(ctx context.Context, doctorID uuid.UUID) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Upsert(ctx context.Context, rec *schedule.AvailabilityRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockScheduleRepo) Get(ctx context.Context, doctorID uuid.UUID, day time.Time) (*schedule.AvailabilityRecord, error) {
	args := m.Called(ctx, doctorID, day)
	if r := args.Get(0); r != nil {
		return r.(*schedule.AvailabilityRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) ListRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*schedule.AvailabilityRecord, error) {
	args := m.Called(ctx, doctorID, from, to)
	if r := args.Get(0); r != nil {
		return r.([]*schedule.AvailabilityRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDoctorRepo struct {
	mock.Mock
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*doctor.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	args := m.Called(ctx, email)
	if d := args.Get(0); d != nil {
		return d.(*doctor.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	args := m.Called(ctx, id, cmd)
	if d := args.Get(0); d != nil {
		return d.(*doctor.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) SetBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool) error {
	args := m.Called(ctx, id, blacklisted)
	return args.Error(0)
}

func (m *mockDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDoctorRepo) ListByDepartment(ctx context.Context, departmentID uuid.UUID, includeBlacklisted bool) ([]*doctor.Doctor, error) {
	args := m.Called(ctx, departmentID, includeBlacklisted)
	if d := args.Get(0); d != nil {
		return d.([]*doctor.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) List(ctx context.Context) ([]*doctor.Doctor, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]*doctor.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) CreateDepartment(ctx context.Context, d *doctor.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDoctorRepo) GetDepartment(ctx context.Context, id uuid.UUID) (*doctor.Department, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*doctor.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorRepo) ListDepartments(ctx context.Context) ([]*doctor.Department, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]*doctor.Department), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*patient.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) GetByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	args := m.Called(ctx, email)
	if p := args.Get(0); p != nil {
		return p.(*patient.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) SetBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool) error {
	args := m.Called(ctx, id, blacklisted)
	return args.Error(0)
}

func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*patient.Patient, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*patient.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, mustChange bool) error {
	args := m.Called(ctx, id, hash, mustChange)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteByPatientID(ctx context.Context, patientID uuid.UUID) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *mockUserRepo) DeleteByDoctorID(ctx context.Context, doctorID uuid.UUID) error {
	args := m.Called(ctx, doctorID)
	return args.Error(0)
}

// noopAuditRepo swallows audit entries; the async worker still runs so the
// LogAsync path is exercised.
type noopAuditRepo struct{}

func (noopAuditRepo) Create(context.Context, *domain.AuditLog) error { return nil }

func newTestCollector(t *testing.T) *metrics.Collector {
	t.Helper()
	return metrics.NewCollector("test", prometheus.NewRegistry())
}

func newTestAuditService(t *testing.T) *AuditService {
	t.Helper()
	svc := NewAuditService(noopAuditRepo{}, newTestCollector(t), zap.NewNop())
	t.Cleanup(svc.Shutdown)
	return svc
}

func patientPrincipal(patientID uuid.UUID) domain.Principal {
	return domain.Principal{
		UserID:    uuid.New(),
		Role:      domain.RolePatient,
		PatientID: &patientID,
	}
}

func doctorPrincipal(doctorID uuid.UUID) domain.Principal {
	return domain.Principal{
		UserID:   uuid.New(),
		Role:     domain.RoleDoctor,
		DoctorID: &doctorID,
	}
}

func adminPrincipal() domain.Principal {
	return domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}
}
