package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

func TestDepartmentDoctorsExcludesBlacklisted(t *testing.T) {
	depID := uuid.New()

	repo := new(mockDoctorRepo)
	repo.On("GetDepartment", mock.Anything, depID).Return(&doctor.Department{ID: depID}, nil)
	repo.On("ListByDepartment", mock.Anything, depID, false).Return(
		[]*doctor.Doctor{{Name: "Visible"}}, nil)

	svc := NewDirectoryService(repo, zap.NewNop())
	docs, err := svc.DepartmentDoctors(context.Background(), depID)

	require.NoError(t, err)
	assert.Len(t, docs, 1)
	repo.AssertCalled(t, "ListByDepartment", mock.Anything, depID, false)
}

func TestDepartmentDoctorsUnknownDepartment(t *testing.T) {
	depID := uuid.New()

	repo := new(mockDoctorRepo)
	repo.On("GetDepartment", mock.Anything, depID).Return(nil, doctor.ErrDepartmentNotFound)

	svc := NewDirectoryService(repo, zap.NewNop())
	_, err := svc.DepartmentDoctors(context.Background(), depID)
	assert.ErrorIs(t, err, doctor.ErrDepartmentNotFound)
}

func TestVisibleDoctorHidesBlacklisted(t *testing.T) {
	id := uuid.New()

	repo := new(mockDoctorRepo)
	repo.On("GetByID", mock.Anything, id).Return(
		&doctor.Doctor{ID: id, IsBlacklisted: true}, nil)

	svc := NewDirectoryService(repo, zap.NewNop())
	_, err := svc.VisibleDoctor(context.Background(), id)
	// Reported as missing, not as suspended.
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestVisibleDoctorPassesThrough(t *testing.T) {
	id := uuid.New()

	repo := new(mockDoctorRepo)
	repo.On("GetByID", mock.Anything, id).Return(&doctor.Doctor{ID: id, Name: "Dr A"}, nil)

	svc := NewDirectoryService(repo, zap.NewNop())
	d, err := svc.VisibleDoctor(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Dr A", d.Name)
}
