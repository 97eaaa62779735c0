package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveGridConjunction(t *testing.T) {
	doctorID := uuid.New()
	d1 := day(2025, 9, 24)
	d2 := day(2025, 9, 25)

	schedRepo := new(mockScheduleRepo)
	apptRepo := new(mockAppointmentRepo)

	// Day 1: both shifts open, morning already booked. Day 2: no record.
	schedRepo.On("ListRange", mock.Anything, doctorID, d1, d2).Return(
		[]*schedule.AvailabilityRecord{
			{DoctorID: doctorID, Day: d1, MorningOpen: true, EveningOpen: true},
		}, nil)
	apptRepo.On("ListBookedRange", mock.Anything, doctorID, d1, d2).Return(
		[]*appointment.Appointment{
			{DoctorID: doctorID, Day: d1, Shift: schedule.ShiftMorning, Status: appointment.StatusBooked},
		}, nil)

	svc := NewAvailabilityService(schedRepo, apptRepo, zap.NewNop())
	grid, err := svc.ResolveGrid(context.Background(), doctorID, []time.Time{d1, d2})
	require.NoError(t, err)
	require.Len(t, grid, 2)

	d1Morning, d1Evening := grid[0].Slots[0], grid[0].Slots[1]
	assert.True(t, d1Morning.Working)
	assert.True(t, d1Morning.Booked)
	assert.False(t, d1Morning.Available, "booked slot must not be available")
	assert.True(t, d1Evening.Working)
	assert.False(t, d1Evening.Booked)
	assert.True(t, d1Evening.Available)

	// A day without an availability record yields working=false for both
	// shifts even though nothing is booked.
	for _, slot := range grid[1].Slots {
		assert.False(t, slot.Working)
		assert.False(t, slot.Booked)
		assert.False(t, slot.Available)
	}

	schedRepo.AssertNumberOfCalls(t, "ListRange", 1)
	apptRepo.AssertNumberOfCalls(t, "ListBookedRange", 1)
}

func TestResolveGridMorningOnly(t *testing.T) {
	doctorID := uuid.New()
	d := day(2025, 9, 24)

	schedRepo := new(mockScheduleRepo)
	apptRepo := new(mockAppointmentRepo)

	schedRepo.On("ListRange", mock.Anything, doctorID, d, d).Return(
		[]*schedule.AvailabilityRecord{
			{DoctorID: doctorID, Day: d, MorningOpen: true, EveningOpen: false},
		}, nil)
	apptRepo.On("ListBookedRange", mock.Anything, doctorID, d, d).Return(
		[]*appointment.Appointment{}, nil)

	svc := NewAvailabilityService(schedRepo, apptRepo, zap.NewNop())
	grid, err := svc.ResolveGrid(context.Background(), doctorID, []time.Time{d})
	require.NoError(t, err)
	require.Len(t, grid, 1)
	require.Len(t, grid[0].Slots, 2)

	assert.True(t, grid[0].Slots[0].Available)
	assert.Equal(t, schedule.SlotID("2025-09-24_08:00:00"), grid[0].Slots[0].SlotID)
	assert.False(t, grid[0].Slots[1].Available)
}

func TestResolveGridSevenDayHorizonBatchesReads(t *testing.T) {
	doctorID := uuid.New()
	dates := schedule.Horizon(day(2025, 9, 24), HorizonDays)

	schedRepo := new(mockScheduleRepo)
	apptRepo := new(mockAppointmentRepo)

	schedRepo.On("ListRange", mock.Anything, doctorID, dates[0], dates[6]).Return(
		[]*schedule.AvailabilityRecord{}, nil)
	apptRepo.On("ListBookedRange", mock.Anything, doctorID, dates[0], dates[6]).Return(
		[]*appointment.Appointment{}, nil)

	svc := NewAvailabilityService(schedRepo, apptRepo, zap.NewNop())
	grid, err := svc.ResolveGrid(context.Background(), doctorID, dates)
	require.NoError(t, err)
	assert.Len(t, grid, HorizonDays)

	// One availability read and one ledger read regardless of horizon size.
	schedRepo.AssertNumberOfCalls(t, "ListRange", 1)
	apptRepo.AssertNumberOfCalls(t, "ListBookedRange", 1)
}

func TestResolveGridEmptyDates(t *testing.T) {
	svc := NewAvailabilityService(new(mockScheduleRepo), new(mockAppointmentRepo), zap.NewNop())
	grid, err := svc.ResolveGrid(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, grid)
}
