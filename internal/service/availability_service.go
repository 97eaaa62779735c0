package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

// HorizonDays is the production booking window: today through today+6.
const HorizonDays = 7

// SlotView is one cell of the availability grid.
type SlotView struct {
	Shift     schedule.Shift  `json:"shift"`
	StartTime time.Time       `json:"start_time"`
	SlotID    schedule.SlotID `json:"slot_id"`
	Working   bool            `json:"is_working"`
	Booked    bool            `json:"is_booked"`
	Available bool            `json:"is_available"`
}

// DaySlots is one horizon day with its two shift cells.
type DaySlots struct {
	Day   time.Time  `json:"date"`
	Slots []SlotView `json:"slots"`
}

// AvailabilityService derives the bookable-slot grid for a doctor. It
// combines the shift calendar with the booked rows of the ledger and has
// no knowledge of blacklist status; callers filter doctor eligibility
// before resolving.
type AvailabilityService struct {
	schedRepo schedule.Repository
	apptRepo  appointment.Repository
	log       *zap.Logger
}

func NewAvailabilityService(
	schedRepo schedule.Repository,
	apptRepo appointment.Repository,
	log *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{schedRepo: schedRepo, apptRepo: apptRepo, log: log}
}

type slotKey struct {
	day   time.Time
	shift schedule.Shift
}

// ResolveGrid computes, for each (date, shift) in dates × {morning,
// evening}, whether the doctor is working, whether the slot is booked, and
// their conjunction. Exactly two repository reads happen regardless of
// horizon length: one for availability records, one for booked
// appointments.
func (s *AvailabilityService) ResolveGrid(
	ctx context.Context,
	doctorID uuid.UUID,
	dates []time.Time,
) ([]DaySlots, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = schedule.DateOnly(d)
	}
	from, to := days[0], days[0]
	for _, d := range days[1:] {
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}

	records, err := s.schedRepo.ListRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading availability records: %w", err)
	}
	booked, err := s.apptRepo.ListBookedRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading booked appointments: %w", err)
	}

	recordByDay := make(map[time.Time]*schedule.AvailabilityRecord, len(records))
	for _, r := range records {
		recordByDay[schedule.DateOnly(r.Day)] = r
	}
	bookedSet := make(map[slotKey]struct{}, len(booked))
	for _, a := range booked {
		bookedSet[slotKey{day: schedule.DateOnly(a.Day), shift: a.Shift}] = struct{}{}
	}

	grid := make([]DaySlots, 0, len(days))
	for _, day := range days {
		rec := recordByDay[day]
		ds := DaySlots{Day: day, Slots: make([]SlotView, 0, 2)}
		for _, shift := range schedule.Shifts() {
			working := rec.IsWorking(shift)
			_, isBooked := bookedSet[slotKey{day: day, shift: shift}]
			ds.Slots = append(ds.Slots, SlotView{
				Shift:     shift,
				StartTime: shift.StartTime(day),
				SlotID:    schedule.NewSlotID(day, shift),
				Working:   working,
				Booked:    isBooked,
				Available: working && !isBooked,
			})
		}
		grid = append(grid, ds)
	}

	return grid, nil
}
