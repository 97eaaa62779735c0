package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Shift identifies one of the two fixed bookable slots per day. Each shift
// has a single start instant rather than a time range.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

const (
	morningStartHour = 8
	eveningStartHour = 16
)

func (s Shift) IsValid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// StartTime returns the shift start as a time-of-day on the given date.
func (s Shift) StartTime(day time.Time) time.Time {
	day = DateOnly(day)
	switch s {
	case ShiftEvening:
		return day.Add(eveningStartHour * time.Hour)
	default:
		return day.Add(morningStartHour * time.Hour)
	}
}

// Shifts returns the fixed shift set in booking order.
func Shifts() []Shift {
	return []Shift{ShiftMorning, ShiftEvening}
}

// ShiftFromClock maps an exact HH:MM:SS to a shift. Anything off the
// two fixed start times is not a bookable slot.
func ShiftFromClock(hour, min, sec int) (Shift, bool) {
	if min != 0 || sec != 0 {
		return "", false
	}
	switch hour {
	case morningStartHour:
		return ShiftMorning, true
	case eveningStartHour:
		return ShiftEvening, true
	}
	return "", false
}

// DateOnly truncates t to midnight UTC. All calendar dates in the system
// are stored this way; the clinic runs in a single implicit timezone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Horizon returns days consecutive dates starting at from.
func Horizon(from time.Time, days int) []time.Time {
	from = DateOnly(from)
	out := make([]time.Time, 0, days)
	for d := 0; d < days; d++ {
		out = append(out, from.AddDate(0, 0, d))
	}
	return out
}

// SlotID is the wire form of a bookable slot: "2006-01-02_15:04:05".
// It is what booking forms submit.
type SlotID string

func NewSlotID(day time.Time, shift Shift) SlotID {
	return SlotID(fmt.Sprintf("%s_%s",
		DateOnly(day).Format("2006-01-02"),
		shift.StartTime(day).Format("15:04:05"),
	))
}

// Parse decodes the slot identifier. The encoded time must exactly match
// one of the two shift start times; anything else is ErrMalformedSlot.
func (id SlotID) Parse() (time.Time, Shift, error) {
	parts := strings.SplitN(string(id), "_", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrMalformedSlot, id)
	}

	day, err := time.ParseInLocation("2006-01-02", parts[0], time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: bad date in %q", ErrMalformedSlot, id)
	}

	clock, err := time.Parse("15:04:05", parts[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: bad time in %q", ErrMalformedSlot, id)
	}

	shift, ok := ShiftFromClock(clock.Hour(), clock.Minute(), clock.Second())
	if !ok {
		return time.Time{}, "", fmt.Errorf("%w: %q is not a shift start", ErrMalformedSlot, id)
	}

	return day, shift, nil
}

// AvailabilityRecord declares which shifts a doctor works on one calendar
// date. At most one record exists per (doctor, date); a missing record
// means the doctor is not working that day.
type AvailabilityRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;uniqueIndex:uq_availability_doctor_day"`
	Day      time.Time `gorm:"column:day;type:date;not null;uniqueIndex:uq_availability_doctor_day"`

	MorningOpen bool `gorm:"column:morning_open;not null;default:false"`
	EveningOpen bool `gorm:"column:evening_open;not null;default:false"`
}

func (AvailabilityRecord) TableName() string {
	return "clinical.doctor_availability"
}

// IsWorking reports whether the record opens the given shift.
func (r *AvailabilityRecord) IsWorking(shift Shift) bool {
	if r == nil {
		return false
	}
	switch shift {
	case ShiftMorning:
		return r.MorningOpen
	case ShiftEvening:
		return r.EveningOpen
	}
	return false
}

type SetAvailabilityCommand struct {
	DoctorID    uuid.UUID
	Day         time.Time
	MorningOpen bool
	EveningOpen bool
}
