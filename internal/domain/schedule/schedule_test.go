package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIDRoundTrip(t *testing.T) {
	day := time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC)

	id := NewSlotID(day, ShiftMorning)
	assert.Equal(t, SlotID("2025-09-24_08:00:00"), id)

	gotDay, gotShift, err := id.Parse()
	require.NoError(t, err)
	assert.Equal(t, day, gotDay)
	assert.Equal(t, ShiftMorning, gotShift)

	id = NewSlotID(day, ShiftEvening)
	assert.Equal(t, SlotID("2025-09-24_16:00:00"), id)

	gotDay, gotShift, err = id.Parse()
	require.NoError(t, err)
	assert.Equal(t, day, gotDay)
	assert.Equal(t, ShiftEvening, gotShift)
}

func TestSlotIDParseRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		id   SlotID
	}{
		{"empty", SlotID("")},
		{"no separator", SlotID("2025-09-24")},
		{"garbage date", SlotID("not-a-date_08:00:00")},
		{"garbage time", SlotID("2025-09-24_not-a-time")},
		{"off-grid hour", SlotID("2025-09-24_09:00:00")},
		{"off-grid minute", SlotID("2025-09-24_08:30:00")},
		{"off-grid second", SlotID("2025-09-24_08:00:01")},
		{"midnight", SlotID("2025-09-24_00:00:00")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.id.Parse()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedSlot))
		})
	}
}

func TestShiftFromClock(t *testing.T) {
	s, ok := ShiftFromClock(8, 0, 0)
	require.True(t, ok)
	assert.Equal(t, ShiftMorning, s)

	s, ok = ShiftFromClock(16, 0, 0)
	require.True(t, ok)
	assert.Equal(t, ShiftEvening, s)

	_, ok = ShiftFromClock(12, 0, 0)
	assert.False(t, ok)
	_, ok = ShiftFromClock(8, 15, 0)
	assert.False(t, ok)
	_, ok = ShiftFromClock(16, 0, 30)
	assert.False(t, ok)
}

func TestShiftStartTime(t *testing.T) {
	// Any intra-day component of the input is discarded.
	day := time.Date(2025, 9, 24, 13, 45, 12, 0, time.UTC)

	assert.Equal(t,
		time.Date(2025, 9, 24, 8, 0, 0, 0, time.UTC),
		ShiftMorning.StartTime(day))
	assert.Equal(t,
		time.Date(2025, 9, 24, 16, 0, 0, 0, time.UTC),
		ShiftEvening.StartTime(day))
}

func TestHorizon(t *testing.T) {
	from := time.Date(2025, 9, 28, 22, 10, 0, 0, time.UTC)

	days := Horizon(from, 7)
	require.Len(t, days, 7)
	assert.Equal(t, time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC), days[0])
	// Crosses the month boundary without gaps.
	assert.Equal(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC), days[6])
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestIsWorkingNilRecord(t *testing.T) {
	// No record for a day means the doctor is off.
	var rec *AvailabilityRecord
	assert.False(t, rec.IsWorking(ShiftMorning))
	assert.False(t, rec.IsWorking(ShiftEvening))
}

func TestIsWorkingPerShift(t *testing.T) {
	rec := &AvailabilityRecord{MorningOpen: true, EveningOpen: false}
	assert.True(t, rec.IsWorking(ShiftMorning))
	assert.False(t, rec.IsWorking(ShiftEvening))
	assert.False(t, rec.IsWorking(Shift("midday")))
}
