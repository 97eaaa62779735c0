package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken means another booked appointment already holds the
	// (doctor, day, time) tuple. Callers should re-resolve availability
	// and resubmit with a different slot.
	ErrSlotTaken = errors.New("slot is already booked")

	// ErrDoctorUnavailable covers both a blacklisted doctor and a shift
	// the doctor is not working.
	ErrDoctorUnavailable = errors.New("doctor is not available for this slot")

	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
)
