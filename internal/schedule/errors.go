package schedule

import "errors"

var (
	// ErrInvalidHoursFormat means the clinic's opening-hours string could not
	// be parsed into an open/close boundary.
	ErrInvalidHoursFormat = errors.New("invalid opening hours format")

	// ErrInvalidDateFormat means a requested day did not parse as YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidSlot means the chosen slot falls outside the clinic's opening
	// hours or off the 30-minute grid. Rejected before any write.
	ErrInvalidSlot = errors.New("slot outside opening hours or off the 30-minute grid")

	// ErrSlotConflict means another booking for the same (doctor, slot) pair
	// won the race. The caller should re-query available slots.
	ErrSlotConflict = errors.New("slot already booked for this doctor")
)
