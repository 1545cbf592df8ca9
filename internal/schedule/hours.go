package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseOpeningHours parses a clinic window like "8AM-5PM" into open and close
// hours on the 24-hour clock. 12AM maps to 0 and 12PM to 12; other PM hours
// are offset by +12.
func ParseOpeningHours(s string) (open, close int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHoursFormat, s)
	}
	open, err = parseHourMarker(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHoursFormat, s)
	}
	close, err = parseHourMarker(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHoursFormat, s)
	}
	return open, close, nil
}

func parseHourMarker(m string) (int, error) {
	m = strings.ToUpper(strings.TrimSpace(m))
	var pm bool
	switch {
	case strings.HasSuffix(m, "AM"):
	case strings.HasSuffix(m, "PM"):
		pm = true
	default:
		return 0, ErrInvalidHoursFormat
	}
	h, err := strconv.Atoi(strings.TrimSpace(m[:len(m)-2]))
	if err != nil || h < 1 || h > 12 {
		return 0, ErrInvalidHoursFormat
	}
	if pm && h != 12 {
		h += 12
	}
	if !pm && h == 12 {
		h = 0
	}
	return h, nil
}

// ParseDay parses a requested calendar day in YYYY-MM-DD form (UTC).
func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return day, nil
}
