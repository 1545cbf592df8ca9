package schedule

import "time"

// SlotLength is the fixed appointment granularity.
const SlotLength = 30 * time.Minute

// Slots enumerates candidate slot starts for one calendar day, stepping by
// SlotLength from day@open:00 while strictly before day@close:00. The close
// boundary is exclusive: 8AM-5PM yields 08:00 through 16:30, never 17:00.
// Pure function; it knows nothing about bookings.
func Slots(day time.Time, open, close int) []time.Time {
	year, month, d := day.Date()
	cur := time.Date(year, month, d, open, 0, 0, 0, day.Location())
	end := time.Date(year, month, d, close, 0, 0, 0, day.Location())

	var out []time.Time
	for cur.Before(end) {
		out = append(out, cur)
		cur = cur.Add(SlotLength)
	}
	return out
}

// ValidateSlot checks that a chosen slot start lies inside the [open, close)
// window and on the 30-minute grid.
func ValidateSlot(slot time.Time, open, close int) error {
	if slot.Minute()%30 != 0 || slot.Second() != 0 || slot.Nanosecond() != 0 {
		return ErrInvalidSlot
	}
	if h := slot.Hour(); h < open || h >= close {
		return ErrInvalidSlot
	}
	return nil
}

// slotKey normalizes a slot timestamp for set membership, so that committed
// slots loaded from storage compare equal to generated candidates regardless
// of location.
func slotKey(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
