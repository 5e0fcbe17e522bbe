package scheduling

import (
	"errors"
	"fmt"

	"healthcare-portal-server/internal/models"
)

// ErrSameStartAndEnd rejects windows whose start equals their end; such a
// window is ambiguous between zero length and a full day.
var ErrSameStartAndEnd = errors.New("start time and end time cannot be the same")

// ValidateWindow checks a schedule entry before it is persisted.
// StartTime > EndTime is legal and denotes an overnight window.
func ValidateWindow(w models.Schedule) error {
	if !IsDayOfWeek(w.DayOfWeek) {
		return fmt.Errorf("invalid day of week %q", w.DayOfWeek)
	}
	if _, _, err := ParseClock(w.StartTime); err != nil {
		return err
	}
	if _, _, err := ParseClock(w.EndTime); err != nil {
		return err
	}
	if w.StartTime == w.EndTime {
		return ErrSameStartAndEnd
	}
	return nil
}

// WindowContains reports whether clock time t ("HH:MM") falls inside the
// window. Both bounds are inclusive, so a booking exactly at closing time is
// accepted. For an overnight window (start > end) the window wraps past
// midnight, which turns the AND into an OR.
func WindowContains(w models.Schedule, t string) bool {
	if w.StartTime <= w.EndTime {
		return t >= w.StartTime && t <= w.EndTime
	}
	return t >= w.StartTime || t <= w.EndTime
}

// WindowsContain reports whether any window covers t. Overlapping windows are
// legal; their union defines the day's availability.
func WindowsContain(windows []models.Schedule, t string) bool {
	for _, w := range windows {
		if WindowContains(w, t) {
			return true
		}
	}
	return false
}
