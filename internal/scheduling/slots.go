package scheduling

import (
	"fmt"

	"healthcare-portal-server/internal/models"
)

const (
	slotIntervalMinutes = 30

	// maxSlots bounds slot expansion to 24 hours worth of 30-minute slots,
	// guarding against malformed windows causing unbounded iteration.
	maxSlots = 48
)

// GenerateSlots expands one availability window into 30-minute start-time
// slots in 12-hour display form, e.g. ["9:00 AM", "9:30 AM", ...]. The first
// slot is the window's start time and the last slot may land exactly on the
// window's end time. For an overnight window the hour counts up past 24 and
// the displayed hour wraps modulo 24.
func GenerateSlots(w models.Schedule) []string {
	startHour, startMinute, err := ParseClock(w.StartTime)
	if err != nil {
		return nil
	}
	endHour, endMinute, err := ParseClock(w.EndTime)
	if err != nil {
		return nil
	}

	maxHour := endHour
	if w.StartTime > w.EndTime {
		maxHour = 24 + endHour
	}

	var slots []string
	hour, minute := startHour, startMinute
	for hour < maxHour || (hour == maxHour && minute <= endMinute) {
		if len(slots) == maxSlots {
			break
		}
		displayHour := hour % 24
		slots = append(slots, FormatClock12(fmt.Sprintf("%02d:%02d", displayHour, minute)))

		minute += slotIntervalMinutes
		if minute >= 60 {
			minute = 0
			hour++
		}
	}
	return slots
}
