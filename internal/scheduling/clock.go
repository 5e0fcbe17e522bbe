package scheduling

import (
	"fmt"
	"time"
)

// daysOfWeek lists valid schedule day names, Monday first to match the
// portal's week layout.
var daysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsDayOfWeek reports whether s is a valid schedule day name.
func IsDayOfWeek(s string) bool {
	for _, d := range daysOfWeek {
		if d == s {
			return true
		}
	}
	return false
}

// ParseClock parses a 24-hour "HH:MM" string into hour and minute components.
// Zero-padded input is required so that plain string comparison of two clock
// values orders them chronologically.
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

// FormatClock12 renders a 24-hour "HH:MM" string in 12-hour display form,
// e.g. "17:30" becomes "5:30 PM". Invalid input is returned unchanged.
func FormatClock12(s string) string {
	hour, _, err := ParseClock(s)
	if err != nil {
		return s
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, s[3:], ampm)
}

// WeekdayOf returns the day name ("Monday".."Sunday") for a "2006-01-02" date.
func WeekdayOf(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return d.Weekday().String(), nil
}
