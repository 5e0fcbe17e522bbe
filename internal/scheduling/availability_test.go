package scheduling

import (
	"errors"
	"testing"

	"healthcare-portal-server/internal/models"
)

func window(day, start, end string) models.Schedule {
	return models.Schedule{
		DoctorID:    "doc-1",
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow(window("Monday", "09:00", "17:00")); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}

	// Overnight windows are legal.
	if err := ValidateWindow(window("Friday", "17:00", "01:00")); err != nil {
		t.Errorf("overnight window rejected: %v", err)
	}

	if err := ValidateWindow(window("Monday", "09:00", "09:00")); !errors.Is(err, ErrSameStartAndEnd) {
		t.Errorf("equal start/end: got %v, want ErrSameStartAndEnd", err)
	}
	if err := ValidateWindow(window("Blursday", "09:00", "17:00")); err == nil {
		t.Error("invalid day accepted")
	}
	if err := ValidateWindow(window("Monday", "9am", "17:00")); err == nil {
		t.Error("invalid start time accepted")
	}
	if err := ValidateWindow(window("Monday", "09:00", "25:00")); err == nil {
		t.Error("invalid end time accepted")
	}
}

func TestWindowContains_Normal(t *testing.T) {
	w := window("Monday", "09:00", "17:00")

	cases := map[string]bool{
		"09:00": true, // inclusive lower bound
		"12:30": true,
		"17:00": true, // inclusive upper bound, booking exactly at closing is accepted
		"08:59": false,
		"17:01": false,
		"00:00": false,
	}
	for clock, want := range cases {
		if got := WindowContains(w, clock); got != want {
			t.Errorf("WindowContains(09:00-17:00, %s) = %v, want %v", clock, got, want)
		}
	}
}

func TestWindowContains_Overnight(t *testing.T) {
	// 17:00 Monday wrapping past midnight to 01:00.
	w := window("Monday", "17:00", "01:00")

	cases := map[string]bool{
		"17:00": true,
		"23:30": true,
		"00:00": true,
		"01:00": true, // inclusive at the far end too
		"02:00": false,
		"16:59": false,
		"12:00": false,
	}
	for clock, want := range cases {
		if got := WindowContains(w, clock); got != want {
			t.Errorf("WindowContains(17:00-01:00, %s) = %v, want %v", clock, got, want)
		}
	}
}

func TestWindowsContain_Union(t *testing.T) {
	// Overlapping windows are legal; their union defines availability.
	windows := []models.Schedule{
		window("Monday", "09:00", "12:00"),
		window("Monday", "11:00", "15:00"),
	}

	for clock, want := range map[string]bool{
		"09:00": true,
		"11:30": true,
		"15:00": true,
		"15:30": false,
		"08:00": false,
	} {
		if got := WindowsContain(windows, clock); got != want {
			t.Errorf("WindowsContain(%s) = %v, want %v", clock, got, want)
		}
	}

	if WindowsContain(nil, "09:00") {
		t.Error("empty window set should not contain any time")
	}
}
