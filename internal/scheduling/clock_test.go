package scheduling

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"00:00", 0, 0, true},
		{"09:30", 9, 30, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"9:30", 0, 0, false}, // must be zero padded
		{"0930", 0, 0, false},
		{"", 0, 0, false},
		{"ab:cd", 0, 0, false},
	}

	for _, tc := range cases {
		hour, minute, err := ParseClock(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %02d:%02d", tc.in, hour, minute)
			}
			continue
		}
		if hour != tc.hour || minute != tc.minute {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tc.in, hour, minute, tc.hour, tc.minute)
		}
	}
}

func TestFormatClock12(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"00:30": "12:30 AM",
		"09:00": "9:00 AM",
		"12:00": "12:00 PM",
		"13:05": "1:05 PM",
		"17:30": "5:30 PM",
		"23:59": "11:59 PM",
	}
	for in, want := range cases {
		if got := FormatClock12(in); got != want {
			t.Errorf("FormatClock12(%q) = %q, want %q", in, got, want)
		}
	}

	// Invalid input passes through unchanged.
	if got := FormatClock12("not-a-time"); got != "not-a-time" {
		t.Errorf("FormatClock12 on invalid input = %q", got)
	}
}

func TestWeekdayOf(t *testing.T) {
	day, err := WeekdayOf("2025-05-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day != "Monday" {
		t.Errorf("WeekdayOf(2025-05-05) = %q, want Monday", day)
	}

	if _, err := WeekdayOf("05/05/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestIsDayOfWeek(t *testing.T) {
	for _, d := range []string{"Monday", "Sunday"} {
		if !IsDayOfWeek(d) {
			t.Errorf("IsDayOfWeek(%q) = false", d)
		}
	}
	for _, d := range []string{"monday", "Funday", ""} {
		if IsDayOfWeek(d) {
			t.Errorf("IsDayOfWeek(%q) = true", d)
		}
	}
}
