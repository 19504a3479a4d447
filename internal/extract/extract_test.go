package extract

import (
	"errors"
	"testing"
	"time"
)

func TestFindHeaderRowSkipsTitleRows(t *testing.T) {
	grid := Grid{
		{"Monthly Attendance Report"},
		{""},
		{"Employee ID", "First Name", "Date", "Weekday", "First Punch", "Last Punch"},
		{"1001", "Ahmed", "09-02-2026", "Monday", "08:05", "17:10"},
	}

	if got := FindHeaderRow(grid); got != 2 {
		t.Fatalf("expected header row 2, got %d", got)
	}
}

func TestFindHeaderRowFallsBackToZero(t *testing.T) {
	grid := Grid{
		{"nothing", "useful"},
		{"here", "either"},
	}
	if got := FindHeaderRow(grid); got != 0 {
		t.Fatalf("expected fallback to row 0, got %d", got)
	}
}

func TestParseProducesTypedRecords(t *testing.T) {
	grid := Grid{
		{"Biometric Export"},
		{"Employee ID", "Date", "First Punch", "Last Punch", "Department"},
		{"1001", "09-02-2026", "08:16", "17:02", "IT"},
		{"", "", "", "", ""},
		{"1002", "not-a-date", "garbage", "", "HR"},
	}

	records, err := Parse(grid)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (empty row dropped), got %d", len(records))
	}

	first := records[0]
	if first.EmployeeID != "1001" {
		t.Fatalf("unexpected employee id %q", first.EmployeeID)
	}
	want := time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Fatalf("expected day-first date %v, got %v", want, first.Date)
	}
	if first.FirstPunch == nil || first.FirstPunch.String() != "08:16" {
		t.Fatalf("unexpected first punch %v", first.FirstPunch)
	}
	if first.LastPunch == nil || first.LastPunch.String() != "17:02" {
		t.Fatalf("unexpected last punch %v", first.LastPunch)
	}

	// Malformed cells recover as "no value", never abort the row.
	second := records[1]
	if !second.Date.IsZero() {
		t.Fatalf("expected zero date for malformed cell, got %v", second.Date)
	}
	if second.FirstPunch != nil {
		t.Fatalf("expected missing punch for malformed cell, got %v", second.FirstPunch)
	}
}

func TestParseMissingColumnsIsFatal(t *testing.T) {
	grid := Grid{
		{"Employee ID", "First Punch"},
		{"1001", "08:00"},
	}

	_, err := Parse(grid)
	var missingErr *MissingColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missingErr.Missing) != 1 || missingErr.Missing[0] != "date" {
		t.Fatalf("unexpected missing set %v", missingErr.Missing)
	}
	if len(missingErr.Available) == 0 {
		t.Fatal("expected the error to name the available columns")
	}
}

func TestParseDateAcceptsSerials(t *testing.T) {
	// 2026-02-09 is serial 46062 in the 1900 date system.
	parsed, ok := ParseDate("46062")
	if !ok {
		t.Fatal("expected serial date to parse")
	}
	if parsed.Year() != 2026 || parsed.Month() != time.February || parsed.Day() != 9 {
		t.Fatalf("unexpected serial decode %v", parsed)
	}

	if _, ok := ParseDate("1001"); ok {
		t.Fatal("small integers must not be treated as dates")
	}
}

func TestParseClockShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"08:16", "08:16", true},
		{"8:16:30 AM", "08:16", true},
		{"09-02-2026 17:02:00", "17:02", true},
		{"0.5", "12:00", true},
		{"", "", false},
		{"banana", "", false},
	}
	for _, tc := range cases {
		clock, ok := ParseClock(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseClock(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && clock.String() != tc.want {
			t.Fatalf("ParseClock(%q) = %s, want %s", tc.in, clock, tc.want)
		}
	}
}

func TestClockMinutesAfter(t *testing.T) {
	limit := NewClock(8, 0).AddMinutes(15)

	if got := NewClock(8, 15).MinutesAfter(limit); got != 0 {
		t.Fatalf("punch at the limit must not be late, got %d", got)
	}
	if got := NewClock(8, 16).MinutesAfter(limit); got != 1 {
		t.Fatalf("one minute past the limit must be 1, got %d", got)
	}
	if got := NewClock(7, 30).MinutesAfter(limit); got != 0 {
		t.Fatalf("early punch must clamp to 0, got %d", got)
	}
	// Truncation, not rounding.
	if got := Clock(NewClock(8, 16)+30).MinutesAfter(limit); got != 1 {
		t.Fatalf("seconds must truncate, got %d", got)
	}
}
