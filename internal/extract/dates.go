package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Terminal exports come from a day-first locale, so 02/03/2026 is the 2nd of
// March. ISO dates are accepted as well; US ordering is not.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"02.01.2006",
	"2006-01-02",
}

var dateTimeLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDate parses a calendar-date cell, day-first. Excel numeric serials are
// decoded too: biometric exports saved through Excel frequently come back with
// the date column as raw serial numbers.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, ok := ParseDateTime(s); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// Keep a plausible range so bare numbers like years or employee
		// codes are not mistaken for dates.
		if serial >= 20000 && serial <= 80000 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
			}
		}
	}

	return time.Time{}, false
}

// ParseDateTime parses a full timestamp cell, day-first.
func ParseDateTime(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
