package engine

import (
	"errors"
	"time"

	"dawam/internal/extract"
)

// ErrEmptyExtract is fatal: with no parsable date anywhere in the extract
// there is no payroll period to report against.
var ErrEmptyExtract = errors.New("attendance extract contains no usable dates")

// Period is the rolling payroll window: the 8th of a month through the 7th of
// the next, inclusive. The payroll label month is the month the period ends
// in.
type Period struct {
	Start        time.Time
	End          time.Time
	PayrollMonth time.Month
	PayrollYear  int
}

// Contains reports whether a date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start) && !d.After(p.End)
}

// ResolvePeriod anchors the payroll window on the latest date present in the
// whole extract. One period is derived per run and applied to every employee;
// the anchor is never per-employee.
func ResolvePeriod(records []extract.Record) (Period, error) {
	var anchor time.Time
	for _, r := range records {
		if r.Date.After(anchor) {
			anchor = r.Date
		}
	}
	if anchor.IsZero() {
		return Period{}, ErrEmptyExtract
	}
	return periodAround(anchor), nil
}

func periodAround(anchor time.Time) Period {
	year, month := anchor.Year(), anchor.Month()

	var start time.Time
	if anchor.Day() >= 8 {
		start = time.Date(year, month, 8, 0, 0, 0, 0, time.UTC)
	} else {
		// Anchor sits in the tail of the previous window. AddDate
		// handles the January rollback.
		start = time.Date(year, month, 8, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	}
	end := start.AddDate(0, 1, -1)

	return Period{
		Start:        start,
		End:          end,
		PayrollMonth: end.Month(),
		PayrollYear:  end.Year(),
	}
}
