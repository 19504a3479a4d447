package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day stored as seconds since midnight. Punch columns in
// terminal exports carry bare times, full timestamps, or Excel fraction
// serials; everything is reduced to this one representation.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*3600 + minute*60)
}

func (c Clock) Hour() int   { return int(c) / 3600 }
func (c Clock) Minute() int { return (int(c) % 3600) / 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// AddMinutes is used to push a start time forward by a grace period.
func (c Clock) AddMinutes(minutes int) Clock {
	return c + Clock(minutes*60)
}

// MinutesAfter returns the whole minutes c falls after threshold, truncated
// and clamped to zero.
func (c Clock) MinutesAfter(threshold Clock) int {
	diff := int(c) - int(threshold)
	if diff <= 0 {
		return 0
	}
	return diff / 60
}

// MarshalJSON renders the clock as "HH:MM"; report consumers treat punches
// as display strings.
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, ok := ParseClock(s)
	if !ok {
		return fmt.Errorf("invalid clock value %q", s)
	}
	*c = parsed
	return nil
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// ParseClock parses a time-of-day cell. The bool result reports whether the
// cell held a usable time; malformed cells are treated as "no punch".
func ParseClock(value string) (Clock, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return Clock(t.Hour()*3600 + t.Minute()*60 + t.Second()), true
		}
	}

	// Timestamp cells: take the time component.
	if t, ok := ParseDateTime(s); ok {
		return Clock(t.Hour()*3600 + t.Minute()*60 + t.Second()), true
	}

	// Excel serials: the fractional part is the fraction of a day.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 0 {
		frac := serial - math.Floor(serial)
		return Clock(int(math.Floor(frac * 86400))), true
	}

	return 0, false
}
