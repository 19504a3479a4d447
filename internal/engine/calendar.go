package engine

import (
	"time"

	"dawam/internal/extract"
	"dawam/internal/roster"
)

// Mode selects the weekend policy used when no explicit per-employee override
// exists.
type Mode string

const (
	// ModeByNationality: Friday is never a workday; Saturday is a workday
	// only for non-Saudi employees with observed Saturday presence.
	ModeByNationality Mode = "by_nationality"
	// ModeAuto: Saturday is a workday whenever any Saturday row exists for
	// the employee, nationality regardless.
	ModeAuto Mode = "auto"
	// ModeFriday: Friday off, Saturday always a workday.
	ModeFriday Mode = "fri"
	// ModeFridaySaturday: both weekend days off.
	ModeFridaySaturday Mode = "fri_sat"
)

// ParseMode maps a configuration string to a Mode, defaulting to the
// nationality policy.
func ParseMode(value string) Mode {
	switch Mode(value) {
	case ModeAuto, ModeFriday, ModeFridaySaturday:
		return Mode(value)
	default:
		return ModeByNationality
	}
}

// Schedule display labels. The label names the employee's rest days, so
// "Friday only" means Saturday is worked.
const (
	scheduleFridayOnly     = "جمعة فقط"
	scheduleFridaySaturday = "جمعة وسبت"
)

// Policy is an employee's resolved work calendar for the run: which weekend
// days are worked and what start/grace applies on Saturdays when they are.
type Policy struct {
	FridayWork    bool
	SaturdayWork  bool
	SaturdayStart *extract.Clock
	SaturdayGrace *int
}

// IsWorkday applies the resolved calendar to a weekday. Sunday through
// Thursday are always workdays in this locale.
func (p Policy) IsWorkday(day time.Weekday) bool {
	switch day {
	case time.Friday:
		return p.FridayWork
	case time.Saturday:
		return p.SaturdayWork
	default:
		return true
	}
}

// Label is the schedule string shown on every report row.
func (p Policy) Label() string {
	if p.SaturdayWork {
		return scheduleFridayOnly
	}
	return scheduleFridaySaturday
}

// InferSaturdayWorkday is the observed-presence heuristic isolated as a
// policy function: under the nationality default an employee works Saturdays
// only when non-Saudi and actually seen on a Saturday.
func InferSaturdayWorkday(isSaudi, saturdayPresence bool, mode Mode) bool {
	switch mode {
	case ModeFriday:
		return true
	case ModeFridaySaturday:
		return false
	case ModeAuto:
		return saturdayPresence
	default:
		return !isSaudi && saturdayPresence
	}
}

// ResolvePolicy decides the employee's calendar. Highest priority first: the
// exceptions table, then roster columns, then the mode default. Friday work
// can only come from an explicit override; no mode turns Friday on.
func ResolvePolicy(profile roster.Profile, override *roster.Override, saturdayPresence bool, mode Mode) Policy {
	policy := Policy{
		FridayWork:    false,
		SaturdayWork:  InferSaturdayWorkday(roster.IsSaudi(profile.Nationality), saturdayPresence, mode),
		SaturdayStart: profile.SaturdayStart,
		SaturdayGrace: profile.SaturdayGrace,
	}

	if profile.FridayWork != nil {
		policy.FridayWork = *profile.FridayWork
	}
	if profile.SaturdayWork != nil {
		policy.SaturdayWork = *profile.SaturdayWork
	}

	if override != nil {
		if override.FridayWork != nil {
			policy.FridayWork = *override.FridayWork
		}
		if override.SaturdayWork != nil {
			policy.SaturdayWork = *override.SaturdayWork
		}
		if override.SaturdayStart != nil {
			policy.SaturdayStart = override.SaturdayStart
		}
		if override.SaturdayGrace != nil {
			policy.SaturdayGrace = override.SaturdayGrace
		}
	}

	return policy
}
