package engine

import (
	"time"

	"dawam/internal/extract"
	"dawam/internal/roster"
)

// dayWindow resolves the thresholds in force on one calendar date: the late
// limit (start time plus grace) and the shift-end used for exempt overtime.
// Priority: the seasonal window overrides everything for days inside it;
// otherwise a worked Saturday may carry its own start/grace.
func dayWindow(date time.Time, policy Policy, opts Options) (lateLimit, shiftEnd extract.Clock) {
	if opts.Season.Contains(date) {
		return opts.Season.Start.AddMinutes(opts.GraceMinutes), opts.Season.End
	}

	start := opts.StartTime
	grace := opts.GraceMinutes
	if date.Weekday() == time.Saturday {
		if policy.SaturdayStart != nil {
			start = *policy.SaturdayStart
		}
		if policy.SaturdayGrace != nil {
			grace = *policy.SaturdayGrace
		}
	}
	return start.AddMinutes(grace), opts.OvertimeEnd
}

// computeMetric fills in the rule-dependent minute counts for one aggregated
// employee-day. Non-workdays are zero across the board by construction.
func computeMetric(day DailyMetric, rule roster.Rule, policy Policy, opts Options) DailyMetric {
	if !day.IsWorkday {
		return day
	}

	lateLimit, shiftEnd := dayWindow(day.Date, policy, opts)

	if day.FirstIn != nil {
		day.LateMinutes = day.FirstIn.MinutesAfter(lateLimit)
	}

	if rule != roster.RuleDailyHours {
		return day
	}

	if day.FirstIn != nil && day.LastOut != nil {
		day.WorkedMinutes = day.LastOut.MinutesAfter(*day.FirstIn)
	}
	if day.LastOut != nil {
		day.OvertimeMinutes = day.LastOut.MinutesAfter(shiftEnd)
	}
	return day
}
