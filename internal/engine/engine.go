package engine

import (
	"sort"
	"time"

	"dawam/internal/extract"
	"dawam/internal/roster"
)

// Run derives the four report collections from one attendance extract and the
// roster. Employees are processed independently and the output is sorted by
// employee id and date, so identical inputs always yield identical output.
//
// Only employees observed in the extract are iterated: with zero punches
// there is nothing to anchor the employee to the run, so a fully-absent
// employee does not appear at all.
func Run(records []extract.Record, profiles []roster.Profile, overrides []roster.Override, opts Options) (Result, error) {
	period, err := ResolvePeriod(records)
	if err != nil {
		return Result{}, err
	}

	profileByID := make(map[string]roster.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[roster.NormalizeID(p.EmployeeID)] = p
	}
	overrideByID := make(map[string]roster.Override, len(overrides))
	for _, o := range overrides {
		overrideByID[roster.NormalizeID(o.EmployeeID)] = o
	}

	grouped := map[string][]extract.Record{}
	for _, r := range records {
		id := roster.NormalizeID(r.EmployeeID)
		if id == "" {
			continue
		}
		grouped[id] = append(grouped[id], r)
	}

	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result Result
	for _, id := range ids {
		var override *roster.Override
		if o, ok := overrideByID[id]; ok {
			override = &o
		}
		deriveEmployee(&result, id, grouped[id], profileByID[id], override, period, opts)
	}
	return result, nil
}

// identity is the resolved display identity of one employee: roster fields
// first, attendance-extract fields as fallback, blanks when neither side
// knows. An employee missing from the roster is still reported.
type identity struct {
	EmployeeNo  string
	NameAr      string
	NameEn      string
	JobTitle    string
	Nationality string
	Department  string
}

func resolveIdentity(id string, rows []extract.Record, profile roster.Profile) identity {
	ident := identity{
		EmployeeNo:  profile.EmployeeNo,
		NameAr:      profile.NameAr,
		NameEn:      profile.NameEn,
		JobTitle:    profile.JobTitle,
		Nationality: profile.Nationality,
		Department:  profile.Department,
	}
	for _, r := range rows {
		if ident.NameAr == "" && r.Name != "" {
			ident.NameAr = r.Name
		}
		if ident.Department == "" && r.Department != "" {
			ident.Department = r.Department
		}
	}
	if ident.EmployeeNo == "" {
		ident.EmployeeNo = id
	}
	return ident
}

func deriveEmployee(result *Result, id string, rows []extract.Record, profile roster.Profile, override *roster.Override, period Period, opts Options) {
	ident := resolveIdentity(id, rows, profile)

	saturdayPresence := false
	for _, r := range rows {
		if !r.Date.IsZero() && r.Date.Weekday() == time.Saturday {
			saturdayPresence = true
			break
		}
	}
	policy := ResolvePolicy(profile, override, saturdayPresence, opts.ScheduleMode)
	schedule := policy.Label()

	days := aggregateDays(rows, policy, period)
	for i, day := range days {
		days[i] = computeMetric(day, profile.Rule, policy, opts)
	}

	// Reconciliation: expected workdays in the period minus observed dates.
	present := map[string]bool{}
	for _, r := range rows {
		if !r.Date.IsZero() {
			present[dateKey(r.Date)] = true
		}
	}
	absentDays := 0
	for d := period.Start; !d.After(period.End); d = d.AddDate(0, 0, 1) {
		if !policy.IsWorkday(d.Weekday()) || present[dateKey(d)] {
			continue
		}
		absentDays++
		result.AbsenceDetails = append(result.AbsenceDetails, AbsenceEvent{
			EmployeeID:  id,
			EmployeeNo:  ident.EmployeeNo,
			NameAr:      ident.NameAr,
			NameEn:      ident.NameEn,
			JobTitle:    ident.JobTitle,
			Nationality: ident.Nationality,
			Department:  ident.Department,
			Date:        dateKey(d),
			Weekday:     d.Weekday().String(),
			WeekdayAr:   WeekdayArabic(d.Weekday()),
			Schedule:    schedule,
			Rule:        profile.Rule.Label(),
		})
	}

	lateDays, totalLate, totalOvertime := 0, 0, 0
	for _, day := range days {
		if day.LateMinutes > 0 {
			lateDays++
		}
		totalLate += day.LateMinutes
		totalOvertime += day.OvertimeMinutes

		if profile.Rule == roster.RuleDailyHours {
			// Quiet days are suppressed from the detail views; they
			// still count in the period aggregates above.
			if day.LateMinutes == 0 && day.OvertimeMinutes == 0 {
				continue
			}
			result.LateDetails = append(result.LateDetails, LateDetail{
				EmployeeID:      id,
				EmployeeNo:      ident.EmployeeNo,
				NameAr:          ident.NameAr,
				NameEn:          ident.NameEn,
				JobTitle:        ident.JobTitle,
				Nationality:     ident.Nationality,
				Department:      ident.Department,
				Date:            dateKey(day.Date),
				Weekday:         day.Weekday.String(),
				WeekdayAr:       WeekdayArabic(day.Weekday),
				LateMinutes:     day.LateMinutes,
				WorkedMinutes:   day.WorkedMinutes,
				OvertimeMinutes: day.OvertimeMinutes,
				Schedule:        schedule,
				FirstPunch:      day.FirstIn,
				LastPunch:       day.LastOut,
				Rule:            profile.Rule.Label(),
			})
			result.ExemptDetails = append(result.ExemptDetails, ExemptDetail{
				EmployeeID:      id,
				EmployeeNo:      ident.EmployeeNo,
				NameAr:          ident.NameAr,
				Department:      ident.Department,
				Date:            dateKey(day.Date),
				WeekdayAr:       WeekdayArabic(day.Weekday),
				FirstIn:         day.FirstIn,
				LastOut:         day.LastOut,
				WorkedMinutes:   day.WorkedMinutes,
				LateMinutes:     day.LateMinutes,
				OvertimeMinutes: day.OvertimeMinutes,
			})
			continue
		}

		if day.LateMinutes > 0 {
			result.LateDetails = append(result.LateDetails, LateDetail{
				EmployeeID:  id,
				EmployeeNo:  ident.EmployeeNo,
				NameAr:      ident.NameAr,
				NameEn:      ident.NameEn,
				JobTitle:    ident.JobTitle,
				Nationality: ident.Nationality,
				Department:  ident.Department,
				Date:        dateKey(day.Date),
				Weekday:     day.Weekday.String(),
				WeekdayAr:   WeekdayArabic(day.Weekday),
				LateMinutes: day.LateMinutes,
				Schedule:    schedule,
				FirstPunch:  day.FirstIn,
				LastPunch:   day.LastOut,
				Rule:        profile.Rule.Label(),
			})
		}
	}

	result.Summaries = append(result.Summaries, Summary{
		EmployeeID:           id,
		EmployeeNo:           ident.EmployeeNo,
		NameAr:               ident.NameAr,
		NameEn:               ident.NameEn,
		JobTitle:             ident.JobTitle,
		IsSaudi:              roster.IsSaudi(ident.Nationality),
		Nationality:          ident.Nationality,
		Department:           ident.Department,
		Schedule:             schedule,
		PeriodFrom:           dateKey(period.Start),
		PeriodTo:             dateKey(period.End),
		PayrollMonth:         int(period.PayrollMonth),
		PayrollYear:          period.PayrollYear,
		AbsentDays:           absentDays,
		LateDays:             lateDays,
		TotalLateMinutes:     totalLate,
		TotalOvertimeMinutes: totalOvertime,
		Rule:                 profile.Rule.Label(),
	})
}

// aggregateDays collapses the raw rows of one employee into one DailyMetric
// per calendar date inside the payroll period. Punch pairs split across rows
// reduce to min(first punch) / max(last punch).
func aggregateDays(rows []extract.Record, policy Policy, period Period) []DailyMetric {
	byDate := map[string]*DailyMetric{}
	var order []string

	for _, r := range rows {
		if r.Date.IsZero() || !period.Contains(r.Date) {
			continue
		}
		key := dateKey(r.Date)
		day, ok := byDate[key]
		if !ok {
			day = &DailyMetric{
				Date:      r.Date,
				Weekday:   r.Date.Weekday(),
				IsWorkday: policy.IsWorkday(r.Date.Weekday()),
			}
			byDate[key] = day
			order = append(order, key)
		}
		if r.FirstPunch != nil && (day.FirstIn == nil || *r.FirstPunch < *day.FirstIn) {
			v := *r.FirstPunch
			day.FirstIn = &v
		}
		if r.LastPunch != nil && (day.LastOut == nil || *r.LastPunch > *day.LastOut) {
			v := *r.LastPunch
			day.LastOut = &v
		}
	}

	days := make([]DailyMetric, 0, len(order))
	for _, key := range order {
		days = append(days, *byDate[key])
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}
