// Package engine derives late-arrival, absence, and worked-hours records from
// a biometric attendance extract joined against the employee roster. One call
// to Run is one complete, self-contained derivation: nothing persists between
// runs and no employee's result depends on another's.
package engine

import (
	"time"

	"dawam/internal/extract"
)

// Options carries the run-wide computation settings. Zero values are not
// meaningful; build it with DefaultOptions and adjust.
type Options struct {
	StartTime    extract.Clock
	GraceMinutes int
	ScheduleMode Mode
	// OvertimeEnd is the shift-end threshold for exempt overtime outside
	// the seasonal window.
	OvertimeEnd extract.Clock
	// DailyRequiredHours is accepted for compatibility with older report
	// configurations; the exempt rule thresholds on the shift-end time,
	// not on a duration.
	DailyRequiredHours float64
	Season             Season
}

// Season is the calendar-wide reduced-hours window (the holy month). Any day
// inside [From, To] uses the seasonal start and shift-end instead of the
// employee's normal window.
type Season struct {
	From  time.Time
	To    time.Time
	Start extract.Clock
	End   extract.Clock
}

// Contains reports whether the date (ignoring its time component) falls in
// the seasonal window. An unset window contains nothing.
func (s Season) Contains(date time.Time) bool {
	if s.From.IsZero() || s.To.IsZero() {
		return false
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s.From) && !d.After(s.To)
}

func DefaultOptions() Options {
	return Options{
		StartTime:          extract.NewClock(8, 0),
		GraceMinutes:       15,
		ScheduleMode:       ModeByNationality,
		OvertimeEnd:        extract.NewClock(17, 0),
		DailyRequiredHours: 9,
		Season: Season{
			From:  time.Date(2026, time.February, 18, 0, 0, 0, 0, time.UTC),
			To:    time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC),
			Start: extract.NewClock(9, 30),
			End:   extract.NewClock(15, 30),
		},
	}
}

// DailyMetric is the per-employee, per-date computation result. WorkedMinutes
// and OvertimeMinutes stay zero under the standard rule.
type DailyMetric struct {
	Date            time.Time
	Weekday         time.Weekday
	IsWorkday       bool
	FirstIn         *extract.Clock
	LastOut         *extract.Clock
	LateMinutes     int
	WorkedMinutes   int
	OvertimeMinutes int
}

// LateDetail is one reportable exception day. Standard-rule employees appear
// when late; exempt employees when late or in overtime.
type LateDetail struct {
	EmployeeID      string         `json:"employee_id"`
	EmployeeNo      string         `json:"employee_no"`
	NameAr          string         `json:"name_ar"`
	NameEn          string         `json:"name_en"`
	JobTitle        string         `json:"job_title"`
	Nationality     string         `json:"nationality"`
	Department      string         `json:"department"`
	Date            string         `json:"date"`
	Weekday         string         `json:"weekday"`
	WeekdayAr       string         `json:"weekday_ar"`
	LateMinutes     int            `json:"late_minutes"`
	WorkedMinutes   int            `json:"worked_minutes,omitempty"`
	OvertimeMinutes int            `json:"overtime_minutes,omitempty"`
	Schedule        string         `json:"schedule"`
	FirstPunch      *extract.Clock `json:"first_punch_time"`
	LastPunch       *extract.Clock `json:"last_punch_time"`
	Rule            string         `json:"attendance_calculation"`
}

// AbsenceEvent is an expected workday with no observed presence.
type AbsenceEvent struct {
	EmployeeID  string `json:"employee_id"`
	EmployeeNo  string `json:"employee_no"`
	NameAr      string `json:"name_ar"`
	NameEn      string `json:"name_en"`
	JobTitle    string `json:"job_title"`
	Nationality string `json:"nationality"`
	Department  string `json:"department"`
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	WeekdayAr   string `json:"weekday_ar"`
	Schedule    string `json:"schedule"`
	Rule        string `json:"attendance_calculation"`
}

// ExemptDetail is the compact exception row for the exempt-employee report.
type ExemptDetail struct {
	EmployeeID      string         `json:"employee_id"`
	EmployeeNo      string         `json:"employee_no"`
	NameAr          string         `json:"name_ar"`
	Department      string         `json:"department"`
	Date            string         `json:"date"`
	WeekdayAr       string         `json:"weekday_ar"`
	FirstIn         *extract.Clock `json:"first_in"`
	LastOut         *extract.Clock `json:"last_out"`
	WorkedMinutes   int            `json:"worked_minutes"`
	LateMinutes     int            `json:"late_minutes"`
	OvertimeMinutes int            `json:"overtime_minutes"`
}

// Summary is the one-row-per-employee aggregate for the run.
type Summary struct {
	EmployeeID           string `json:"employee_id"`
	EmployeeNo           string `json:"employee_no"`
	NameAr               string `json:"name_ar"`
	NameEn               string `json:"name_en"`
	JobTitle             string `json:"job_title"`
	IsSaudi              bool   `json:"is_saudi"`
	Nationality          string `json:"nationality"`
	Department           string `json:"department"`
	Schedule             string `json:"schedule"`
	PeriodFrom           string `json:"period_from"`
	PeriodTo             string `json:"period_to"`
	PayrollMonth         int    `json:"payroll_month"`
	PayrollYear          int    `json:"payroll_year"`
	AbsentDays           int    `json:"absent_days"`
	LateDays             int    `json:"late_days"`
	TotalLateMinutes     int    `json:"total_late_minutes"`
	TotalOvertimeMinutes int    `json:"total_overtime_minutes"`
	Rule                 string `json:"attendance_calculation"`
}

// Result bundles the four collections one run produces. Employee ids match
// across all four for the same employee.
type Result struct {
	Summaries      []Summary      `json:"summary"`
	LateDetails    []LateDetail   `json:"late"`
	AbsenceDetails []AbsenceEvent `json:"absence"`
	ExemptDetails  []ExemptDetail `json:"exempt"`
}

// dateKey formats report dates; day-first to match the source locale.
func dateKey(t time.Time) string {
	return t.Format("02-01-2006")
}

var weekdayArabic = map[time.Weekday]string{
	time.Saturday:  "السبت",
	time.Sunday:    "الأحد",
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
}

// WeekdayArabic returns the Arabic display name for a weekday.
func WeekdayArabic(d time.Weekday) string {
	return weekdayArabic[d]
}
