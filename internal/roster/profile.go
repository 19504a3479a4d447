// Package roster holds the employee master data the attendance engine joins
// against: identity fields, the attendance-rule flag, and per-employee
// schedule overrides. Roster files arrive with bilingual, inconsistently
// capitalized headers, so all recognized variants are mapped through one
// alias table here and nowhere else.
package roster

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"dawam/internal/extract"
)

// Rule selects how an employee's daily metrics are computed.
type Rule int

const (
	// RuleStandard accrues late minutes against a fixed start time.
	RuleStandard Rule = iota
	// RuleDailyHours is the exempt class: worked-hours and overtime
	// accounting instead of fixed-start lateness.
	RuleDailyHours
)

// Label is the wire value carried in report rows: empty for the standard
// rule, "daily_hours" for exempt employees.
func (r Rule) Label() string {
	if r == RuleDailyHours {
		return "daily_hours"
	}
	return ""
}

// Profile is one roster entry.
type Profile struct {
	EmployeeID    string
	EmployeeNo    string
	NameAr        string
	NameEn        string
	JobTitle      string
	Nationality   string
	Department    string
	Rule          Rule
	FridayWork    *bool
	SaturdayWork  *bool
	SaturdayStart *extract.Clock
	SaturdayGrace *int
}

// Override is a per-employee schedule exception. It outranks both the roster
// columns and the nationality default.
type Override struct {
	EmployeeID    string         `json:"employee_id"`
	FridayWork    *bool          `json:"fri_work"`
	SaturdayWork  *bool          `json:"sat_work"`
	SaturdayStart *extract.Clock `json:"sat_start"`
	SaturdayGrace *int           `json:"sat_grace"`
}

// ErrNoEmployeeColumn is returned when a roster upload exposes no recognized
// employee-id column; such a file cannot be joined against anything.
var ErrNoEmployeeColumn = errors.New("roster has no recognized employee id column")

// rosterAliases maps normalized physical header names to canonical fields.
// The physical names vary across source files; this table is the single
// boundary where the variation is absorbed.
var rosterAliases = map[string]string{
	"personnel number": "employee_id",
	"employee id":      "employee_id",
	"emp id":           "employee_id",
	"id":               "employee_id",

	"arabic name": "name_ar",
	"emp_name":    "name_ar",
	"الاسم":       "name_ar",
	"search name":  "name_en",
	"english name": "name_en",

	"contrac profession": "job_title",
	"job title":          "job_title",
	"المهنة":             "job_title",

	"nationality": "nationality",
	"الجنسية":     "nationality",

	"section | department": "department",
	"department":           "department",
	"الإدارة":              "department",
	"القسم":                "department",

	"employee no":   "employee_no",
	"الرقم الوظيفي": "employee_no",

	"attendance calculation": "rule",
	"attendance_calculation": "rule",
	"attendance rule":        "rule",
	"rule":                   "rule",
	"نوع الاحتساب":           "rule",
	"طريقة الاحتساب":         "rule",
	"مستثنى":                 "rule",
	"استثناء":                "rule",

	"fri work":    "fri_work",
	"fri_work":    "fri_work",
	"friday work": "fri_work",
	"دوام الجمعة": "fri_work",

	"sat work":      "sat_work",
	"sat_work":      "sat_work",
	"saturday work": "sat_work",
	"دوام السبت":    "sat_work",

	"sat start":   "sat_start",
	"sat_start":   "sat_start",
	"بداية السبت": "sat_start",

	"sat grace":  "sat_grace",
	"sat_grace":  "sat_grace",
	"سماح السبت": "sat_grace",
}

var floatArtifact = regexp.MustCompile(`^\d+\.0+$`)

// NormalizeID canonicalizes an employee id for joining. Numeric ids that
// round-tripped through a spreadsheet float cell pick up a trailing ".0";
// that artifact is stripped so both sides of the join agree.
func NormalizeID(id string) string {
	s := strings.TrimSpace(id)
	if floatArtifact.MatchString(s) {
		s = s[:strings.IndexByte(s, '.')]
	}
	return s
}

var saudiKeywords = []string{
	"سعود", "سعودي", "سعودية", "السعودية", "السعوديه",
	"المملكة العربية السعودية", "المملكه العربيه السعوديه",
	"saudi", "saudi arabia", "kingdom of saudi arabia",
	"ksa", "k.s.a", "k s a",
}

// IsSaudi classifies a free-text nationality by keyword containment. A blank
// or missing nationality deliberately classifies as Saudi; the conservative
// default keeps Saturday out of the expected-workday set for unknowns.
func IsSaudi(nationality string) bool {
	s := strings.Join(strings.Fields(strings.ToLower(nationality)), " ")
	if s == "" {
		return true
	}
	for _, key := range saudiKeywords {
		if strings.Contains(s, key) {
			return true
		}
	}
	return false
}

var dailyHoursValues = map[string]bool{
	"daily hours": true,
	"daily_hours": true,
	"hours":       true,
	"exempt":      true,
	"مستثنى":      true,
	"استثناء":     true,
}

// ParseRule interprets the attendance-rule cell. Anything not recognized as
// the exempt class falls back to the standard rule.
func ParseRule(value string) Rule {
	v := strings.Join(strings.Fields(strings.ToLower(value)), " ")
	if dailyHoursValues[v] {
		return RuleDailyHours
	}
	if strings.Contains(v, "daily") && strings.Contains(v, "hour") {
		return RuleDailyHours
	}
	return RuleStandard
}

// Parse types a roster grid into profiles. The header row is searched the
// same way as the attendance extract; a roster without an employee id column
// is rejected outright.
func Parse(grid extract.Grid) ([]Profile, error) {
	headerRow := findHeaderRow(grid)
	if headerRow < 0 {
		return nil, ErrNoEmployeeColumn
	}

	columns := map[string]int{}
	for idx, cell := range grid[headerRow] {
		if canonical, ok := rosterAliases[extract.NormalizeHeader(cell)]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = idx
			}
		}
	}
	if _, ok := columns["employee_id"]; !ok {
		return nil, ErrNoEmployeeColumn
	}

	var profiles []Profile
	for _, row := range grid[headerRow+1:] {
		id := NormalizeID(cell(row, columns, "employee_id"))
		if id == "" {
			continue
		}
		profile := Profile{
			EmployeeID:  id,
			EmployeeNo:  cell(row, columns, "employee_no"),
			NameAr:      cell(row, columns, "name_ar"),
			NameEn:      cell(row, columns, "name_en"),
			JobTitle:    cell(row, columns, "job_title"),
			Nationality: cell(row, columns, "nationality"),
			Department:  cell(row, columns, "department"),
			Rule:        ParseRule(cell(row, columns, "rule")),
		}
		if profile.EmployeeNo == "" {
			profile.EmployeeNo = id
		}
		profile.FridayWork = parseBoolCell(cell(row, columns, "fri_work"))
		profile.SaturdayWork = parseBoolCell(cell(row, columns, "sat_work"))
		if clock, ok := extract.ParseClock(cell(row, columns, "sat_start")); ok {
			c := clock
			profile.SaturdayStart = &c
		}
		if grace, err := strconv.Atoi(cell(row, columns, "sat_grace")); err == nil && grace >= 0 {
			g := grace
			profile.SaturdayGrace = &g
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func findHeaderRow(grid extract.Grid) int {
	limit := len(grid)
	if limit > 30 {
		limit = 30
	}
	for i := 0; i < limit; i++ {
		for _, c := range grid[i] {
			if rosterAliases[extract.NormalizeHeader(c)] == "employee_id" {
				return i
			}
		}
	}
	if len(grid) == 0 {
		return -1
	}
	return 0
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var truthy = map[string]bool{
	"yes": true, "y": true, "true": true, "1": true, "نعم": true, "دوام": true,
}

var falsy = map[string]bool{
	"no": true, "n": true, "false": true, "0": true, "لا": true, "إجازة": true, "اجازة": true,
}

func parseBoolCell(value string) *bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return nil
	}
	if truthy[v] {
		b := true
		return &b
	}
	if falsy[v] {
		b := false
		return &b
	}
	return nil
}
