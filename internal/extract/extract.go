// Package extract turns raw biometric time-clock exports into typed
// attendance records. The exports are loosely formatted: title rows, blank
// rows, or a logo rendered as text may precede the real table, column names
// vary by source system, and date/time cells arrive in whatever shape the
// exporting spreadsheet left them in.
package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// headerScanRows bounds how deep into the sheet the header search goes.
const headerScanRows = 30

// Record is one raw punch-day observation. Several records may exist for the
// same employee and date; aggregation is the engine's job, not the
// extractor's.
type Record struct {
	EmployeeID string
	Date       time.Time // zero when the date cell was unparsable
	FirstPunch *Clock
	LastPunch  *Clock
	Name       string
	Department string
}

// MissingColumnsError is the one hard validation gate: after header detection
// and renaming, the extract must expose an employee id and a date column.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("attendance extract missing required columns %v; available: %v", e.Missing, e.Available)
}

// attendanceAliases maps normalized header cells to canonical field names.
var attendanceAliases = map[string]string{
	"employee id": "employee_id",
	"emp id":      "employee_id",
	"personnel number": "employee_id",
	"date":        "date",
	"weekday":     "weekday",
	"first punch": "first_punch",
	"last punch":  "last_punch",
	"first name":  "name",
	"department":  "department",
}

// NormalizeHeader trims and lower-cases a header cell, collapsing inner runs
// of whitespace so bilingual exports with stray spacing still match.
func NormalizeHeader(cell string) string {
	return strings.Join(strings.Fields(strings.ToLower(cell)), " ")
}

// FindHeaderRow scans at most the first 30 rows for the first row whose
// normalized values contain both "employee id" and "date". When nothing
// matches it falls back to row 0; the column gate in Parse is the real guard.
func FindHeaderRow(grid Grid) int {
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		seen := make(map[string]bool, len(grid[i]))
		for _, cell := range grid[i] {
			seen[NormalizeHeader(cell)] = true
		}
		if seen["employee id"] && seen["date"] {
			return i
		}
	}
	return 0
}

// Parse locates the header, renames columns through the alias table, and
// types every row below the header. Entirely empty rows are dropped. Cell
// level malformations never fail the parse: an unparsable punch becomes a
// missing punch and an unparsable date a zero date.
func Parse(grid Grid) ([]Record, error) {
	if len(grid) == 0 {
		return nil, &MissingColumnsError{Missing: []string{"employee_id", "date"}}
	}

	headerRow := FindHeaderRow(grid)
	columns := map[string]int{}
	var available []string
	for idx, cell := range grid[headerRow] {
		normalized := NormalizeHeader(cell)
		if normalized == "" {
			continue
		}
		available = append(available, normalized)
		if canonical, ok := attendanceAliases[normalized]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = idx
			}
		}
	}

	var missing []string
	for _, required := range []string{"employee_id", "date"} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Missing: missing, Available: available}
	}

	var records []Record
	for _, row := range grid[headerRow+1:] {
		if rowEmpty(row) {
			continue
		}
		record := Record{
			EmployeeID: cellAt(row, columns, "employee_id"),
			Name:       cellAt(row, columns, "name"),
			Department: cellAt(row, columns, "department"),
		}
		if date, ok := ParseDate(cellAt(row, columns, "date")); ok {
			record.Date = date
		}
		if clock, ok := ParseClock(cellAt(row, columns, "first_punch")); ok {
			c := clock
			record.FirstPunch = &c
		}
		if clock, ok := ParseClock(cellAt(row, columns, "last_punch")); ok {
			c := clock
			record.LastPunch = &c
		}
		records = append(records, record)
	}

	return records, nil
}

func cellAt(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
