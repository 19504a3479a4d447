package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dawam/internal/engine"
)

// Sheet names of the exported workbook, one per derived collection.
const (
	SheetSummary = "Summary"
	SheetLate    = "Late"
	SheetAbsence = "Absence"
	SheetExempt  = "Exempt"
)

// BuildWorkbook writes the four derived collections into one XLSX workbook,
// one sheet each, header row first.
func BuildWorkbook(result engine.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("report: workbook: %w", err)
	}
	for _, name := range []string{SheetLate, SheetAbsence, SheetExempt} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("report: workbook: %w", err)
		}
	}

	summaryRows := [][]interface{}{{
		"Employee ID", "Employee No", "Name (Ar)", "Name (En)", "Job Title",
		"Nationality", "Saudi", "Department", "Schedule", "Period From",
		"Period To", "Payroll Month", "Payroll Year", "Absent Days",
		"Late Days", "Total Late Minutes", "Total Overtime Minutes", "Rule",
	}}
	for _, s := range result.Summaries {
		summaryRows = append(summaryRows, []interface{}{
			s.EmployeeID, s.EmployeeNo, s.NameAr, s.NameEn, s.JobTitle,
			s.Nationality, s.IsSaudi, s.Department, s.Schedule, s.PeriodFrom,
			s.PeriodTo, s.PayrollMonth, s.PayrollYear, s.AbsentDays,
			s.LateDays, s.TotalLateMinutes, s.TotalOvertimeMinutes, s.Rule,
		})
	}

	lateRows := [][]interface{}{{
		"Employee ID", "Employee No", "Name (Ar)", "Department", "Date",
		"Weekday", "Weekday (Ar)", "First Punch", "Last Punch",
		"Late Minutes", "Worked Minutes", "Overtime Minutes", "Schedule", "Rule",
	}}
	for _, d := range result.LateDetails {
		lateRows = append(lateRows, []interface{}{
			d.EmployeeID, d.EmployeeNo, d.NameAr, d.Department, d.Date,
			d.Weekday, d.WeekdayAr, clockString(d.FirstPunch), clockString(d.LastPunch),
			d.LateMinutes, d.WorkedMinutes, d.OvertimeMinutes, d.Schedule, d.Rule,
		})
	}

	absenceRows := [][]interface{}{{
		"Employee ID", "Employee No", "Name (Ar)", "Department", "Date",
		"Weekday", "Weekday (Ar)", "Schedule", "Rule",
	}}
	for _, a := range result.AbsenceDetails {
		absenceRows = append(absenceRows, []interface{}{
			a.EmployeeID, a.EmployeeNo, a.NameAr, a.Department, a.Date,
			a.Weekday, a.WeekdayAr, a.Schedule, a.Rule,
		})
	}

	exemptRows := [][]interface{}{{
		"Employee ID", "Employee No", "Name (Ar)", "Department", "Date",
		"Weekday (Ar)", "First In", "Last Out", "Worked Minutes",
		"Late Minutes", "Overtime Minutes",
	}}
	for _, e := range result.ExemptDetails {
		exemptRows = append(exemptRows, []interface{}{
			e.EmployeeID, e.EmployeeNo, e.NameAr, e.Department, e.Date,
			e.WeekdayAr, clockString(e.FirstIn), clockString(e.LastOut),
			e.WorkedMinutes, e.LateMinutes, e.OvertimeMinutes,
		})
	}

	sheets := map[string][][]interface{}{
		SheetSummary: summaryRows,
		SheetLate:    lateRows,
		SheetAbsence: absenceRows,
		SheetExempt:  exemptRows,
	}
	for name, rows := range sheets {
		for i, cells := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, fmt.Errorf("report: workbook: %w", err)
			}
			if err := f.SetSheetRow(name, cell, &cells); err != nil {
				return nil, fmt.Errorf("report: workbook: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: workbook: %w", err)
	}
	return buf.Bytes(), nil
}
