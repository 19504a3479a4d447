// Package report renders the derived attendance collections into documents:
// a bilingual per-employee PDF and a multi-sheet XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"dawam/internal/engine"
	"dawam/internal/extract"
)

// PDFOptions locates the assets the PDF needs. The Arabic font is mandatory;
// Arabic names appear even in the English rendering. The logo is optional.
type PDFOptions struct {
	FontPath string
	LogoPath string
}

const (
	// LangArabic and LangEnglish select the PDF rendering language.
	LangArabic  = "ar"
	LangEnglish = "en"

	arabicFont = "arabic"
	latinFont  = "Helvetica"
)

// BuildPDF renders the monthly report for one employee: header block, late
// table with a total line, absence table with a total line. lang selects the
// label language; Arabic data fields render in the Arabic font either way.
func BuildPDF(summary engine.Summary, late []engine.LateDetail, absences []engine.AbsenceEvent, lang string, opts PDFOptions) ([]byte, error) {
	if lang != LangEnglish {
		lang = LangArabic
	}
	if opts.FontPath == "" {
		return nil, fmt.Errorf("report: arabic font path not configured")
	}
	if _, err := os.Stat(opts.FontPath); err != nil {
		return nil, fmt.Errorf("report: arabic font: %w", err)
	}

	rtl := lang == LangArabic

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddUTF8Font(arabicFont, "", opts.FontPath)
	pdf.AddPage()
	if rtl {
		pdf.RTL()
	}

	mainFont := latinFont
	if rtl {
		mainFont = arabicFont
	}

	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err == nil {
			pdf.ImageOptions(opts.LogoPath, 167, 8, 30, 14, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	label := func(ar, en string) string {
		if rtl {
			return ar
		}
		return en
	}

	// Header block: title, name line, info line.
	title := label(
		fmt.Sprintf("تقرير الموظف عن شهر %02d - %d", summary.PayrollMonth, summary.PayrollYear),
		fmt.Sprintf("Employee Monthly Report - %02d/%d", summary.PayrollMonth, summary.PayrollYear),
	)
	pdf.SetFont(mainFont, "", 15)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	name := summary.NameAr
	if summary.NameEn != "" {
		if name == "" {
			name = summary.NameEn
		} else {
			name = name + " / " + summary.NameEn
		}
	}
	pdf.SetFont(arabicFont, "", 12)
	pdf.CellFormat(0, 8, name, "", 1, "C", false, 0, "")

	var info []string
	if summary.EmployeeNo != "" {
		info = append(info, label("الكود/الرقم: ", "Employee No: ")+summary.EmployeeNo)
	}
	if summary.Nationality != "" {
		info = append(info, label("الجنسية: ", "Nationality: ")+summary.Nationality)
	}
	if summary.Department != "" {
		info = append(info, label("الإدارة: ", "Department: ")+summary.Department)
	}
	pdf.SetFont(arabicFont, "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, strings.Join(info, " | "), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
	pdf.SetDrawColor(200, 200, 200)
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.Line(left, y, pageWidth-right, y)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Ln(4)

	align := "L"
	if rtl {
		align = "R"
	}

	heading := func(text string) {
		pdf.SetFont(mainFont, "", 12)
		pdf.CellFormat(0, 8, text, "", 1, align, false, 0, "")
	}
	body := func(text string) {
		pdf.SetFont(mainFont, "", 10.5)
		pdf.CellFormat(0, 7, text, "", 1, align, false, 0, "")
	}
	total := func(text string) {
		pdf.SetFont(mainFont, "", 13.5)
		pdf.CellFormat(0, 9, text, "", 1, align, false, 0, "")
	}
	row := func(widths []float64, cells []string, header bool) {
		size := 10.0
		if header {
			size = 11
			pdf.SetFillColor(242, 242, 242)
		}
		pdf.SetFont(mainFont, "", size)
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, header, 0, "")
		}
		pdf.Ln(-1)
	}

	heading(label("التأخير", "Late Attendance"))
	if len(late) == 0 {
		body(label("لا يوجد تأخير", "No late records"))
	} else {
		widths := []float64{40, 50, 35, 30}
		row(widths, []string{
			label("اليوم", "Day"),
			label("التاريخ", "Date"),
			label("أول بصمة", "First Punch"),
			label("الدقائق", "Minutes"),
		}, true)
		for _, d := range late {
			day := d.Weekday
			if rtl && d.WeekdayAr != "" {
				day = d.WeekdayAr
			}
			row(widths, []string{day, d.Date, clockString(d.FirstPunch), strconv.Itoa(d.LateMinutes)}, false)
		}
		pdf.Ln(2)
		total(label(
			fmt.Sprintf("إجمالي دقائق التأخير: %d", summary.TotalLateMinutes),
			fmt.Sprintf("Total Late Minutes: %d", summary.TotalLateMinutes),
		))
	}
	pdf.Ln(6)

	heading(label("الغياب", "Absence"))
	if len(absences) == 0 {
		body(label("لا يوجد غياب", "No absence records"))
	} else {
		widths := []float64{60, 95}
		row(widths, []string{label("اليوم", "Day"), label("التاريخ", "Date")}, true)
		for _, a := range absences {
			day := a.Weekday
			if rtl && a.WeekdayAr != "" {
				day = a.WeekdayAr
			}
			row(widths, []string{day, a.Date}, false)
		}
		pdf.Ln(2)
		total(label(
			fmt.Sprintf("عدد أيام الغياب: %d", summary.AbsentDays),
			fmt.Sprintf("Total Absent Days: %d", summary.AbsentDays),
		))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// PDFFileName builds the download name for one employee's report, e.g.
// "Ahmed_Ali_1001_AR.pdf". Anything path-hostile collapses to underscores.
func PDFFileName(summary engine.Summary, lang string) string {
	name := summary.NameEn
	if name == "" {
		name = summary.NameAr
	}
	if name == "" {
		name = summary.EmployeeID
	}
	name = unsafeFilename.ReplaceAllString(strings.TrimSpace(name), "_")

	suffix := "AR"
	if lang == LangEnglish {
		suffix = "EN"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", name, summary.EmployeeNo, suffix)
}

func clockString(c *extract.Clock) string {
	if c == nil {
		return ""
	}
	return c.String()
}
