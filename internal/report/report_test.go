package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"dawam/internal/engine"
	"dawam/internal/extract"
)

func sampleResult() engine.Result {
	first := extract.NewClock(8, 20)
	last := extract.NewClock(17, 0)
	return engine.Result{
		Summaries: []engine.Summary{{
			EmployeeID: "1001", EmployeeNo: "E-9", NameAr: "أحمد علي", NameEn: "Ahmed Ali",
			Nationality: "مصري", Department: "IT", Schedule: "جمعة وسبت",
			PeriodFrom: "08-02-2026", PeriodTo: "07-03-2026",
			PayrollMonth: 3, PayrollYear: 2026,
			AbsentDays: 2, LateDays: 1, TotalLateMinutes: 5,
		}},
		LateDetails: []engine.LateDetail{{
			EmployeeID: "1001", EmployeeNo: "E-9", NameAr: "أحمد علي",
			Date: "09-02-2026", Weekday: "Monday", WeekdayAr: "الاثنين",
			LateMinutes: 5, FirstPunch: &first, LastPunch: &last,
		}},
		AbsenceDetails: []engine.AbsenceEvent{{
			EmployeeID: "1001", EmployeeNo: "E-9", NameAr: "أحمد علي",
			Date: "16-02-2026", Weekday: "Monday", WeekdayAr: "الاثنين",
		}},
	}
}

func TestBuildWorkbookRoundTrip(t *testing.T) {
	data, err := BuildWorkbook(sampleResult())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	for _, name := range []string{SheetSummary, SheetLate, SheetAbsence, SheetExempt} {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Fatalf("sheet %s missing (idx %d, err %v)", name, idx, err)
		}
	}

	rows, err := f.GetRows(SheetLate)
	if err != nil {
		t.Fatalf("read late sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("late sheet rows = %d, want header + 1", len(rows))
	}
	if rows[1][0] != "1001" || rows[1][4] != "09-02-2026" || rows[1][7] != "08:20" {
		t.Fatalf("unexpected late row %v", rows[1])
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("read summary sheet: %v", err)
	}
	if summary[1][2] != "أحمد علي" {
		t.Fatalf("arabic name did not survive the round trip: %v", summary[1])
	}
}

func TestBuildPDFRequiresFont(t *testing.T) {
	result := sampleResult()

	if _, err := BuildPDF(result.Summaries[0], result.LateDetails, result.AbsenceDetails, LangArabic, PDFOptions{}); err == nil {
		t.Fatal("empty font path must be rejected")
	}
	opts := PDFOptions{FontPath: "testdata/definitely-missing.ttf"}
	if _, err := BuildPDF(result.Summaries[0], result.LateDetails, result.AbsenceDetails, LangArabic, opts); err == nil {
		t.Fatal("missing font file must be rejected")
	}
}

func TestBuildPDFBothLanguages(t *testing.T) {
	fontPath := os.Getenv("PDF_FONT_PATH")
	if fontPath == "" {
		t.Skip("PDF_FONT_PATH not set")
	}
	result := sampleResult()
	for _, lang := range []string{LangArabic, LangEnglish} {
		data, err := BuildPDF(result.Summaries[0], result.LateDetails, result.AbsenceDetails, lang, PDFOptions{FontPath: fontPath})
		if err != nil {
			t.Fatalf("%s render failed: %v", lang, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("%s output is not a pdf", lang)
		}
	}
}

func TestPDFFileName(t *testing.T) {
	result := sampleResult()
	if got := PDFFileName(result.Summaries[0], LangArabic); got != "Ahmed_Ali_E-9_AR.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := PDFFileName(result.Summaries[0], LangEnglish); got != "Ahmed_Ali_E-9_EN.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}

	anonymous := engine.Summary{EmployeeID: "77", EmployeeNo: "77"}
	if got := PDFFileName(anonymous, LangArabic); got != "77_77_AR.pdf" {
		t.Fatalf("unexpected fallback filename %q", got)
	}
}
