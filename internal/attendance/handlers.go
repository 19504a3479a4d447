// Package attendance exposes the derivation pipeline over HTTP: upload an
// extract, get back the derived collections as JSON, an XLSX workbook, or a
// per-employee PDF.
package attendance

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dawam/internal/api"
	"dawam/internal/config"
	"dawam/internal/engine"
	"dawam/internal/extract"
	"dawam/internal/report"
	"dawam/internal/requestctx"
	"dawam/internal/roster"
)

type Handler struct {
	Store    *roster.Store
	Defaults engine.Options
	PDF      report.PDFOptions
	MaxBody  int64
}

func NewHandler(store *roster.Store, defaults engine.Options, pdf report.PDFOptions, maxBody int64) *Handler {
	return &Handler{Store: store, Defaults: defaults, PDF: pdf, MaxBody: maxBody}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/report", h.handleReport)
		r.Post("/report/export", h.handleExport)
		r.Post("/report/pdf", h.handlePDF)
	})
}

// OptionsFromConfig translates the environment defaults into engine options.
// Values config.Validate accepted always parse; anything else keeps the
// built-in default.
func OptionsFromConfig(cfg config.Config) engine.Options {
	opts := engine.DefaultOptions()
	if clock, ok := extract.ParseClock(cfg.StartTime); ok {
		opts.StartTime = clock
	}
	if cfg.GraceMinutes >= 0 {
		opts.GraceMinutes = cfg.GraceMinutes
	}
	opts.ScheduleMode = engine.ParseMode(cfg.ScheduleMode)
	if clock, ok := extract.ParseClock(cfg.OvertimeEnd); ok {
		opts.OvertimeEnd = clock
	}
	if cfg.DailyRequiredHours > 0 {
		opts.DailyRequiredHours = cfg.DailyRequiredHours
	}

	if cfg.SeasonFrom == "" || cfg.SeasonTo == "" {
		opts.Season = engine.Season{}
		return opts
	}
	from, errFrom := time.Parse("2006-01-02", cfg.SeasonFrom)
	to, errTo := time.Parse("2006-01-02", cfg.SeasonTo)
	if errFrom != nil || errTo != nil {
		opts.Season = engine.Season{}
		return opts
	}
	opts.Season.From = from
	opts.Season.To = to
	if clock, ok := extract.ParseClock(cfg.SeasonStart); ok {
		opts.Season.Start = clock
	}
	if clock, ok := extract.ParseClock(cfg.SeasonEnd); ok {
		opts.Season.End = clock
	}
	return opts
}

// PDFOptionsFromConfig locates the PDF assets from the environment settings.
func PDFOptionsFromConfig(cfg config.Config) report.PDFOptions {
	return report.PDFOptions{FontPath: cfg.FontPath, LogoPath: cfg.LogoPath}
}

// requestOptions applies per-request form overrides on top of the defaults.
func (h *Handler) requestOptions(r *http.Request) (engine.Options, error) {
	opts := h.Defaults

	if v := r.FormValue("start_time"); v != "" {
		clock, ok := extract.ParseClock(v)
		if !ok {
			return opts, fmt.Errorf("start_time is not a valid HH:MM time: %q", v)
		}
		opts.StartTime = clock
	}
	if v := r.FormValue("grace_minutes"); v != "" {
		grace, err := strconv.Atoi(v)
		if err != nil || grace < 0 {
			return opts, fmt.Errorf("grace_minutes must be a non-negative integer: %q", v)
		}
		opts.GraceMinutes = grace
	}
	if v := r.FormValue("schedule_mode"); v != "" {
		opts.ScheduleMode = engine.ParseMode(v)
	}
	if v := r.FormValue("overtime_end"); v != "" {
		clock, ok := extract.ParseClock(v)
		if !ok {
			return opts, fmt.Errorf("overtime_end is not a valid HH:MM time: %q", v)
		}
		opts.OvertimeEnd = clock
	}
	return opts, nil
}

// derive runs the full pipeline for one upload. The stored roster is used
// unless the request carries its own roster file.
func (h *Handler) derive(r *http.Request) (engine.Result, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.MaxBody)

	file, header, err := r.FormFile("extract")
	if err != nil {
		return engine.Result{}, badRequest("missing_file", "multipart field 'extract' is required")
	}
	defer file.Close()

	opts, err := h.requestOptions(r)
	if err != nil {
		return engine.Result{}, badRequest("invalid_options", err.Error())
	}

	grid, err := extract.ReadGrid(file, header.Filename)
	if err != nil {
		return engine.Result{}, badRequest("unreadable_file", err.Error())
	}
	records, err := extract.Parse(grid)
	if err != nil {
		var missing *extract.MissingColumnsError
		if errors.As(err, &missing) {
			return engine.Result{}, unprocessable("missing_columns", missing.Error())
		}
		return engine.Result{}, badRequest("invalid_extract", err.Error())
	}

	profiles, err := h.profiles(r)
	if err != nil {
		return engine.Result{}, err
	}
	overrides, err := h.Store.ListOverrides(r.Context())
	if err != nil {
		return engine.Result{}, internal("override_error", "failed to load overrides")
	}

	result, err := engine.Run(records, profiles, overrides, opts)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyExtract) {
			return engine.Result{}, unprocessable("empty_extract", err.Error())
		}
		return engine.Result{}, internal("derivation_error", err.Error())
	}
	return result, nil
}

// profiles returns the uploaded roster when the request carries one, the
// stored roster otherwise.
func (h *Handler) profiles(r *http.Request) ([]roster.Profile, error) {
	file, header, err := r.FormFile("roster")
	if err != nil {
		profiles, err := h.Store.List(r.Context())
		if err != nil {
			return nil, internal("roster_error", "failed to load roster")
		}
		return profiles, nil
	}
	defer file.Close()

	grid, err := extract.ReadGrid(file, header.Filename)
	if err != nil {
		return nil, badRequest("unreadable_roster", err.Error())
	}
	profiles, err := roster.Parse(grid)
	if err != nil {
		return nil, unprocessable("invalid_roster", err.Error())
	}
	return profiles, nil
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.derive(r)
	if err != nil {
		failWith(w, r, err)
		return
	}
	api.Success(w, result, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := h.derive(r)
	if err != nil {
		failWith(w, r, err)
		return
	}

	data, err := report.BuildWorkbook(result)
	if err != nil {
		failWith(w, r, internal("export_error", "failed to build workbook"))
		return
	}

	filename := "attendance_report.xlsx"
	if len(result.Summaries) > 0 {
		s := result.Summaries[0]
		filename = fmt.Sprintf("attendance_%02d_%d.xlsx", s.PayrollMonth, s.PayrollYear)
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	result, err := h.derive(r)
	if err != nil {
		failWith(w, r, err)
		return
	}

	employeeID := roster.NormalizeID(r.URL.Query().Get("employee_id"))
	lang := r.URL.Query().Get("lang")

	var summary *engine.Summary
	if employeeID == "" && len(result.Summaries) == 1 {
		summary = &result.Summaries[0]
	} else {
		for i := range result.Summaries {
			if result.Summaries[i].EmployeeID == employeeID {
				summary = &result.Summaries[i]
				break
			}
		}
	}
	if summary == nil {
		failWith(w, r, unprocessable("unknown_employee", "employee_id not present in the derived report"))
		return
	}

	var late []engine.LateDetail
	for _, d := range result.LateDetails {
		if d.EmployeeID == summary.EmployeeID {
			late = append(late, d)
		}
	}
	var absences []engine.AbsenceEvent
	for _, a := range result.AbsenceDetails {
		if a.EmployeeID == summary.EmployeeID {
			absences = append(absences, a)
		}
	}

	data, err := report.BuildPDF(*summary, late, absences, lang, h.PDF)
	if err != nil {
		failWith(w, r, internal("pdf_error", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.PDFFileName(*summary, lang)))
	_, _ = w.Write(data)
}

// httpError carries the status and code derive decided on up to the handler.
type httpError struct {
	Status  int
	Code    string
	Message string
}

func (e *httpError) Error() string { return e.Message }

func badRequest(code, message string) error {
	return &httpError{Status: http.StatusBadRequest, Code: code, Message: message}
}

func unprocessable(code, message string) error {
	return &httpError{Status: http.StatusUnprocessableEntity, Code: code, Message: message}
}

func internal(code, message string) error {
	return &httpError{Status: http.StatusInternalServerError, Code: code, Message: message}
}

func failWith(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		api.Fail(w, httpErr.Status, httpErr.Code, httpErr.Message, requestctx.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestctx.GetRequestID(r.Context()))
}
