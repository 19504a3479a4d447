package roster

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"dawam/internal/api"
	"dawam/internal/extract"
	"dawam/internal/requestctx"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/roster", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/import", h.handleImport)
		r.Route("/overrides", func(r chi.Router) {
			r.Get("/", h.handleListOverrides)
			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", h.handleGetOverride)
				r.Put("/", h.handlePutOverride)
				r.Delete("/", h.handleDeleteOverride)
			})
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "roster_error", "failed to load roster", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profiles, requestctx.GetRequestID(r.Context()))
}

// handleImport replaces the stored roster with the uploaded spreadsheet.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("roster")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "missing_file", "multipart field 'roster' is required", requestctx.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	grid, err := extract.ReadGrid(file, header.Filename)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "unreadable_file", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	profiles, err := Parse(grid)
	if err != nil {
		if errors.Is(err, ErrNoEmployeeColumn) {
			api.Fail(w, http.StatusUnprocessableEntity, "missing_columns", err.Error(), requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_roster", err.Error(), requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.ReplaceAll(r.Context(), profiles); err != nil {
		api.Fail(w, http.StatusInternalServerError, "roster_error", "failed to store roster", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"imported": len(profiles)}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.Store.ListOverrides(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "override_error", "failed to load overrides", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, overrides, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleGetOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	override, err := h.Store.GetOverride(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "no override for employee", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "override_error", "failed to load override", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, override, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handlePutOverride(w http.ResponseWriter, r *http.Request) {
	var override Override
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	override.EmployeeID = NormalizeID(chi.URLParam(r, "employeeID"))
	if override.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id is required", requestctx.GetRequestID(r.Context()))
		return
	}
	if override.SaturdayGrace != nil && *override.SaturdayGrace < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "sat_grace must not be negative", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpsertOverride(r.Context(), override); err != nil {
		api.Fail(w, http.StatusInternalServerError, "override_error", "failed to store override", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, override, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteOverride(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "override_error", "failed to delete override", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestctx.GetRequestID(r.Context()))
}
