package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/handler/dto"
	"github.com/owely/owely/internal/service"
)

// DebtHandler handles HTTP requests for debt operations.
type DebtHandler struct {
	svc    *service.DebtService
	logger *slog.Logger
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(svc *service.DebtService, logger *slog.Logger) *DebtHandler {
	return &DebtHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/debts.
func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	debt, err := h.svc.Create(r.Context(), userID, service.CreateDebtInput{
		DebtorID:    req.DebtorID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("debt_created",
		"debt_id", debt.ID,
		"creditor_id", debt.CreditorID,
		"debtor_id", debt.DebtorID,
	)

	writeJSON(w, http.StatusCreated, dto.ToDebtResponse(debt, userID))
}

// List handles GET /api/v1/debts.
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	query := r.URL.Query()

	input := service.FindDebtsInput{
		Status: query.Get("status"),
		Type:   query.Get("type"),
	}
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			input.Limit = parsed
		}
	}
	if o := query.Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			input.Offset = parsed
		}
	}

	page, err := h.svc.FindForUser(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDebtListResponse(page, userID))
}

// Get handles GET /api/v1/debts/{id}.
func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	debt, err := h.svc.GetByID(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDebtResponse(debt, userID))
}

// Update handles PATCH /api/v1/debts/{id}.
func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	debt, err := h.svc.Update(r.Context(), id, userID, service.UpdateDebtInput{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("debt_updated", "debt_id", debt.ID)

	writeJSON(w, http.StatusOK, dto.ToDebtResponse(debt, userID))
}

// Pay handles POST /api/v1/debts/{id}/pay.
func (h *DebtHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	debt, err := h.svc.MarkPaid(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("debt_paid",
		"debt_id", debt.ID,
		"debtor_id", debt.DebtorID,
	)

	writeJSON(w, http.StatusOK, dto.ToDebtResponse(debt, userID))
}

// Delete handles DELETE /api/v1/debts/{id}.
func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	id, ok := debtID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("debt_deleted", "debt_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Aggregations handles GET /api/v1/debts/statistics.
func (h *DebtHandler) Aggregations(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	agg, err := h.svc.Aggregations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, agg)
}

// Export handles GET /api/v1/debts/export. The format query parameter
// selects csv or json; json is the default.
func (h *DebtHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "INVALID_FORMAT", "Format must be json or csv")
		return
	}

	rows, err := h.svc.Export(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("debts_exported",
		"user_id", userID,
		"format", format,
		"rows", len(rows),
	)

	if format == "csv" {
		filename := "debts-" + time.Now().UTC().Format("2006-01-02") + ".csv"
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(renderCSV(rows)))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": rows,
	})
}

// Recent handles GET /api/v1/debts/recent.
func (h *DebtHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	items, err := h.svc.RecentActivity(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": items,
	})
}

// Summary handles GET /api/v1/debts/summary.
func (h *DebtHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSummaryResponse(summary, userID))
}

// debtID parses the id path parameter, writing a 400 on bad input.
func debtID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Debt ID must be a positive integer")
		return 0, false
	}
	return id, true
}
