package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/handler/dto"
	"github.com/owely/owely/internal/service"
)

// UserHandler handles HTTP requests for profile and directory operations.
type UserHandler struct {
	users  *service.UserService
	debts  *service.DebtService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, debts *service.DebtService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		debts:  debts,
		logger: logger,
	}
}

// Profile handles GET /api/v1/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateProfile handles PATCH /api/v1/users/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", userID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Statistics handles GET /api/v1/users/statistics.
func (h *UserHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	agg, err := h.debts.Aggregations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, agg)
}

// List handles GET /api/v1/users. It backs the debtor picker when
// creating a debt, so the caller is always excluded.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	query := r.URL.Query()

	input := service.ListInput{
		Search: query.Get("search"),
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

	users, err := h.users.List(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// DeleteAccount handles DELETE /api/v1/users/account.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("account_deleted", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
