// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/owely/owely/internal/handler/dto"
	"github.com/owely/owely/internal/service"
)

// Handler serves the root and fallback routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is a simple hello endpoint for testing.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Owely!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "resource not found",
	}
	writeJSON(w, http.StatusNotFound, response)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "method not allowed",
	}
	writeJSON(w, http.StatusMethodNotAllowed, response)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already committed at this point.
		_ = err
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps domain errors to HTTP responses. Unrecognized
// errors are logged and surfaced as a generic 500.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrDebtNotFound):
		writeError(w, http.StatusNotFound, "DEBT_NOT_FOUND", "Debt not found")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrSelfDebt):
		writeError(w, http.StatusBadRequest, "SELF_DEBT", "Creditor and debtor must differ")
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero")
	case errors.Is(err, service.ErrAmountTooLarge):
		writeError(w, http.StatusBadRequest, "AMOUNT_TOO_LARGE", "Amount exceeds the maximum of 999999.99")
	case errors.Is(err, service.ErrAmountPrecision):
		writeError(w, http.StatusBadRequest, "AMOUNT_PRECISION", "Amount must have at most two decimal places")
	case errors.Is(err, service.ErrEmptyDescription):
		writeError(w, http.StatusBadRequest, "EMPTY_DESCRIPTION", "Description is required")
	case errors.Is(err, service.ErrDescriptionTooLong):
		writeError(w, http.StatusBadRequest, "DESCRIPTION_TOO_LONG", "Description exceeds 500 characters")
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		writeError(w, http.StatusBadRequest, "NO_FIELDS", "At least one field must be provided")
	case errors.Is(err, service.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", "Unknown status or type filter value")
	case errors.Is(err, service.ErrUpdatePaidDebt):
		writeError(w, http.StatusConflict, "DEBT_PAID", "Paid debts cannot be edited")
	case errors.Is(err, service.ErrDeletePaidDebt):
		writeError(w, http.StatusConflict, "DEBT_PAID", "Paid debts cannot be deleted")
	case errors.Is(err, service.ErrAlreadyPaid):
		writeError(w, http.StatusConflict, "ALREADY_PAID", "Debt is already paid")
	case errors.Is(err, service.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "NOT_PARTICIPANT", "You are not a party to this debt")
	case errors.Is(err, service.ErrOnlyDebtorPays):
		writeError(w, http.StatusForbidden, "ONLY_DEBTOR_PAYS", "Only the debtor can mark a debt as paid")
	case errors.Is(err, service.ErrOnlyCreditorDel):
		writeError(w, http.StatusForbidden, "ONLY_CREDITOR_DELETES", "Only the creditor can delete a debt")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusUnauthorized, "WRONG_PASSWORD", "Current password is incorrect")
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Email address is not valid")
	case errors.Is(err, service.ErrPasswordTooWeak):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 6 characters")
	case errors.Is(err, service.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_LONG", "Password exceeds 100 characters")
	case errors.Is(err, service.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "INVALID_NAME", "Name must be between 2 and 50 characters")
	case errors.Is(err, service.ErrPendingDebts):
		writeError(w, http.StatusConflict, "PENDING_DEBTS", "Account has pending debts and cannot be deleted")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
