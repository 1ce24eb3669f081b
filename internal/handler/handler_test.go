package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/owely/owely/internal/handler/dto"
	"github.com/owely/owely/internal/service"
)

func TestHandler_Hello(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Hello(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["message"] != "Hello from Owely!" {
		t.Errorf("unexpected message: %s", response["message"])
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["error"] != "resource not found" {
		t.Errorf("unexpected error message: %s", response["error"])
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"debt not found", service.ErrDebtNotFound, http.StatusNotFound, "DEBT_NOT_FOUND"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"self debt", service.ErrSelfDebt, http.StatusBadRequest, "SELF_DEBT"},
		{"invalid amount", service.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"update paid", service.ErrUpdatePaidDebt, http.StatusConflict, "DEBT_PAID"},
		{"delete paid", service.ErrDeletePaidDebt, http.StatusConflict, "DEBT_PAID"},
		{"already paid", service.ErrAlreadyPaid, http.StatusConflict, "ALREADY_PAID"},
		{"not participant", service.ErrNotParticipant, http.StatusForbidden, "NOT_PARTICIPANT"},
		{"only debtor pays", service.ErrOnlyDebtorPays, http.StatusForbidden, "ONLY_DEBTOR_PAYS"},
		{"only creditor deletes", service.ErrOnlyCreditorDel, http.StatusForbidden, "ONLY_CREDITOR_DELETES"},
		{"email taken", service.ErrEmailExists, http.StatusConflict, "EMAIL_TAKEN"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"pending debts", service.ErrPendingDebts, http.StatusConflict, "PENDING_DEBTS"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handleServiceError(rec, logger, tc.err)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Code != tc.code {
				t.Errorf("code = %s, want %s", response.Code, tc.code)
			}
		})
	}
}
