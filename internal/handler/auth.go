package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/cache"
	"github.com/owely/owely/internal/handler/dto"
	"github.com/owely/owely/internal/service"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	svc    *service.AuthService
	cache  *cache.Cache
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cacheClient *cache.Cache, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		cache:  cacheClient,
		logger: logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	session, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", session.User.ID,
	)

	writeJSON(w, http.StatusCreated, dto.ToSessionResponse(session, h.svc.TokenTTL()))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_logged_in",
		"user_id", session.User.ID,
	)

	writeJSON(w, http.StatusOK, dto.ToSessionResponse(session, h.svc.TokenTTL()))
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"user": authCtx.Summary(),
	})
}

// Refresh handles POST /api/v1/auth/refresh. It exchanges a valid token
// for a fresh one with a full lifetime.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	token, err := h.svc.Refresh(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		ExpiresIn: h.svc.TokenTTL(),
	})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so logout
// only drops the cached auth context for the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if token := bearerToken(r); token != "" {
			if err := h.cache.DeleteAuthContext(r.Context(), auth.Fingerprint(token)); err != nil {
				h.logger.Warn("logout_cache_delete_failed", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

// ChangePassword handles POST /api/v1/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("password_changed", "user_id", userID)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "password changed",
	})
}

// Validate handles GET /api/v1/auth/validate. The auth middleware has
// already verified the token by the time this runs.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	writeJSON(w, http.StatusOK, dto.ValidateResponse{
		Valid: true,
		User: &dto.AuthUserResponse{
			ID:    authCtx.UserID,
			Email: authCtx.Email,
			Name:  authCtx.Name,
		},
	})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
