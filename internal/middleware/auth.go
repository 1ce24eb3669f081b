package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/cache"
	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/repository"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Tokens     *auth.TokenIssuer
	Repository *repository.Repository
	Cache      *cache.Cache
}

// Auth returns a middleware that authenticates API requests. It extracts
// the bearer token from the Authorization header, verifies the signature,
// and injects the caller's auth context into the request. The account
// lookup behind a valid token is cached; a password change invalidates
// every cached entry for the user.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			userID, err := cfg.Tokens.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Check cache first
			fingerprint := auth.Fingerprint(token)
			var authCtx *model.AuthContext
			if cfg.Cache != nil {
				authCtx, _ = cfg.Cache.GetAuthContext(r.Context(), fingerprint)
			}

			if authCtx == nil {
				// Cache miss - the account must still exist
				user, err := cfg.Repository.GetUserByID(r.Context(), userID)
				if err != nil {
					if errors.Is(err, repository.ErrUserNotFound) {
						cfg.Logger.Warn("authentication failed",
							slog.String("reason", "unknown_user"),
							slog.Int64("user_id", userID),
							slog.String("request_id", GetRequestID(r.Context())),
						)
					} else {
						cfg.Logger.Error("database error during auth",
							slog.String("error", err.Error()),
							slog.String("request_id", GetRequestID(r.Context())),
						)
					}
					writeAuthError(w)
					return
				}

				authCtx = &model.AuthContext{
					UserID: user.ID,
					Email:  user.Email,
					Name:   user.Name,
				}

				if cfg.Cache != nil {
					_ = cfg.Cache.SetAuthContext(r.Context(), fingerprint, authCtx)
				}
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent probing.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing token","code":"UNAUTHORIZED"}`))
}
