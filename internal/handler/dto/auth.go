package dto

import (
	"time"

	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/service"
)

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse represents an account in API responses. The password hash
// never leaves the model, but the explicit DTO keeps the surface fixed.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse carries an issued token and its account.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresIn string       `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// TokenResponse carries a refreshed token without the account data.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"`
}

// ValidateResponse reports whether the presented token is valid.
type ValidateResponse struct {
	Valid bool              `json:"valid"`
	User  *AuthUserResponse `json:"user,omitempty"`
}

// AuthUserResponse is the identity carried by a verified token.
type AuthUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToSessionResponse converts a Session to SessionResponse DTO.
func ToSessionResponse(session *service.Session, expiresIn string) *SessionResponse {
	return &SessionResponse{
		Token:     session.Token,
		ExpiresIn: expiresIn,
		User:      ToUserResponse(session.User),
	}
}
