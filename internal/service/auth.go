package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/cache"
	"github.com/owely/owely/internal/metrics"
	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/repository"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 100
	minNameLength     = 2
	maxNameLength     = 50
)

// Account validation errors.
var (
	ErrInvalidEmail    = errors.New("please provide a valid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong = errors.New("password cannot exceed 100 characters")
	ErrInvalidName     = errors.New("name must be between 2 and 50 characters")
)

// AuthService handles registration, login and credential changes.
type AuthService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, cacheClient *cache.Cache, tokens *auth.TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:    repo,
		cache:   cacheClient,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Session is an issued token together with the account it belongs to.
type Session struct {
	User  *model.User
	Token string
}

// Register creates a new account and issues its first token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return &Session{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. The error does not reveal
// whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLoginSuccess()

	return &Session{User: user, Token: token}, nil
}

// Refresh issues a fresh token for an already-authenticated user.
func (s *AuthService) Refresh(ctx context.Context, userID int64) (string, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return s.tokens.Issue(userID)
}

// ChangePassword replaces the caller's password after re-verifying the
// current one, then drops any cached auth state for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	match, err := auth.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !match {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, hash); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}

	return nil
}

// TokenTTL exposes the configured token lifetime for responses.
func (s *AuthService) TokenTTL() string {
	return s.tokens.TTL().String()
}

// validateEmail demands a plausible address shape. Full RFC validation
// is the mail server's problem.
func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func validateName(name string) error {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return ErrInvalidName
	}
	return nil
}
