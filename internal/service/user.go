package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/cache"
	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/repository"
)

// UserService handles profile and user-directory logic.
type UserService struct {
	repo  *repository.Repository
	cache *cache.Cache
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, cacheClient *cache.Cache) *UserService {
	return &UserService{
		repo:  repo,
		cache: cacheClient,
	}
}

// Profile is a user together with their debt overview.
type Profile struct {
	User     *model.User    `json:"user"`
	Overview model.Overview `json:"statistics"`
}

// GetProfile returns the user's account data and live debt overview.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	overview, err := s.repo.DebtOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Overview: *overview}, nil
}

// UpdateName changes the user's display name.
func (s *UserService) UpdateName(ctx context.Context, userID int64, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateUserName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Cached auth contexts carry the old name until they expire.
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}

	return user, nil
}

// ListInput defines input for listing the user directory.
type ListInput struct {
	Search string
	Limit  int
	Offset int
}

// List returns users other than the caller, for picking a debtor when
// creating a debt. Search matches name or email, case-insensitively.
func (s *UserService) List(ctx context.Context, callerID int64, input ListInput) ([]*model.User, error) {
	limit := input.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.ListUsers(ctx, callerID, strings.TrimSpace(input.Search), limit, offset)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// DeleteAccount removes the caller's account. The password is re-verified
// and accounts with pending debts on either side cannot be deleted.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return ErrWrongPassword
	}

	pending, err := s.repo.CountPendingDebts(ctx, userID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrPendingDebts
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}

	return nil
}
