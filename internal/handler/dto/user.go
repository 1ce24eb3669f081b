package dto

import (
	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/service"
)

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ProfileResponse is an account together with its debt overview.
type ProfileResponse struct {
	User       UserResponse   `json:"user"`
	Statistics model.Overview `json:"statistics"`
}

// UserListResponse is the user directory page. Each entry is the party
// snapshot a debt would carry, which is all a caller needs to pick a debtor.
type UserListResponse struct {
	Data []*model.PartySummary `json:"data"`
}

// ToProfileResponse converts a Profile to ProfileResponse DTO.
func ToProfileResponse(profile *service.Profile) *ProfileResponse {
	return &ProfileResponse{
		User:       ToUserResponse(profile.User),
		Statistics: profile.Overview,
	}
}

// ToUserListResponse converts a user slice to UserListResponse.
func ToUserListResponse(users []*model.User) *UserListResponse {
	summaries := make([]*model.PartySummary, len(users))
	for i, user := range users {
		summaries[i] = user.Summary()
	}
	return &UserListResponse{Data: summaries}
}
