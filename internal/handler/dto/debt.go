// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/service"
)

// CreateDebtRequest represents the request body for creating a debt.
type CreateDebtRequest struct {
	DebtorID    int64           `json:"debtor_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// UpdateDebtRequest represents the request body for updating a debt.
// Absent fields are left unchanged.
type UpdateDebtRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// DebtResponse represents a debt in API responses. Type is relative to the
// viewing user and omitted for debts the viewer is not a party to.
type DebtResponse struct {
	ID          int64               `json:"id"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Type        string              `json:"type,omitempty"`
	Creditor    *model.PartySummary `json:"creditor,omitempty"`
	Debtor      *model.PartySummary `json:"debtor,omitempty"`
	PaidAt      *time.Time          `json:"paid_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// DebtListResponse represents a paginated list of debts.
type DebtListResponse struct {
	Data       []DebtResponse `json:"data"`
	Pagination *Pagination    `json:"pagination"`
}

// Pagination provides offset-based pagination info.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// SummaryResponse is the compact dashboard projection.
type SummaryResponse struct {
	Overview        model.Overview `json:"overview"`
	RecentDebts     []DebtResponse `json:"recent_debts"`
	PendingOwedToMe []DebtResponse `json:"pending_owed_to_me"`
	PendingIOwe     []DebtResponse `json:"pending_i_owe"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToDebtResponse converts a Debt model to DebtResponse DTO from the
// viewer's perspective.
func ToDebtResponse(debt *model.Debt, viewerID int64) *DebtResponse {
	resp := &DebtResponse{
		ID:          debt.ID,
		Amount:      debt.Amount,
		Description: debt.Description,
		Status:      string(debt.Status()),
		Creditor:    debt.Creditor,
		Debtor:      debt.Debtor,
		PaidAt:      debt.PaidAt,
		CreatedAt:   debt.CreatedAt,
		UpdatedAt:   debt.UpdatedAt,
	}
	if typ, ok := debt.TypeFor(viewerID); ok {
		resp.Type = string(typ)
	}
	return resp
}

// ToDebtResponses converts a slice of debts for one viewer.
func ToDebtResponses(debts []*model.Debt, viewerID int64) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i, debt := range debts {
		responses[i] = *ToDebtResponse(debt, viewerID)
	}
	return responses
}

// ToDebtListResponse converts a page of debts to DebtListResponse.
func ToDebtListResponse(page *service.DebtPage, viewerID int64) *DebtListResponse {
	return &DebtListResponse{
		Data: ToDebtResponses(page.Debts, viewerID),
		Pagination: &Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore,
		},
	}
}

// ToSummaryResponse converts the dashboard summary for one viewer.
func ToSummaryResponse(summary *service.DashboardSummary, viewerID int64) *SummaryResponse {
	return &SummaryResponse{
		Overview:        summary.Overview,
		RecentDebts:     ToDebtResponses(summary.RecentDebts, viewerID),
		PendingOwedToMe: ToDebtResponses(summary.PendingOwedToMe, viewerID),
		PendingIOwe:     ToDebtResponses(summary.PendingIOwe, viewerID),
	}
}
