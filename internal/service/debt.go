package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/metrics"
	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/repository"
)

const (
	maxDescriptionLength = 500
	defaultListLimit     = 50
	maxListLimit         = 100
	topCounterpartyLimit = 5
	activityWindowMonths = 6
	summaryListLimit     = 5
)

// maxAmount bounds a single debt; matches the NUMERIC(8,2) column.
var maxAmount = decimal.RequireFromString("999999.99")

// DebtService implements the debt ledger domain logic. It holds no mutable
// state between calls; every operation is a function of the current store
// state and its arguments.
type DebtService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewDebtService creates a new DebtService.
func NewDebtService(repo *repository.Repository, recorder metrics.Recorder) *DebtService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DebtService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateDebtInput defines input for creating a debt.
type CreateDebtInput struct {
	DebtorID    int64
	Amount      decimal.Decimal
	Description string
}

// Create records a new pending debt issued by the creditor against the
// named debtor. The debtor must exist and must not be the creditor.
func (s *DebtService) Create(ctx context.Context, creditorID int64, input CreateDebtInput) (*model.Debt, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if creditorID == input.DebtorID {
		return nil, ErrSelfDebt
	}

	// The debtor id must resolve before the row is persisted.
	if _, err := s.repo.GetUserByID(ctx, input.DebtorID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve debtor: %w", err)
	}

	id, err := s.repo.CreateDebt(ctx, creditorID, input.DebtorID, input.Amount, input.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	s.metrics.IncDebtCreated()

	return s.fetch(ctx, id)
}

// GetByID retrieves a debt for one of its parties. Reads are themselves
// access-controlled: anyone else gets ErrNotParticipant regardless of state.
func (s *DebtService) GetByID(ctx context.Context, id, callerID int64) (*model.Debt, error) {
	debt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canView(debt, callerID); err != nil {
		return nil, err
	}

	return debt, nil
}

// UpdateDebtInput defines the optional fields of a debt update.
type UpdateDebtInput struct {
	Amount      *decimal.Decimal
	Description *string
}

// Update edits the named fields of a pending debt. Either party may correct
// a mistake while the debt is open; a paid debt is immutable.
func (s *DebtService) Update(ctx context.Context, id, callerID int64, input UpdateDebtInput) (*model.Debt, error) {
	if input.Amount == nil && input.Description == nil {
		return nil, ErrNoFieldsToUpdate
	}

	debt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canUpdate(debt, callerID); err != nil {
		return nil, err
	}

	amount := debt.Amount
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		amount = *input.Amount
	}

	description := debt.Description
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		description = *input.Description
	}

	if err := s.repo.UpdateDebt(ctx, id, amount, description); err != nil {
		switch {
		case errors.Is(err, repository.ErrDebtNotFound):
			return nil, ErrDebtNotFound
		case errors.Is(err, repository.ErrDebtNotPending):
			// Lost the race against a concurrent payment.
			return nil, ErrUpdatePaidDebt
		}
		return nil, err
	}

	s.metrics.IncDebtUpdated()

	return s.fetch(ctx, id)
}

// MarkPaid transitions a pending debt to paid. Only the debtor settles;
// the transition is monotonic and happens exactly once.
func (s *DebtService) MarkPaid(ctx context.Context, id, callerID int64) (*model.Debt, error) {
	debt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canMarkPaid(debt, callerID); err != nil {
		return nil, err
	}

	if err := s.repo.MarkDebtPaid(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrDebtNotFound):
			return nil, ErrDebtNotFound
		case errors.Is(err, repository.ErrDebtNotPending):
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}

	s.metrics.IncDebtPaid()

	return s.fetch(ctx, id)
}

// Delete permanently removes a pending debt. Only the issuing creditor may
// retract an obligation, and only while it is unpaid.
func (s *DebtService) Delete(ctx context.Context, id, callerID int64) error {
	debt, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if err := canDelete(debt, callerID); err != nil {
		return err
	}

	if err := s.repo.DeleteDebt(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrDebtNotFound):
			return ErrDebtNotFound
		case errors.Is(err, repository.ErrDebtNotPending):
			return ErrDeletePaidDebt
		}
		return err
	}

	s.metrics.IncDebtDeleted()

	return nil
}

// FindDebtsInput defines input for listing a user's debts.
type FindDebtsInput struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// DebtPage is one page of a user's debts plus pagination metadata.
type DebtPage struct {
	Debts   []*model.Debt
	Total   int64
	Limit   int
	Offset  int
	HasMore bool
}

// FindForUser lists the debts a user is involved in, narrowed by an
// optional status/type filter, paged most recent first.
func (s *DebtService) FindForUser(ctx context.Context, userID int64, input FindDebtsInput) (*DebtPage, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	debts, err := s.repo.ListDebts(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	// Total matches the same predicate, independent of limit/offset.
	total, err := s.repo.CountDebts(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &DebtPage{
		Debts:   debts,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		HasMore: int64(filter.Offset+filter.Limit) < total,
	}, nil
}

// Aggregations derives the full statistics view from the live ledger.
// Nothing here is cached or denormalized; the overview invariant
// NetBalance = TotalOwedToMe - TotalIOwe holds for every reachable state.
func (s *DebtService) Aggregations(ctx context.Context, userID int64) (*model.Aggregations, error) {
	overview, err := s.repo.DebtOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.MonthlyActivity(ctx, userID, activityWindowMonths)
	if err != nil {
		return nil, err
	}

	topDebtors, err := s.repo.TopCounterparties(ctx, userID, model.DebtOwedToMe, topCounterpartyLimit)
	if err != nil {
		return nil, err
	}

	topCreditors, err := s.repo.TopCounterparties(ctx, userID, model.DebtIOwe, topCounterpartyLimit)
	if err != nil {
		return nil, err
	}

	return &model.Aggregations{
		Overview:        *overview,
		MonthlyActivity: monthly,
		TopDebtors:      topDebtors,
		TopCreditors:    topCreditors,
	}, nil
}

// Export returns every debt involving the user, annotated with the role the
// user played and the counterparty's display name.
func (s *DebtService) Export(ctx context.Context, userID int64) ([]model.DebtExportRow, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveExportDuration(time.Since(start))
	}()

	debts, err := s.repo.ListDebts(ctx, userID, repository.DebtFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]model.DebtExportRow, 0, len(debts))
	for _, debt := range debts {
		typ, _ := debt.TypeFor(userID)
		var otherPerson string
		if cp := debt.CounterpartyOf(userID); cp != nil {
			otherPerson = cp.Name
		}

		rows = append(rows, model.DebtExportRow{
			ID:          debt.ID,
			Type:        typ,
			Amount:      debt.Amount,
			Description: debt.Description,
			OtherPerson: otherPerson,
			IsPaid:      debt.IsPaid,
			CreatedAt:   debt.CreatedAt,
			PaidAt:      debt.PaidAt,
		})
	}

	return rows, nil
}

// RecentActivity projects the user's most recent debts into a feed.
func (s *DebtService) RecentActivity(ctx context.Context, userID int64, limit int) ([]model.ActivityItem, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = 10
	}

	debts, err := s.repo.ListDebts(ctx, userID, repository.DebtFilter{Limit: limit})
	if err != nil {
		return nil, err
	}

	return buildActivity(debts, userID), nil
}

// DashboardSummary combines the overview with short pending lists in both
// directions for the dashboard view.
type DashboardSummary struct {
	Overview        model.Overview `json:"overview"`
	RecentDebts     []*model.Debt  `json:"recent_debts"`
	PendingOwedToMe []*model.Debt  `json:"pending_owed_to_me"`
	PendingIOwe     []*model.Debt  `json:"pending_i_owe"`
}

// Summary assembles the dashboard view for a user.
func (s *DebtService) Summary(ctx context.Context, userID int64) (*DashboardSummary, error) {
	overview, err := s.repo.DebtOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListDebts(ctx, userID, repository.DebtFilter{Limit: summaryListLimit})
	if err != nil {
		return nil, err
	}

	pendingOwedToMe, err := s.repo.ListDebts(ctx, userID, repository.DebtFilter{
		Status: model.DebtStatusPending,
		Type:   model.DebtOwedToMe,
		Limit:  summaryListLimit,
	})
	if err != nil {
		return nil, err
	}

	pendingIOwe, err := s.repo.ListDebts(ctx, userID, repository.DebtFilter{
		Status: model.DebtStatusPending,
		Type:   model.DebtIOwe,
		Limit:  summaryListLimit,
	})
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Overview:        *overview,
		RecentDebts:     recent,
		PendingOwedToMe: pendingOwedToMe,
		PendingIOwe:     pendingIOwe,
	}, nil
}

// fetch loads a debt with join data, mapping the not-found case.
func (s *DebtService) fetch(ctx context.Context, id int64) (*model.Debt, error) {
	debt, err := s.repo.GetDebtByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDebtNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, err
	}
	return debt, nil
}

// buildFilter validates and normalizes list parameters into a store filter.
func buildFilter(input FindDebtsInput) (repository.DebtFilter, error) {
	var filter repository.DebtFilter

	switch input.Status {
	case "":
	case string(model.DebtStatusPaid):
		filter.Status = model.DebtStatusPaid
	case string(model.DebtStatusPending):
		filter.Status = model.DebtStatusPending
	default:
		return filter, ErrInvalidFilter
	}

	switch input.Type {
	case "":
	case string(model.DebtOwedToMe):
		filter.Type = model.DebtOwedToMe
	case string(model.DebtIOwe):
		filter.Type = model.DebtIOwe
	default:
		return filter, ErrInvalidFilter
	}

	filter.Limit = input.Limit
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = defaultListLimit
	}

	if input.Offset > 0 {
		filter.Offset = input.Offset
	}

	return filter, nil
}

// buildActivity projects debts into feed entries from the viewer's side.
func buildActivity(debts []*model.Debt, userID int64) []model.ActivityItem {
	items := make([]model.ActivityItem, 0, len(debts))
	for _, debt := range debts {
		typ := model.ActivityDebtCreated
		if debt.IsPaid {
			typ = model.ActivityDebtPaid
		}

		items = append(items, model.ActivityItem{
			ID:          debt.ID,
			Type:        typ,
			Amount:      debt.Amount,
			Description: debt.Description,
			OtherPerson: debt.CounterpartyOf(userID),
			IsCreditor:  debt.CreditorID == userID,
			IsPaid:      debt.IsPaid,
			CreatedAt:   debt.CreatedAt,
			PaidAt:      debt.PaidAt,
		})
	}
	return items
}

// validateAmount enforces the money bounds: strictly positive, at most two
// fraction digits, bounded by the column capacity.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(maxAmount) {
		return ErrAmountTooLarge
	}
	if !amount.Equal(amount.Truncate(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// validateDescription enforces non-empty, bounded text.
func validateDescription(description string) error {
	if description == "" {
		return ErrEmptyDescription
	}
	if len(description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
