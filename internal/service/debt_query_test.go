package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/model"
	"github.com/owely/owely/internal/repository"
)

func TestBuildFilter_Defaults(t *testing.T) {
	t.Parallel()

	filter, err := buildFilter(FindDebtsInput{})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}

	if filter.Status != "" || filter.Type != "" {
		t.Errorf("empty input should produce no predicates, got %+v", filter)
	}
	if filter.Limit != 50 {
		t.Errorf("default limit = %d, want 50", filter.Limit)
	}
	if filter.Offset != 0 {
		t.Errorf("default offset = %d, want 0", filter.Offset)
	}
}

func TestBuildFilter_Values(t *testing.T) {
	t.Parallel()

	filter, err := buildFilter(FindDebtsInput{
		Status: "pending",
		Type:   "i_owe",
		Limit:  20,
		Offset: 40,
	})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}

	want := repository.DebtFilter{
		Status: model.DebtStatusPending,
		Type:   model.DebtIOwe,
		Limit:  20,
		Offset: 40,
	}
	if filter != want {
		t.Errorf("filter = %+v, want %+v", filter, want)
	}
}

func TestBuildFilter_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := buildFilter(FindDebtsInput{Status: "settled"}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("unknown status = %v, want ErrInvalidFilter", err)
	}
	if _, err := buildFilter(FindDebtsInput{Type: "everything"}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("unknown type = %v, want ErrInvalidFilter", err)
	}
}

func TestBuildFilter_LimitClamping(t *testing.T) {
	t.Parallel()

	filter, _ := buildFilter(FindDebtsInput{Limit: 10000, Offset: -5})
	if filter.Limit != 50 {
		t.Errorf("oversized limit = %d, want clamped to 50", filter.Limit)
	}
	if filter.Offset != 0 {
		t.Errorf("negative offset = %d, want 0", filter.Offset)
	}
}

func TestBuildActivity(t *testing.T) {
	t.Parallel()

	paidAt := time.Now()
	debts := []*model.Debt{
		{
			ID:          1,
			CreditorID:  creditorID,
			DebtorID:    debtorID,
			Amount:      decimal.RequireFromString("50.00"),
			Description: "lunch",
			Creditor:    &model.PartySummary{ID: creditorID, Name: "Alice"},
			Debtor:      &model.PartySummary{ID: debtorID, Name: "Bob"},
		},
		{
			ID:          2,
			CreditorID:  debtorID,
			DebtorID:    creditorID,
			Amount:      decimal.RequireFromString("12.50"),
			Description: "coffee",
			IsPaid:      true,
			PaidAt:      &paidAt,
			Creditor:    &model.PartySummary{ID: debtorID, Name: "Bob"},
			Debtor:      &model.PartySummary{ID: creditorID, Name: "Alice"},
		},
	}

	items := buildActivity(debts, creditorID)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.Type != model.ActivityDebtCreated {
		t.Errorf("pending debt type = %s, want debt_created", first.Type)
	}
	if !first.IsCreditor {
		t.Error("viewer is the creditor of the first debt")
	}
	if first.OtherPerson == nil || first.OtherPerson.ID != debtorID {
		t.Errorf("first counterparty = %+v, want debtor", first.OtherPerson)
	}

	second := items[1]
	if second.Type != model.ActivityDebtPaid {
		t.Errorf("paid debt type = %s, want debt_paid", second.Type)
	}
	if second.IsCreditor {
		t.Error("viewer is the debtor of the second debt")
	}
	if second.PaidAt == nil {
		t.Error("paid activity should carry paid_at")
	}
}
