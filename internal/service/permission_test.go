package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/model"
)

const (
	creditorID int64 = 1
	debtorID   int64 = 2
	strangerID int64 = 3
)

func pendingDebt() *model.Debt {
	return &model.Debt{
		ID:          10,
		CreditorID:  creditorID,
		DebtorID:    debtorID,
		Amount:      decimal.RequireFromString("50.00"),
		Description: "lunch",
	}
}

func paidDebt() *model.Debt {
	d := pendingDebt()
	now := time.Now()
	d.IsPaid = true
	d.PaidAt = &now
	return d
}

func TestCanView(t *testing.T) {
	t.Parallel()

	d := pendingDebt()

	if err := canView(d, creditorID); err != nil {
		t.Errorf("creditor view: %v", err)
	}
	if err := canView(d, debtorID); err != nil {
		t.Errorf("debtor view: %v", err)
	}
	if err := canView(d, strangerID); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger view = %v, want ErrNotParticipant", err)
	}

	// Confidentiality is independent of lifecycle state.
	if err := canView(paidDebt(), strangerID); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger view of paid debt = %v, want ErrNotParticipant", err)
	}
}

func TestCanUpdate(t *testing.T) {
	t.Parallel()

	d := pendingDebt()

	if err := canUpdate(d, creditorID); err != nil {
		t.Errorf("creditor update: %v", err)
	}
	if err := canUpdate(d, debtorID); err != nil {
		t.Errorf("debtor update: %v", err)
	}
	if err := canUpdate(d, strangerID); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger update = %v, want ErrNotParticipant", err)
	}
}

func TestCanUpdate_PaidDebt(t *testing.T) {
	t.Parallel()

	// A paid debt is immutable for everyone; state wins over role.
	d := paidDebt()
	for _, userID := range []int64{creditorID, debtorID, strangerID} {
		if err := canUpdate(d, userID); !errors.Is(err, ErrUpdatePaidDebt) {
			t.Errorf("update paid debt by %d = %v, want ErrUpdatePaidDebt", userID, err)
		}
	}
}

func TestCanMarkPaid(t *testing.T) {
	t.Parallel()

	d := pendingDebt()

	if err := canMarkPaid(d, debtorID); err != nil {
		t.Errorf("debtor pay: %v", err)
	}
	// The creditor cannot mark their own receivable paid.
	if err := canMarkPaid(d, creditorID); !errors.Is(err, ErrOnlyDebtorPays) {
		t.Errorf("creditor pay = %v, want ErrOnlyDebtorPays", err)
	}
	if err := canMarkPaid(d, strangerID); !errors.Is(err, ErrOnlyDebtorPays) {
		t.Errorf("stranger pay = %v, want ErrOnlyDebtorPays", err)
	}
}

func TestCanMarkPaid_AlreadyPaid(t *testing.T) {
	t.Parallel()

	d := paidDebt()
	for _, userID := range []int64{creditorID, debtorID, strangerID} {
		if err := canMarkPaid(d, userID); !errors.Is(err, ErrAlreadyPaid) {
			t.Errorf("re-pay by %d = %v, want ErrAlreadyPaid", userID, err)
		}
	}
}

func TestCanDelete(t *testing.T) {
	t.Parallel()

	d := pendingDebt()

	if err := canDelete(d, creditorID); err != nil {
		t.Errorf("creditor delete: %v", err)
	}
	// A debtor must not be able to erase their own obligation.
	if err := canDelete(d, debtorID); !errors.Is(err, ErrOnlyCreditorDel) {
		t.Errorf("debtor delete = %v, want ErrOnlyCreditorDel", err)
	}
	if err := canDelete(d, strangerID); !errors.Is(err, ErrOnlyCreditorDel) {
		t.Errorf("stranger delete = %v, want ErrOnlyCreditorDel", err)
	}
}

func TestCanDelete_PaidDebt(t *testing.T) {
	t.Parallel()

	d := paidDebt()
	for _, userID := range []int64{creditorID, debtorID, strangerID} {
		if err := canDelete(d, userID); !errors.Is(err, ErrDeletePaidDebt) {
			t.Errorf("delete paid debt by %d = %v, want ErrDeletePaidDebt", userID, err)
		}
	}
}
