package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleDebt() *Debt {
	return &Debt{
		ID:          42,
		CreditorID:  1,
		DebtorID:    2,
		Amount:      decimal.RequireFromString("50.00"),
		Description: "lunch",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Creditor:    &PartySummary{ID: 1, Name: "Alice", Email: "alice@example.com"},
		Debtor:      &PartySummary{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
}

func TestDebt_Status(t *testing.T) {
	t.Parallel()

	d := sampleDebt()
	if d.Status() != DebtStatusPending {
		t.Errorf("Status() = %s, want pending", d.Status())
	}

	now := time.Now()
	d.IsPaid = true
	d.PaidAt = &now
	if d.Status() != DebtStatusPaid {
		t.Errorf("Status() = %s, want paid", d.Status())
	}
}

func TestDebt_IsParty(t *testing.T) {
	t.Parallel()

	d := sampleDebt()

	if !d.IsParty(1) {
		t.Error("creditor should be a party")
	}
	if !d.IsParty(2) {
		t.Error("debtor should be a party")
	}
	if d.IsParty(3) {
		t.Error("uninvolved user should not be a party")
	}
}

func TestDebt_TypeFor(t *testing.T) {
	t.Parallel()

	d := sampleDebt()

	typ, ok := d.TypeFor(1)
	if !ok || typ != DebtOwedToMe {
		t.Errorf("TypeFor(creditor) = %s, %v; want owed_to_me, true", typ, ok)
	}

	typ, ok = d.TypeFor(2)
	if !ok || typ != DebtIOwe {
		t.Errorf("TypeFor(debtor) = %s, %v; want i_owe, true", typ, ok)
	}

	if _, ok := d.TypeFor(3); ok {
		t.Error("TypeFor(stranger) should report not involved")
	}
}

func TestDebt_CounterpartyOf(t *testing.T) {
	t.Parallel()

	d := sampleDebt()

	if cp := d.CounterpartyOf(1); cp == nil || cp.ID != 2 {
		t.Errorf("CounterpartyOf(creditor) = %+v, want debtor", cp)
	}
	if cp := d.CounterpartyOf(2); cp == nil || cp.ID != 1 {
		t.Errorf("CounterpartyOf(debtor) = %+v, want creditor", cp)
	}
	if cp := d.CounterpartyOf(3); cp != nil {
		t.Errorf("CounterpartyOf(stranger) = %+v, want nil", cp)
	}
}

func TestDebtType_IsValid(t *testing.T) {
	t.Parallel()

	if !DebtOwedToMe.IsValid() || !DebtIOwe.IsValid() {
		t.Error("known types should be valid")
	}
	if DebtType("both").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
