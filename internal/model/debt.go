package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus represents the lifecycle state of a debt.
// A deleted debt has no status; deletion removes the row.
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPaid    DebtStatus = "paid"
)

// DebtType describes which side of a debt a given user is on.
type DebtType string

const (
	// DebtOwedToMe: the user is the creditor.
	DebtOwedToMe DebtType = "owed_to_me"
	// DebtIOwe: the user is the debtor.
	DebtIOwe DebtType = "i_owe"
)

// IsValid checks if the debt type is one of the two known sides.
func (t DebtType) IsValid() bool {
	return t == DebtOwedToMe || t == DebtIOwe
}

// Debt represents a bilateral monetary obligation between two users.
type Debt struct {
	ID          int64           `json:"id"`
	CreditorID  int64           `json:"creditor_id"`
	DebtorID    int64           `json:"debtor_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Party display snapshots, populated on joined reads.
	Creditor *PartySummary `json:"creditor,omitempty"`
	Debtor   *PartySummary `json:"debtor,omitempty"`
}

// Status computes the current lifecycle state of the debt.
func (d *Debt) Status() DebtStatus {
	if d.IsPaid {
		return DebtStatusPaid
	}
	return DebtStatusPending
}

// IsParty returns true if the user is the creditor or the debtor.
func (d *Debt) IsParty(userID int64) bool {
	return d.CreditorID == userID || d.DebtorID == userID
}

// TypeFor returns the side of the debt the user is on.
// The second return value is false for uninvolved users.
func (d *Debt) TypeFor(userID int64) (DebtType, bool) {
	switch userID {
	case d.CreditorID:
		return DebtOwedToMe, true
	case d.DebtorID:
		return DebtIOwe, true
	default:
		return "", false
	}
}

// CounterpartyOf returns the display identity of the other party
// from the given user's perspective. Nil for uninvolved users.
func (d *Debt) CounterpartyOf(userID int64) *PartySummary {
	switch userID {
	case d.CreditorID:
		return d.Debtor
	case d.DebtorID:
		return d.Creditor
	default:
		return nil
	}
}
