package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overview holds per-user debt counts and outstanding balances.
// Sums only include unpaid debts; paid debts no longer represent exposure.
type Overview struct {
	DebtsOwedToMe int64 `json:"total_debts_owed_to_me"`
	MyDebts       int64 `json:"total_my_debts"`
	PaidDebtsToMe int64 `json:"total_paid_debts_to_me"`
	MyPaidDebts   int64 `json:"total_my_paid_debts"`

	TotalOwedToMe decimal.Decimal `json:"total_amount_owed_to_me"`
	TotalIOwe     decimal.Decimal `json:"total_amount_i_owe"`

	// NetBalance = TotalOwedToMe - TotalIOwe. Derived on every call,
	// never stored, so it always reflects the live ledger.
	NetBalance decimal.Decimal `json:"net_balance"`
}

// CounterpartyStanding ranks a single counterparty by total debt volume
// between them and the viewing user.
type CounterpartyStanding struct {
	User          PartySummary    `json:"user"`
	DebtCount     int64           `json:"debt_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PendingCount  int64           `json:"pending_count"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// MonthlyActivity holds debt activity counts for one calendar month.
type MonthlyActivity struct {
	Month         time.Time `json:"month"`
	DebtsCreated  int64     `json:"debts_created"`
	DebtsReceived int64     `json:"debts_received"`
	DebtsPaid     int64     `json:"debts_paid"`
}

// Aggregations is the full statistics view over a user's debts,
// recomputed from current ledger state on every call.
type Aggregations struct {
	Overview        Overview               `json:"overview"`
	MonthlyActivity []MonthlyActivity      `json:"monthly_activity"`
	TopDebtors      []CounterpartyStanding `json:"top_debtors"`
	TopCreditors    []CounterpartyStanding `json:"top_creditors"`
}

// ActivityType distinguishes feed entries.
type ActivityType string

const (
	ActivityDebtCreated ActivityType = "debt_created"
	ActivityDebtPaid    ActivityType = "debt_paid"
)

// ActivityItem is one entry in a user's recent activity feed,
// a debt projected from the viewing user's perspective.
type ActivityItem struct {
	ID          int64           `json:"id"`
	Type        ActivityType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OtherPerson *PartySummary   `json:"other_person"`
	IsCreditor  bool            `json:"is_creditor"`
	IsPaid      bool            `json:"is_paid"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at"`
}

// DebtExportRow is one row of a debt export, annotated with the role the
// exporting user played and the counterparty's display name.
type DebtExportRow struct {
	ID          int64           `json:"id"`
	Type        DebtType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OtherPerson string          `json:"otherPerson"`
	IsPaid      bool            `json:"isPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
	PaidAt      *time.Time      `json:"paidAt"`
}
