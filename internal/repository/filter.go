package repository

import "github.com/owely/owely/internal/model"

// DebtFilter narrows the set of debts where a user is involved.
// Zero values mean "no constraint". It is translated into parameterized
// SQL by predicate; user-supplied values never reach the query text.
type DebtFilter struct {
	// Status narrows by lifecycle state: pending or paid.
	Status model.DebtStatus
	// Type narrows to one side: owed_to_me (creditor) or i_owe (debtor).
	Type model.DebtType
	// Limit caps the page size. Limit <= 0 means no limit.
	Limit int
	// Offset skips rows for pagination.
	Offset int
}

// predicates returns the WHERE conditions for this filter beyond the base
// involvement check. The user id is always bound as $1; no condition adds
// query arguments of its own.
func (f DebtFilter) predicates() []string {
	var conds []string

	switch f.Status {
	case model.DebtStatusPaid:
		conds = append(conds, "d.is_paid = true")
	case model.DebtStatusPending:
		conds = append(conds, "d.is_paid = false")
	}

	switch f.Type {
	case model.DebtOwedToMe:
		conds = append(conds, "d.creditor_id = $1")
	case model.DebtIOwe:
		conds = append(conds, "d.debtor_id = $1")
	}

	return conds
}
