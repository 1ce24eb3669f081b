package service

import "github.com/owely/owely/internal/model"

// Per-operation preconditions for the debt lifecycle. Each mutation has its
// own function so every rule is enumerable and testable on its own.
//
// Permission is asymmetric: creation and deletion are creditor-privileged,
// settlement is debtor-privileged, edits are bilateral while the debt is
// open. State is always checked before role.

// canView enforces the confidentiality rule on reads: only the two parties
// may see a debt, in any lifecycle state.
func canView(debt *model.Debt, userID int64) error {
	if !debt.IsParty(userID) {
		return ErrNotParticipant
	}
	return nil
}

// canUpdate allows either party to edit amount/description while unpaid.
func canUpdate(debt *model.Debt, userID int64) error {
	if debt.IsPaid {
		return ErrUpdatePaidDebt
	}
	if !debt.IsParty(userID) {
		return ErrNotParticipant
	}
	return nil
}

// canMarkPaid allows exactly the debtor to settle a pending debt. The
// creditor cannot attest payment on the debtor's behalf.
func canMarkPaid(debt *model.Debt, userID int64) error {
	if debt.IsPaid {
		return ErrAlreadyPaid
	}
	if debt.DebtorID != userID {
		return ErrOnlyDebtorPays
	}
	return nil
}

// canDelete allows exactly the issuing creditor to retract a pending debt.
// Paid debts are historical record and cannot be removed by anyone.
func canDelete(debt *model.Debt, userID int64) error {
	if debt.IsPaid {
		return ErrDeletePaidDebt
	}
	if debt.CreditorID != userID {
		return ErrOnlyCreditorDel
	}
	return nil
}
