// Package service provides business logic for the application.
package service

import "errors"

// Domain errors. Each is local and recoverable; handlers translate them
// into transport responses, none is retried internally.
var (
	// Not found
	ErrDebtNotFound = errors.New("debt not found")
	ErrUserNotFound = errors.New("user not found")

	// Invalid operation: well-typed request violating a domain rule
	// independent of current state.
	ErrSelfDebt           = errors.New("creditor and debtor cannot be the same person")
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrAmountTooLarge     = errors.New("amount cannot exceed 999,999.99")
	ErrAmountPrecision    = errors.New("amount cannot have more than 2 decimal places")
	ErrEmptyDescription   = errors.New("description is required")
	ErrDescriptionTooLong = errors.New("description cannot exceed 500 characters")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrInvalidFilter      = errors.New("invalid filter value")

	// Invalid state: the debt's lifecycle forbids the operation.
	ErrUpdatePaidDebt = errors.New("cannot update a paid debt")
	ErrDeletePaidDebt = errors.New("cannot delete a paid debt")
	ErrAlreadyPaid    = errors.New("debt is already paid")

	// Forbidden: the caller lacks the required role on this debt.
	ErrNotParticipant  = errors.New("you are not involved in this debt")
	ErrOnlyDebtorPays  = errors.New("only the debtor can mark a debt as paid")
	ErrOnlyCreditorDel = errors.New("only the creditor can delete a debt")

	// Account errors
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPendingDebts       = errors.New("cannot delete account with pending debts")
)
