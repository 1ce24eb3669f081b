package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/model"
)

// baseDebtQuery joins both party display snapshots onto each debt row.
const baseDebtQuery = `
	SELECT d.id, d.creditor_id, d.debtor_id, d.amount, d.description,
	       d.is_paid, d.paid_at, d.created_at, d.updated_at,
	       c.name, c.email, deb.name, deb.email
	FROM debts d
	JOIN users c ON d.creditor_id = c.id
	JOIN users deb ON d.debtor_id = deb.id
`

// CreateDebt inserts a new pending debt and returns its generated id.
func (r *Repository) CreateDebt(ctx context.Context, creditorID, debtorID int64, amount decimal.Decimal, description string) (int64, error) {
	query := `
		INSERT INTO debts (creditor_id, debtor_id, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, creditorID, debtorID, amount, description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create debt: %w", err)
	}

	return id, nil
}

// GetDebtByID retrieves a debt with both party summaries attached.
func (r *Repository) GetDebtByID(ctx context.Context, id int64) (*model.Debt, error) {
	query := baseDebtQuery + ` WHERE d.id = $1`

	debt, err := scanDebt(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDebtNotFound
		}
		return nil, fmt.Errorf("failed to get debt by ID: %w", err)
	}

	return debt, nil
}

// ListDebts retrieves the debts involving a user, narrowed by filter,
// ordered most recent first with ties broken by id ascending.
func (r *Repository) ListDebts(ctx context.Context, userID int64, filter DebtFilter) ([]*model.Debt, error) {
	query := baseDebtQuery + ` WHERE (d.creditor_id = $1 OR d.debtor_id = $1)`
	args := []any{userID}
	argIndex := 2

	for _, cond := range filter.predicates() {
		query += " AND " + cond
	}

	query += " ORDER BY d.created_at DESC, d.id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*model.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}

	return debts, nil
}

// CountDebts counts the rows matching the same involvement and filter
// predicates as ListDebts, independent of limit/offset.
func (r *Repository) CountDebts(ctx context.Context, userID int64, filter DebtFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM debts d WHERE (d.creditor_id = $1 OR d.debtor_id = $1)`
	for _, cond := range filter.predicates() {
		query += " AND " + cond
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count debts: %w", err)
	}

	return total, nil
}

// UpdateDebt overwrites the mutable fields of a pending debt.
// The write is guarded on is_paid = false so a concurrent payment
// cannot be silently overwritten.
func (r *Repository) UpdateDebt(ctx context.Context, id int64, amount decimal.Decimal, description string) error {
	query := `
		UPDATE debts
		SET amount = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND is_paid = false
	`

	result, err := r.pool.Exec(ctx, query, id, amount, description)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, id)
	}

	return nil
}

// MarkDebtPaid transitions a debt from pending to paid in a single
// conditional update. Of two concurrent calls, exactly one succeeds;
// the other observes ErrDebtNotPending.
func (r *Repository) MarkDebtPaid(ctx context.Context, id int64) error {
	query := `
		UPDATE debts
		SET is_paid = true, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_paid = false
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark debt paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, id)
	}

	return nil
}

// DeleteDebt permanently removes a pending debt. Paid debts are
// historical record and cannot be removed.
func (r *Repository) DeleteDebt(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1 AND is_paid = false`, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, id)
	}

	return nil
}

// classifyMissedWrite distinguishes "row gone" from "row no longer pending"
// after a guarded write touched zero rows.
func (r *Repository) classifyMissedWrite(ctx context.Context, id int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM debts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check debt existence: %w", err)
	}
	if !exists {
		return ErrDebtNotFound
	}
	return ErrDebtNotPending
}

// DebtOverview computes per-user counts and outstanding sums in one pass.
func (r *Repository) DebtOverview(ctx context.Context, userID int64) (*model.Overview, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE creditor_id = $1),
			COUNT(*) FILTER (WHERE debtor_id = $1),
			COUNT(*) FILTER (WHERE creditor_id = $1 AND is_paid = true),
			COUNT(*) FILTER (WHERE debtor_id = $1 AND is_paid = true),
			COALESCE(SUM(amount) FILTER (WHERE creditor_id = $1 AND is_paid = false), 0),
			COALESCE(SUM(amount) FILTER (WHERE debtor_id = $1 AND is_paid = false), 0)
		FROM debts
		WHERE creditor_id = $1 OR debtor_id = $1
	`

	var o model.Overview
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&o.DebtsOwedToMe,
		&o.MyDebts,
		&o.PaidDebtsToMe,
		&o.MyPaidDebts,
		&o.TotalOwedToMe,
		&o.TotalIOwe,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute debt overview: %w", err)
	}

	o.NetBalance = o.TotalOwedToMe.Sub(o.TotalIOwe)

	return &o, nil
}

// TopCounterparties ranks the user's counterparties on one side of the
// ledger by total amount (paid and unpaid) descending. Ties are broken by
// counterparty id ascending to keep the ranking deterministic.
func (r *Repository) TopCounterparties(ctx context.Context, userID int64, typ model.DebtType, limit int) ([]model.CounterpartyStanding, error) {
	var ownCol, otherCol string
	switch typ {
	case model.DebtOwedToMe:
		ownCol, otherCol = "creditor_id", "debtor_id"
	case model.DebtIOwe:
		ownCol, otherCol = "debtor_id", "creditor_id"
	default:
		return nil, fmt.Errorf("invalid counterparty side: %q", typ)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.name, u.email,
		       COUNT(*),
		       SUM(d.amount),
		       COUNT(*) FILTER (WHERE d.is_paid = false),
		       COALESCE(SUM(d.amount) FILTER (WHERE d.is_paid = false), 0)
		FROM debts d
		JOIN users u ON d.%s = u.id
		WHERE d.%s = $1
		GROUP BY u.id, u.name, u.email
		ORDER BY SUM(d.amount) DESC, u.id ASC
		LIMIT $2
	`, otherCol, ownCol)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank counterparties: %w", err)
	}
	defer rows.Close()

	var standings []model.CounterpartyStanding
	for rows.Next() {
		var s model.CounterpartyStanding
		err := rows.Scan(
			&s.User.ID,
			&s.User.Name,
			&s.User.Email,
			&s.DebtCount,
			&s.TotalAmount,
			&s.PendingCount,
			&s.PendingAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty standing: %w", err)
		}
		standings = append(standings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterparties: %w", err)
	}

	return standings, nil
}

// MonthlyActivity buckets the user's debts by calendar month of creation
// over a trailing window, most recent month first.
func (r *Repository) MonthlyActivity(ctx context.Context, userID int64, months int) ([]model.MonthlyActivity, error) {
	query := `
		SELECT
			DATE_TRUNC('month', created_at) AS month,
			COUNT(*) FILTER (WHERE creditor_id = $1),
			COUNT(*) FILTER (WHERE debtor_id = $1),
			COUNT(*) FILTER (WHERE debtor_id = $1 AND is_paid = true)
		FROM debts
		WHERE (creditor_id = $1 OR debtor_id = $1)
		  AND created_at >= NOW() - ($2 * INTERVAL '1 month')
		GROUP BY DATE_TRUNC('month', created_at)
		ORDER BY month DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly activity: %w", err)
	}
	defer rows.Close()

	var activity []model.MonthlyActivity
	for rows.Next() {
		var m model.MonthlyActivity
		if err := rows.Scan(&m.Month, &m.DebtsCreated, &m.DebtsReceived, &m.DebtsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan monthly activity: %w", err)
		}
		activity = append(activity, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly activity: %w", err)
	}

	return activity, nil
}

// CountPendingDebts counts unpaid debts the user is involved in on either side.
func (r *Repository) CountPendingDebts(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM debts
		WHERE (creditor_id = $1 OR debtor_id = $1) AND is_paid = false
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending debts: %w", err)
	}

	return count, nil
}

// scanDebt scans a joined debt row into a Debt model with party summaries.
func scanDebt(row pgx.Row) (*model.Debt, error) {
	var (
		debt                        model.Debt
		creditorName, creditorEmail string
		debtorName, debtorEmail     string
	)

	err := row.Scan(
		&debt.ID,
		&debt.CreditorID,
		&debt.DebtorID,
		&debt.Amount,
		&debt.Description,
		&debt.IsPaid,
		&debt.PaidAt,
		&debt.CreatedAt,
		&debt.UpdatedAt,
		&creditorName,
		&creditorEmail,
		&debtorName,
		&debtorEmail,
	)
	if err != nil {
		return nil, err
	}

	debt.Creditor = &model.PartySummary{ID: debt.CreditorID, Name: creditorName, Email: creditorEmail}
	debt.Debtor = &model.PartySummary{ID: debt.DebtorID, Name: debtorName, Email: debtorEmail}

	return &debt, nil
}
