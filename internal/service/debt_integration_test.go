//go:build integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/repository"
	"github.com/owely/owely/internal/testutil"
)

// ============================================================================
// Debt Service Integration Tests
// ============================================================================

func TestIntegrationDebtService_CreateSelfDebt(t *testing.T) {
	ctx, repo, svc := newDebtServiceTestEnv(t)
	alice := testutil.SeedUser(ctx, t, repo.Pool(), testutil.UniqueEmail("alice"), "Alice")

	_, err := svc.Create(ctx, alice, CreateDebtInput{
		DebtorID:    alice,
		Amount:      decimal.RequireFromString("10.00"),
		Description: "round trip",
	})
	if !errors.Is(err, ErrSelfDebt) {
		t.Fatalf("expected ErrSelfDebt, got %v", err)
	}

	// The rejected create must leave no row behind.
	page, err := svc.FindForUser(ctx, alice, FindDebtsInput{})
	if err != nil {
		t.Fatalf("FindForUser failed: %v", err)
	}
	if page.Total != 0 || len(page.Debts) != 0 {
		t.Errorf("expected empty ledger, got total=%d len=%d", page.Total, len(page.Debts))
	}
}

func TestIntegrationDebtService_CreateUnknownDebtor(t *testing.T) {
	ctx, repo, svc := newDebtServiceTestEnv(t)
	alice := testutil.SeedUser(ctx, t, repo.Pool(), testutil.UniqueEmail("alice"), "Alice")

	_, err := svc.Create(ctx, alice, CreateDebtInput{
		DebtorID:    999999,
		Amount:      decimal.RequireFromString("10.00"),
		Description: "ghost debtor",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	page, err := svc.FindForUser(ctx, alice, FindDebtsInput{})
	if err != nil {
		t.Fatalf("FindForUser failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected empty ledger, got total=%d", page.Total)
	}
}

func TestIntegrationDebtService_FindForUserPagination(t *testing.T) {
	ctx, repo, svc := newDebtServiceTestEnv(t)
	alice := testutil.SeedUser(ctx, t, repo.Pool(), testutil.UniqueEmail("alice"), "Alice")
	bob := testutil.SeedUser(ctx, t, repo.Pool(), testutil.UniqueEmail("bob"), "Bob")

	for i := 0; i < 5; i++ {
		testutil.SeedDebt(ctx, t, repo.Pool(), alice, bob, "10.00")
	}

	first, err := svc.FindForUser(ctx, alice, FindDebtsInput{Limit: 2})
	if err != nil {
		t.Fatalf("FindForUser failed: %v", err)
	}
	if first.Total != 5 {
		t.Errorf("Total = %d, want 5", first.Total)
	}
	if len(first.Debts) != 2 {
		t.Errorf("len(Debts) = %d, want 2", len(first.Debts))
	}
	if !first.HasMore {
		t.Error("first page: HasMore = false, want true")
	}

	// offset+limit landing exactly on total means nothing is left.
	boundary, err := svc.FindForUser(ctx, alice, FindDebtsInput{Limit: 2, Offset: 3})
	if err != nil {
		t.Fatalf("FindForUser failed: %v", err)
	}
	if len(boundary.Debts) != 2 {
		t.Errorf("boundary page: len(Debts) = %d, want 2", len(boundary.Debts))
	}
	if boundary.HasMore {
		t.Error("boundary page: HasMore = true, want false")
	}

	last, err := svc.FindForUser(ctx, alice, FindDebtsInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("FindForUser failed: %v", err)
	}
	if len(last.Debts) != 1 {
		t.Errorf("last page: len(Debts) = %d, want 1", len(last.Debts))
	}
	if last.HasMore {
		t.Error("last page: HasMore = true, want false")
	}
	if last.Total != 5 {
		t.Errorf("last page: Total = %d, want 5", last.Total)
	}
}

func newDebtServiceTestEnv(t *testing.T) (context.Context, *repository.Repository, *DebtService) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo, NewDebtService(repo, nil)
}
