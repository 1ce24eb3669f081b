// Command seed-demo-data populates a database with demo accounts and a
// small debt ledger between them, for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/owely/owely/internal/auth"
	"github.com/owely/owely/internal/metrics"
	"github.com/owely/owely/internal/repository"
	"github.com/owely/owely/internal/service"
)

type demoUser struct {
	email string
	name  string
}

type demoDebt struct {
	creditor    int // index into demoUsers
	debtor      int
	amount      string
	description string
	paid        bool
}

var demoUsers = []demoUser{
	{"alice@owely.local", "Alice Nguyen"},
	{"bob@owely.local", "Bob Harris"},
	{"carol@owely.local", "Carol Diaz"},
	{"dave@owely.local", "Dave Kim"},
}

var demoDebts = []demoDebt{
	{0, 1, "42.50", "Dinner at the thai place", false},
	{0, 2, "120.00", "Concert tickets", false},
	{1, 0, "15.75", "Coffee runs, week of the offsite", true},
	{2, 0, "300.00", "March rent share", false},
	{2, 3, "18.20", "Groceries", true},
	{3, 1, "75.00", "Car repair split", false},
	{1, 3, "9.99", "Streaming subscription", false},
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		password    = flag.String("password", "demo-password", "Password for every demo account")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	ids := make([]int64, len(demoUsers))
	for i, u := range demoUsers {
		user, err := repo.CreateUser(ctx, u.email, u.name, hash)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create user %s: %v\n", u.email, err)
			os.Exit(1)
		}
		ids[i] = user.ID
		fmt.Printf("user %-22s id=%d\n", u.email, user.ID)
	}

	debts := service.NewDebtService(repo, metrics.NewNoop())
	for _, d := range demoDebts {
		debt, err := debts.Create(ctx, ids[d.creditor], service.CreateDebtInput{
			DebtorID:    ids[d.debtor],
			Amount:      decimal.RequireFromString(d.amount),
			Description: d.description,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "create debt %q: %v\n", d.description, err)
			os.Exit(1)
		}
		if d.paid {
			if _, err := debts.MarkPaid(ctx, debt.ID, ids[d.debtor]); err != nil {
				fmt.Fprintf(os.Stderr, "mark debt %d paid: %v\n", debt.ID, err)
				os.Exit(1)
			}
		}
		fmt.Printf("debt %-36s id=%d paid=%v\n", d.description, debt.ID, d.paid)
	}

	fmt.Printf("\nseeded %d users and %d debts; password for all accounts: %s\n",
		len(demoUsers), len(demoDebts), *password)
}
