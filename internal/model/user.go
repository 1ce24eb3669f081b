// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that can appear on either side of a debt.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary returns the display snapshot of the user attached to debts.
func (u *User) Summary() *PartySummary {
	return &PartySummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// PartySummary is the display identity of a debt party, joined at query time.
// The ledger never mutates users; it only carries this snapshot.
type PartySummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
