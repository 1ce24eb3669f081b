// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Ledger metrics
	IncDebtCreated()
	IncDebtUpdated()
	IncDebtPaid()
	IncDebtDeleted()
	ObserveExportDuration(duration time.Duration)

	// Account metrics
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Snapshot is a point-in-time view of recorded counters.
type Snapshot struct {
	DebtsCreated    int64         `json:"debts_created"`
	DebtsUpdated    int64         `json:"debts_updated"`
	DebtsPaid       int64         `json:"debts_paid"`
	DebtsDeleted    int64         `json:"debts_deleted"`
	UsersRegistered int64         `json:"users_registered"`
	LoginSuccesses  int64         `json:"login_successes"`
	LoginFailures   int64         `json:"login_failures"`
	ExportCount     int64         `json:"export_count"`
	ExportTotalTime time.Duration `json:"export_total_time"`
}
