package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	rec.IncDebtCreated()
	rec.IncDebtCreated()
	rec.IncDebtPaid()
	rec.IncUserRegistered()
	rec.IncLoginSuccess()
	rec.IncLoginFailure()
	rec.ObserveExportDuration(10 * time.Millisecond)
	rec.ObserveExportDuration(5 * time.Millisecond)

	snap := rec.Snapshot()

	if snap.DebtsCreated != 2 {
		t.Errorf("DebtsCreated = %d, want 2", snap.DebtsCreated)
	}
	if snap.DebtsPaid != 1 {
		t.Errorf("DebtsPaid = %d, want 1", snap.DebtsPaid)
	}
	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.LoginSuccesses != 1 || snap.LoginFailures != 1 {
		t.Errorf("logins = %d/%d, want 1/1", snap.LoginSuccesses, snap.LoginFailures)
	}
	if snap.ExportCount != 2 {
		t.Errorf("ExportCount = %d, want 2", snap.ExportCount)
	}
	if snap.ExportTotalTime != 15*time.Millisecond {
		t.Errorf("ExportTotalTime = %s, want 15ms", snap.ExportTotalTime)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.IncDebtCreated()
		}()
	}
	wg.Wait()

	if got := rec.Snapshot().DebtsCreated; got != 50 {
		t.Errorf("DebtsCreated = %d, want 50", got)
	}
}
