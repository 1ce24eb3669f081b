package metrics

import (
	"sync"
	"time"
)

// InMemoryRecorder implements Recorder with mutex-guarded in-process
// counters. It backs the /debug/metrics endpoint; not a metrics backend.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder backed by in-process counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

func (m *InMemoryRecorder) IncDebtCreated() {
	m.mu.Lock()
	m.snap.DebtsCreated++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncDebtUpdated() {
	m.mu.Lock()
	m.snap.DebtsUpdated++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncDebtPaid() {
	m.mu.Lock()
	m.snap.DebtsPaid++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncDebtDeleted() {
	m.mu.Lock()
	m.snap.DebtsDeleted++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) ObserveExportDuration(duration time.Duration) {
	m.mu.Lock()
	m.snap.ExportCount++
	m.snap.ExportTotalTime += duration
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncUserRegistered() {
	m.mu.Lock()
	m.snap.UsersRegistered++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncLoginSuccess() {
	m.mu.Lock()
	m.snap.LoginSuccesses++
	m.mu.Unlock()
}

func (m *InMemoryRecorder) IncLoginFailure() {
	m.mu.Lock()
	m.snap.LoginFailures++
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}
