package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncDebtCreated is a no-op.
func (n *NoopRecorder) IncDebtCreated() {}

// IncDebtUpdated is a no-op.
func (n *NoopRecorder) IncDebtUpdated() {}

// IncDebtPaid is a no-op.
func (n *NoopRecorder) IncDebtPaid() {}

// IncDebtDeleted is a no-op.
func (n *NoopRecorder) IncDebtDeleted() {}

// ObserveExportDuration is a no-op.
func (n *NoopRecorder) ObserveExportDuration(duration time.Duration) {}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}
