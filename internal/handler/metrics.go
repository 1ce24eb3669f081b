package handler

import (
	"net/http"

	"github.com/owely/owely/internal/metrics"
)

// MetricsHandler exposes the in-process counters on the ops surface.
type MetricsHandler struct {
	snapshots metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshots metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshots: snapshots}
}

// Snapshot handles GET /debug/metrics.
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshots.Snapshot())
}
