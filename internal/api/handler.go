package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niveshlab/folio/internal/domain"
)

// SnapshotBuilder builds a portfolio snapshot. It never fails; upstream
// degradation is visible only through fallback values and nulls.
type SnapshotBuilder interface {
	Build(ctx context.Context) domain.PortfolioSnapshot
}

// Handler provides the portfolio HTTP endpoints.
type Handler struct {
	snapshots SnapshotBuilder
}

// NewHandler creates a new API handler.
func NewHandler(snapshots SnapshotBuilder) *Handler {
	return &Handler{snapshots: snapshots}
}

// GetPortfolio handles GET /api/v1/portfolio. Each request builds a fresh
// snapshot, so responses must not be cached.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Build(r.Context())
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}
