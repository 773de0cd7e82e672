// Package worker contains long-running background loops.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/niveshlab/folio/internal/domain"
)

// SnapshotBuilder builds a portfolio snapshot.
type SnapshotBuilder interface {
	Build(ctx context.Context) domain.PortfolioSnapshot
}

// SnapshotExporter pushes a snapshot to an external destination.
type SnapshotExporter interface {
	Write(ctx context.Context, snap domain.PortfolioSnapshot) error
}

// ExportWorker periodically builds a snapshot and exports it.
type ExportWorker struct {
	builder  SnapshotBuilder
	exporter SnapshotExporter
	interval time.Duration
}

// NewExportWorker creates a new ExportWorker.
func NewExportWorker(builder SnapshotBuilder, exporter SnapshotExporter, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		builder:  builder,
		exporter: exporter,
		interval: interval,
	}
}

// Run starts the export worker loop. It blocks until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context) {
	slog.Info("ExportWorker: starting")

	// Export immediately on startup
	w.export(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ExportWorker: shutting down")
			return
		case <-ticker.C:
			w.export(ctx)
		}
	}
}

func (w *ExportWorker) export(ctx context.Context) {
	snap := w.builder.Build(ctx)
	if err := w.exporter.Write(ctx, snap); err != nil {
		slog.Error("ExportWorker: export failed", "error", err)
		return
	}
	slog.Info("ExportWorker: export completed", "holdings", len(snap.Holdings))
}
