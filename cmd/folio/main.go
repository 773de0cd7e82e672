package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/niveshlab/folio/internal/api"
	"github.com/niveshlab/folio/internal/config"
	"github.com/niveshlab/folio/internal/domain"
	"github.com/niveshlab/folio/internal/export"
	"github.com/niveshlab/folio/internal/market"
	"github.com/niveshlab/folio/internal/snapshot"
	"github.com/niveshlab/folio/internal/store"
	"github.com/niveshlab/folio/internal/tabular"
	"github.com/niveshlab/folio/internal/worker"
)

func main() {
	app := &cli.App{
		Name:  "folio",
		Usage: "portfolio snapshot service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API server",
				Action: runServe,
			},
			{
				Name:   "snapshot",
				Usage:  "build one snapshot and print it as JSON",
				Action: runSnapshot,
			},
			{
				Name:   "export",
				Usage:  "build one snapshot and push it to Google Sheets",
				Action: runExport,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildSnapshotService wires the store, provider clients and builder from config.
func buildSnapshotService(cfg config.Config) *snapshot.Service {
	holdings := store.New(func(_ context.Context) ([]domain.Holding, error) {
		return tabular.Load(cfg.HoldingsFile)
	})

	var extractor market.MetricExtractor
	switch cfg.Extractor {
	case "dom":
		extractor = market.DOMExtractor{}
	default:
		extractor = market.LabelExtractor{}
	}

	yahoo := market.NewYahooClient(cfg.YahooURL, cfg.RequestTimeout, cfg.QuoteRetryMax)
	google := market.NewGoogleClient(cfg.GoogleFinanceURL, cfg.RequestTimeout, cfg.ScrapeDelay, extractor)
	resolver := market.NewService(yahoo, google)

	return snapshot.NewService(holdings, resolver)
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	snapshots := buildSnapshotService(cfg)

	// Optional periodic export when a spreadsheet is configured.
	if cfg.SpreadsheetID != "" && cfg.SheetsCredsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SpreadsheetID, cfg.SheetsCredsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		exportWorker := worker.NewExportWorker(snapshots, writer, cfg.ExportInterval)
		go exportWorker.Run(ctx)
	}

	srv := api.NewServer(cfg.HTTPPort, snapshots)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runSnapshot(c *cli.Context) error {
	cfg := config.Load()
	snap := buildSnapshotService(cfg).Build(c.Context)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func runExport(c *cli.Context) error {
	cfg := config.Load()
	if cfg.SpreadsheetID == "" || cfg.SheetsCredsJSON == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID and SHEETS_CREDENTIALS_JSON are required")
	}

	writer, err := export.NewSheetsWriter(c.Context, cfg.SpreadsheetID, cfg.SheetsCredsJSON)
	if err != nil {
		return fmt.Errorf("creating sheets writer: %w", err)
	}

	snap := buildSnapshotService(cfg).Build(c.Context)
	if err := writer.Write(c.Context, snap); err != nil {
		return fmt.Errorf("exporting snapshot: %w", err)
	}

	slog.Info("snapshot exported", "holdings", len(snap.Holdings), "sectors", len(snap.Sectors))
	return nil
}
