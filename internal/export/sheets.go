// Package export writes portfolio snapshots to a Google Sheets
// spreadsheet for people who live in their sheet.
package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/niveshlab/folio/internal/domain"
)

// SheetWriter writes a snapshot to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, snap domain.PortfolioSnapshot) error
}

// SheetsWriter implements SheetWriter using the Google Sheets API.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Write ensures required sheets exist, then clears and rewrites them.
func (w *SheetsWriter) Write(ctx context.Context, snap domain.PortfolioSnapshot) error {
	if err := w.ensureSheets(ctx, "Holdings", "Sectors"); err != nil {
		return err
	}

	holdingValues := buildHoldings(snap)
	sectorValues := buildSectors(snap)

	_, err := w.svc.Spreadsheets.Values.BatchClear(
		w.spreadsheetID,
		&sheets.BatchClearValuesRequest{
			Ranges: []string{"Holdings!A:L", "Sectors!A:F"},
		},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing sheets: %w", err)
	}

	_, err = w.svc.Spreadsheets.Values.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateValuesRequest{
			ValueInputOption: "USER_ENTERED",
			Data: []*sheets.ValueRange{
				{Range: "Holdings!A1", Values: holdingValues},
				{Range: "Sectors!A1", Values: sectorValues},
			},
		},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing sheets: %w", err)
	}

	return nil
}

// buildHoldings builds the Holdings sheet data.
// Columns: Symbol | Name | Exchange | Sector | Qty | Avg. Price | Investment | Weight % | CMP | Current Value | Gain/Loss | Gain/Loss %
func buildHoldings(snap domain.PortfolioSnapshot) [][]any {
	data := make([][]any, 0, len(snap.Holdings)+2)
	data = append(data, []any{
		"Symbol", "Name", "Exchange", "Sector", "Qty", "Avg. Price",
		"Investment", "Weight %", "CMP", "Current Value",
		"Gain/Loss", "Gain/Loss %",
	})

	for _, h := range snap.Holdings {
		data = append(data, []any{
			h.Symbol, h.Name, h.Exchange, h.Sector,
			h.Quantity, h.PurchasePrice,
			h.Investment, h.Weight,
			ptrVal(h.Cmp), ptrVal(h.CurrentValue),
			ptrVal(h.GainLoss), ptrVal(h.GainLossPct),
		})
	}

	data = append(data, []any{
		"TOTAL", "", "", "", "", "",
		snap.Totals.Investment, "", "",
		ptrVal(snap.Totals.CurrentValue),
		ptrVal(snap.Totals.GainLoss),
		ptrVal(snap.Totals.GainLossPct),
	})

	return data
}

// buildSectors builds the Sectors sheet data.
// Columns: Sector | Investment | Current Value | Gain/Loss | Gain/Loss % | As Of
func buildSectors(snap domain.PortfolioSnapshot) [][]any {
	data := [][]any{
		{"Sector", "Investment", "Current Value", "Gain/Loss", "Gain/Loss %", "As Of"},
	}

	for i, s := range snap.Sectors {
		asOf := any("")
		if i == 0 {
			asOf = snap.AsOf.Format(time.RFC3339)
		}
		data = append(data, []any{
			s.Sector, s.Investment,
			ptrVal(s.CurrentValue), ptrVal(s.GainLoss), ptrVal(s.GainLossPct),
			asOf,
		})
	}

	return data
}

// ensureSheets creates any of the named sheets that do not already exist.
func (w *SheetsWriter) ensureSheets(ctx context.Context, names ...string) error {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		existing[s.Properties.Title] = true
	}

	var requests []*sheets.Request
	for _, name := range names {
		if !existing[name] {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			})
		}
	}

	if len(requests) == 0 {
		return nil
	}

	_, err = w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating sheets: %w", err)
	}

	return nil
}

func ptrVal(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
