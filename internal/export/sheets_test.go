package export

import (
	"testing"
	"time"

	"github.com/niveshlab/folio/internal/domain"
)

func sampleSnapshot() domain.PortfolioSnapshot {
	cv := 16500.0
	gl := 1500.0
	return domain.PortfolioSnapshot{
		AsOf: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Holdings: []domain.EnrichedHolding{
			{
				Holding: domain.Holding{
					Symbol: "HDFCBANK", Name: "HDFC Bank", Exchange: "NSE",
					Sector: "Banking", PurchasePrice: 1500, Quantity: 10,
				},
				Investment:   15000,
				Weight:       60,
				CurrentValue: &cv,
				GainLoss:     &gl,
			},
			{
				Holding: domain.Holding{
					Symbol: "532174", Name: "ICICI Bank", Exchange: "BSE",
					Sector: "Banking", PurchasePrice: 1000, Quantity: 10,
				},
				Investment: 10000,
				Weight:     40,
			},
		},
		Sectors: []domain.SectorSummary{
			{Sector: "Banking", Investment: 25000, CurrentValue: &cv},
		},
		Totals: domain.Totals{Investment: 25000},
	}
}

func TestBuildHoldings(t *testing.T) {
	data := buildHoldings(sampleSnapshot())

	// header + 2 holdings + totals row
	if len(data) != 4 {
		t.Fatalf("len(data) = %d, want 4", len(data))
	}
	if data[0][0] != "Symbol" {
		t.Errorf("header[0] = %v, want Symbol", data[0][0])
	}
	if data[1][0] != "HDFCBANK" || data[1][9] != 16500.0 {
		t.Errorf("holding row = %v", data[1])
	}
	// Unknown current value renders as an empty cell, not zero.
	if data[2][9] != nil {
		t.Errorf("nil currentValue cell = %v, want nil", data[2][9])
	}
	if data[3][0] != "TOTAL" || data[3][6] != 25000.0 {
		t.Errorf("totals row = %v", data[3])
	}
}

func TestBuildSectors(t *testing.T) {
	data := buildSectors(sampleSnapshot())

	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2", len(data))
	}
	if data[1][0] != "Banking" || data[1][1] != 25000.0 {
		t.Errorf("sector row = %v", data[1])
	}
	if data[1][5] != "2025-06-01T12:00:00Z" {
		t.Errorf("asOf cell = %v", data[1][5])
	}
}
