// Package snapshot builds portfolio snapshots: holdings enriched with
// resolved quotes, sector aggregates and grand totals.
package snapshot

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/niveshlab/folio/internal/domain"
)

// HoldingsSource supplies the static holding list.
type HoldingsSource interface {
	Holdings(ctx context.Context) []domain.Holding
}

// QuoteResolver resolves market data for holdings. It never fails;
// degraded results carry fallback or nil values.
type QuoteResolver interface {
	Resolve(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData
}

// Service builds portfolio snapshots on demand.
type Service struct {
	holdings HoldingsSource
	quotes   QuoteResolver
	now      func() time.Time
}

// NewService creates a snapshot builder.
func NewService(holdings HoldingsSource, quotes QuoteResolver) *Service {
	if holdings == nil {
		panic("snapshot.NewService: holdings is nil")
	}
	if quotes == nil {
		panic("snapshot.NewService: quotes is nil")
	}
	return &Service{holdings: holdings, quotes: quotes, now: time.Now}
}

// Build constructs a fresh snapshot. It always succeeds: upstream failures
// surface as fallback values or nulls, never as errors.
func (s *Service) Build(ctx context.Context) domain.PortfolioSnapshot {
	holdings := s.holdings.Holdings(ctx)
	quotes := s.quotes.Resolve(ctx, holdings)

	// Weights divide by the raw investment sum, not the rounded one.
	totalInvestment := lo.SumBy(holdings, domain.Holding.Investment)

	enriched := lo.Map(holdings, func(h domain.Holding, _ int) domain.EnrichedHolding {
		return enrich(h, quotes[h.Symbol], totalInvestment)
	})

	return domain.PortfolioSnapshot{
		AsOf:     s.now().UTC(),
		Holdings: enriched,
		Sectors:  summarizeSectors(enriched),
		Totals:   calculateTotals(enriched, totalInvestment),
	}
}

func enrich(h domain.Holding, quote domain.QuoteData, totalInvestment float64) domain.EnrichedHolding {
	investment := h.Investment()

	var currentValue, gainLoss, gainLossPct *float64
	if quote.Cmp != nil {
		currentValue = domain.Ptr(*quote.Cmp * h.Quantity)
		gainLoss = domain.Ptr(*currentValue - investment)
		gainLossPct = domain.Ptr(*gainLoss / investment * 100)
	}

	weight := 0.0
	if totalInvestment > 0 {
		weight = investment / totalInvestment * 100
	}

	return domain.EnrichedHolding{
		Holding:        h,
		Investment:     domain.Round2(investment),
		Weight:         domain.Round2(weight),
		Cmp:            domain.Round2Ptr(quote.Cmp),
		PeRatio:        domain.Round2Ptr(quote.PeRatio),
		LatestEarnings: quote.LatestEarnings,
		CurrentValue:   domain.Round2Ptr(currentValue),
		GainLoss:       domain.Round2Ptr(gainLoss),
		GainLossPct:    domain.Round2Ptr(gainLossPct),
	}
}

// summarizeSectors buckets holdings by sector label. A holding with no
// current value contributes zero to its sector's current value; the sector
// gain is reported only when the summed current value is strictly positive.
// This intentionally differs from the strict null propagation of the grand
// totals.
func summarizeSectors(holdings []domain.EnrichedHolding) []domain.SectorSummary {
	buckets := lo.GroupBy(holdings, func(h domain.EnrichedHolding) string {
		return h.Sector
	})

	// First-seen sector order keeps ties stable after the investment sort.
	var order []string
	seen := make(map[string]bool, len(buckets))
	for _, h := range holdings {
		if !seen[h.Sector] {
			seen[h.Sector] = true
			order = append(order, h.Sector)
		}
	}

	sectors := make([]domain.SectorSummary, 0, len(buckets))
	for _, sector := range order {
		members := buckets[sector]
		investment := lo.SumBy(members, func(h domain.EnrichedHolding) float64 {
			return h.Investment
		})
		currentValue := lo.SumBy(members, func(h domain.EnrichedHolding) float64 {
			if h.CurrentValue == nil {
				return 0
			}
			return *h.CurrentValue
		})

		summary := domain.SectorSummary{
			Sector:     sector,
			Investment: domain.Round2(investment),
		}
		if currentValue > 0 {
			summary.CurrentValue = domain.Ptr(domain.Round2(currentValue))
			summary.GainLoss = domain.Ptr(domain.Round2(currentValue - investment))
			summary.GainLossPct = domain.Ptr(domain.Round2((currentValue - investment) / investment * 100))
		}
		sectors = append(sectors, summary)
	}

	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].Investment > sectors[j].Investment
	})

	return sectors
}

// calculateTotals sums investment unconditionally but reports a null
// current value when any holding's current value is unknown.
func calculateTotals(holdings []domain.EnrichedHolding, totalInvestment float64) domain.Totals {
	totals := domain.Totals{Investment: domain.Round2(totalInvestment)}

	currentValue := 0.0
	for _, h := range holdings {
		if h.CurrentValue == nil {
			return totals
		}
		currentValue += *h.CurrentValue
	}

	totals.CurrentValue = domain.Ptr(domain.Round2(currentValue))
	totals.GainLoss = domain.Ptr(domain.Round2(currentValue - totalInvestment))
	if totalInvestment != 0 {
		totals.GainLossPct = domain.Ptr(domain.Round2((currentValue - totalInvestment) / totalInvestment * 100))
	}
	return totals
}
