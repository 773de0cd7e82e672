// Package domain contains the core portfolio data model shared by all services.
package domain

import "time"

// Exchange venue tags for holdings.
const (
	ExchangeNSE = "NSE"
	ExchangeBSE = "BSE"
)

// SectorUnknown is assigned to holdings parsed before any sector marker row.
const SectorUnknown = "Unknown"

// Holding is a static position record parsed from the holdings source.
// The fallback fields carry the last metrics seen in the source and are
// used when no live provider supplies a value.
type Holding struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	PurchasePrice    float64  `json:"purchasePrice"`
	Quantity         float64  `json:"quantity"`
	Exchange         string   `json:"exchange"`
	Sector           string   `json:"sector"`
	FallbackCmp      *float64 `json:"fallbackCmp"`
	FallbackPeRatio  *float64 `json:"fallbackPeRatio"`
	FallbackEarnings *string  `json:"fallbackEarnings"`
}

// Investment returns the raw (unrounded) amount invested in the holding.
func (h Holding) Investment() float64 {
	return h.PurchasePrice * h.Quantity
}

// QuoteData is a provider-scoped market data result for a single symbol.
// It is produced per snapshot request and never persisted.
type QuoteData struct {
	Cmp            *float64 `json:"cmp"`
	PeRatio        *float64 `json:"peRatio"`
	LatestEarnings *string  `json:"latestEarnings"`
}

// EnrichedHolding is a Holding joined with live quotes and derived metrics.
type EnrichedHolding struct {
	Holding
	Investment     float64  `json:"investment"`
	Weight         float64  `json:"weight"`
	Cmp            *float64 `json:"cmp"`
	PeRatio        *float64 `json:"peRatio"`
	LatestEarnings *string  `json:"latestEarnings"`
	CurrentValue   *float64 `json:"currentValue"`
	GainLoss       *float64 `json:"gainLoss"`
	GainLossPct    *float64 `json:"gainLossPct"`
}

// SectorSummary aggregates the holdings of one sector.
type SectorSummary struct {
	Sector       string   `json:"sector"`
	Investment   float64  `json:"investment"`
	CurrentValue *float64 `json:"currentValue"`
	GainLoss     *float64 `json:"gainLoss"`
	GainLossPct  *float64 `json:"gainLossPct"`
}

// Totals holds portfolio-wide aggregates.
type Totals struct {
	Investment   float64  `json:"investment"`
	CurrentValue *float64 `json:"currentValue"`
	GainLoss     *float64 `json:"gainLoss"`
	GainLossPct  *float64 `json:"gainLossPct"`
}

// PortfolioSnapshot is the root aggregate returned per request.
// It is constructed fresh on every build and never mutated afterwards.
type PortfolioSnapshot struct {
	AsOf     time.Time         `json:"asOf"`
	Holdings []EnrichedHolding `json:"holdings"`
	Sectors  []SectorSummary   `json:"sectors"`
	Totals   Totals            `json:"totals"`
}
