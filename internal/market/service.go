// Package market resolves live-ish quotes for holdings from two
// independent unofficial sources with priority-ordered fallback.
package market

import (
	"context"
	"sync"

	"github.com/niveshlab/folio/internal/domain"
)

// BatchQuoteClient is the bulk price/PE source (one request for all
// symbols). Implementations never return errors; degraded data is
// expressed through fallback values.
type BatchQuoteClient interface {
	FetchQuotes(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData
}

// MetricsClient is the per-symbol scraped metrics source.
type MetricsClient interface {
	FetchMetrics(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData
}

// Service queries both providers concurrently and merges their results
// with per-field priority chains.
type Service struct {
	quotes  BatchQuoteClient
	metrics MetricsClient
}

// NewService creates a market data resolver. Both clients are required.
func NewService(quotes BatchQuoteClient, metrics MetricsClient) *Service {
	if quotes == nil {
		panic("market.NewService: quotes is nil")
	}
	if metrics == nil {
		panic("market.NewService: metrics is nil")
	}
	return &Service{quotes: quotes, metrics: metrics}
}

// Resolve fans out to both providers, joins, and merges per holding:
// cmp prefers the batch source, peRatio and latestEarnings prefer the
// scraped source, each falling through to the other provider and then to
// the holding's static fallbacks.
func (s *Service) Resolve(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData {
	var (
		wg      sync.WaitGroup
		batch   map[string]domain.QuoteData
		scraped map[string]domain.QuoteData
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		batch = s.quotes.FetchQuotes(ctx, holdings)
	}()
	go func() {
		defer wg.Done()
		scraped = s.metrics.FetchMetrics(ctx, holdings)
	}()
	wg.Wait()

	merged := make(map[string]domain.QuoteData, len(holdings))
	for _, h := range holdings {
		a := batch[h.Symbol]
		b := scraped[h.Symbol]
		merged[h.Symbol] = domain.QuoteData{
			Cmp:            domain.Coalesce(a.Cmp, b.Cmp, h.FallbackCmp),
			PeRatio:        domain.Coalesce(b.PeRatio, a.PeRatio, h.FallbackPeRatio),
			LatestEarnings: domain.Coalesce(b.LatestEarnings, a.LatestEarnings, h.FallbackEarnings),
		}
	}

	return merged
}
