package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/niveshlab/folio/internal/domain"
)

// GoogleClient scrapes per-symbol P/E and earnings figures. Symbols are
// fetched strictly one at a time with a fixed delay after every request to
// stay under the upstream's throttling radar; a failure for one symbol
// never aborts the rest.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
	extractor  MetricExtractor
	delay      time.Duration
}

// NewGoogleClient creates a scraping client with the given extraction
// strategy. delay is inserted after each per-symbol request regardless of
// outcome.
func NewGoogleClient(baseURL string, timeout, delay time.Duration, extractor MetricExtractor) *GoogleClient {
	if extractor == nil {
		extractor = LabelExtractor{}
	}
	return &GoogleClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		extractor:  extractor,
		delay:      delay,
	}
}

// googleSymbol builds the venue-qualified identifier: NSE:HDFCBANK or
// BOM:532174.
func googleSymbol(h domain.Holding) string {
	switch h.Exchange {
	case domain.ExchangeBSE:
		return "BOM:" + h.Symbol
	default:
		return "NSE:" + h.Symbol
	}
}

// FetchMetrics resolves P/E and latest earnings for each holding in order.
// Fetch or extraction failures fall back to the holding's static values.
// Cancellation fills the remaining holdings with fallbacks and returns.
func (c *GoogleClient) FetchMetrics(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData {
	metrics := make(map[string]domain.QuoteData, len(holdings))

	for i, h := range holdings {
		peRatio, earnings := c.scrape(ctx, h)
		metrics[h.Symbol] = domain.QuoteData{
			PeRatio:        domain.Coalesce(peRatio, h.FallbackPeRatio),
			LatestEarnings: domain.Coalesce(earnings, h.FallbackEarnings),
		}

		select {
		case <-ctx.Done():
			for _, rest := range holdings[i+1:] {
				metrics[rest.Symbol] = domain.QuoteData{
					PeRatio:        rest.FallbackPeRatio,
					LatestEarnings: rest.FallbackEarnings,
				}
			}
			return metrics
		case <-time.After(c.delay):
		}
	}

	return metrics
}

func (c *GoogleClient) scrape(ctx context.Context, h domain.Holding) (*float64, *string) {
	url := fmt.Sprintf("%s/finance/quote/%s", c.baseURL, googleSymbol(h))
	payload, err := c.fetch(ctx, url)
	if err != nil {
		slog.Warn("metrics scrape failed, using fallbacks", "symbol", h.Symbol, "error", err)
		return nil, nil
	}
	return c.extractor.PERatio(payload), c.extractor.EarningsPerShare(payload)
}

func (c *GoogleClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating scrape request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading scrape response: %w", err)
	}

	return string(body), nil
}
