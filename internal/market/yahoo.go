package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/niveshlab/folio/internal/domain"
)

// YahooClient fetches prices and trailing P/E in one batched request.
// Failures never escape its boundary: every requested symbol degrades to
// its static fallback CMP.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewYahooClient creates a Yahoo quote client.
func NewYahooClient(baseURL string, timeout time.Duration, maxRetries int) *YahooClient {
	return &YahooClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryDelay: time.Second,
	}
}

type yahooQuote struct {
	Symbol             string   `json:"symbol"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	TrailingPE         *float64 `json:"trailingPE"`
}

type yahooResponse struct {
	QuoteResponse struct {
		Result []yahooQuote `json:"result"`
	} `json:"quoteResponse"`
}

// yahooSymbol converts a holding to the provider ticker format:
// HDFCBANK.NS for NSE, 532174.BO for BSE.
func yahooSymbol(h domain.Holding) string {
	switch h.Exchange {
	case domain.ExchangeBSE:
		return h.Symbol + ".BO"
	default:
		return h.Symbol + ".NS"
	}
}

// FetchQuotes issues one batched quote request for all holdings and maps
// the results back by symbol. Missing entries and total request failure
// both resolve to the holding's fallback CMP with no P/E.
func (c *YahooClient) FetchQuotes(ctx context.Context, holdings []domain.Holding) map[string]domain.QuoteData {
	quotes := make(map[string]domain.QuoteData, len(holdings))
	if len(holdings) == 0 {
		return quotes
	}

	bySym := lo.SliceToMap(holdings, func(h domain.Holding) (string, domain.Holding) {
		return yahooSymbol(h), h
	})
	tickers := lo.Map(holdings, func(h domain.Holding, _ int) string {
		return yahooSymbol(h)
	})

	url := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, strings.Join(tickers, ","))
	body, err := c.fetchWithRetry(ctx, url)
	if err != nil {
		slog.Warn("yahoo quote request failed, using fallback prices", "symbols", len(holdings), "error", err)
		return c.fallbackQuotes(holdings)
	}

	var parsed yahooResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		slog.Warn("yahoo response unparseable, using fallback prices", "error", err)
		return c.fallbackQuotes(holdings)
	}

	for _, item := range parsed.QuoteResponse.Result {
		h, ok := bySym[item.Symbol]
		if !ok {
			continue
		}
		quotes[h.Symbol] = domain.QuoteData{
			Cmp:     domain.Coalesce(finite(item.RegularMarketPrice), h.FallbackCmp),
			PeRatio: finite(item.TrailingPE),
		}
	}

	// Symbols absent from the response still resolve to their fallback.
	for _, h := range holdings {
		if _, ok := quotes[h.Symbol]; !ok {
			quotes[h.Symbol] = domain.QuoteData{Cmp: h.FallbackCmp}
		}
	}

	return quotes
}

func (c *YahooClient) fallbackQuotes(holdings []domain.Holding) map[string]domain.QuoteData {
	quotes := make(map[string]domain.QuoteData, len(holdings))
	for _, h := range holdings {
		quotes[h.Symbol] = domain.QuoteData{Cmp: h.FallbackCmp}
	}
	return quotes
}

// fetchWithRetry performs a GET with exponential backoff on HTTP 429.
func (c *YahooClient) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating quote request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("quote request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading quote response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("quote rate limited (attempt %d/%d)", attempt+1, c.maxRetries+1)
			continue
		}

		return nil, fmt.Errorf("quote HTTP %d: %s", resp.StatusCode, string(body))
	}

	return nil, lastErr
}

// finite filters out non-finite numbers, returning nil for anything that
// is not a usable quote value.
func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
