package market

import (
	"context"
	"testing"

	"github.com/niveshlab/folio/internal/domain"
)

type stubBatch struct {
	quotes map[string]domain.QuoteData
}

func (s *stubBatch) FetchQuotes(_ context.Context, _ []domain.Holding) map[string]domain.QuoteData {
	return s.quotes
}

type stubMetrics struct {
	quotes map[string]domain.QuoteData
}

func (s *stubMetrics) FetchMetrics(_ context.Context, _ []domain.Holding) map[string]domain.QuoteData {
	return s.quotes
}

func TestResolveMergePriorities(t *testing.T) {
	holdings := []domain.Holding{{Symbol: "HDFCBANK", Exchange: "NSE"}}

	batch := &stubBatch{quotes: map[string]domain.QuoteData{
		"HDFCBANK": {Cmp: domain.Ptr(1710.0), PeRatio: domain.Ptr(19.0)},
	}}
	metrics := &stubMetrics{quotes: map[string]domain.QuoteData{
		"HDFCBANK": {PeRatio: domain.Ptr(21.0), LatestEarnings: domain.Ptr("82.44")},
	}}

	merged := NewService(batch, metrics).Resolve(context.Background(), holdings)

	q := merged["HDFCBANK"]
	// cmp prefers the batch provider.
	if q.Cmp == nil || *q.Cmp != 1710.0 {
		t.Errorf("cmp = %v, want 1710", q.Cmp)
	}
	// peRatio prefers the scraped provider.
	if q.PeRatio == nil || *q.PeRatio != 21.0 {
		t.Errorf("peRatio = %v, want 21 (scraped wins)", q.PeRatio)
	}
	if q.LatestEarnings == nil || *q.LatestEarnings != "82.44" {
		t.Errorf("latestEarnings = %v, want 82.44", q.LatestEarnings)
	}
}

func TestResolveFallsThroughToOtherProvider(t *testing.T) {
	holdings := []domain.Holding{{Symbol: "HDFCBANK", Exchange: "NSE"}}

	batch := &stubBatch{quotes: map[string]domain.QuoteData{
		"HDFCBANK": {PeRatio: domain.Ptr(19.0)},
	}}
	metrics := &stubMetrics{quotes: map[string]domain.QuoteData{
		"HDFCBANK": {},
	}}

	q := NewService(batch, metrics).Resolve(context.Background(), holdings)["HDFCBANK"]

	if q.Cmp != nil {
		t.Errorf("cmp = %v, want nil when neither provider has one", q.Cmp)
	}
	if q.PeRatio == nil || *q.PeRatio != 19.0 {
		t.Errorf("peRatio = %v, want batch value 19", q.PeRatio)
	}
}

func TestResolveBothProvidersFailUsesStaticFallbacks(t *testing.T) {
	holdings := []domain.Holding{{
		Symbol:           "HDFCBANK",
		Exchange:         "NSE",
		FallbackCmp:      domain.Ptr(100.0),
		FallbackPeRatio:  domain.Ptr(15.0),
		FallbackEarnings: domain.Ptr("12.5"),
	}}

	batch := &stubBatch{quotes: map[string]domain.QuoteData{}}
	metrics := &stubMetrics{quotes: map[string]domain.QuoteData{}}

	q := NewService(batch, metrics).Resolve(context.Background(), holdings)["HDFCBANK"]

	if q.Cmp == nil || *q.Cmp != 100.0 {
		t.Errorf("cmp = %v, want fallback 100", q.Cmp)
	}
	if q.PeRatio == nil || *q.PeRatio != 15.0 {
		t.Errorf("peRatio = %v, want fallback 15", q.PeRatio)
	}
	if q.LatestEarnings == nil || *q.LatestEarnings != "12.5" {
		t.Errorf("latestEarnings = %v, want fallback 12.5", q.LatestEarnings)
	}
}

func TestResolveNothingAvailableIsNull(t *testing.T) {
	holdings := []domain.Holding{{Symbol: "GHOST", Exchange: "NSE"}}

	q := NewService(&stubBatch{}, &stubMetrics{}).Resolve(context.Background(), holdings)["GHOST"]

	if q.Cmp != nil || q.PeRatio != nil || q.LatestEarnings != nil {
		t.Errorf("quote = %+v, want all nil", q)
	}
}
