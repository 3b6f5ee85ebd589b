package prices

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medxprts/Spacs-sub002/internal/config"
	"github.com/medxprts/Spacs-sub002/internal/model"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func f64(v float64) *float64   { return &v }
func date(s string) *time.Time { t, _ := time.Parse("2006-01-02", s); return &t }

func TestDiscountPct(t *testing.T) {
	assert.InDelta(t, 2.0, DiscountPct(9.80, 10.00), 1e-9)
	assert.InDelta(t, -5.0, DiscountPct(10.50, 10.00), 1e-9)
	assert.Zero(t, DiscountPct(9.80, 0))
}

func TestAnnualizedYield(t *testing.T) {
	// 2% total return over exactly one year.
	deadline := testNow.AddDate(1, 0, 0)
	got := AnnualizedYield(10.00, 10.20, deadline, testNow)
	assert.InDelta(t, 2.0, got, 0.05)

	// Same return over half the time doubles the annualized figure.
	got = AnnualizedYield(10.00, 10.20, testNow.AddDate(0, 0, 182), testNow)
	assert.InDelta(t, 4.0, got, 0.1)

	assert.Zero(t, AnnualizedYield(0, 10.20, deadline, testNow))
	assert.Zero(t, AnnualizedYield(10.00, 0, deadline, testNow))
	assert.Zero(t, AnnualizedYield(10.00, 10.20, testNow.AddDate(0, 0, -1), testNow))
}

func TestClient_GetQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "ALPH")
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		json.NewEncoder(w).Encode([]Quote{
			{Symbol: "ALPH", Price: 9.85, Volume: 120000},
		})
	}))
	defer server.Close()

	c := NewClient(config.PricesConfig{
		QuoteURL: server.URL,
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	})

	quotes, err := c.GetQuotes(context.Background(), []string{"ALPH"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "ALPH", quotes[0].Symbol)
	assert.InDelta(t, 9.85, quotes[0].Price, 1e-9)
}

func TestClient_GetQuotes_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "limit reached", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(config.PricesConfig{QuoteURL: server.URL, Timeout: 5 * time.Second})

	_, err := c.GetQuotes(context.Background(), []string{"ALPH"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClient_GetQuotes_EmptySymbols(t *testing.T) {
	c := NewClient(config.PricesConfig{QuoteURL: "http://unused.invalid"})

	quotes, err := c.GetQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, quotes)
}

// stubSource serves quotes from a map, recording batch sizes.
type stubSource struct {
	quotes  map[string]Quote
	batches []int
}

func (s *stubSource) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	s.batches = append(s.batches, len(symbols))
	var out []Quote
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func TestUpdater_Update(t *testing.T) {
	src := &stubSource{quotes: map[string]Quote{
		"ALPH":  {Symbol: "ALPH", Price: 9.90, Volume: 50000},
		"ALPHW": {Symbol: "ALPHW", Price: 0.45, Volume: 8000},
		"BETA":  {Symbol: "BETA", Price: 10.30, Volume: 20000},
	}}

	spacs := []model.SPAC{
		{CIK: 1, Ticker: "ALPH", WarrantTicker: "ALPHW", Status: model.StatusSearching, TrustPerShare: f64(10.10)},
		{CIK: 2, Ticker: "BETA", Status: model.StatusAnnounced, TrustPerShare: f64(10.00)},
		{CIK: 3, Ticker: "GONE", Status: model.StatusCompleted}, // terminal, skipped
	}

	u := NewUpdater(src, 100, nil)
	rows, summary, err := u.Update(context.Background(), spacs, testNow)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, 3, summary.Symbols)
	assert.Equal(t, 3, summary.Quoted)
	assert.Equal(t, 0, summary.Missing)

	byClass := make(map[string]model.PriceRow)
	for _, r := range rows {
		byClass[r.Symbol] = r
	}

	alph := byClass["ALPH"]
	require.NotNil(t, alph.DiscountPct)
	assert.InDelta(t, (10.10-9.90)/10.10*100, *alph.DiscountPct, 1e-9)

	// Warrants carry no trust discount.
	assert.Nil(t, byClass["ALPHW"].DiscountPct)

	// BETA trades above trust.
	assert.Equal(t, 1, summary.Premiums)
	assert.Equal(t, 1, summary.Discounts)
	assert.False(t, math.IsNaN(summary.AvgDiscount))
}

func TestUpdater_Batching(t *testing.T) {
	src := &stubSource{quotes: map[string]Quote{}}

	var spacs []model.SPAC
	for i := 0; i < 5; i++ {
		spacs = append(spacs, model.SPAC{
			CIK:    int64(i + 1),
			Ticker: string(rune('A'+i)) + "AC",
			Status: model.StatusSearching,
		})
	}

	u := NewUpdater(src, 2, nil)
	_, summary, err := u.Update(context.Background(), spacs, testNow)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, src.batches)
	assert.Equal(t, 5, summary.Missing)
}

func TestScreen(t *testing.T) {
	spacs := []model.SPAC{
		{CIK: 1, Name: "Alpha Acquisition Corp", Ticker: "ALPH", Status: model.StatusSearching,
			TrustPerShare: f64(10.20), Deadline: date("2024-12-01")},
		{CIK: 2, Name: "Beta Holdings Corp", Ticker: "BETA", Status: model.StatusAnnounced,
			TrustPerShare: f64(10.00), Deadline: date("2025-06-01")},
		{CIK: 3, Name: "No Trust Corp", Ticker: "NOTR", Status: model.StatusSearching,
			Deadline: date("2024-12-01")},
		{CIK: 4, Name: "Past Deadline Corp", Ticker: "PAST", Status: model.StatusSearching,
			TrustPerShare: f64(10.00), Deadline: date("2024-01-01")},
	}

	quotes := []model.PriceRow{
		{CIK: 1, Symbol: "ALPH", Class: "common", Price: 9.80, ObservedAt: testNow},
		{CIK: 2, Symbol: "BETA", Class: "common", Price: 9.95, ObservedAt: testNow},
		{CIK: 3, Symbol: "NOTR", Class: "common", Price: 9.50, ObservedAt: testNow},
		{CIK: 4, Symbol: "PAST", Class: "common", Price: 9.00, ObservedAt: testNow},
	}

	opps := Screen(spacs, quotes, 0, testNow)

	require.Len(t, opps, 2)
	// ALPH: ~4.1% over ~6 months annualizes far above BETA's ~0.5% over a year.
	assert.Equal(t, "ALPH", opps[0].Ticker)
	assert.Equal(t, "BETA", opps[1].Ticker)
	assert.Greater(t, opps[0].Yield, opps[1].Yield)
	assert.InDelta(t, DiscountPct(9.80, 10.20), opps[0].Discount, 1e-9)
}

func TestScreen_MinYieldFilter(t *testing.T) {
	spacs := []model.SPAC{
		{CIK: 1, Ticker: "ALPH", Status: model.StatusSearching,
			TrustPerShare: f64(10.20), Deadline: date("2024-12-01")},
	}
	quotes := []model.PriceRow{
		{CIK: 1, Symbol: "ALPH", Class: "common", Price: 9.80, ObservedAt: testNow},
	}

	assert.Len(t, Screen(spacs, quotes, 5, testNow), 1)
	assert.Empty(t, Screen(spacs, quotes, 50, testNow))
}
