package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/medxprts/Spacs-sub002/internal/config"
)

// Quote is one market quote for a listed security.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// QuoteSource provides quotes for a batch of symbols.
type QuoteSource interface {
	GetQuotes(ctx context.Context, symbols []string) ([]Quote, error)
}

// Client fetches quotes from an FMP-style batch quote endpoint:
// GET {base}/quote/{SYM1,SYM2,...}?apikey=KEY returning a JSON array.
type Client struct {
	quoteURL   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a quote client.
func NewClient(cfg config.PricesConfig, opts ...ClientOption) *Client {
	c := &Client{
		quoteURL: strings.TrimRight(cfg.QuoteURL, "/"),
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetQuotes fetches quotes for up to one batch of symbols.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	fullURL := fmt.Sprintf("%s/quote/%s", c.quoteURL, url.PathEscape(strings.Join(symbols, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create quote request: %w", err)
	}
	if c.apiKey != "" {
		q := req.URL.Query()
		q.Set("apikey", c.apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read quote response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("quote request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var quotes []Quote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}

	c.logger.Debug("fetched quotes", "requested", len(symbols), "returned", len(quotes))
	return quotes, nil
}

var _ QuoteSource = (*Client)(nil)
