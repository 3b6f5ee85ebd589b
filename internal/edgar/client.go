package edgar

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/config"
)

// Client provides access to SEC EDGAR.
type Client struct {
	submissionsURL string
	searchURL      string
	archivesURL    string
	userAgent      string
	httpClient     *http.Client
	logger         *slog.Logger
	limiter        *Limiter

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new EDGAR client. userAgent must identify the
// requester with a contact address per SEC policy.
func NewClient(cfg config.EDGARConfig, opts ...ClientOption) *Client {
	c := &Client{
		submissionsURL: cfg.SubmissionsURL,
		searchURL:      cfg.SearchURL,
		archivesURL:    cfg.ArchivesURL,
		userAgent:      cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:       slog.Default(),
		limiter:      NewLimiter(cfg.RateLimit),
		maxRetries:   cfg.MaxRetries,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter sets a custom rate limiter, shared across clients if desired.
func WithLimiter(l *Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}
