package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSubmissionsURL = "https://data.sec.gov/submissions"
	DefaultSearchURL      = "https://efts.sec.gov/LATEST/search-index"
	DefaultArchivesURL    = "https://www.sec.gov/Archives/edgar/data"
	DefaultEDGARTimeout   = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRateLimit      = 10 // SEC fair-access ceiling, req/s

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 10
	DefaultMinConns  = 2

	DefaultPollInterval    = 15 * time.Minute
	DefaultPollConcurrency = 8
	DefaultPollTimeout     = 20 * time.Second
	DefaultLookback        = 72 * time.Hour
	DefaultReconcile       = 30 * time.Minute

	DefaultBatchSize     = 500
	DefaultFlushInterval = 2 * time.Second
	DefaultBufferSize    = 4096

	DefaultDedupeWindow = 6 * time.Hour
	DefaultMinSeverity  = "INFO"

	DefaultQuoteURL       = "https://financialmodelingprep.com/api/v3/quote"
	DefaultQuoteTimeout   = 15 * time.Second
	DefaultQuoteBatchSize = 50

	DefaultHealthPort = 8080
	DefaultHealthPath = "/health"
)

func (c *Config) applyDefaults() {
	if c.EDGAR.SubmissionsURL == "" {
		c.EDGAR.SubmissionsURL = DefaultSubmissionsURL
	}
	if c.EDGAR.SearchURL == "" {
		c.EDGAR.SearchURL = DefaultSearchURL
	}
	if c.EDGAR.ArchivesURL == "" {
		c.EDGAR.ArchivesURL = DefaultArchivesURL
	}
	if c.EDGAR.Timeout == 0 {
		c.EDGAR.Timeout = DefaultEDGARTimeout
	}
	if c.EDGAR.MaxRetries == 0 {
		c.EDGAR.MaxRetries = DefaultMaxRetries
	}
	if c.EDGAR.RateLimit == 0 {
		c.EDGAR.RateLimit = DefaultRateLimit
	}

	applyDBDefaults(&c.Database)

	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = DefaultPollInterval
	}
	if c.Monitor.Concurrency == 0 {
		c.Monitor.Concurrency = DefaultPollConcurrency
	}
	if c.Monitor.Timeout == 0 {
		c.Monitor.Timeout = DefaultPollTimeout
	}
	if c.Monitor.Lookback == 0 {
		c.Monitor.Lookback = DefaultLookback
	}
	if c.Monitor.Reconcile == 0 {
		c.Monitor.Reconcile = DefaultReconcile
	}

	if c.Writers.BatchSize == 0 {
		c.Writers.BatchSize = DefaultBatchSize
	}
	if c.Writers.FlushInterval == 0 {
		c.Writers.FlushInterval = DefaultFlushInterval
	}
	if c.Writers.BufferSize == 0 {
		c.Writers.BufferSize = DefaultBufferSize
	}

	if c.Notify.DedupeWindow == 0 {
		c.Notify.DedupeWindow = DefaultDedupeWindow
	}
	if c.Notify.MinSeverity == "" {
		c.Notify.MinSeverity = DefaultMinSeverity
	}

	if c.Prices.QuoteURL == "" {
		c.Prices.QuoteURL = DefaultQuoteURL
	}
	if c.Prices.Timeout == 0 {
		c.Prices.Timeout = DefaultQuoteTimeout
	}
	if c.Prices.BatchSize == 0 {
		c.Prices.BatchSize = DefaultQuoteBatchSize
	}

	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
	if c.Health.Path == "" {
		c.Health.Path = DefaultHealthPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
