package config

import "time"

// Config is the root configuration shared by the monitor daemon and spacctl.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	EDGAR    EDGARConfig    `yaml:"edgar"`
	Database DBConfig       `yaml:"database"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Writers  WritersConfig  `yaml:"writers"`
	Notify   NotifyConfig   `yaml:"notify"`
	Prices   PricesConfig   `yaml:"prices"`
	Health   HealthConfig   `yaml:"health"`
}

// InstanceConfig identifies this deployment.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// EDGARConfig holds SEC EDGAR access settings.
//
// The SEC requires a User-Agent identifying the requester with a contact
// address, and caps automated access at 10 requests per second.
type EDGARConfig struct {
	SubmissionsURL string        `yaml:"submissions_url"`
	SearchURL      string        `yaml:"search_url"`
	ArchivesURL    string        `yaml:"archives_url"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RateLimit      int           `yaml:"rate_limit"` // requests per second
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"SPAC_DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// MonitorConfig holds filing monitor settings.
type MonitorConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	Lookback    time.Duration `yaml:"lookback"`
	Reconcile   time.Duration `yaml:"reconcile"` // registry reconcile interval
}

// WritersConfig holds batch writer settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// NotifyConfig holds alerting settings.
type NotifyConfig struct {
	TelegramToken  string        `yaml:"telegram_token" env:"SPAC_TELEGRAM_TOKEN"`
	TelegramChatID string        `yaml:"telegram_chat_id"`
	DedupeWindow   time.Duration `yaml:"dedupe_window"`
	MinSeverity    string        `yaml:"min_severity"`
}

// PricesConfig holds quote source settings.
type PricesConfig struct {
	QuoteURL  string        `yaml:"quote_url"`
	APIKey    string        `yaml:"api_key" env:"SPAC_QUOTE_API_KEY"`
	Timeout   time.Duration `yaml:"timeout"`
	BatchSize int           `yaml:"batch_size"` // symbols per quote request
}

// HealthConfig holds the daemon's HTTP endpoint settings.
// The same listener serves /health and the /ws/alerts feed.
type HealthConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
