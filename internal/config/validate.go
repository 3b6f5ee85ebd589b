package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.EDGAR.UserAgent == "" || !strings.Contains(c.EDGAR.UserAgent, "@") {
		return errors.New("edgar.user_agent must identify a contact address (SEC fair-access policy)")
	}
	if c.EDGAR.RateLimit < 1 || c.EDGAR.RateLimit > 10 {
		return fmt.Errorf("edgar.rate_limit must be between 1 and 10, got %d", c.EDGAR.RateLimit)
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Monitor.Concurrency < 1 {
		return errors.New("monitor.concurrency must be >= 1")
	}
	if c.Monitor.Interval < c.Monitor.Timeout {
		return errors.New("monitor.interval must exceed monitor.timeout")
	}

	if c.Writers.BatchSize < 1 {
		return errors.New("writers.batch_size must be >= 1")
	}
	if c.Writers.BufferSize < 1 {
		return errors.New("writers.buffer_size must be >= 1")
	}

	if c.Notify.TelegramToken != "" && c.Notify.TelegramChatID == "" {
		return errors.New("notify.telegram_chat_id is required when a telegram token is set")
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
