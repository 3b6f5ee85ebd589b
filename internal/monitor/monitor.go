package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/edgar"
	"github.com/medxprts/Spacs-sub002/internal/model"
)

// SPACSource provides the SPACs to poll.
type SPACSource interface {
	GetActiveSPACs() []model.SPAC
}

// FilingHandler receives newly discovered filings.
type FilingHandler interface {
	HandleFiling(f model.Filing) error
}

// FilingHandlerFunc is a function adapter for FilingHandler.
type FilingHandlerFunc func(model.Filing) error

func (f FilingHandlerFunc) HandleFiling(fl model.Filing) error {
	return f(fl)
}

// Config holds monitor configuration.
type Config struct {
	Interval    time.Duration // Poll interval (default: 15m)
	Concurrency int           // Max concurrent submissions fetches (default: 5)
	Timeout     time.Duration // Per-SPAC fetch timeout (default: 30s)
	Lookback    time.Duration // Ignore filings older than this (default: 90d)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    15 * time.Minute,
		Concurrency: 5,
		Timeout:     30 * time.Second,
		Lookback:    90 * 24 * time.Hour,
	}
}

// Monitor periodically fetches recent filings for every active SPAC.
type Monitor struct {
	cfg     Config
	client  *edgar.Client
	spacs   SPACSource
	handler FilingHandler
	logger  *slog.Logger

	seenMu sync.Mutex
	seen   map[string]struct{} // accession numbers already handed off

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Monitor.
func New(cfg Config, client *edgar.Client, spacs SPACSource, handler FilingHandler, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:     cfg,
		client:  client,
		spacs:   spacs,
		handler: handler,
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
}

// WarmSeen preloads the dedup set with accession numbers already stored.
// Call before Start.
func (m *Monitor) WarmSeen(accessions map[string]struct{}) {
	m.seenMu.Lock()
	defer m.seenMu.Unlock()
	for acc := range accessions {
		m.seen[acc] = struct{}{}
	}
}

// Start begins the polling loop.
func (m *Monitor) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.run()

	m.logger.Info("filing monitor started",
		"interval", m.cfg.Interval,
		"concurrency", m.cfg.Concurrency,
		"known_filings", len(m.seen),
	)

	return nil
}

// Stop gracefully shuts down the monitor.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("filing monitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	m.pollAll()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.pollAll()
		}
	}
}

// pollAll fetches recent filings for all active SPACs concurrently.
func (m *Monitor) pollAll() {
	start := time.Now()

	spacs := m.spacs.GetActiveSPACs()
	if len(spacs) == 0 {
		m.logger.Debug("no active spacs to poll")
		return
	}

	sem := make(chan struct{}, m.cfg.Concurrency)
	var wg sync.WaitGroup
	var discovered, errors atomic.Int64

	for _, sp := range spacs {
		wg.Add(1)
		go func(cik int64) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-m.ctx.Done():
				return
			}

			n, err := m.pollSPAC(cik)
			if err != nil {
				m.logger.Warn("failed to poll spac",
					"cik", cik,
					"err", err,
				)
				errors.Add(1)
				return
			}
			discovered.Add(int64(n))
		}(sp.CIK)
	}

	wg.Wait()

	m.logger.Info("poll cycle complete",
		"spacs", len(spacs),
		"new_filings", discovered.Load(),
		"errors", errors.Load(),
		"duration", time.Since(start),
	)
}

// pollSPAC fetches one SPAC's recent filings and hands off the unseen ones.
// Returns the number of new filings discovered.
func (m *Monitor) pollSPAC(cik int64) (int, error) {
	ctx, cancel := context.WithTimeout(m.ctx, m.cfg.Timeout)
	defer cancel()

	filings, err := m.client.GetRecentFilings(ctx, cik)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-m.cfg.Lookback)

	var handled int
	for _, f := range filings {
		if f.FilingDate.Before(cutoff) {
			continue
		}
		if !m.markSeen(f.AccessionNumber) {
			continue
		}

		f.Source = "poll"
		if m.handler != nil {
			if err := m.handler.HandleFiling(f); err != nil {
				// Unmark so the next cycle retries.
				m.unmarkSeen(f.AccessionNumber)
				return handled, err
			}
		}
		handled++
	}

	return handled, nil
}

// markSeen records an accession number, returning false if already present.
func (m *Monitor) markSeen(accession string) bool {
	m.seenMu.Lock()
	defer m.seenMu.Unlock()
	if _, ok := m.seen[accession]; ok {
		return false
	}
	m.seen[accession] = struct{}{}
	return true
}

func (m *Monitor) unmarkSeen(accession string) {
	m.seenMu.Lock()
	defer m.seenMu.Unlock()
	delete(m.seen, accession)
}
