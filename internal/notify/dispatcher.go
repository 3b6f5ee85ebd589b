package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Notifier delivers one alert over one channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, a model.Alert) error
}

// AlertStore persists delivered alerts; nil disables history.
type AlertStore interface {
	RecordAlert(ctx context.Context, a model.Alert) error
}

// Dispatcher filters, deduplicates, and fans out alerts.
type Dispatcher struct {
	minSeverity  model.Severity
	dedupeWindow time.Duration
	notifiers    []Notifier
	store        AlertStore
	logger       *slog.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time

	// Stubbed in tests.
	now func() time.Time
}

// NewDispatcher creates a Dispatcher. minSeverity alerts and above pass;
// repeats of the same alert key inside dedupeWindow are dropped.
func NewDispatcher(minSeverity model.Severity, dedupeWindow time.Duration, store AlertStore, logger *slog.Logger, notifiers ...Notifier) *Dispatcher {
	if !minSeverity.IsValid() {
		minSeverity = model.SeverityWarning
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		minSeverity:  minSeverity,
		dedupeWindow: dedupeWindow,
		notifiers:    notifiers,
		store:        store,
		logger:       logger,
		lastSent:     make(map[string]time.Time),
		now:          time.Now,
	}
}

// Publish delivers one alert, subject to the severity floor and the dedupe
// window. Delivery failures are logged, never propagated: a broken channel
// must not stall the filing pipeline.
func (d *Dispatcher) Publish(ctx context.Context, a model.Alert) {
	if a.Severity.Rank() > d.minSeverity.Rank() {
		return
	}

	if !d.shouldSend(a) {
		d.logger.Debug("alert suppressed by dedupe window", "key", a.Key())
		return
	}

	if d.store != nil {
		if err := d.store.RecordAlert(ctx, a); err != nil {
			d.logger.Warn("failed to record alert", "key", a.Key(), "err", err)
		}
	}

	for _, n := range d.notifiers {
		if err := n.Send(ctx, a); err != nil {
			d.logger.Warn("alert delivery failed",
				"notifier", n.Name(),
				"key", a.Key(),
				"err", err,
			)
		}
	}
}

// shouldSend records the send time for the alert key, returning false when
// the key fired within the dedupe window.
func (d *Dispatcher) shouldSend(a model.Alert) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.lastSent[a.Key()]; ok && now.Sub(last) < d.dedupeWindow {
		return false
	}
	d.lastSent[a.Key()] = now

	// Prune expired keys opportunistically.
	for k, t := range d.lastSent {
		if now.Sub(t) >= d.dedupeWindow {
			delete(d.lastSent, k)
		}
	}

	return true
}
