package main

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/registry"
)

type capturePublisher struct {
	mu     sync.Mutex
	alerts []model.Alert
}

func (c *capturePublisher) Publish(_ context.Context, a model.Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
}

func (c *capturePublisher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.alerts)
}

func TestWatchRegistryChangesAlertsOnStatusChange(t *testing.T) {
	changes := make(chan registry.Change, 4)
	pub := &capturePublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watchRegistryChanges(ctx, changes, pub, slog.Default())
		close(done)
	}()

	changes <- registry.Change{
		CIK:       1849058,
		EventType: "created",
		NewStatus: model.StatusSearching,
	}
	changes <- registry.Change{
		CIK:       1849058,
		EventType: "status_change",
		OldStatus: model.StatusSearching,
		NewStatus: model.StatusAnnounced,
		SPAC:      &model.SPAC{CIK: 1849058, Name: "Example Acquisition Corp.", Ticker: "EXAC"},
	}

	deadline := time.Now().Add(2 * time.Second)
	for pub.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// "created" only logs; the transition publishes exactly one alert.
	if got := pub.count(); got != 1 {
		t.Fatalf("alerts published = %d, want 1", got)
	}
	pub.mu.Lock()
	a := pub.alerts[0]
	pub.mu.Unlock()
	if a.Kind != "status_change" || a.Severity != model.SeverityInfo {
		t.Errorf("alert = %+v, want INFO status_change", a)
	}
	if a.Ticker != "EXAC" {
		t.Errorf("Ticker = %q, want EXAC", a.Ticker)
	}
	if a.Message != "Example Acquisition Corp. moved from searching to announced" {
		t.Errorf("Message = %q", a.Message)
	}

	// Closing the channel ends the watcher.
	close(changes)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not exit on channel close")
	}
}
