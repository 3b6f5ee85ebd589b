package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/medxprts/Spacs-sub002/internal/config"
	"github.com/medxprts/Spacs-sub002/internal/database"
	"github.com/medxprts/Spacs-sub002/internal/edgar"
	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/monitor"
	"github.com/medxprts/Spacs-sub002/internal/notify"
	"github.com/medxprts/Spacs-sub002/internal/pipeline"
	"github.com/medxprts/Spacs-sub002/internal/process"
	"github.com/medxprts/Spacs-sub002/internal/registry"
	"github.com/medxprts/Spacs-sub002/internal/store"
	"github.com/medxprts/Spacs-sub002/internal/version"
	"github.com/medxprts/Spacs-sub002/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/monitor.yaml", "path to config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	// Set up structured logging
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting monitor",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"poll_interval", cfg.Monitor.Interval,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connected")

	st := store.New(db, logger)

	// EDGAR client
	edgarClient := edgar.NewClient(cfg.EDGAR, edgar.WithLogger(logger))

	// SPAC registry (blocking initial load)
	regCfg := registry.DefaultConfig()
	if cfg.Monitor.Reconcile > 0 {
		regCfg.ReconcileInterval = cfg.Monitor.Reconcile
	}
	reg := registry.New(regCfg, st, logger)

	logger.Info("starting spac registry (initial load)")
	if err := reg.Start(ctx); err != nil {
		logger.Error("failed to start spac registry", "error", err)
		os.Exit(1)
	}
	defer stopComponent(reg.Stop, logger, "spac registry")

	// Alerting
	alertHub := notify.NewHub(logger)
	defer alertHub.Close()

	notifiers := []notify.Notifier{alertHub}
	if cfg.Notify.TelegramToken != "" {
		notifiers = append(notifiers, notify.NewTelegram(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
		logger.Info("telegram alerts enabled", "chat_id", cfg.Notify.TelegramChatID)
	}
	alerts := notify.NewDispatcher(
		model.Severity(cfg.Notify.MinSeverity),
		cfg.Notify.DedupeWindow,
		st,
		logger,
		notifiers...,
	)

	// Announce lifecycle transitions the reconcile loop observes.
	go watchRegistryChanges(ctx, reg.SubscribeChanges(), alerts, logger)

	// Pipeline queues
	inQueue := pipeline.NewQueue[model.Filing](cfg.Writers.BufferSize)
	filingsOut := pipeline.NewQueue[model.Filing](cfg.Writers.BufferSize)
	auditOut := pipeline.NewQueue[model.FieldUpdate](cfg.Writers.BufferSize)

	// Dispatcher
	disp := pipeline.NewDispatcher(
		inQueue,
		edgarClient,
		reg,
		process.All(),
		st,
		alerts,
		filingsOut,
		auditOut,
		logger,
	)
	if err := disp.Start(ctx); err != nil {
		logger.Error("failed to start dispatcher", "error", err)
		os.Exit(1)
	}
	defer stopComponent(disp.Stop, logger, "dispatcher")

	// Batch writers
	writerCfg := writer.WriterConfig{
		BatchSize:     cfg.Writers.BatchSize,
		FlushInterval: cfg.Writers.FlushInterval,
	}
	filingWriter := writer.NewFilingWriter(writerCfg, filingsOut, db, logger)
	if err := filingWriter.Start(ctx); err != nil {
		logger.Error("failed to start filing writer", "error", err)
		os.Exit(1)
	}
	defer stopComponent(filingWriter.Stop, logger, "filing writer")

	auditWriter := writer.NewAuditWriter(writerCfg, auditOut, db, logger)
	if err := auditWriter.Start(ctx); err != nil {
		logger.Error("failed to start audit writer", "error", err)
		os.Exit(1)
	}
	defer stopComponent(auditWriter.Stop, logger, "audit writer")

	// Filing monitor
	monCfg := monitor.Config{
		Interval:    cfg.Monitor.Interval,
		Concurrency: cfg.Monitor.Concurrency,
		Timeout:     cfg.Monitor.Timeout,
		Lookback:    cfg.Monitor.Lookback,
	}
	mon := monitor.New(monCfg, edgarClient, reg, monitor.FilingHandlerFunc(func(f model.Filing) error {
		if !inQueue.Push(f) {
			return fmt.Errorf("filing queue closed")
		}
		return nil
	}), logger)

	// Warm the dedup cache so restarts do not replay stored filings.
	known, err := st.KnownAccessions(ctx, time.Now().Add(-2*cfg.Monitor.Lookback))
	if err != nil {
		logger.Error("failed to load known accessions", "error", err)
		os.Exit(1)
	}
	mon.WarmSeen(known)

	if err := mon.Start(ctx); err != nil {
		logger.Error("failed to start filing monitor", "error", err)
		os.Exit(1)
	}
	defer stopComponent(mon.Stop, logger, "filing monitor")

	// Health server with the WebSocket alert feed
	mux := http.NewServeMux()
	mux.Handle(cfg.Health.Path, healthHandler(db, reg, disp))
	mux.Handle("/ws/alerts", alertHub)

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	logger.Info("monitor running",
		"instance_id", cfg.Instance.ID,
		"active_spacs", len(reg.GetActiveSPACs()),
		"health_url", fmt.Sprintf("http://localhost:%d%s", cfg.Health.Port, cfg.Health.Path),
	)

	if err := g.Wait(); err != nil {
		logger.Error("monitor exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("monitor stopped")
}

// alertPublisher is the slice of the notify dispatcher the change watcher needs.
type alertPublisher interface {
	Publish(ctx context.Context, a model.Alert)
}

// watchRegistryChanges consumes registry lifecycle changes, logging new
// SPACs and publishing an alert for each status transition.
func watchRegistryChanges(ctx context.Context, changes <-chan registry.Change, alerts alertPublisher, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			switch ch.EventType {
			case "created":
				logger.Info("spac now tracked",
					"cik", ch.CIK,
					"status", ch.NewStatus,
				)
			case "status_change":
				logger.Info("spac status changed",
					"cik", ch.CIK,
					"old_status", ch.OldStatus,
					"new_status", ch.NewStatus,
				)
				a := model.Alert{
					ID:       uuid.New(),
					CIK:      ch.CIK,
					Kind:     "status_change",
					Severity: model.SeverityInfo,
					Message:  fmt.Sprintf("CIK %d moved from %s to %s", ch.CIK, ch.OldStatus, ch.NewStatus),
					At:       time.Now().UTC(),
				}
				if ch.SPAC != nil {
					a.Ticker = ch.SPAC.Ticker
					if ch.SPAC.Name != "" {
						a.Message = fmt.Sprintf("%s moved from %s to %s", ch.SPAC.Name, ch.OldStatus, ch.NewStatus)
					}
				}
				alerts.Publish(ctx, a)
			}
		}
	}
}

// stopComponent runs a component's Stop with a bounded deadline.
func stopComponent(stop func(context.Context) error, logger *slog.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		logger.Warn("component stop failed", "component", name, "error", err)
	}
}

// healthHandler reports database, registry, and pipeline health as JSON.
func healthHandler(db interface {
	Ping(ctx context.Context) error
}, reg registry.Registry, disp *pipeline.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		if err := db.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		active := reg.GetActiveSPACs()
		health.Components["spac_registry"] = map[string]any{
			"active_spacs": len(active),
		}
		if len(active) == 0 {
			health.Status = "degraded"
		}

		stats := disp.Stats()
		health.Components["pipeline"] = map[string]any{
			"filings_seen":     stats.FilingsSeen,
			"filings_matched":  stats.FilingsMatched,
			"updates_applied":  stats.UpdatesApplied,
			"alerts_published": stats.AlertsPublished,
			"processor_errors": stats.ProcessorErrors,
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})
}
