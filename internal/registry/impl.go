package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Config holds SPAC registry configuration.
type Config struct {
	ReconcileInterval  time.Duration
	InitialLoadTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ReconcileInterval:  5 * time.Minute,
		InitialLoadTimeout: 1 * time.Minute,
	}
}

// registryImpl implements the Registry interface.
type registryImpl struct {
	cfg    Config
	source Source
	logger *slog.Logger

	state *registryState

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a SPAC registry backed by the given source.
func New(cfg Config, source Source, logger *slog.Logger) Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &registryImpl{
		cfg:    cfg,
		source: source,
		logger: logger,
		state:  newState(),
	}
}

// Start performs the blocking initial load and begins background
// reconciliation.
func (r *registryImpl) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	loadCtx, cancel := context.WithTimeout(r.ctx, r.cfg.InitialLoadTimeout)
	err := r.initialLoad(loadCtx)
	cancel()
	if err != nil {
		r.cancel()
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.reconcileLoop(r.ctx)
	}()

	r.logger.Info("spac registry started",
		"active_spacs", len(r.state.activeSet),
		"total_spacs", len(r.state.spacs),
	)

	return nil
}

// Stop gracefully shuts down.
func (r *registryImpl) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("spac registry stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetActiveSPACs returns all SPACs still worth polling.
func (r *registryImpl) GetActiveSPACs() []model.SPAC {
	return r.state.getActive()
}

// GetByCIK returns one SPAC by Central Index Key.
func (r *registryImpl) GetByCIK(cik int64) (model.SPAC, bool) {
	return r.state.getByCIK(cik)
}

// SubscribeChanges returns a channel of SPAC lifecycle changes.
func (r *registryImpl) SubscribeChanges() <-chan Change {
	return r.state.changes
}
