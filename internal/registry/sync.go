package registry

import (
	"context"
	"fmt"
	"time"
)

// initialLoad populates the cache from the store on startup.
func (r *registryImpl) initialLoad(ctx context.Context) error {
	r.logger.Info("starting initial spac load")
	start := time.Now()

	spacs, err := r.source.ListSPACs(ctx)
	if err != nil {
		return fmt.Errorf("initial spac load: %w", err)
	}

	r.state.mu.Lock()
	for _, sp := range spacs {
		r.state.upsertLocked(sp)
	}
	r.state.lastSyncAt = time.Now()
	r.state.mu.Unlock()

	r.logger.Info("initial spac load complete",
		"total_spacs", len(spacs),
		"active_spacs", len(r.state.activeSet),
		"duration", time.Since(start),
	)

	return nil
}

// reconcileLoop periodically re-reads the store.
func (r *registryImpl) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile re-reads the store and emits changes for SPACs that appeared
// or changed status since the last load.
func (r *registryImpl) reconcile(ctx context.Context) {
	start := time.Now()

	spacs, err := r.source.ListSPACs(ctx)
	if err != nil {
		r.logger.Error("reconcile failed", "err", err)
		return
	}

	var created, changed int

	r.state.mu.Lock()
	for _, sp := range spacs {
		existing, ok := r.state.spacs[sp.CIK]

		if !ok {
			r.state.upsertLocked(sp)
			spCopy := sp
			r.state.notifyChange(Change{
				CIK:       sp.CIK,
				EventType: "created",
				NewStatus: sp.Status,
				SPAC:      &spCopy,
			})
			created++
			continue
		}

		oldStatus := existing.Status
		r.state.upsertLocked(sp)

		if oldStatus != sp.Status {
			spCopy := sp
			r.state.notifyChange(Change{
				CIK:       sp.CIK,
				EventType: "status_change",
				OldStatus: oldStatus,
				NewStatus: sp.Status,
				SPAC:      &spCopy,
			})
			changed++
		}
	}
	r.state.lastSyncAt = time.Now()
	r.state.mu.Unlock()

	if created > 0 || changed > 0 {
		r.logger.Info("reconcile found changes",
			"created", created,
			"changed", changed,
			"duration", time.Since(start),
		)
	} else {
		r.logger.Debug("reconcile complete",
			"total_spacs", len(spacs),
			"duration", time.Since(start),
		)
	}
}
