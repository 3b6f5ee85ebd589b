package registry

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// ChangeBufferSize is the capacity of the Change channel.
const ChangeBufferSize = 1000

// Source is the persistence layer the registry loads from.
type Source interface {
	ListSPACs(ctx context.Context) ([]model.SPAC, error)
}

// Registry manages the tracked-SPAC universe.
type Registry interface {
	// Start performs a blocking initial load, then reconciles in the
	// background until Stop.
	Start(ctx context.Context) error

	// Stop gracefully shuts down.
	Stop(ctx context.Context) error

	// GetActiveSPACs returns all SPACs still worth polling: not completed,
	// not liquidated, not delisted.
	GetActiveSPACs() []model.SPAC

	// GetByCIK returns one SPAC by Central Index Key.
	GetByCIK(cik int64) (model.SPAC, bool)

	// SubscribeChanges returns a channel of lifecycle changes. The daemon
	// consumes it to log and alert on status transitions the reconcile
	// loop observes.
	SubscribeChanges() <-chan Change
}

// Change represents a SPAC lifecycle transition observed by the registry.
type Change struct {
	CIK       int64
	EventType string // "created", "status_change"
	OldStatus model.Status
	NewStatus model.Status
	SPAC      *model.SPAC
}
