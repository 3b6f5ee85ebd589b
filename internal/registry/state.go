package registry

import (
	"sync"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// registryState holds the thread-safe SPAC cache.
type registryState struct {
	mu sync.RWMutex

	// All known SPACs indexed by CIK.
	spacs map[int64]*model.SPAC

	// SPACs still worth polling.
	activeSet map[int64]struct{}

	// Last successful load from the store.
	lastSyncAt time.Time

	// Output channel for change subscribers.
	changes chan Change
}

func newState() *registryState {
	return &registryState{
		spacs:     make(map[int64]*model.SPAC),
		activeSet: make(map[int64]struct{}),
		changes:   make(chan Change, ChangeBufferSize),
	}
}

// getByCIK returns a SPAC by CIK (read-locked).
func (s *registryState) getByCIK(cik int64) (model.SPAC, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.spacs[cik]
	if !ok {
		return model.SPAC{}, false
	}
	return *sp, true
}

// getActive returns a copy of all active SPACs (read-locked).
func (s *registryState) getActive() []model.SPAC {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.SPAC, 0, len(s.activeSet))
	for cik := range s.activeSet {
		if sp, ok := s.spacs[cik]; ok {
			result = append(result, *sp)
		}
	}
	return result
}

// upsertLocked adds or updates a SPAC (caller must hold write lock).
func (s *registryState) upsertLocked(sp model.SPAC) {
	cp := sp
	s.spacs[sp.CIK] = &cp

	if isActive(sp) {
		s.activeSet[sp.CIK] = struct{}{}
	} else {
		delete(s.activeSet, sp.CIK)
	}
}

// notifyChange sends a change to subscribers (non-blocking).
func (s *registryState) notifyChange(change Change) {
	select {
	case s.changes <- change:
	default:
		// Channel full, drop oldest by consuming one and retrying.
		select {
		case <-s.changes:
			s.changes <- change
		default:
		}
	}
}

// isActive reports whether the monitor should still poll this SPAC.
func isActive(sp model.SPAC) bool {
	return !sp.Status.Terminal() && !sp.Delisted
}
