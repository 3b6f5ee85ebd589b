// Package registry maintains an in-memory cache of tracked SPACs.
//
// The database is the source of truth; the registry loads it once at
// startup (blocking) and then reconciles on an interval so that changes
// applied by the filing pipeline or by operator tooling become visible to
// the monitor without a restart. Consumers read the cache lock-free copies
// via GetActiveSPACs/GetByCIK and may subscribe to lifecycle changes.
package registry
