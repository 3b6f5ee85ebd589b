// Package store implements Postgres persistence for SPAC records, lifecycle
// events, prices, and alerts.
//
// Field updates from the processors are applied through a column whitelist:
// each update names a spacs column, the store captures the previous value
// into the audit row inside the same transaction, then writes the new one.
// High-volume appends (filings, audit rows) do not live here; they go
// through the batch writers in internal/writer.
package store
