// Package writer persists pipeline output in batches.
//
// Each writer consumes one queue, accumulates rows, and flushes either when
// the batch fills or on a timer. Inserts use pgx batches with ON CONFLICT
// DO NOTHING so replays and restarts are idempotent.
package writer
