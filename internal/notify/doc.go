// Package notify delivers pipeline alerts to operators.
//
// A Dispatcher sits behind the pipeline's alert sink, drops alerts below
// the configured severity, deduplicates repeats within a window, and fans
// the rest out to the configured channels: Telegram messages and the
// WebSocket feed the daemon serves alongside its health endpoint.
package notify
