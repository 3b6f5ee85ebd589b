// Package database provides connection pool management for PostgreSQL.
//
// A single pool backs all platform data: spacs, filings, field_updates,
// alerts, spac_prices, deals. Schema lives in migrations/001_init.sql.
package database
