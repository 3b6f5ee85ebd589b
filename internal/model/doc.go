// Package model defines shared data types used across the SPAC research platform.
//
// All types mirror the database schema defined in migrations/001_init.sql.
//
// Conventions:
//   - Money: int64 whole US dollars for aggregate amounts (trust cash, deal value)
//   - Per-share values and percentages: float64
//   - Timestamps: time.Time in UTC; dates without a time component use midnight UTC
//   - IDs: int64 for CIKs, string for accession numbers, uuid.UUID for audit rows
package model
