package writer

import (
	"time"

	"github.com/google/uuid"
)

// WriterConfig contains configuration for batch writers.
type WriterConfig struct {
	// BatchSize is the number of rows to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time between flushes.
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     500,
		FlushInterval: 5 * time.Second,
	}
}

// filingRow represents a row for the filings table.
type filingRow struct {
	AccessionNumber string
	CIK             int64
	Form            string
	FilingDate      time.Time
	Items           []string
	PrimaryDocument string
	URL             string
	Source          string
	ReceivedAt      time.Time
	ProcessedAt     *time.Time
}

// auditRow represents a row for the field_updates table.
type auditRow struct {
	ID              uuid.UUID
	CIK             int64
	Field           string
	OldValue        string
	NewValue        string
	Source          string
	AccessionNumber string
	At              time.Time
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}
