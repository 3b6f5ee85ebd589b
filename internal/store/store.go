package store

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides Postgres persistence for the platform.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}
