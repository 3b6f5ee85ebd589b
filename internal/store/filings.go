package store

import (
	"context"
	"fmt"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// KnownAccessions returns the accession numbers of filings received since
// the cutoff. The monitor warms its dedup cache from this at startup.
func (st *Store) KnownAccessions(ctx context.Context, since time.Time) (map[string]struct{}, error) {
	rows, err := st.db.Query(ctx,
		`SELECT accession_number FROM filings WHERE filing_date >= $1`, since)
	if err != nil {
		return nil, fmt.Errorf("list known accessions: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var acc string
		if err := rows.Scan(&acc); err != nil {
			return nil, fmt.Errorf("scan accession: %w", err)
		}
		seen[acc] = struct{}{}
	}
	return seen, rows.Err()
}

// ListFilings returns a SPAC's filings, newest first.
func (st *Store) ListFilings(ctx context.Context, cik int64, limit int) ([]model.Filing, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := st.db.Query(ctx, `
		SELECT accession_number, cik, form, filing_date, items, primary_document, url, source, received_at, processed_at
		FROM filings WHERE cik = $1 ORDER BY filing_date DESC LIMIT $2`, cik, limit)
	if err != nil {
		return nil, fmt.Errorf("list filings for %d: %w", cik, err)
	}
	defer rows.Close()

	var filings []model.Filing
	for rows.Next() {
		var f model.Filing
		if err := rows.Scan(&f.AccessionNumber, &f.CIK, &f.Form, &f.FilingDate, &f.Items,
			&f.PrimaryDocument, &f.URL, &f.Source, &f.ReceivedAt, &f.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		filings = append(filings, f)
	}
	return filings, rows.Err()
}
