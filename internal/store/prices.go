package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// SavePrices appends a batch of observed quotes. Each observation is a new
// row; LatestPrices reads back the most recent one per security.
func (st *Store) SavePrices(ctx context.Context, rows []model.PriceRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO spac_prices (cik, symbol, class, price, volume, discount_pct, observed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.CIK, r.Symbol, r.Class, r.Price, r.Volume, r.DiscountPct, r.ObservedAt)
	}

	br := st.db.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save prices: %w", err)
		}
	}
	return nil
}

// LatestPrices returns the most recent observation per security, keyed by
// CIK and share class.
func (st *Store) LatestPrices(ctx context.Context) ([]model.PriceRow, error) {
	rows, err := st.db.Query(ctx, `
		SELECT DISTINCT ON (cik, class)
			cik, symbol, class, price, volume, discount_pct, observed_at
		FROM spac_prices
		ORDER BY cik, class, observed_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("latest prices: %w", err)
	}
	defer rows.Close()

	var out []model.PriceRow
	for rows.Next() {
		var p model.PriceRow
		if err := rows.Scan(&p.CIK, &p.Symbol, &p.Class, &p.Price, &p.Volume, &p.DiscountPct, &p.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LatestCommonPrice returns the newest common-share quote for one SPAC, or
// pgx.ErrNoRows if none has been observed.
func (st *Store) LatestCommonPrice(ctx context.Context, cik int64) (model.PriceRow, error) {
	row := st.db.QueryRow(ctx, `
		SELECT cik, symbol, class, price, volume, discount_pct, observed_at
		FROM spac_prices
		WHERE cik = $1 AND class = 'common'
		ORDER BY observed_at DESC
		LIMIT 1
	`, cik)

	var p model.PriceRow
	if err := row.Scan(&p.CIK, &p.Symbol, &p.Class, &p.Price, &p.Volume, &p.DiscountPct, &p.ObservedAt); err != nil {
		return model.PriceRow{}, fmt.Errorf("latest common price cik %d: %w", cik, err)
	}
	return p, nil
}
