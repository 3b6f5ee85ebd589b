package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

const spacColumns = `cik, name, ticker, unit_ticker, warrant_ticker, status,
	ipo_date, ipo_proceeds, trust_cash, trust_per_share, trust_as_of,
	shares_outstanding, public_shares, target_name, deal_value, announced_date,
	deadline, extension_count, max_extensions, redemption_pct,
	completion_date, delisted, last_filing_date, created_at, updated_at`

func scanSPAC(row pgx.Row) (model.SPAC, error) {
	var s model.SPAC
	err := row.Scan(
		&s.CIK, &s.Name, &s.Ticker, &s.UnitTicker, &s.WarrantTicker, &s.Status,
		&s.IPODate, &s.IPOProceeds, &s.TrustCash, &s.TrustPerShare, &s.TrustAsOf,
		&s.SharesOutstanding, &s.PublicShares, &s.TargetName, &s.DealValue, &s.AnnouncedDate,
		&s.Deadline, &s.ExtensionCount, &s.MaxExtensions, &s.RedemptionPct,
		&s.CompletionDate, &s.Delisted, &s.LastFilingDate, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ListSPACs returns every tracked SPAC.
func (st *Store) ListSPACs(ctx context.Context) ([]model.SPAC, error) {
	rows, err := st.db.Query(ctx, `SELECT `+spacColumns+` FROM spacs ORDER BY cik`)
	if err != nil {
		return nil, fmt.Errorf("list spacs: %w", err)
	}
	defer rows.Close()

	var spacs []model.SPAC
	for rows.Next() {
		s, err := scanSPAC(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spac: %w", err)
		}
		spacs = append(spacs, s)
	}
	return spacs, rows.Err()
}

// ActiveSPACs returns SPACs still in play: anything not completed or liquidated.
func (st *Store) ActiveSPACs(ctx context.Context) ([]model.SPAC, error) {
	rows, err := st.db.Query(ctx,
		`SELECT `+spacColumns+` FROM spacs WHERE status NOT IN ($1, $2) ORDER BY cik`,
		model.StatusCompleted, model.StatusLiquidated)
	if err != nil {
		return nil, fmt.Errorf("list active spacs: %w", err)
	}
	defer rows.Close()

	var spacs []model.SPAC
	for rows.Next() {
		s, err := scanSPAC(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spac: %w", err)
		}
		spacs = append(spacs, s)
	}
	return spacs, rows.Err()
}

// GetSPAC returns a single SPAC by CIK.
func (st *Store) GetSPAC(ctx context.Context, cik int64) (model.SPAC, error) {
	row := st.db.QueryRow(ctx, `SELECT `+spacColumns+` FROM spacs WHERE cik = $1`, cik)
	s, err := scanSPAC(row)
	if err != nil {
		return model.SPAC{}, fmt.Errorf("get spac %d: %w", cik, err)
	}
	return s, nil
}

// UpsertSPAC inserts or refreshes a SPAC's identity columns. Lifecycle and
// financial columns are owned by the processors and never overwritten here.
func (st *Store) UpsertSPAC(ctx context.Context, s model.SPAC) error {
	_, err := st.db.Exec(ctx, `
		INSERT INTO spacs (cik, name, ticker, unit_ticker, warrant_ticker, status, max_extensions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (cik) DO UPDATE SET
			name = EXCLUDED.name,
			ticker = EXCLUDED.ticker,
			unit_ticker = EXCLUDED.unit_ticker,
			warrant_ticker = EXCLUDED.warrant_ticker,
			updated_at = now()
	`, s.CIK, s.Name, s.Ticker, s.UnitTicker, s.WarrantTicker, s.Status, s.MaxExtensions)
	if err != nil {
		return fmt.Errorf("upsert spac %d: %w", s.CIK, err)
	}
	return nil
}

// spacFieldColumns whitelists the columns processors may update, with the
// SQL cast applied to the rendered value.
var spacFieldColumns = map[string]string{
	"status":             "text",
	"ipo_date":           "date",
	"ipo_proceeds":       "bigint",
	"trust_cash":         "bigint",
	"trust_per_share":    "numeric",
	"trust_as_of":        "date",
	"shares_outstanding": "bigint",
	"public_shares":      "bigint",
	"target_name":        "text",
	"deal_value":         "bigint",
	"announced_date":     "date",
	"deadline":           "date",
	"extension_count":    "integer",
	"redemption_pct":     "numeric",
	"completion_date":    "date",
	"delisted":           "boolean",
	"last_filing_date":   "date",
}

// FieldAllowed reports whether processors may write the named spacs column.
func FieldAllowed(field string) bool {
	_, ok := spacFieldColumns[field]
	return ok
}

// ApplyFieldUpdates applies processor field updates transactionally. Each
// update's OldValue is filled from the row's current value; no-op updates
// are skipped to keep the audit trail meaningful. Returns only the updates
// that changed the row, so the caller audits exactly what was written.
func (st *Store) ApplyFieldUpdates(ctx context.Context, updates []model.FieldUpdate) ([]model.FieldUpdate, error) {
	if len(updates) == 0 {
		return nil, nil
	}

	tx, err := st.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	applied := make([]model.FieldUpdate, 0, len(updates))
	for _, u := range updates {
		cast, ok := spacFieldColumns[u.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not an updatable spacs column", u.Field)
		}

		var old *string
		query := fmt.Sprintf(`SELECT %s::text FROM spacs WHERE cik = $1`, u.Field)
		if err := tx.QueryRow(ctx, query, u.CIK).Scan(&old); err != nil {
			return nil, fmt.Errorf("read current %s for %d: %w", u.Field, u.CIK, err)
		}
		if old != nil {
			u.OldValue = *old
		}

		if u.OldValue == u.NewValue {
			continue
		}

		update := fmt.Sprintf(`UPDATE spacs SET %s = $1::%s, updated_at = now() WHERE cik = $2`, u.Field, cast)
		if _, err := tx.Exec(ctx, update, u.NewValue, u.CIK); err != nil {
			return nil, fmt.Errorf("update %s for %d: %w", u.Field, u.CIK, err)
		}
		applied = append(applied, u)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return applied, nil
}
