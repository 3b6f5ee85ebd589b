package store

import (
	"context"
	"fmt"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// RecordDeal stores a business combination announcement. Re-processing the
// same 8-K is a no-op.
func (st *Store) RecordDeal(ctx context.Context, d model.Deal) error {
	_, err := st.db.Exec(ctx, `
		INSERT INTO deals (cik, target_name, deal_value, announced_date, accession_number)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (accession_number) DO NOTHING
	`, d.CIK, d.TargetName, d.DealValue, d.AnnouncedDate, d.AccessionNumber)
	if err != nil {
		return fmt.Errorf("record deal: %w", err)
	}
	return nil
}

// RecordRedemption stores one redemption event.
func (st *Store) RecordRedemption(ctx context.Context, r model.Redemption) error {
	_, err := st.db.Exec(ctx, `
		INSERT INTO redemptions (cik, shares_redeemed, pct, event_date, accession_number)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (accession_number) DO NOTHING
	`, r.CIK, r.SharesRedeemed, r.Pct, r.Date, r.AccessionNumber)
	if err != nil {
		return fmt.Errorf("record redemption: %w", err)
	}
	return nil
}

// RecordExtension stores one deadline extension.
func (st *Store) RecordExtension(ctx context.Context, e model.Extension) error {
	_, err := st.db.Exec(ctx, `
		INSERT INTO extensions (cik, old_deadline, new_deadline, accession_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (accession_number) DO NOTHING
	`, e.CIK, e.OldDeadline, e.NewDeadline, e.AccessionNumber)
	if err != nil {
		return fmt.Errorf("record extension: %w", err)
	}
	return nil
}

// DefaultAlertLimit bounds RecentAlerts when the caller passes no limit.
const DefaultAlertLimit = 50

// alertLimit normalizes a caller-supplied row limit.
func alertLimit(n int) int {
	if n <= 0 {
		return DefaultAlertLimit
	}
	return n
}

// RecentAlerts returns the newest delivered alerts, most recent first.
// limit <= 0 selects DefaultAlertLimit rows.
func (st *Store) RecentAlerts(ctx context.Context, limit int) ([]model.Alert, error) {
	rows, err := st.db.Query(ctx, `
		SELECT id, cik, ticker, kind, severity, message, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1
	`, alertLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query recent alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		if err := rows.Scan(&a.ID, &a.CIK, &a.Ticker, &a.Kind, &a.Severity, &a.Message, &a.At); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// RecordAlert persists a delivered alert for the dashboard history view.
func (st *Store) RecordAlert(ctx context.Context, a model.Alert) error {
	_, err := st.db.Exec(ctx, `
		INSERT INTO alerts (id, cik, ticker, kind, severity, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.CIK, a.Ticker, a.Kind, a.Severity, a.Message, a.At)
	if err != nil {
		return fmt.Errorf("record alert: %w", err)
	}
	return nil
}
