package process

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Processor extracts structured facts from one class of filings.
type Processor interface {
	// Name identifies the processor in audit rows and logs.
	Name() string

	// Wants reports whether this processor should see the filing.
	Wants(f model.Filing) bool

	// Process extracts facts from the filing document. spac is the current
	// known state of the filer; doc is the whitespace-normalized text of the
	// primary document.
	Process(ctx context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error)
}

// Result is everything a processor derived from one filing.
type Result struct {
	Updates     []model.FieldUpdate
	Alerts      []model.Alert
	Deals       []model.Deal
	Redemptions []model.Redemption
	Extensions  []model.Extension
}

// Empty reports whether the processor found nothing.
func (r Result) Empty() bool {
	return len(r.Updates) == 0 && len(r.Alerts) == 0 &&
		len(r.Deals) == 0 && len(r.Redemptions) == 0 && len(r.Extensions) == 0
}

// Merge appends other's findings into r.
func (r *Result) Merge(other Result) {
	r.Updates = append(r.Updates, other.Updates...)
	r.Alerts = append(r.Alerts, other.Alerts...)
	r.Deals = append(r.Deals, other.Deals...)
	r.Redemptions = append(r.Redemptions, other.Redemptions...)
	r.Extensions = append(r.Extensions, other.Extensions...)
}

// newUpdate builds an audit row for a field change. OldValue is filled in by
// the store when the update is applied, once the current value is known.
func newUpdate(f model.Filing, source, field, value string) model.FieldUpdate {
	return model.FieldUpdate{
		ID:              uuid.New(),
		CIK:             f.CIK,
		Field:           field,
		NewValue:        value,
		Source:          source,
		AccessionNumber: f.AccessionNumber,
		At:              time.Now().UTC(),
	}
}

func newAlert(f model.Filing, spac *model.SPAC, kind string, sev model.Severity, format string, args ...any) model.Alert {
	ticker := ""
	if spac != nil {
		ticker = spac.Ticker
	}
	return model.Alert{
		ID:       uuid.New(),
		CIK:      f.CIK,
		Ticker:   ticker,
		Kind:     kind,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		At:       time.Now().UTC(),
	}
}

// fmtMoney renders a dollar amount for audit rows.
func fmtMoney(v int64) string {
	return fmt.Sprintf("%d", v)
}

// fmtDate renders a date for audit rows.
func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// spacName returns a display handle for log and alert text.
func spacName(f model.Filing, spac *model.SPAC) string {
	if spac != nil && spac.Ticker != "" {
		return spac.Ticker
	}
	if spac != nil && spac.Name != "" {
		return spac.Name
	}
	return fmt.Sprintf("CIK %d", f.CIK)
}

// All returns the full processor set in dispatch order. FilingProcessor
// runs last so its catch-all bookkeeping never shadows a specific match.
func All() []Processor {
	return []Processor{
		&IPODetector{},
		&DealDetector{},
		&TrustAccountProcessor{},
		&ExtensionMonitor{},
		&RedemptionProcessor{},
		&S4Processor{},
		&ProxyProcessor{},
		&EffectivenessMonitor{},
		&CompletionMonitor{},
		&DelistingDetector{},
		&ComplianceMonitor{},
		&FilingProcessor{},
	}
}
