package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// ComplianceMonitor watches for late periodic reports (NT 10-K/NT 10-Q) and
// exchange listing-deficiency notices (8-K item 3.01).
type ComplianceMonitor struct{}

func (p *ComplianceMonitor) Name() string { return "compliance_monitor" }

func (p *ComplianceMonitor) Wants(f model.Filing) bool {
	switch f.Form {
	case "NT 10-K", "NT 10-Q":
		return true
	}
	return (f.Form == "8-K" || f.Form == "8-K/A") && f.HasItem("3.01")
}

func (p *ComplianceMonitor) Process(_ context.Context, f model.Filing, _ string, spac *model.SPAC) (Result, error) {
	var res Result

	switch {
	case f.Form == "NT 10-K" || f.Form == "NT 10-Q":
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "late_filing", model.SeverityWarning,
				"%s filed a %s: its periodic report will be late", spacName(f, spac), f.Form))
	default:
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "listing_deficiency", model.SeverityWarning,
				"%s received an exchange listing deficiency notice", spacName(f, spac)))
	}

	return res, nil
}
