package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// EffectivenessMonitor watches for the SEC declaring a registration
// statement effective (EFFECT notice or the 424B3 filed right after),
// which clears the path to the shareholder vote.
type EffectivenessMonitor struct{}

func (p *EffectivenessMonitor) Name() string { return "effectiveness_monitor" }

func (p *EffectivenessMonitor) Wants(f model.Filing) bool {
	return f.Form == "EFFECT" || f.Form == "424B3"
}

func (p *EffectivenessMonitor) Process(_ context.Context, f model.Filing, _ string, spac *model.SPAC) (Result, error) {
	var res Result

	// Only meaningful for SPACs partway through a deal.
	if spac != nil && spac.Status != model.StatusAnnounced {
		return res, nil
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "registration_effective", model.SeverityInfo,
			"%s's merger registration statement is effective; vote scheduling follows", spacName(f, spac)))

	return res, nil
}
