package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// DelistingDetector watches Form 25 notices. For a SPAC with no completed
// deal, delisting almost always means liquidation.
type DelistingDetector struct{}

func (p *DelistingDetector) Name() string { return "delisting_detector" }

func (p *DelistingDetector) Wants(f model.Filing) bool {
	return f.Form == "25" || f.Form == "25-NSE"
}

func (p *DelistingDetector) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	res.Updates = append(res.Updates, newUpdate(f, p.Name(), "delisted", "true"))

	completed := spac != nil && spac.Status == model.StatusCompleted
	if !completed {
		// Post-merger delistings of the SPAC shell are routine; a delisting
		// with no closed deal is the liquidation signal.
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "status", string(model.StatusLiquidated)))
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "liquidation", model.SeverityCritical,
				"%s is being delisted without a completed deal; liquidation presumed", spacName(f, spac)))
		return res, nil
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "delisting", model.SeverityInfo,
			"%s shell delisted following deal completion", spacName(f, spac)))

	return res, nil
}
