package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// DealDetector watches 8-K item 1.01 (entry into a material definitive
// agreement) for business combination announcements.
type DealDetector struct{}

func (p *DealDetector) Name() string { return "deal_detector" }

func (p *DealDetector) Wants(f model.Filing) bool {
	if f.Form != "8-K" && f.Form != "8-K/A" {
		return false
	}
	// Older filings sometimes arrive without item metadata; let the document
	// text decide in Process.
	return f.HasItem("1.01") || len(f.Items) == 0
}

func (p *DealDetector) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	if !ContainsAny(doc,
		"business combination agreement",
		"agreement and plan of merger",
		"definitive merger agreement",
	) {
		return res, nil
	}

	if spac != nil && (spac.Status == model.StatusAnnounced || spac.Status.Terminal()) {
		// Amendment to an already-announced deal, not a new one.
		return res, nil
	}

	target := ExtractTargetName(doc)
	dealValue := LargestMoneyNear(doc, "enterprise value", 400)
	if dealValue == 0 {
		dealValue = LargestMoneyNear(doc, "aggregate consideration", 400)
	}

	res.Updates = append(res.Updates,
		newUpdate(f, p.Name(), "status", string(model.StatusAnnounced)),
		newUpdate(f, p.Name(), "announced_date", fmtDate(f.FilingDate)),
	)
	if target != "" {
		res.Updates = append(res.Updates, newUpdate(f, p.Name(), "target_name", target))
	}
	if dealValue > 0 {
		res.Updates = append(res.Updates, newUpdate(f, p.Name(), "deal_value", fmtMoney(dealValue)))
	}

	deal := model.Deal{
		CIK:             f.CIK,
		TargetName:      target,
		AnnouncedDate:   f.FilingDate,
		AccessionNumber: f.AccessionNumber,
	}
	if dealValue > 0 {
		deal.DealValue = &dealValue
	}
	res.Deals = append(res.Deals, deal)

	label := target
	if label == "" {
		label = "an undisclosed target"
	}
	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "deal_announced", model.SeverityCritical,
			"%s announced a business combination with %s", spacName(f, spac), label))

	return res, nil
}
