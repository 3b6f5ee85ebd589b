package process

import (
	"context"
	"strconv"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// RedemptionProcessor reads 8-K item 5.07 (shareholder vote results) for
// redemption figures.
type RedemptionProcessor struct{}

func (p *RedemptionProcessor) Name() string { return "redemption_processor" }

func (p *RedemptionProcessor) Wants(f model.Filing) bool {
	return (f.Form == "8-K" || f.Form == "8-K/A") && f.HasItem("5.07")
}

func (p *RedemptionProcessor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	if !Contains(doc, "redeem") {
		return res, nil
	}

	shares := ShareCountNear(doc, "redeem", 500)
	pct := PercentNear(doc, "redeem", 500)

	if shares == 0 && pct < 0 {
		return res, nil
	}

	// Derive whichever figure the filing omitted from the other.
	if spac != nil && spac.PublicShares != nil && *spac.PublicShares > 0 {
		if pct < 0 && shares > 0 {
			pct = float64(shares) / float64(*spac.PublicShares) * 100
		}
		if shares == 0 && pct >= 0 {
			shares = int64(pct / 100 * float64(*spac.PublicShares))
		}
	}

	if shares > 0 && spac != nil && spac.PublicShares != nil && *spac.PublicShares >= shares {
		remaining := *spac.PublicShares - shares
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "public_shares", strconv.FormatInt(remaining, 10)))
	}
	if pct >= 0 {
		// The filed percentage is measured against the already-reduced
		// float, so rebase onto the original float: redemption_pct is
		// cumulative across events.
		cumulative := pct
		if spac != nil && spac.RedemptionPct != nil && *spac.RedemptionPct > 0 && *spac.RedemptionPct < 100 {
			cumulative = *spac.RedemptionPct + pct*(100-*spac.RedemptionPct)/100
		}
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "redemption_pct", strconv.FormatFloat(cumulative, 'f', 2, 64)))
	}

	red := model.Redemption{
		CIK:             f.CIK,
		SharesRedeemed:  shares,
		Date:            f.FilingDate,
		AccessionNumber: f.AccessionNumber,
	}
	if pct >= 0 {
		v := pct
		red.Pct = &v
	}
	res.Redemptions = append(res.Redemptions, red)

	sev := model.SeverityWarning
	if pct >= 50 {
		sev = model.SeverityCritical
	}
	if pct >= 0 {
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "redemption", sev,
				"%s reported redemptions of %.1f%% of public shares (%d shares)",
				spacName(f, spac), pct, shares))
	} else {
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "redemption", sev,
				"%s reported redemptions of %d shares",
				spacName(f, spac), shares))
	}

	return res, nil
}
