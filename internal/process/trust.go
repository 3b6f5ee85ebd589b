package process

import (
	"context"
	"strconv"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// TrustAccountProcessor reads periodic reports (10-Q/10-K) for the trust
// account balance and per-share value.
type TrustAccountProcessor struct{}

func (p *TrustAccountProcessor) Name() string { return "trust_account" }

func (p *TrustAccountProcessor) Wants(f model.Filing) bool {
	switch f.Form {
	case "10-Q", "10-K", "10-Q/A", "10-K/A":
		return true
	}
	return false
}

func (p *TrustAccountProcessor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	cash := MoneyNear(doc, "trust account", 400)
	perShare := PerShareNear(doc, "trust account", 500)

	if cash == 0 && perShare == 0 {
		return res, nil
	}

	if cash > 0 {
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "trust_cash", fmtMoney(cash)),
			newUpdate(f, p.Name(), "trust_as_of", fmtDate(f.FilingDate)),
		)
	}
	if perShare > 0 {
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "trust_per_share", strconv.FormatFloat(perShare, 'f', 2, 64)))
	}

	// A reported balance below the implied per-share obligation is the one
	// trust condition worth waking someone up for.
	if cash > 0 && perShare > 0 && spac != nil && spac.PublicShares != nil && *spac.PublicShares > 0 {
		implied := float64(cash) / float64(*spac.PublicShares)
		if implied < perShare*0.99 {
			res.Alerts = append(res.Alerts,
				newAlert(f, spac, "trust_shortfall", model.SeverityWarning,
					"%s trust balance implies $%.2f/share against a stated $%.2f/share",
					spacName(f, spac), implied, perShare))
		}
	}

	return res, nil
}
