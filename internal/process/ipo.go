package process

import (
	"context"
	"strconv"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// IPODetector watches for the final IPO prospectus (424B4) and records the
// IPO pricing: gross proceeds, initial trust funding, and trust per share.
type IPODetector struct{}

func (p *IPODetector) Name() string { return "ipo_detector" }

func (p *IPODetector) Wants(f model.Filing) bool {
	return f.Form == "424B4"
}

func (p *IPODetector) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	if spac != nil && spac.Status != model.StatusPreIPO && spac.Status != "" {
		// Re-filed prospectus after pricing; nothing new to learn.
		return res, nil
	}

	res.Updates = append(res.Updates,
		newUpdate(f, p.Name(), "status", string(model.StatusSearching)),
		newUpdate(f, p.Name(), "ipo_date", fmtDate(f.FilingDate)),
	)

	if proceeds := MoneyNear(doc, "gross proceeds", 300); proceeds > 0 {
		res.Updates = append(res.Updates, newUpdate(f, p.Name(), "ipo_proceeds", fmtMoney(proceeds)))
	}
	if trust := MoneyNear(doc, "trust account", 300); trust > 0 {
		res.Updates = append(res.Updates, newUpdate(f, p.Name(), "trust_cash", fmtMoney(trust)))
	}
	if perShare := PerShareNear(doc, "trust account", 400); perShare > 0 {
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "trust_per_share", strconv.FormatFloat(perShare, 'f', 2, 64)))
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "ipo_priced", model.SeverityInfo,
			"%s priced its IPO (424B4 filed %s)", spacName(f, spac), fmtDate(f.FilingDate)))

	return res, nil
}
