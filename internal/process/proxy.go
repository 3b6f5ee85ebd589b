package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// ProxyProcessor reads merger proxy statements (DEFM14A) for the special
// meeting date, which fixes the redemption deadline for shareholders.
type ProxyProcessor struct{}

func (p *ProxyProcessor) Name() string { return "proxy_processor" }

func (p *ProxyProcessor) Wants(f model.Filing) bool {
	return f.Form == "DEFM14A" || f.Form == "DEFA14A"
}

func (p *ProxyProcessor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	meeting, ok := DateNear(doc, "special meeting", 500)
	if !ok {
		if f.Form == "DEFM14A" {
			res.Alerts = append(res.Alerts,
				newAlert(f, spac, "proxy_filed", model.SeverityInfo,
					"%s filed its merger proxy statement", spacName(f, spac)))
		}
		return res, nil
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "meeting_scheduled", model.SeverityWarning,
			"%s scheduled its merger vote for %s; redemption requests are due two business days prior",
			spacName(f, spac), fmtDate(meeting)))

	return res, nil
}
