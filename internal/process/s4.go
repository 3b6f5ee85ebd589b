package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// S4Processor tracks S-4 merger registration statements, the milestone
// between announcement and the shareholder vote.
type S4Processor struct{}

func (p *S4Processor) Name() string { return "s4_processor" }

func (p *S4Processor) Wants(f model.Filing) bool {
	return f.Form == "S-4" || f.Form == "S-4/A"
}

func (p *S4Processor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	kind := "s4_filed"
	msg := "%s filed its S-4 merger registration statement"
	if f.Form == "S-4/A" {
		kind = "s4_amended"
		msg = "%s amended its S-4 merger registration statement"
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, kind, model.SeverityInfo, msg, spacName(f, spac)))

	// An S-4 from a SPAC still marked searching means the announcement 8-K
	// was missed; recover the status from the stronger signal.
	if spac != nil && spac.Status == model.StatusSearching &&
		ContainsAny(doc, "business combination", "proposed merger") {
		res.Updates = append(res.Updates,
			newUpdate(f, p.Name(), "status", string(model.StatusAnnounced)))
		if target := ExtractTargetName(doc); target != "" {
			res.Updates = append(res.Updates, newUpdate(f, p.Name(), "target_name", target))
		}
	}

	return res, nil
}
