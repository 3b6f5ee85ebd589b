package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// CompletionMonitor watches 8-K item 2.01 (completion of acquisition) for
// the close of the business combination.
type CompletionMonitor struct{}

func (p *CompletionMonitor) Name() string { return "completion_monitor" }

func (p *CompletionMonitor) Wants(f model.Filing) bool {
	return (f.Form == "8-K" || f.Form == "8-K/A") && f.HasItem("2.01")
}

func (p *CompletionMonitor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	if !ContainsAny(doc,
		"consummation of the business combination",
		"consummated the business combination",
		"closing of the business combination",
		"completed the previously announced",
	) {
		return res, nil
	}

	if spac != nil && spac.Status.Terminal() {
		return res, nil
	}

	res.Updates = append(res.Updates,
		newUpdate(f, p.Name(), "status", string(model.StatusCompleted)),
		newUpdate(f, p.Name(), "completion_date", fmtDate(f.FilingDate)),
	)

	target := ""
	if spac != nil {
		target = spac.TargetName
	}
	if target == "" {
		target = ExtractTargetName(doc)
	}
	label := target
	if label == "" {
		label = "its target"
	}

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "deal_completed", model.SeverityCritical,
			"%s completed its business combination with %s", spacName(f, spac), label))

	return res, nil
}
