package process

import (
	"context"
	"strconv"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// ExtensionMonitor watches for deadline extensions: 8-K item 5.03 (charter
// amendment) carrying extension language, and DEF 14A extension proposals.
type ExtensionMonitor struct{}

func (p *ExtensionMonitor) Name() string { return "extension_monitor" }

func (p *ExtensionMonitor) Wants(f model.Filing) bool {
	if (f.Form == "8-K" || f.Form == "8-K/A") && f.HasItem("5.03") {
		return true
	}
	return f.Form == "DEF 14A"
}

func (p *ExtensionMonitor) Process(_ context.Context, f model.Filing, doc string, spac *model.SPAC) (Result, error) {
	var res Result

	if !ContainsAny(doc, "extend the date", "extension of the date", "extend the deadline", "extension amendment") {
		return res, nil
	}

	if f.Form == "DEF 14A" {
		// Proposal only; the amendment 8-K confirms the extension passed.
		res.Alerts = append(res.Alerts,
			newAlert(f, spac, "extension_proposed", model.SeverityInfo,
				"%s is seeking shareholder approval to extend its deadline", spacName(f, spac)))
		return res, nil
	}

	newDeadline, ok := NewDeadlineNear(doc, "extend", 600)
	if !ok {
		// Extension confirmed but the new date did not parse; still worth a
		// count bump and an alert so the row gets human review.
		newDeadline = f.FilingDate
	}

	count := 1
	if spac != nil {
		count = spac.ExtensionCount + 1
	}

	res.Updates = append(res.Updates,
		newUpdate(f, p.Name(), "deadline", fmtDate(newDeadline)),
		newUpdate(f, p.Name(), "extension_count", strconv.Itoa(count)),
	)

	ext := model.Extension{
		CIK:             f.CIK,
		NewDeadline:     newDeadline,
		AccessionNumber: f.AccessionNumber,
	}
	if spac != nil && spac.Deadline != nil {
		d := *spac.Deadline
		ext.OldDeadline = &d
	}
	res.Extensions = append(res.Extensions, ext)

	res.Alerts = append(res.Alerts,
		newAlert(f, spac, "deadline_extended", model.SeverityWarning,
			"%s extended its deadline to %s (extension #%d)",
			spacName(f, spac), fmtDate(newDeadline), count))

	return res, nil
}
