package process

import (
	"context"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// FilingProcessor is the catch-all: it matches every filing and keeps the
// filer's last_filing_date current, which the staleness validation rules
// depend on. It runs after the specific processors.
type FilingProcessor struct{}

func (p *FilingProcessor) Name() string { return "filing_processor" }

func (p *FilingProcessor) Wants(model.Filing) bool { return true }

func (p *FilingProcessor) Process(_ context.Context, f model.Filing, _ string, spac *model.SPAC) (Result, error) {
	var res Result

	if spac != nil && spac.LastFilingDate != nil && !f.FilingDate.After(*spac.LastFilingDate) {
		return res, nil
	}

	res.Updates = append(res.Updates,
		newUpdate(f, p.Name(), "last_filing_date", fmtDate(f.FilingDate)))

	return res, nil
}
