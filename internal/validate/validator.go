package validate

import (
	"log/slog"
	"sort"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Finding is one rule violation on one SPAC.
type Finding struct {
	CIK      int64
	Name     string
	Ticker   string
	Code     string
	Severity model.Severity
	Detail   string
}

// Report aggregates validation findings over the tracked universe.
type Report struct {
	GeneratedAt time.Time
	Checked     int
	Findings    []Finding
	Counts      map[model.Severity]int
}

// Clean reports whether no findings at WARNING or above were produced.
func (r Report) Clean() bool {
	return r.Counts[model.SeverityCritical] == 0 &&
		r.Counts[model.SeverityError] == 0 &&
		r.Counts[model.SeverityWarning] == 0
}

// Validator runs the rule set over SPAC records.
type Validator struct {
	rules  []Rule
	logger *slog.Logger
}

// New creates a Validator with the full rule set.
func New(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		rules:  Rules(),
		logger: logger,
	}
}

// Run checks every SPAC against every rule. Findings come back sorted by
// severity, then CIK.
func (v *Validator) Run(spacs []model.SPAC, now time.Time) Report {
	report := Report{
		GeneratedAt: now,
		Checked:     len(spacs),
		Counts:      make(map[model.Severity]int),
	}

	for _, sp := range spacs {
		for _, rule := range v.rules {
			detail := rule.Check(sp, now)
			if detail == "" {
				continue
			}
			report.Findings = append(report.Findings, Finding{
				CIK:      sp.CIK,
				Name:     sp.Name,
				Ticker:   sp.Ticker,
				Code:     rule.Code,
				Severity: rule.Severity,
				Detail:   detail,
			})
			report.Counts[rule.Severity]++
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		if report.Findings[i].Severity.Rank() != report.Findings[j].Severity.Rank() {
			return report.Findings[i].Severity.Rank() < report.Findings[j].Severity.Rank()
		}
		return report.Findings[i].CIK < report.Findings[j].CIK
	})

	v.logger.Info("validation complete",
		"checked", report.Checked,
		"critical", report.Counts[model.SeverityCritical],
		"errors", report.Counts[model.SeverityError],
		"warnings", report.Counts[model.SeverityWarning],
		"info", report.Counts[model.SeverityInfo],
	)

	return report
}
