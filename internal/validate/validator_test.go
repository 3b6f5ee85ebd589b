package validate

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func i64(v int64) *int64       { return &v }
func f64(v float64) *float64   { return &v }
func date(s string) *time.Time { t, _ := time.Parse("2006-01-02", s); return &t }

// healthySPAC passes every rule.
func healthySPAC() model.SPAC {
	return model.SPAC{
		CIK:               1234567,
		Name:              "Alpha Acquisition Corp",
		Ticker:            "ALPH",
		Status:            model.StatusSearching,
		IPODate:           date("2023-01-15"),
		IPOProceeds:       i64(230_000_000),
		TrustCash:         i64(232_300_000),
		TrustPerShare:     f64(10.10),
		TrustAsOf:         date("2024-03-31"),
		SharesOutstanding: i64(28_750_000),
		PublicShares:      i64(23_000_000),
		Deadline:          date("2025-01-15"),
		MaxExtensions:     3,
		LastFilingDate:    date("2024-05-10"),
	}
}

func codes(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Code
	}
	return out
}

func TestValidator_HealthySPAC(t *testing.T) {
	v := New(nil)

	report := v.Run([]model.SPAC{healthySPAC()}, testNow)

	assert.Empty(t, report.Findings, "healthy spac should produce no findings")
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.Checked)
}

func TestValidator_DeadlinePassed(t *testing.T) {
	sp := healthySPAC()
	sp.Deadline = date("2024-05-01")

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "deadline_passed", report.Findings[0].Code)
	assert.Equal(t, model.SeverityCritical, report.Findings[0].Severity)
	assert.Equal(t, 1, report.Counts[model.SeverityCritical])
	assert.False(t, report.Clean())
}

func TestValidator_DeadlinePassedIgnoredWhenCompleted(t *testing.T) {
	sp := healthySPAC()
	sp.Status = model.StatusCompleted
	sp.CompletionDate = date("2024-04-15")
	sp.Deadline = date("2024-05-01")

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	assert.NotContains(t, codes(report.Findings), "deadline_passed")
}

func TestValidator_AnnouncedConsistency(t *testing.T) {
	sp := healthySPAC()
	sp.Status = model.StatusAnnounced

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	got := codes(report.Findings)
	assert.Contains(t, got, "announced_without_target")
	assert.Contains(t, got, "announced_without_date")
	assert.Equal(t, 2, report.Counts[model.SeverityError])
}

func TestValidator_TrustShortfall(t *testing.T) {
	sp := healthySPAC()
	// 23M public shares at $10.10 needs $232.3M; report only $200M.
	sp.TrustCash = i64(200_000_000)

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "trust_shortfall", report.Findings[0].Code)
	assert.Equal(t, model.SeverityError, report.Findings[0].Severity)
}

func TestValidator_PublicExceedsOutstanding(t *testing.T) {
	sp := healthySPAC()
	sp.PublicShares = i64(30_000_000)
	sp.TrustCash = i64(303_100_000) // keep trust_shortfall quiet

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	assert.Contains(t, codes(report.Findings), "public_exceeds_outstanding")
}

func TestValidator_RedemptionPctRange(t *testing.T) {
	sp := healthySPAC()
	sp.RedemptionPct = f64(104.2)

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	assert.Contains(t, codes(report.Findings), "redemption_pct_range")
}

func TestValidator_DeadlineNear(t *testing.T) {
	sp := healthySPAC()
	sp.Deadline = date("2024-06-20")

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, "deadline_near", report.Findings[0].Code)
	assert.Equal(t, model.SeverityWarning, report.Findings[0].Severity)
	assert.Contains(t, report.Findings[0].Detail, "19 days")
}

func TestValidator_Staleness(t *testing.T) {
	sp := healthySPAC()
	sp.LastFilingDate = date("2023-11-01")
	sp.TrustAsOf = date("2023-09-30")

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	got := codes(report.Findings)
	assert.Contains(t, got, "stale_filings")
	assert.Contains(t, got, "trust_stale")
}

func TestValidator_TerminalSPACsSkipActivityRules(t *testing.T) {
	sp := healthySPAC()
	sp.Status = model.StatusLiquidated
	sp.Deadline = date("2023-12-01")
	sp.LastFilingDate = date("2023-11-01")
	sp.Ticker = ""
	sp.Delisted = true

	report := New(nil).Run([]model.SPAC{sp}, testNow)

	got := codes(report.Findings)
	assert.NotContains(t, got, "deadline_passed")
	assert.NotContains(t, got, "stale_filings")
	assert.NotContains(t, got, "missing_ticker")
	assert.NotContains(t, got, "delisted_but_active")
}

func TestValidator_SortsBySeverityThenCIK(t *testing.T) {
	warning := healthySPAC()
	warning.CIK = 2
	warning.TrustPerShare = f64(14.5)
	warning.TrustCash = i64(333_500_000)

	critical := healthySPAC()
	critical.CIK = 9
	critical.Deadline = date("2024-01-01")

	report := New(nil).Run([]model.SPAC{warning, critical}, testNow)

	require.GreaterOrEqual(t, len(report.Findings), 2)
	assert.Equal(t, model.SeverityCritical, report.Findings[0].Severity)
	assert.Equal(t, int64(9), report.Findings[0].CIK)
}

func TestRender(t *testing.T) {
	sp := healthySPAC()
	sp.Deadline = date("2024-05-01")
	report := New(nil).Run([]model.SPAC{sp}, testNow)

	var buf bytes.Buffer
	Render(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Alpha Acquisition Corp (ALPH)")
	assert.Contains(t, out, "deadline_passed")
	assert.Contains(t, out, "1 critical")
}

func TestRenderSummary(t *testing.T) {
	report := New(nil).Run([]model.SPAC{healthySPAC()}, testNow)

	var buf bytes.Buffer
	RenderSummary(&buf, report)

	assert.Equal(t, "checked=1 critical=0 errors=0 warnings=0 info=0\n", buf.String())
}
