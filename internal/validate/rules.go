package validate

import (
	"fmt"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Rule is one integrity check over a single SPAC record.
type Rule struct {
	Code     string
	Severity model.Severity

	// Check returns a non-empty detail string when the rule fires.
	Check func(sp model.SPAC, now time.Time) string
}

const (
	deadlineWarnWindow = 30 * 24 * time.Hour
	staleFilingWindow  = 120 * 24 * time.Hour
	staleTrustWindow   = 180 * 24 * time.Hour
)

// Rules returns the full rule set, ordered roughly by severity.
func Rules() []Rule {
	return []Rule{
		// Identity
		{
			Code:     "invalid_status",
			Severity: model.SeverityCritical,
			Check: func(sp model.SPAC, now time.Time) string {
				if !sp.Status.IsValid() {
					return fmt.Sprintf("unknown status %q", sp.Status)
				}
				return ""
			},
		},
		{
			Code:     "invalid_cik",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.CIK <= 0 {
					return fmt.Sprintf("cik %d is not a valid central index key", sp.CIK)
				}
				return ""
			},
		},
		{
			Code:     "missing_name",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Name == "" {
					return "registrant name is empty"
				}
				return ""
			},
		},
		{
			Code:     "missing_ticker",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Ticker == "" && !sp.Status.Terminal() && sp.Status != model.StatusPreIPO {
					return "listed spac has no ticker"
				}
				return ""
			},
		},

		// Lifecycle consistency
		{
			Code:     "deadline_passed",
			Severity: model.SeverityCritical,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Deadline != nil && sp.Deadline.Before(now) && !sp.Status.Terminal() {
					return fmt.Sprintf("deadline %s has passed without completion or liquidation",
						sp.Deadline.Format("2006-01-02"))
				}
				return ""
			},
		},
		{
			Code:     "announced_without_target",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Status == model.StatusAnnounced && sp.TargetName == "" {
					return "status is announced but no target is recorded"
				}
				return ""
			},
		},
		{
			Code:     "announced_without_date",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Status == model.StatusAnnounced && sp.AnnouncedDate == nil {
					return "status is announced but announcement date is unknown"
				}
				return ""
			},
		},
		{
			Code:     "completed_without_date",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Status == model.StatusCompleted && sp.CompletionDate == nil {
					return "status is completed but completion date is unknown"
				}
				return ""
			},
		},
		{
			Code:     "announced_before_ipo",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.AnnouncedDate != nil && sp.IPODate != nil && sp.AnnouncedDate.Before(*sp.IPODate) {
					return fmt.Sprintf("deal announced %s before ipo %s",
						sp.AnnouncedDate.Format("2006-01-02"), sp.IPODate.Format("2006-01-02"))
				}
				return ""
			},
		},
		{
			Code:     "ipo_date_future",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.IPODate != nil && sp.IPODate.After(now) {
					return fmt.Sprintf("ipo date %s is in the future", sp.IPODate.Format("2006-01-02"))
				}
				return ""
			},
		},
		{
			Code:     "target_without_announcement",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TargetName != "" && sp.Status == model.StatusSearching {
					return fmt.Sprintf("target %q recorded but status is still searching", sp.TargetName)
				}
				return ""
			},
		},
		{
			Code:     "deadline_missing",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Deadline == nil &&
					(sp.Status == model.StatusSearching || sp.Status == model.StatusAnnounced) {
					return "no business combination deadline recorded"
				}
				return ""
			},
		},
		{
			Code:     "deadline_near",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Deadline == nil || sp.Status.Terminal() {
					return ""
				}
				until := sp.Deadline.Sub(now)
				if until > 0 && until < deadlineWarnWindow {
					return fmt.Sprintf("deadline %s is %d days away",
						sp.Deadline.Format("2006-01-02"), int(until.Hours()/24))
				}
				return ""
			},
		},
		{
			Code:     "extensions_exhausted",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.MaxExtensions > 0 && sp.ExtensionCount >= sp.MaxExtensions && !sp.Status.Terminal() {
					return fmt.Sprintf("all %d extensions used", sp.MaxExtensions)
				}
				return ""
			},
		},
		{
			Code:     "delisted_but_active",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Delisted && !sp.Status.Terminal() {
					return fmt.Sprintf("delisted but status is still %s", sp.Status)
				}
				return ""
			},
		},

		// Financial sanity
		{
			Code:     "trust_shortfall",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TrustShortfall() {
					return fmt.Sprintf("trust balance %d does not cover %.2f per share across %d public shares",
						*sp.TrustCash, *sp.TrustPerShare, *sp.PublicShares)
				}
				return ""
			},
		},
		{
			Code:     "trust_nonpositive",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TrustCash != nil && *sp.TrustCash <= 0 {
					return fmt.Sprintf("trust balance is %d", *sp.TrustCash)
				}
				return ""
			},
		},
		{
			Code:     "public_exceeds_outstanding",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.PublicShares != nil && sp.SharesOutstanding != nil &&
					*sp.PublicShares > *sp.SharesOutstanding {
					return fmt.Sprintf("public shares %d exceed shares outstanding %d",
						*sp.PublicShares, *sp.SharesOutstanding)
				}
				return ""
			},
		},
		{
			Code:     "redemption_pct_range",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.RedemptionPct != nil && (*sp.RedemptionPct < 0 || *sp.RedemptionPct > 100) {
					return fmt.Sprintf("redemption percentage %.2f is outside 0-100", *sp.RedemptionPct)
				}
				return ""
			},
		},
		{
			Code:     "deal_value_nonpositive",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.DealValue != nil && *sp.DealValue <= 0 {
					return fmt.Sprintf("deal value is %d", *sp.DealValue)
				}
				return ""
			},
		},
		{
			Code:     "ipo_proceeds_nonpositive",
			Severity: model.SeverityError,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.IPOProceeds != nil && *sp.IPOProceeds <= 0 {
					return fmt.Sprintf("ipo proceeds are %d", *sp.IPOProceeds)
				}
				return ""
			},
		},
		{
			Code:     "trust_per_share_range",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TrustPerShare != nil && (*sp.TrustPerShare < 9 || *sp.TrustPerShare > 12) {
					return fmt.Sprintf("trust per share %.2f is outside the typical 9-12 range", *sp.TrustPerShare)
				}
				return ""
			},
		},
		{
			Code:     "trust_missing",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TrustCash == nil && sp.Status != model.StatusPreIPO && !sp.Status.Terminal() {
					return "no trust balance recorded for a post-ipo spac"
				}
				return ""
			},
		},
		{
			Code:     "shares_missing",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.PublicShares == nil && sp.Status != model.StatusPreIPO && !sp.Status.Terminal() {
					return "no public share count recorded for a post-ipo spac"
				}
				return ""
			},
		},

		// Staleness
		{
			Code:     "stale_filings",
			Severity: model.SeverityWarning,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.Status.Terminal() || sp.LastFilingDate == nil {
					return ""
				}
				if age := now.Sub(*sp.LastFilingDate); age > staleFilingWindow {
					return fmt.Sprintf("last filing was %d days ago", int(age.Hours()/24))
				}
				return ""
			},
		},
		{
			Code:     "never_filed",
			Severity: model.SeverityInfo,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.LastFilingDate == nil && !sp.Status.Terminal() {
					return "no filing observed yet"
				}
				return ""
			},
		},
		{
			Code:     "trust_stale",
			Severity: model.SeverityInfo,
			Check: func(sp model.SPAC, now time.Time) string {
				if sp.TrustAsOf == nil || sp.Status.Terminal() {
					return ""
				}
				if age := now.Sub(*sp.TrustAsOf); age > staleTrustWindow {
					return fmt.Sprintf("trust balance is %d days old", int(age.Hours()/24))
				}
				return ""
			},
		},
	}
}
