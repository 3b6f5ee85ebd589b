package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Status is the lifecycle stage of a SPAC.
type Status string

const (
	// StatusPreIPO covers SPACs that have filed an S-1 but not yet priced.
	StatusPreIPO Status = "pre_ipo"
	// StatusSearching covers SPACs whose IPO has closed and that have no announced target.
	StatusSearching Status = "searching"
	// StatusAnnounced covers SPACs with a signed business combination agreement.
	StatusAnnounced Status = "announced"
	// StatusCompleted covers SPACs whose merger has closed (de-SPAC).
	StatusCompleted Status = "completed"
	// StatusLiquidated covers SPACs that returned the trust and dissolved.
	StatusLiquidated Status = "liquidated"
)

// IsValid reports whether s is a known lifecycle status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPreIPO, StatusSearching, StatusAnnounced, StatusCompleted, StatusLiquidated:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transitions are expected.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusLiquidated
}

// -----------------------------------------------------------------------------
// Relational Types
// -----------------------------------------------------------------------------

// SPAC represents a single SPAC tracked by the platform.
//
// Financial fields that are unknowable before a lifecycle stage is reached
// (trust cash before IPO pricing, deal value before an announcement) are
// pointers; nil means "not yet known", not zero.
type SPAC struct {
	CIK           int64  // Primary key, SEC Central Index Key
	Name          string // Registrant name as filed
	Ticker        string // Common share ticker, empty until listed
	UnitTicker    string // Unit ticker (share + fraction of warrant)
	WarrantTicker string // Warrant ticker, empty if no public warrants
	Status        Status

	// IPO
	IPODate     *time.Time
	IPOProceeds *int64 // Gross IPO proceeds, USD

	// Trust account
	TrustCash     *int64   // Latest reported trust balance, USD
	TrustPerShare *float64 // Trust value per public share, USD
	TrustAsOf     *time.Time

	// Shares
	SharesOutstanding *int64 // Total shares outstanding
	PublicShares      *int64 // Redeemable public shares

	// Deal
	TargetName    string
	DealValue     *int64 // Announced enterprise value, USD
	AnnouncedDate *time.Time

	// Deadline and extensions
	Deadline       *time.Time // Current business combination deadline
	ExtensionCount int
	MaxExtensions  int

	// Redemptions
	RedemptionPct *float64 // Cumulative percent of public shares redeemed

	// Terminal
	CompletionDate *time.Time
	Delisted       bool

	LastFilingDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TrustShortfall reports whether the trust balance implies less than the
// stated per-share value across remaining public shares. Returns false when
// any input is unknown.
func (s *SPAC) TrustShortfall() bool {
	if s.TrustCash == nil || s.TrustPerShare == nil || s.PublicShares == nil || *s.PublicShares == 0 {
		return false
	}
	implied := float64(*s.TrustCash) / float64(*s.PublicShares)
	return implied < *s.TrustPerShare*0.99
}

// Filing represents a single EDGAR filing by a tracked SPAC.
type Filing struct {
	AccessionNumber string // Primary key, e.g. "0001193125-24-123456"
	CIK             int64
	Form            string // e.g. "8-K", "10-Q", "S-4", "DEFM14A"
	FilingDate      time.Time
	Items           []string // 8-K item codes, e.g. "1.01", "5.07"; nil otherwise
	PrimaryDocument string   // Path of the primary document within the filing
	URL             string   // Full archive URL of the primary document
	Source          string   // "poll" or "backfill"
	ReceivedAt      time.Time
	ProcessedAt     *time.Time
}

// HasItem reports whether an 8-K filing carries the given item code.
func (f *Filing) HasItem(code string) bool {
	for _, it := range f.Items {
		if it == code {
			return true
		}
	}
	return false
}

// FieldUpdate is one audited change to a SPAC field.
type FieldUpdate struct {
	ID              uuid.UUID
	CIK             int64
	Field           string // Column name, e.g. "trust_cash"
	OldValue        string // Rendered previous value, "" if previously unset
	NewValue        string
	Source          string // Processor that produced the change
	AccessionNumber string // Filing that evidenced it, "" for manual/price updates
	At              time.Time
}

// -----------------------------------------------------------------------------
// Event Types
// -----------------------------------------------------------------------------

// Deal records a business combination announcement.
type Deal struct {
	CIK             int64
	TargetName      string
	DealValue       *int64
	AnnouncedDate   time.Time
	AccessionNumber string
}

// Redemption records one redemption event (vote or deadline).
type Redemption struct {
	CIK             int64
	SharesRedeemed  int64
	Pct             *float64 // Percent of public shares redeemed in this event; nil when the filing gave only a share count and the float is unknown
	Date            time.Time
	AccessionNumber string
}

// Extension records one deadline extension.
type Extension struct {
	CIK             int64
	OldDeadline     *time.Time
	NewDeadline     time.Time
	AccessionNumber string
}

// -----------------------------------------------------------------------------
// Alerts
// -----------------------------------------------------------------------------

// Severity ranks alerts and validation findings.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// IsValid reports whether v is a known severity.
func (v Severity) IsValid() bool {
	switch v {
	case SeverityCritical, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Rank returns an ordering key, highest severity first.
func (v Severity) Rank() int {
	switch v {
	case SeverityCritical:
		return 0
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	default:
		return 3
	}
}

// Alert is an outbound notification about a tracked SPAC.
type Alert struct {
	ID       uuid.UUID
	CIK      int64
	Ticker   string
	Kind     string // e.g. "deal_announced", "redemption", "deadline_extended"
	Severity Severity
	Message  string
	At       time.Time
}

// Key identifies an alert for deduplication: same SPAC, same kind.
func (a Alert) Key() string {
	return fmt.Sprintf("%d/%s", a.CIK, a.Kind)
}

// -----------------------------------------------------------------------------
// Prices
// -----------------------------------------------------------------------------

// PriceRow is one observed quote for a SPAC security.
type PriceRow struct {
	CIK         int64
	Symbol      string
	Class       string // "common", "unit", "warrant"
	Price       float64
	Volume      int64
	DiscountPct *float64 // (trust_per_share - price) / trust_per_share * 100; nil without trust value
	ObservedAt  time.Time
}
