package model

import (
	"testing"
	"time"
)

func TestStatusIsValid(t *testing.T) {
	valid := []Status{StatusPreIPO, StatusSearching, StatusAnnounced, StatusCompleted, StatusLiquidated}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("Status(%q).IsValid() = false, want true", s)
		}
	}

	invalid := []Status{"", "open", "SEARCHING", "merged"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Status(%q).IsValid() = true, want false", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusCompleted.Terminal() {
		t.Error("completed should be terminal")
	}
	if !StatusLiquidated.Terminal() {
		t.Error("liquidated should be terminal")
	}
	if StatusAnnounced.Terminal() {
		t.Error("announced should not be terminal")
	}
}

func TestSeverityRank(t *testing.T) {
	order := []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Rank(%s) = %d should be below Rank(%s) = %d",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
}

func TestFilingHasItem(t *testing.T) {
	f := Filing{
		AccessionNumber: "0001193125-24-123456",
		Form:            "8-K",
		Items:           []string{"1.01", "9.01"},
	}

	if !f.HasItem("1.01") {
		t.Error("HasItem(1.01) = false, want true")
	}
	if f.HasItem("5.07") {
		t.Error("HasItem(5.07) = true, want false")
	}

	empty := Filing{Form: "10-Q"}
	if empty.HasItem("1.01") {
		t.Error("HasItem on non-8-K should be false")
	}
}

func TestTrustShortfall(t *testing.T) {
	i64 := func(v int64) *int64 { return &v }
	f64 := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		spac SPAC
		want bool
	}{
		{
			name: "healthy trust",
			spac: SPAC{TrustCash: i64(103_000_000), TrustPerShare: f64(10.30), PublicShares: i64(10_000_000)},
			want: false,
		},
		{
			name: "shortfall",
			spac: SPAC{TrustCash: i64(90_000_000), TrustPerShare: f64(10.30), PublicShares: i64(10_000_000)},
			want: true,
		},
		{
			name: "unknown trust",
			spac: SPAC{TrustPerShare: f64(10.30), PublicShares: i64(10_000_000)},
			want: false,
		},
		{
			name: "zero public shares",
			spac: SPAC{TrustCash: i64(1), TrustPerShare: f64(10.30), PublicShares: i64(0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spac.TrustShortfall(); got != tt.want {
				t.Errorf("TrustShortfall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlertKey(t *testing.T) {
	a := Alert{CIK: 1849058, Kind: "deal_announced", At: time.Now()}
	if got := a.Key(); got != "1849058/deal_announced" {
		t.Errorf("Key() = %q, want %q", got, "1849058/deal_announced")
	}
}
