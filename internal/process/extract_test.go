package process

import (
	"testing"
	"time"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"$345.0 million", 345_000_000},
		{"$1.2 billion", 1_200_000_000},
		{"$10,350,000", 10_350_000},
		{"$ 250 million", 250_000_000},
		{"$10.00", 10},
		{"no dollars here", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseMoney(tt.input); got != tt.want {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyNear(t *testing.T) {
	doc := "The Company raised $50.0 million in a PIPE. As of March 31, 2024, " +
		"the trust account held approximately $345.0 million in investments."

	if got := MoneyNear(doc, "trust account", 100); got != 345_000_000 {
		t.Errorf("MoneyNear(trust account) = %d, want 345000000", got)
	}
	if got := MoneyNear(doc, "warrant", 100); got != 0 {
		t.Errorf("MoneyNear(missing keyword) = %d, want 0", got)
	}
}

func TestLargestMoneyNear(t *testing.T) {
	doc := "The transaction reflects an enterprise value of $1.6 billion, " +
		"including a $125.0 million PIPE and $345.0 million held in trust."

	if got := LargestMoneyNear(doc, "enterprise value", 200); got != 1_600_000_000 {
		t.Errorf("LargestMoneyNear = %d, want 1600000000", got)
	}
}

func TestShareCountNear(t *testing.T) {
	doc := "holders of 28,456,193 Class A shares exercised their right to redeem " +
		"such shares, and 100 shares were issued to advisors"

	if got := ShareCountNear(doc, "redeem", 200); got != 28_456_193 {
		t.Errorf("ShareCountNear = %d, want 28456193", got)
	}
}

func TestPercentNear(t *testing.T) {
	doc := "shareholders elected to redeem approximately 87.3% of the public shares"

	if got := PercentNear(doc, "redeem", 100); got != 87.3 {
		t.Errorf("PercentNear = %v, want 87.3", got)
	}
	if got := PercentNear(doc, "absent", 100); got != -1 {
		t.Errorf("PercentNear(missing) = %v, want -1", got)
	}
}

func TestPerShareNear(t *testing.T) {
	doc := "the trust account held approximately $10.35 per share as of the record date"

	if got := PerShareNear(doc, "trust account", 100); got != 10.35 {
		t.Errorf("PerShareNear = %v, want 10.35", got)
	}
}

func TestDateNear(t *testing.T) {
	doc := "the Company's charter was amended to extend the date by which it must " +
		"consummate a business combination to September 15, 2025"

	got, ok := DateNear(doc, "extend", 200)
	if !ok {
		t.Fatal("DateNear found nothing")
	}
	want := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateNear = %v, want %v", got, want)
	}
}

func TestNewDeadlineNear(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want time.Time
	}{
		{
			name: "from old to new pair",
			doc: "amended to extend the date by which the Company must consummate a " +
				"business combination from March 15, 2025 to September 15, 2025",
			want: time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "bare to form",
			doc: "the Company's charter was amended to extend the date by which it must " +
				"consummate a business combination to September 15, 2025",
			want: time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly extensions from to",
			doc: "extend the deadline from June 30, 2025 to December 31, 2025, in monthly " +
				"increments",
			want: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewDeadlineNear(tt.doc, "extend", 600)
			if !ok {
				t.Fatal("NewDeadlineNear found nothing")
			}
			if !got.Equal(tt.want) {
				t.Errorf("NewDeadlineNear = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := NewDeadlineNear("no dates here to extend anything", "extend", 600); ok {
		t.Error("NewDeadlineNear should fail on a dateless window")
	}
}

func TestExtractTargetName(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "inc target",
			doc:  "entered into a business combination agreement with Volta Industrial Systems, Inc.",
			want: "Volta Industrial Systems, Inc.",
		},
		{
			name: "merger agreement",
			doc:  "the previously disclosed merger agreement with Helix Therapeutics Ltd and its subsidiaries",
			want: "Helix Therapeutics Ltd",
		},
		{
			name: "no match",
			doc:  "the Company entered into an engagement letter with its underwriters",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTargetName(tt.doc); got != tt.want {
				t.Errorf("ExtractTargetName = %q, want %q", got, tt.want)
			}
		})
	}
}
