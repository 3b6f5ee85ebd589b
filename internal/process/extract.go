package process

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Anchor-window extraction: filings are narrative prose, so numbers are
// located by proximity to a keyword ("trust account", "redeem", ...) rather
// than by position. window is measured in bytes of normalized text.

var (
	moneyRe = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(million|billion)?`)
	shareRe = regexp.MustCompile(`([0-9][0-9,]{2,})\s+(?:Class\s+A\s+)?(?:public\s+)?(?:ordinary\s+)?shares`)
	pctRe   = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(?:%|percent)`)
	perShRe = regexp.MustCompile(`\$\s*([0-9]+\.[0-9]{1,4})\s*per\s+(?:public\s+|ordinary\s+)?share`)
	dateRe  = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+([0-9]{1,2}),\s+([0-9]{4})`)
)

// ParseMoney parses a dollar expression to whole dollars.
// "$345.0 million" -> 345000000; "$1.2 billion" -> 1200000000;
// "$10,350,000" -> 10350000. Returns 0 if s does not open with a match.
func ParseMoney(s string) int64 {
	m := moneyRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return moneyValue(m)
}

func moneyValue(m []string) int64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(m[2]) {
	case "million":
		f *= 1e6
	case "billion":
		f *= 1e9
	}
	return int64(math.Round(f))
}

// MoneyNear returns the first dollar amount within window bytes of the first
// occurrence of keyword (case-insensitive). Returns 0 when none is found.
func MoneyNear(doc, keyword string, window int) int64 {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return 0
	}
	m := moneyRe.FindStringSubmatch(doc[lo:hi])
	if m == nil {
		return 0
	}
	return moneyValue(m)
}

// LargestMoneyNear returns the largest dollar amount in the window. Deal
// announcements often quote several figures (PIPE, trust, enterprise value);
// the enterprise value is reliably the largest.
func LargestMoneyNear(doc, keyword string, window int) int64 {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return 0
	}
	var best int64
	for _, m := range moneyRe.FindAllStringSubmatch(doc[lo:hi], -1) {
		if v := moneyValue(m); v > best {
			best = v
		}
	}
	return best
}

// ShareCountNear returns the largest share count within the window.
func ShareCountNear(doc, keyword string, window int) int64 {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return 0
	}
	var best int64
	for _, m := range shareRe.FindAllStringSubmatch(doc[lo:hi], -1) {
		v, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err == nil && v > best {
			best = v
		}
	}
	return best
}

// PercentNear returns the first percentage within the window, or -1.
func PercentNear(doc, keyword string, window int) float64 {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return -1
	}
	m := pctRe.FindStringSubmatch(doc[lo:hi])
	if m == nil {
		return -1
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -1
	}
	return v
}

// PerShareNear returns the first per-share dollar value within the window,
// or 0 when none is found.
func PerShareNear(doc, keyword string, window int) float64 {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return 0
	}
	m := perShRe.FindStringSubmatch(doc[lo:hi])
	if m == nil {
		return 0
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return v
}

// DateNear returns the first long-form date within the window.
func DateNear(doc, keyword string, window int) (time.Time, bool) {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return time.Time{}, false
	}
	m := dateRe.FindStringSubmatch(doc[lo:hi])
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("January 2, 2006", m[1]+" "+m[2]+", "+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var toLeadRe = regexp.MustCompile(`\bto\s*$`)

// NewDeadlineNear returns the date an extension moves the deadline to.
// Amendments usually read "from <old date> to <new date>"; the last date
// preceded by "to" wins, otherwise the first date in the window.
func NewDeadlineNear(doc, keyword string, window int) (time.Time, bool) {
	lo, hi, ok := anchor(doc, keyword, window)
	if !ok {
		return time.Time{}, false
	}
	text := doc[lo:hi]

	matches := dateRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}

	pick := matches[0]
	for _, m := range matches {
		leadLo := m[0] - 12
		if leadLo < 0 {
			leadLo = 0
		}
		if toLeadRe.MatchString(strings.ToLower(text[leadLo:m[0]])) {
			pick = m
		}
	}

	month, day, year := text[pick[2]:pick[3]], text[pick[4]:pick[5]], text[pick[6]:pick[7]]
	t, err := time.Parse("January 2, 2006", month+" "+day+", "+year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Contains reports whether doc contains the phrase, case-insensitively.
func Contains(doc, phrase string) bool {
	return strings.Contains(strings.ToLower(doc), strings.ToLower(phrase))
}

// ContainsAny reports whether doc contains any of the phrases.
func ContainsAny(doc string, phrases ...string) bool {
	lower := strings.ToLower(doc)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// anchor locates keyword in doc and returns the surrounding window bounds.
func anchor(doc, keyword string, window int) (lo, hi int, ok bool) {
	idx := strings.Index(strings.ToLower(doc), strings.ToLower(keyword))
	if idx < 0 {
		return 0, 0, false
	}
	lo = idx - window
	if lo < 0 {
		lo = 0
	}
	hi = idx + len(keyword) + window
	if hi > len(doc) {
		hi = len(doc)
	}
	return lo, hi, true
}

var targetRe = regexp.MustCompile(`(?i)(?:business\s+combination|merger)\s+agreement[^.]{0,40}?\bwith\b[\s,]*((?:[A-Z][A-Za-z0-9&'-]*,?\s+){1,6}?(?:Incorporated|Inc|Corporation|Corp|Limited|Ltd|LLC|Company|Co|plc|Holdings|Group|Technologies|AG|GmbH)(?:\.|\b))`)

// ExtractTargetName pulls the counterparty name from deal-announcement prose.
// Returns "" when no confident match exists.
func ExtractTargetName(doc string) string {
	m := targetRe.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	name = strings.TrimRight(name, ",")
	return name
}
