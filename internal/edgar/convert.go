package edgar

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// ConvertFilings converts EDGAR's columnar recent-filings arrays into
// model.Filing values. Rows with a malformed filing date are skipped.
func (c *Client) ConvertFilings(cik int64, recent RecentFilings) []model.Filing {
	n := len(recent.AccessionNumber)
	filings := make([]model.Filing, 0, n)

	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", column(recent.FilingDate, i))
		if err != nil {
			continue
		}

		acc := column(recent.AccessionNumber, i)
		doc := column(recent.PrimaryDocument, i)

		filings = append(filings, model.Filing{
			AccessionNumber: acc,
			CIK:             cik,
			Form:            column(recent.Form, i),
			FilingDate:      date,
			Items:           ParseItems(column(recent.Items, i)),
			PrimaryDocument: doc,
			URL:             c.DocumentURL(cik, acc, doc),
			ReceivedAt:      time.Now().UTC(),
		})
	}

	return filings
}

// column returns s[i] or "" when the array is shorter than its siblings.
func column(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// ParseItems splits EDGAR's comma-joined 8-K item string into codes.
// "1.01,9.01" -> ["1.01", "9.01"]; "" -> nil.
func ParseItems(items string) []string {
	if items == "" {
		return nil
	}
	parts := strings.Split(items, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseCIK parses a CIK string, tolerating leading zeros.
// Returns 0 for empty or invalid input.
func ParseCIK(s string) int64 {
	s = strings.TrimLeft(strings.TrimSpace(s), "0")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// AccessionFromHitID extracts the accession number from a search hit ID
// of the form "0001193125-24-123456:document.htm".
func AccessionFromHitID(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i]
	}
	return id
}

var (
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	spaceRe  = regexp.MustCompile(`[ \t\x{00a0}]+`)
)

// StripHTML reduces a filing document to whitespace-normalized text for
// keyword and number extraction. Not a general-purpose HTML parser: EDGAR
// primary documents are flat narrative HTML and only the visible text
// matters to the processors.
func StripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")

	// Common entities seen in EDGAR documents.
	r := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#8217;", "'",
		"&#8220;", `"`,
		"&#8221;", `"`,
	)
	s = r.Replace(s)

	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
