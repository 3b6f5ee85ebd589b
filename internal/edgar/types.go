package edgar

// SubmissionsResponse from GET /submissions/CIK##########.json
type SubmissionsResponse struct {
	CIK       string   `json:"cik"`
	Name      string   `json:"name"`
	Tickers   []string `json:"tickers"`
	Exchanges []string `json:"exchanges"`
	SICDesc   string   `json:"sicDescription"`
	Filings   struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings holds the columnar filing arrays EDGAR returns. All slices
// are index-aligned: element i of each describes the same filing.
type RecentFilings struct {
	AccessionNumber    []string `json:"accessionNumber"`
	FilingDate         []string `json:"filingDate"`
	AcceptanceDateTime []string `json:"acceptanceDateTime"`
	Form               []string `json:"form"`
	Items              []string `json:"items"` // comma-joined 8-K item codes
	PrimaryDocument    []string `json:"primaryDocument"`
	PrimaryDocDesc     []string `json:"primaryDocDescription"`
}

// SearchResponse from GET /search-index (full-text search).
type SearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []SearchHit `json:"hits"`
	} `json:"hits"`
}

// SearchHit is one full-text search result.
type SearchHit struct {
	// ID is "accession-number:document-name".
	ID     string `json:"_id"`
	Source struct {
		CIKs         []string `json:"ciks"`
		FormType     string   `json:"file_type"`
		RootForms    []string `json:"root_forms"`
		FileDate     string   `json:"file_date"`
		DisplayNames []string `json:"display_names"`
	} `json:"_source"`
}

// SearchOptions filters a full-text search.
type SearchOptions struct {
	Query   string   // Phrase query, e.g. `"business combination agreement"`
	Forms   []string // Restrict to form types, e.g. ["8-K"]
	StartDt string   // YYYY-MM-DD inclusive
	EndDt   string   // YYYY-MM-DD inclusive
	From    int      // Pagination offset
}
