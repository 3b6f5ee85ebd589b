package main

import (
	"testing"

	"github.com/medxprts/Spacs-sub002/internal/edgar"
)

func searchHit(id, cik, name, form, date string) edgar.SearchHit {
	var h edgar.SearchHit
	h.ID = id
	h.Source.CIKs = []string{cik}
	h.Source.DisplayNames = []string{name}
	h.Source.FormType = form
	h.Source.FileDate = date
	return h
}

func TestDiscoverCandidates(t *testing.T) {
	resp := &edgar.SearchResponse{}
	resp.Hits.Hits = []edgar.SearchHit{
		searchHit("0001193125-24-000001:s1.htm", "0001849058", "Example Acquisition Corp.", "S-1", "2024-03-01"),
		searchHit("0001193125-24-000002:s1.htm", "0002000001", "Fresh Check Corp.", "S-1", "2024-03-02"),
		// Second filing by the same filer collapses into the first hit.
		searchHit("0001193125-24-000003:s1a.htm", "0002000001", "Fresh Check Corp.", "S-1/A", "2024-03-09"),
		// Unparsable CIK is dropped.
		searchHit("0001193125-24-000004:s1.htm", "not-a-cik", "Bad Hit", "S-1", "2024-03-03"),
	}

	known := map[int64]struct{}{1849058: {}}

	cands := discoverCandidates(resp, known)
	if len(cands) != 1 {
		t.Fatalf("candidates = %d, want 1: %+v", len(cands), cands)
	}

	c := cands[0]
	if c.CIK != 2000001 {
		t.Errorf("CIK = %d, want 2000001", c.CIK)
	}
	if c.Name != "Fresh Check Corp." {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Accession != "0001193125-24-000002" {
		t.Errorf("Accession = %q, want the hit ID without the document suffix", c.Accession)
	}
}

func TestDiscoverCandidatesEmptyResponse(t *testing.T) {
	if got := discoverCandidates(&edgar.SearchResponse{}, nil); len(got) != 0 {
		t.Errorf("candidates = %+v, want none", got)
	}
}
