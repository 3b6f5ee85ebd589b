package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/edgar"
)

var (
	discoverQuery string
	discoverForms []string
	discoverStart string
	discoverEnd   string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find SPAC filers not yet tracked",
	Long: `Run an EDGAR full-text search for SPAC-style filings and list the
filers that are not already in the database. Review the hits, then add
the keepers and run "spacctl backfill --cik" for each.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverQuery, "query", `"blank check company"`, "full-text search phrase")
	discoverCmd.Flags().StringSliceVar(&discoverForms, "forms", []string{"S-1"}, "form types to search")
	discoverCmd.Flags().StringVar(&discoverStart, "start", "", "earliest filing date (YYYY-MM-DD)")
	discoverCmd.Flags().StringVar(&discoverEnd, "end", "", "latest filing date (YYYY-MM-DD)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	spacs, err := st.ListSPACs(ctx)
	if err != nil {
		return fmt.Errorf("list spacs: %w", err)
	}
	known := make(map[int64]struct{}, len(spacs))
	for _, s := range spacs {
		known[s.CIK] = struct{}{}
	}

	client := edgar.NewClient(cfg.EDGAR)
	resp, err := client.Search(ctx, edgar.SearchOptions{
		Query:   discoverQuery,
		Forms:   discoverForms,
		StartDt: discoverStart,
		EndDt:   discoverEnd,
	})
	if err != nil {
		return err
	}

	cands := discoverCandidates(resp, known)
	if len(cands) == 0 {
		fmt.Printf("hits=%d, none untracked\n", resp.Hits.Total.Value)
		return nil
	}

	fmt.Printf("%-10s  %-40s  %-8s  %-10s  %s\n", "CIK", "NAME", "FORM", "FILED", "ACCESSION")
	for _, c := range cands {
		fmt.Printf("%-10d  %-40.40s  %-8s  %-10s  %s\n", c.CIK, c.Name, c.Form, c.FileDate, c.Accession)
	}
	return nil
}

// candidate is one untracked filer surfaced by full-text search.
type candidate struct {
	CIK       int64
	Name      string
	Form      string
	FileDate  string
	Accession string
}

// discoverCandidates reduces search hits to untracked filers, one row per
// CIK (the first hit wins). Hits with an unparsable CIK are dropped.
func discoverCandidates(resp *edgar.SearchResponse, known map[int64]struct{}) []candidate {
	var out []candidate
	seen := make(map[int64]struct{})

	for _, hit := range resp.Hits.Hits {
		if len(hit.Source.CIKs) == 0 {
			continue
		}
		cik := edgar.ParseCIK(hit.Source.CIKs[0])
		if cik == 0 {
			continue
		}
		if _, ok := known[cik]; ok {
			continue
		}
		if _, ok := seen[cik]; ok {
			continue
		}
		seen[cik] = struct{}{}

		var name string
		if len(hit.Source.DisplayNames) > 0 {
			name = hit.Source.DisplayNames[0]
		}
		out = append(out, candidate{
			CIK:       cik,
			Name:      name,
			Form:      hit.Source.FormType,
			FileDate:  hit.Source.FileDate,
			Accession: edgar.AccessionFromHitID(hit.ID),
		})
	}
	return out
}
