package edgar

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// GetSubmissions fetches the submissions index for a CIK.
func (c *Client) GetSubmissions(ctx context.Context, cik int64) (*SubmissionsResponse, error) {
	fullURL := fmt.Sprintf("%s/CIK%010d.json", c.submissionsURL, cik)

	var resp SubmissionsResponse
	if err := c.getJSON(ctx, fullURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("get submissions for CIK %d: %w", cik, err)
	}

	return &resp, nil
}

// GetRecentFilings fetches and converts the recent filings for a CIK.
func (c *Client) GetRecentFilings(ctx context.Context, cik int64) ([]model.Filing, error) {
	resp, err := c.GetSubmissions(ctx, cik)
	if err != nil {
		return nil, err
	}
	return c.ConvertFilings(cik, resp.Filings.Recent), nil
}

// Search runs a full-text search across all filers.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	query := url.Values{}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	if len(opts.Forms) > 0 {
		query.Set("forms", strings.Join(opts.Forms, ","))
	}
	if opts.StartDt != "" {
		query.Set("startdt", opts.StartDt)
	}
	if opts.EndDt != "" {
		query.Set("enddt", opts.EndDt)
	}
	if opts.From > 0 {
		query.Set("from", fmt.Sprintf("%d", opts.From))
	}

	var resp SearchResponse
	if err := c.getJSON(ctx, c.searchURL, query, &resp); err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}

	return &resp, nil
}

// GetDocument fetches a filing's primary document and returns its text with
// HTML markup stripped.
func (c *Client) GetDocument(ctx context.Context, f model.Filing) (string, error) {
	fullURL := f.URL
	if fullURL == "" {
		fullURL = c.DocumentURL(f.CIK, f.AccessionNumber, f.PrimaryDocument)
	}

	body, err := c.doWithRetry(ctx, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("get document %s: %w", f.AccessionNumber, err)
	}

	return StripHTML(string(body)), nil
}

// DocumentURL builds the archive URL for a filing document.
func (c *Client) DocumentURL(cik int64, accession, document string) string {
	return fmt.Sprintf("%s/%d/%s/%s",
		c.archivesURL, cik, strings.ReplaceAll(accession, "-", ""), document)
}
